package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalaw/ghrecap/internal/config"
	"github.com/jpalaw/ghrecap/internal/filter"
	"github.com/jpalaw/ghrecap/internal/github"
	"github.com/jpalaw/ghrecap/internal/logging"
	"github.com/jpalaw/ghrecap/internal/store"
	"github.com/jpalaw/ghrecap/internal/timeline"
	"github.com/jpalaw/ghrecap/pkg/models"
)

var activityOpts struct {
	users         []string
	from          string
	to            string
	source        string
	itemType      string
	status        string
	labels        []string
	excludeLabels []string
	repos         []string
	author        string
	query         string
	sortBy        string
	asJSON        bool
	noCache       bool
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show a user's GitHub activity for a date range",
	Long: `Fetch and display GitHub activity for one or more users.

The events source uses the public activity feed (pushes, stars, forks,
wiki edits and more, but only recent history). The search source uses the
issue/PR search API (complete history, but only issues, pull requests and
reviews). The summary source combines both, preferring search results when
the same URL shows up twice.`,
	RunE: runActivity,
}

func init() {
	flags := activityCmd.Flags()
	flags.StringSliceVarP(&activityOpts.users, "user", "u", nil, "GitHub username (repeatable)")
	flags.StringVar(&activityOpts.from, "from", "", "start date (YYYY-MM-DD, inclusive)")
	flags.StringVar(&activityOpts.to, "to", "", "end date (YYYY-MM-DD, inclusive)")
	flags.StringVar(&activityOpts.source, "source", "summary", "data source: events, search or summary")
	flags.StringVarP(&activityOpts.itemType, "type", "t", "all", "item type: all, issue, pr or comment")
	flags.StringVarP(&activityOpts.status, "status", "s", "all", "status: all, open, closed or merged")
	flags.StringSliceVar(&activityOpts.labels, "label", nil, "label the item must carry (repeatable, all must match)")
	flags.StringSliceVar(&activityOpts.excludeLabels, "exclude-label", nil, "label that drops the item (repeatable, any matches)")
	flags.StringSliceVarP(&activityOpts.repos, "repo", "r", nil, "restrict to repository owner/name (repeatable)")
	flags.StringVar(&activityOpts.author, "author", "", "exact item author login (case-insensitive)")
	flags.StringVarP(&activityOpts.query, "search", "q", "", "free-text search over title and body")
	flags.StringVar(&activityOpts.sortBy, "sort", "updated", "sort key: updated or created")
	flags.BoolVar(&activityOpts.asJSON, "json", false, "print canonical items as JSON")
	flags.BoolVar(&activityOpts.noCache, "no-cache", false, "bypass the local cache")
	activityCmd.MarkFlagRequired("user")
}

func runActivity(cmd *cobra.Command, args []string) error {
	window, err := timeline.ParseWindow(activityOpts.from, activityOpts.to)
	if err != nil {
		return err
	}

	filterCfg, err := buildFilterConfig()
	if err != nil {
		return err
	}

	if activityOpts.source != "events" && activityOpts.source != "search" && activityOpts.source != "summary" {
		return fmt.Errorf("invalid source %q, expected events, search or summary", activityOpts.source)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	client, err := github.NewClient()
	if err != nil {
		return fmt.Errorf("failed to initialize GitHub client: %w", err)
	}

	cache, err := store.New(cfg.Cache.Path)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer cache.Close()

	ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	if activityOpts.noCache {
		ttl = 0
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var items []models.Item
	var diags []models.Diagnostic
	for _, user := range activityOpts.users {
		userItems, userDiags, err := collectUser(ctx, client, cache, user, window, ttl)
		if err != nil {
			return err
		}
		items = append(items, userItems...)
		diags = append(diags, userDiags...)
	}

	for _, d := range diags {
		logging.Warn("record skipped", "event_id", d.EventID, "kind", d.Kind, "reason", d.Reason)
	}

	items = filter.Apply(items, filterCfg)
	items = filter.Sort(items, filterCfg.SortBy)

	if activityOpts.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	printItems(items)
	return nil
}

// buildFilterConfig turns the flag values into the immutable filter record
// the engine consumes, validating the enum axes.
func buildFilterConfig() (models.FilterConfig, error) {
	cfg := models.DefaultFilterConfig()

	switch t := models.TypeFilter(activityOpts.itemType); t {
	case models.TypeAll, models.TypeIssue, models.TypePR, models.TypeComment:
		cfg.Type = t
	default:
		return cfg, fmt.Errorf("invalid type %q, expected all, issue, pr or comment", activityOpts.itemType)
	}

	switch s := models.StatusFilter(activityOpts.status); s {
	case models.StatusAll, models.StatusOpen, models.StatusClosed, models.StatusMerged:
		cfg.Status = s
	default:
		return cfg, fmt.Errorf("invalid status %q, expected all, open, closed or merged", activityOpts.status)
	}

	switch k := models.SortKey(activityOpts.sortBy); k {
	case models.SortByUpdated, models.SortByCreated:
		cfg.SortBy = k
	default:
		return cfg, fmt.Errorf("invalid sort key %q, expected updated or created", activityOpts.sortBy)
	}

	cfg.IncludedLabels = activityOpts.labels
	cfg.ExcludedLabels = activityOpts.excludeLabels
	cfg.Repos = activityOpts.repos
	cfg.Author = activityOpts.author
	cfg.Query = activityOpts.query
	return cfg, nil
}

// collectUser fetches (or loads from cache) one user's activity and runs it
// through the requested assembly path.
func collectUser(ctx context.Context, client *github.Client, cache *store.Store, user string, window timeline.Window, ttl time.Duration) ([]models.Item, []models.Diagnostic, error) {
	var (
		rawEvents   []models.RawEvent
		searchItems []models.Item
		err         error
	)

	if activityOpts.source != "search" {
		rawEvents, err = loadEvents(ctx, client, cache, user, ttl)
		if err != nil {
			return nil, nil, err
		}
	}
	if activityOpts.source != "events" {
		searchItems, err = loadSearchItems(ctx, client, cache, user, ttl)
		if err != nil {
			return nil, nil, err
		}
	}

	switch activityOpts.source {
	case "events":
		items, diags := timeline.CategorizeEvents(rawEvents, window)
		return timeline.Dedupe(items), diags, nil
	case "search":
		items, diags := timeline.CategorizeItems(searchItems, window)
		return timeline.Dedupe(items), diags, nil
	default:
		items, diags := timeline.Summary(rawEvents, searchItems, window)
		return items, diags, nil
	}
}

func loadEvents(ctx context.Context, client *github.Client, cache *store.Store, user string, ttl time.Duration) ([]models.RawEvent, error) {
	if fresh, err := cache.Fresh(user, store.SourceEvents, ttl); err == nil && fresh {
		if events, err := cache.LoadEvents(user); err == nil {
			logging.Debug("serving events from cache", "username", user, "count", len(events))
			return events, nil
		}
	}

	events, err := client.FetchUserEvents(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := cache.SaveEvents(user, events); err != nil {
		logging.Warn("failed to cache events", "username", user, "error", err)
	}
	return events, nil
}

func loadSearchItems(ctx context.Context, client *github.Client, cache *store.Store, user string, ttl time.Duration) ([]models.Item, error) {
	var items []models.Item
	for _, source := range []string{store.SourceAuthored, store.SourceReviewed} {
		if fresh, err := cache.Fresh(user, source, ttl); err == nil && fresh {
			if cached, err := cache.LoadItems(user, source); err == nil {
				logging.Debug("serving search items from cache", "username", user, "source", source, "count", len(cached))
				items = append(items, cached...)
				continue
			}
		}

		var fetched []models.Item
		var err error
		if source == store.SourceAuthored {
			fetched, err = client.SearchIssues(ctx, user, activityOpts.from, activityOpts.to)
		} else {
			fetched, err = client.SearchReviewed(ctx, user, activityOpts.from, activityOpts.to)
		}
		if err != nil {
			return nil, err
		}
		if err := cache.SaveItems(user, source, fetched); err != nil {
			logging.Warn("failed to cache search items", "username", user, "source", source, "error", err)
		}
		items = append(items, fetched...)
	}
	return items, nil
}

// printItems writes the human-readable listing, one item per entry.
func printItems(items []models.Item) {
	if len(items) == 0 {
		fmt.Println("No activity found.")
		return
	}
	for _, it := range items {
		date := it.UpdatedAt
		if date == "" {
			date = it.CreatedAt
		}
		if len(date) > 10 {
			date = date[:10]
		}
		fmt.Printf("%s  %-7s  %s\n", date, filter.Classify(it), it.Title)
		fmt.Printf("            %s\n", it.HTMLURL)
	}
	fmt.Printf("\n%d items\n", len(items))
}
