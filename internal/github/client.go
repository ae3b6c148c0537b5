// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/jpalaw/ghrecap/internal/config"
	"github.com/jpalaw/ghrecap/internal/logging"
	"github.com/jpalaw/ghrecap/pkg/models"
)

// apiRepoPrefix is the repository API-URL prefix stripped when recovering
// an owner/name repository from a search result.
const apiRepoPrefix = "https://api.github.com/repos/"

// Client encapsulates the GitHub API client for the events feed and the
// issue/PR search API.
type Client struct {
	client *github.Client
}

// NewClient creates a new GitHub API client using configuration from
// environment variables. A token is optional: without one the client still
// serves public activity, just under the unauthenticated rate limit.
func NewClient() (*Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return newClient(cfg)
}

func newClient(cfg *config.Config) (*Client, error) {
	token := cfg.GitHub.Token
	domain := cfg.GitHub.Domain
	if domain == "" {
		domain = "github.com"
	}

	var apiURL string
	if domain == "github.com" {
		apiURL = "https://api.github.com/"
	} else {
		apiURL = fmt.Sprintf("https://%s/api/v3/", domain)
	}

	logging.Debug("github configuration",
		"domain", domain,
		"api_url", apiURL,
		"token", logging.MaskSensitive(token))

	client := github.NewClient(nil)
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		client = github.NewClient(oauth2.NewClient(context.Background(), ts))
	} else {
		logging.Warn("no github token configured, using unauthenticated rate limits")
	}

	if domain != "github.com" {
		parsedURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github api url: %w", err)
		}
		client.BaseURL = parsedURL
		client.UploadURL = parsedURL
	}

	return &Client{client: client}, nil
}

// FetchUserEvents retrieves the user's recent activity events from the
// public feed as raw envelopes, untouched payloads included. The feed only
// exposes the most recent events, paginated; pagination stops where the
// API does.
func (c *Client) FetchUserEvents(ctx context.Context, username string) ([]models.RawEvent, error) {
	opts := &github.ListOptions{PerPage: 100}

	var raw []models.RawEvent
	for {
		events, resp, err := c.client.Activity.ListEventsPerformedByUser(ctx, username, false, opts)
		if err != nil {
			logging.Error("failed to fetch user events", "username", username, "error", err)
			return nil, fmt.Errorf("failed to fetch events for %s: %w", username, err)
		}

		for _, ev := range events {
			raw = append(raw, toRawEvent(ev))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logging.Debug("fetched user events", "username", username, "count", len(raw))
	return raw, nil
}

// toRawEvent converts a go-github event into the raw envelope the
// normalizer consumes, preserving the payload byte-for-byte.
func toRawEvent(ev *github.Event) models.RawEvent {
	raw := models.RawEvent{
		ID:     ev.GetID(),
		Type:   ev.GetType(),
		Public: ev.GetPublic(),
	}
	if actor := ev.GetActor(); actor != nil {
		raw.Actor = models.User{Login: actor.GetLogin(), AvatarURL: actor.GetAvatarURL()}
	}
	if repo := ev.GetRepo(); repo != nil {
		raw.Repo = models.Repo{Name: repo.GetName(), URL: repo.GetURL()}
	}
	if !ev.GetCreatedAt().IsZero() {
		raw.CreatedAt = ev.GetCreatedAt().UTC().Format(time.RFC3339)
	}
	if ev.RawPayload != nil {
		raw.Payload = *ev.RawPayload
	}
	return raw
}

// SearchIssues retrieves issues and pull requests the user authored inside
// the date range, converted to canonical-adjacent items. The result is
// neither validated nor deduplicated; that is the categorizer's job.
func (c *Client) SearchIssues(ctx context.Context, username, from, to string) ([]models.Item, error) {
	query := "author:" + username + dateQualifier(from, to)
	return c.searchItems(ctx, query, nil)
}

// SearchReviewed retrieves pull requests the user reviewed inside the date
// range. The search API reports when the pull request was last touched, so
// each result carries the reviewer and a reviewed_at for the categorizer's
// review-aware windowing and dedup.
func (c *Client) SearchReviewed(ctx context.Context, username, from, to string) ([]models.Item, error) {
	query := "type:pr reviewed-by:" + username + " -author:" + username + dateQualifier(from, to)
	reviewer := models.User{Login: username}
	return c.searchItems(ctx, query, &reviewer)
}

// dateQualifier builds the updated: search qualifier for an optionally
// open-ended date range.
func dateQualifier(from, to string) string {
	switch {
	case from != "" && to != "":
		return fmt.Sprintf(" updated:%s..%s", from, to)
	case from != "":
		return " updated:>=" + from
	case to != "":
		return " updated:<=" + to
	default:
		return ""
	}
}

func (c *Client) searchItems(ctx context.Context, query string, reviewer *models.User) ([]models.Item, error) {
	opts := &github.SearchOptions{
		Sort:        "updated",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var items []models.Item
	for {
		result, resp, err := c.client.Search.Issues(ctx, query, opts)
		if err != nil {
			logging.Error("search query failed", "query", query, "error", err)
			return nil, fmt.Errorf("search %q failed: %w", query, err)
		}

		for _, issue := range result.Issues {
			items = append(items, toSearchItem(issue, reviewer))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logging.Debug("search finished", "query", query, "count", len(items))
	return items, nil
}

// toSearchItem converts a search result into an item. Search results
// arrive close to canonical shape already; review results additionally get
// the reviewer stamped on them with the review marker title the downstream
// classifier keys on.
func toSearchItem(issue *github.Issue, reviewer *models.User) models.Item {
	item := models.Item{
		ID:        issue.GetID(),
		HTMLURL:   issue.GetHTMLURL(),
		Title:     issue.GetTitle(),
		State:     issue.GetState(),
		Body:      issue.GetBody(),
		Number:    issue.GetNumber(),
		CreatedAt: formatTime(issue.CreatedAt),
		UpdatedAt: formatTime(issue.UpdatedAt),
		ClosedAt:  formatTime(issue.ClosedAt),
		Labels:    make([]models.Label, 0, len(issue.Labels)),
	}

	for _, l := range issue.Labels {
		item.Labels = append(item.Labels, models.Label{
			Name:        l.GetName(),
			Color:       l.GetColor(),
			Description: l.GetDescription(),
		})
	}

	if user := issue.GetUser(); user != nil {
		item.User = models.User{Login: user.GetLogin(), AvatarURL: user.GetAvatarURL()}
	}
	if assignee := issue.GetAssignee(); assignee != nil {
		item.Assignee = &models.User{Login: assignee.GetLogin(), AvatarURL: assignee.GetAvatarURL()}
	}
	for _, a := range issue.Assignees {
		item.Assignees = append(item.Assignees, models.User{Login: a.GetLogin(), AvatarURL: a.GetAvatarURL()})
	}

	if repoURL := issue.GetRepositoryURL(); repoURL != "" {
		item.Repo = models.Repo{
			Name: strings.TrimPrefix(repoURL, apiRepoPrefix),
			URL:  repoURL,
		}
	}

	// The search API does not expose merge state on its pull request links.
	if links := issue.GetPullRequestLinks(); links != nil {
		item.PullRequest = &models.PullRequestRef{URL: links.GetHTMLURL()}
	}

	if reviewer != nil {
		r := *reviewer
		item.ReviewedBy = &r
		item.ReviewedAt = item.UpdatedAt
		item.Title = "Review on: " + item.Title
	}

	return item
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
