// Package filter applies a composable filter configuration and ordering to
// canonical items. Every axis is an independent predicate; axes compose by
// intersection, there is no OR-across-axes mode.
package filter

import (
	"strings"

	"github.com/jpalaw/ghrecap/pkg/models"
)

// Title prefixes the normalizer stamps on review and comment items; the
// type classifier trusts them ahead of structural markers.
const (
	reviewPrefix        = "Review on:"
	reviewCommentPrefix = "Review comment on:"
	commentPrefix       = "Comment on:"
)

// Apply returns the items satisfying every active axis of cfg. The input is
// never mutated and the result preserves input order; sorting is a separate
// step.
func Apply(items []models.Item, cfg models.FilterConfig) []models.Item {
	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		if !MatchesType(it, cfg.Type) {
			continue
		}
		if !MatchesStatus(it, cfg.Status) {
			continue
		}
		if !MatchesLabels(it, cfg.IncludedLabels, cfg.ExcludedLabels) {
			continue
		}
		if !MatchesRepo(it, cfg.Repos) {
			continue
		}
		if !MatchesAuthor(it, cfg.Author) {
			continue
		}
		if !MatchesQuery(it, cfg.Query) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Classify buckets an item as an issue, pull request, or comment. Title
// prefixes take priority because comment items on pull requests also carry
// a pull_request marker; the structural marker is the fallback.
func Classify(it models.Item) models.TypeFilter {
	switch {
	case strings.HasPrefix(it.Title, reviewPrefix), strings.HasPrefix(it.Title, reviewCommentPrefix):
		return models.TypePR
	case strings.HasPrefix(it.Title, commentPrefix):
		return models.TypeComment
	case it.IsPullRequest():
		return models.TypePR
	default:
		return models.TypeIssue
	}
}

// MatchesType applies the type axis; TypeAll is a no-op.
func MatchesType(it models.Item, want models.TypeFilter) bool {
	if want == "" || want == models.TypeAll {
		return true
	}
	return Classify(it) == want
}

// MatchesStatus applies the status axis. A merged pull request is only
// reachable through StatusMerged: the closed bucket explicitly excludes it.
func MatchesStatus(it models.Item, want models.StatusFilter) bool {
	switch want {
	case "", models.StatusAll:
		return true
	case models.StatusMerged:
		return it.IsMerged() || it.MergedAt != ""
	case models.StatusClosed:
		return it.State == "closed" && !it.IsMerged() && it.MergedAt == ""
	case models.StatusOpen:
		return it.State == "open"
	default:
		return true
	}
}

// MatchesLabels applies both label axes at once: every included label must
// be present (AND) and no excluded label may be (OR-exclude). Exclusion
// wins when both apply to the same item.
func MatchesLabels(it models.Item, include, exclude []string) bool {
	names := make(map[string]bool, len(it.Labels))
	for _, l := range it.Labels {
		names[l.Name] = true
	}
	for _, name := range include {
		if !names[name] {
			return false
		}
	}
	for _, name := range exclude {
		if names[name] {
			return false
		}
	}
	return true
}

// MatchesRepo applies the repository axis: membership of the item's
// owner/name repository in the filter set. An empty set is a no-op.
func MatchesRepo(it models.Item, repos []string) bool {
	if len(repos) == 0 {
		return true
	}
	name := RepoName(it)
	for _, r := range repos {
		if r == name {
			return true
		}
	}
	return false
}

// RepoName resolves the owner/name repository of an item, stripping the
// API-URL prefix from the repository URL and falling back to the recorded
// full name.
func RepoName(it models.Item) string {
	if it.Repo.URL != "" {
		const apiPrefix = "https://api.github.com/repos/"
		if rest, ok := strings.CutPrefix(it.Repo.URL, apiPrefix); ok {
			return rest
		}
	}
	return it.Repo.Name
}

// MatchesAuthor applies the author axis: case-insensitive exact match on
// the item's user login. Blank is a no-op.
func MatchesAuthor(it models.Item, author string) bool {
	author = strings.TrimSpace(author)
	if author == "" {
		return true
	}
	return strings.EqualFold(it.User.Login, author)
}

// MatchesQuery applies the free-text axis: case-insensitive substring match
// over title or body. Blank or whitespace-only is a no-op.
func MatchesQuery(it models.Item, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(it.Title), q) ||
		strings.Contains(strings.ToLower(it.Body), q)
}
