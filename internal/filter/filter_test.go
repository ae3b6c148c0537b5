package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpalaw/ghrecap/pkg/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		item models.Item
		want models.TypeFilter
	}{
		{
			name: "Review title prefix wins",
			item: models.Item{Title: "Review on: Add retries"},
			want: models.TypePR,
		},
		{
			name: "Review comment title prefix wins",
			item: models.Item{Title: "Review comment on: Add retries"},
			want: models.TypePR,
		},
		{
			name: "Comment title prefix beats the structural marker",
			item: models.Item{
				Title:       "Comment on: Add retries",
				PullRequest: &models.PullRequestRef{URL: "https://github.com/octo/hello/pull/8"},
			},
			want: models.TypeComment,
		},
		{
			name: "Pull request marker",
			item: models.Item{
				Title:       "Add retries",
				PullRequest: &models.PullRequestRef{URL: "https://github.com/octo/hello/pull/8"},
			},
			want: models.TypePR,
		},
		{
			name: "Everything else is an issue",
			item: models.Item{Title: "Crash on empty input"},
			want: models.TypeIssue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.item))
		})
	}
}

func TestMatchesStatus(t *testing.T) {
	mergedPR := models.Item{
		State:       "closed",
		PullRequest: &models.PullRequestRef{MergedAt: "2024-03-10T12:00:00Z"},
	}
	closedPR := models.Item{
		State:       "closed",
		PullRequest: &models.PullRequestRef{},
	}
	openIssue := models.Item{State: "open"}

	tests := []struct {
		name   string
		item   models.Item
		status models.StatusFilter
		want   bool
	}{
		{name: "Merged PR satisfies merged", item: mergedPR, status: models.StatusMerged, want: true},
		// A closed-but-merged PR is only reachable via merged, never closed.
		{name: "Merged PR never satisfies closed", item: mergedPR, status: models.StatusClosed, want: false},
		{name: "Closed unmerged PR satisfies closed", item: closedPR, status: models.StatusClosed, want: true},
		{name: "Closed unmerged PR does not satisfy merged", item: closedPR, status: models.StatusMerged, want: false},
		{name: "Open issue satisfies open", item: openIssue, status: models.StatusOpen, want: true},
		{name: "Open issue does not satisfy closed", item: openIssue, status: models.StatusClosed, want: false},
		{name: "All is a no-op", item: mergedPR, status: models.StatusAll, want: true},
		{name: "Merged flag at item level counts too", item: models.Item{MergedAt: "2024-03-10T12:00:00Z"}, status: models.StatusMerged, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesStatus(tt.item, tt.status))
		})
	}
}

func TestMatchesLabels(t *testing.T) {
	item := models.Item{Labels: []models.Label{{Name: "bug"}, {Name: "P1"}, {Name: "wontfix"}}}

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    bool
	}{
		{name: "No filters is a no-op", want: true},
		{name: "All includes present", include: []string{"bug", "P1"}, want: true},
		{name: "Missing include fails", include: []string{"bug", "P2"}, want: false},
		{name: "Any exclude present fails", exclude: []string{"wontfix"}, want: false},
		{name: "Absent exclude passes", exclude: []string{"duplicate"}, want: true},
		// Exclusion wins even when every include is satisfied.
		{name: "Exclude beats satisfied includes", include: []string{"bug", "P1"}, exclude: []string{"wontfix"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesLabels(item, tt.include, tt.exclude))
		})
	}
}

func TestMatchesRepo(t *testing.T) {
	item := models.Item{Repo: models.Repo{
		Name: "octo/hello",
		URL:  "https://api.github.com/repos/octo/hello",
	}}

	assert.True(t, MatchesRepo(item, nil))
	assert.True(t, MatchesRepo(item, []string{"octo/hello"}))
	assert.False(t, MatchesRepo(item, []string{"octo/other"}))

	t.Run("API prefix is stripped from the URL", func(t *testing.T) {
		assert.Equal(t, "octo/hello", RepoName(item))
	})

	t.Run("Falls back to the recorded name without a URL", func(t *testing.T) {
		bare := models.Item{Repo: models.Repo{Name: "octo/bare"}}
		assert.Equal(t, "octo/bare", RepoName(bare))
		assert.True(t, MatchesRepo(bare, []string{"octo/bare"}))
	})
}

func TestMatchesAuthor(t *testing.T) {
	item := models.Item{User: models.User{Login: "Alice"}}

	assert.True(t, MatchesAuthor(item, ""))
	assert.True(t, MatchesAuthor(item, "   "))
	assert.True(t, MatchesAuthor(item, "alice"))
	assert.True(t, MatchesAuthor(item, "ALICE"))
	assert.False(t, MatchesAuthor(item, "alic"))
	assert.False(t, MatchesAuthor(item, "bob"))
}

func TestMatchesQuery(t *testing.T) {
	item := models.Item{Title: "Add Retries", Body: "Uses exponential backoff."}

	assert.True(t, MatchesQuery(item, ""))
	assert.True(t, MatchesQuery(item, "  \t"))
	assert.True(t, MatchesQuery(item, "retries"))
	assert.True(t, MatchesQuery(item, "BACKOFF"))
	assert.False(t, MatchesQuery(item, "websocket"))
}

func TestApplyScenario(t *testing.T) {
	mergedPR := models.Item{
		Title:       "Add retries",
		State:       "closed",
		PullRequest: &models.PullRequestRef{MergedAt: "2024-03-10T12:00:00Z"},
	}

	t.Run("Merged PR excluded from type pr + status closed", func(t *testing.T) {
		cfg := models.DefaultFilterConfig()
		cfg.Type = models.TypePR
		cfg.Status = models.StatusClosed
		assert.Empty(t, Apply([]models.Item{mergedPR}, cfg))
	})

	t.Run("Same PR satisfies status merged", func(t *testing.T) {
		cfg := models.DefaultFilterConfig()
		cfg.Type = models.TypePR
		cfg.Status = models.StatusMerged
		assert.Len(t, Apply([]models.Item{mergedPR}, cfg), 1)
	})
}

// Predicates commute: applying two axes at once equals applying them one
// after the other in either order.
func TestApplyPredicatesCommute(t *testing.T) {
	items := []models.Item{
		{Title: "Open bug", State: "open", Labels: []models.Label{{Name: "bug"}}, User: models.User{Login: "alice"}},
		{Title: "Closed bug", State: "closed", Labels: []models.Label{{Name: "bug"}}, User: models.User{Login: "alice"}},
		{Title: "Open feature", State: "open", Labels: []models.Label{{Name: "enhancement"}}, User: models.User{Login: "bob"}},
		{Title: "Review on: Open bug", State: "open", User: models.User{Login: "carol"}},
	}

	statusOnly := models.DefaultFilterConfig()
	statusOnly.Status = models.StatusOpen

	labelOnly := models.DefaultFilterConfig()
	labelOnly.IncludedLabels = []string{"bug"}

	both := models.DefaultFilterConfig()
	both.Status = models.StatusOpen
	both.IncludedLabels = []string{"bug"}

	combined := Apply(items, both)
	sequentialAB := Apply(Apply(items, statusOnly), labelOnly)
	sequentialBA := Apply(Apply(items, labelOnly), statusOnly)

	require.Equal(t, combined, sequentialAB)
	require.Equal(t, combined, sequentialBA)
	require.Len(t, combined, 1)
	assert.Equal(t, "Open bug", combined[0].Title)
}

func TestApplyNeverMutatesInput(t *testing.T) {
	items := []models.Item{
		{Title: "A", State: "open"},
		{Title: "B", State: "closed"},
	}
	cfg := models.DefaultFilterConfig()
	cfg.Status = models.StatusOpen

	_ = Apply(items, cfg)
	assert.Equal(t, "A", items[0].Title)
	assert.Equal(t, "B", items[1].Title)
	assert.Len(t, items, 2)
}
