package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePushTwoCommits(t *testing.T) {
	payload := `{
		"ref": "refs/heads/main",
		"commits": [
			{"sha": "aaa", "message": "fix: x"},
			{"sha": "bbb", "message": "feat: y\n\nlonger description"}
		]
	}`

	item, skip := Normalize(makeEvent(TypePush, payload))
	require.NotNil(t, item, "skip reason: %s", skip)

	assert.Equal(t, "Committed 2 commits to octo/hello/main", item.Title)
	assert.Equal(t, "octo/hello\nfix: x\nfeat: y", item.Body)
	assert.Equal(t, "https://github.com/octo/hello/commits/main", item.HTMLURL)
	assert.Equal(t, int64(22249084947), item.ID)
	assert.Equal(t, "22249084947", item.EventID)
	assert.Equal(t, "pushed", item.Action)
	// Push items keep the whole untouched event, not just its payload.
	assert.Contains(t, string(item.Original), `"type":"PushEvent"`)
}

func TestPushTitleRecovery(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{
			name:    "Single commit uses singular noun",
			payload: `{"ref": "refs/heads/main", "commits": [{"message": "fix"}]}`,
			want:    "Committed 1 commit to octo/hello/main",
		},
		{
			name:    "Size field stands in for a missing commit list",
			payload: `{"ref": "refs/heads/main", "size": 4}`,
			want:    "Committed 4 commits to octo/hello/main",
		},
		{
			name:    "Differing distinct count gets a parenthetical",
			payload: `{"ref": "refs/heads/main", "size": 4, "distinct_size": 2}`,
			want:    "Committed 4 commits (2 distinct) to octo/hello/main",
		},
		{
			name:    "Zero distinct count is not advertised",
			payload: `{"ref": "refs/heads/main", "size": 4, "distinct_size": 0}`,
			want:    "Committed 4 commits to octo/hello/main",
		},
		{
			name:    "No count but differing hashes still asserts a push",
			payload: `{"ref": "refs/heads/main", "before": "aaaaaaaaaaaa", "head": "bbbbbbbbbbbb"}`,
			want:    "Committed to octo/hello/main",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, skip := Normalize(makeEvent(TypePush, tt.payload))
			require.NotNil(t, item, "skip reason: %s", skip)
			assert.Equal(t, tt.want, item.Title)
		})
	}
}

func TestPushBody(t *testing.T) {
	t.Run("Overflow past five commits", func(t *testing.T) {
		payload := `{"ref": "refs/heads/main", "commits": [
			{"message": "one"}, {"message": "two"}, {"message": "three"},
			{"message": "four"}, {"message": "five"}, {"message": "six"},
			{"message": "seven"}
		]}`
		item, skip := Normalize(makeEvent(TypePush, payload))
		require.NotNil(t, item, "skip reason: %s", skip)
		assert.Contains(t, item.Body, "five")
		assert.NotContains(t, item.Body, "six")
		assert.Contains(t, item.Body, "... and 2 more")
	})

	t.Run("Hash range fallback without commit detail", func(t *testing.T) {
		payload := `{"ref": "refs/heads/main", "size": 3, "before": "0123456789abcdef", "head": "fedcba9876543210"}`
		item, skip := Normalize(makeEvent(TypePush, payload))
		require.NotNil(t, item, "skip reason: %s", skip)
		assert.Equal(t, "octo/hello\n0123456...fedcba9", item.Body)
	})
}

func TestPushBranchStripsRefPrefix(t *testing.T) {
	item, skip := Normalize(makeEvent(TypePush, `{"ref": "refs/heads/feature/retry", "size": 1}`))
	require.NotNil(t, item, "skip reason: %s", skip)
	assert.Equal(t, "Committed 1 commit to octo/hello/feature/retry", item.Title)
	assert.Equal(t, "https://github.com/octo/hello/commits/feature/retry", item.HTMLURL)
}
