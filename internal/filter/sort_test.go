package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpalaw/ghrecap/pkg/models"
)

func TestSortDescendingByUpdated(t *testing.T) {
	items := []models.Item{
		{Title: "oldest", UpdatedAt: "2024-01-01T00:00:00Z"},
		{Title: "newest", UpdatedAt: "2024-03-01T00:00:00Z"},
		{Title: "middle", UpdatedAt: "2024-02-01T00:00:00Z"},
	}

	out := Sort(items, models.SortByUpdated)
	require.Len(t, out, 3)
	assert.Equal(t, "newest", out[0].Title)
	assert.Equal(t, "middle", out[1].Title)
	assert.Equal(t, "oldest", out[2].Title)
}

func TestSortByCreated(t *testing.T) {
	items := []models.Item{
		{Title: "created earlier", CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-03-01T00:00:00Z"},
		{Title: "created later", CreatedAt: "2024-02-01T00:00:00Z", UpdatedAt: "2024-01-15T00:00:00Z"},
	}

	out := Sort(items, models.SortByCreated)
	assert.Equal(t, "created later", out[0].Title)
	assert.Equal(t, "created earlier", out[1].Title)
}

// Equal timestamps keep their relative input order.
func TestSortStability(t *testing.T) {
	items := []models.Item{
		{Title: "first", UpdatedAt: "2024-02-01T00:00:00Z"},
		{Title: "second", UpdatedAt: "2024-02-01T00:00:00Z"},
		{Title: "third", UpdatedAt: "2024-02-01T00:00:00Z"},
		{Title: "newer", UpdatedAt: "2024-02-02T00:00:00Z"},
	}

	out := Sort(items, models.SortByUpdated)
	require.Len(t, out, 4)
	assert.Equal(t, "newer", out[0].Title)
	assert.Equal(t, "first", out[1].Title)
	assert.Equal(t, "second", out[2].Title)
	assert.Equal(t, "third", out[3].Title)
}

func TestSortUnparsableTimestampsSinkToEnd(t *testing.T) {
	items := []models.Item{
		{Title: "garbage", UpdatedAt: "not-a-date"},
		{Title: "valid", UpdatedAt: "2024-02-01T00:00:00Z"},
		{Title: "empty"},
	}

	out := Sort(items, models.SortByUpdated)
	assert.Equal(t, "valid", out[0].Title)
	assert.Equal(t, "garbage", out[1].Title)
	assert.Equal(t, "empty", out[2].Title)
}

func TestSortNeverMutatesInput(t *testing.T) {
	items := []models.Item{
		{Title: "b", UpdatedAt: "2024-01-01T00:00:00Z"},
		{Title: "a", UpdatedAt: "2024-03-01T00:00:00Z"},
	}

	out := Sort(items, models.SortByUpdated)
	assert.Equal(t, "a", out[0].Title)
	// The input keeps its original order.
	assert.Equal(t, "b", items[0].Title)
	assert.Equal(t, "a", items[1].Title)
}
