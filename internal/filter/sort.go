package filter

import (
	"sort"
	"time"

	"github.com/jpalaw/ghrecap/pkg/models"
)

// Sort orders items by the chosen timestamp field, newest first. The sort
// is stable, so items with equal timestamps keep their relative input
// order, and the input slice is never mutated. Unparsable timestamps sort
// as the zero time and sink to the end.
func Sort(items []models.Item, key models.SortKey) []models.Item {
	out := make([]models.Item, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		return sortTime(out[i], key).After(sortTime(out[j], key))
	})
	return out
}

func sortTime(it models.Item, key models.SortKey) time.Time {
	s := it.UpdatedAt
	if key == models.SortByCreated {
		s = it.CreatedAt
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
