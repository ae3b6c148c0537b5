package timeline

import (
	"github.com/jpalaw/ghrecap/internal/filter"
	"github.com/jpalaw/ghrecap/pkg/models"
)

// Summary assembles the combined view over both sources: each stream is
// categorized and deduplicated on its own, then merged by URL with the
// search-derived item winning ties (search results carry the more complete
// record), then sorted newest-updated first. Diagnostics from both streams
// are concatenated.
func Summary(raw []models.RawEvent, search []models.Item, w Window) ([]models.Item, []models.Diagnostic) {
	eventItems, diags := CategorizeEvents(raw, w)
	eventItems = Dedupe(eventItems)

	searchItems, searchDiags := CategorizeItems(search, w)
	searchItems = Dedupe(searchItems)
	diags = append(diags, searchDiags...)

	fromSearch := make(map[string]bool, len(searchItems))
	for _, it := range searchItems {
		fromSearch[it.HTMLURL] = true
	}

	merged := make([]models.Item, 0, len(eventItems)+len(searchItems))
	for _, it := range eventItems {
		if fromSearch[it.HTMLURL] {
			continue
		}
		merged = append(merged, it)
	}
	merged = append(merged, searchItems...)

	return filter.Sort(merged, models.SortByUpdated), diags
}
