package timeline

import (
	"github.com/jpalaw/ghrecap/internal/events"
	"github.com/jpalaw/ghrecap/pkg/models"
)

// CategorizeEvents filters raw feed events to those whose creation
// timestamp falls inside the window and normalizes the survivors into
// canonical items. Events outside the window vanish silently; events with
// an unparsable timestamp or a shape the normalizer can't convert are
// excluded with a diagnostic. Never returns an error.
func CategorizeEvents(raw []models.RawEvent, w Window) ([]models.Item, []models.Diagnostic) {
	items := make([]models.Item, 0, len(raw))
	var diags []models.Diagnostic

	for _, ev := range raw {
		t, ok := parseTimestamp(ev.CreatedAt)
		if !ok {
			diags = append(diags, models.Diagnostic{
				EventID: ev.ID,
				Kind:    ev.Type,
				Reason:  "unparsable created_at, treated as outside window",
			})
			continue
		}
		if !w.Contains(t) {
			continue
		}
		item, skip := events.Normalize(ev)
		if item == nil {
			diags = append(diags, models.Diagnostic{EventID: ev.ID, Kind: ev.Type, Reason: skip})
			continue
		}
		items = append(items, *item)
	}
	return items, diags
}

// CategorizeItems filters already-canonical items (the search source) to
// the window. Review items are windowed by when the review happened rather
// than when the underlying pull request was last touched. Items without a
// title are dropped with a diagnostic: downstream type classification and
// text search depend on the title being there.
func CategorizeItems(in []models.Item, w Window) ([]models.Item, []models.Diagnostic) {
	items := make([]models.Item, 0, len(in))
	var diags []models.Diagnostic

	for _, it := range in {
		if it.Title == "" {
			diags = append(diags, models.Diagnostic{
				EventID: it.EventID,
				Kind:    "search",
				Reason:  "item without title dropped",
			})
			continue
		}
		ts := it.ReviewedAt
		if ts == "" {
			ts = it.UpdatedAt
		}
		t, ok := parseTimestamp(ts)
		if !ok {
			diags = append(diags, models.Diagnostic{
				EventID: it.EventID,
				Kind:    "search",
				Reason:  "unparsable timestamp, treated as outside window",
			})
			continue
		}
		if !w.Contains(t) {
			continue
		}
		items = append(items, it)
	}
	return items, diags
}

// Dedupe collapses redundant items. Review items are keyed by reviewer plus
// URL so distinct reviewers on the same pull request survive as separate
// entries; everything else is keyed by URL alone. The first occurrence in
// input order wins and order is otherwise preserved.
func Dedupe(in []models.Item) []models.Item {
	seen := make(map[string]bool, len(in))
	out := make([]models.Item, 0, len(in))
	for _, it := range in {
		key := it.HTMLURL
		if it.ReviewedBy != nil {
			key = it.ReviewedBy.Login + ":" + it.HTMLURL
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}
