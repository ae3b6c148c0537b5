// Package timeline filters activity into a date window, collapses
// duplicates, and assembles the combined view over both sources.
package timeline

import (
	"fmt"
	"time"
)

// dayLayout is the calendar-date format window bounds are given in.
const dayLayout = "2006-01-02"

// Window is an inclusive day-granularity date range. A nil bound disables
// that side's check, so a zero Window admits everything.
type Window struct {
	start *time.Time
	end   *time.Time
}

// NewWindow builds a window from optional calendar-date bounds. The start
// boundary is the literal start of its day; the end boundary is extended by
// 24 hours so the entire end calendar day is included.
func NewWindow(start, end *time.Time) Window {
	w := Window{}
	if start != nil {
		s := startOfDay(*start)
		w.start = &s
	}
	if end != nil {
		e := startOfDay(*end).Add(24 * time.Hour)
		w.end = &e
	}
	return w
}

// ParseWindow builds a window from "YYYY-MM-DD" strings; an empty string
// leaves that side open.
func ParseWindow(from, to string) (Window, error) {
	var start, end *time.Time
	if from != "" {
		t, err := time.Parse(dayLayout, from)
		if err != nil {
			return Window{}, fmt.Errorf("invalid start date %q: %w", from, err)
		}
		start = &t
	}
	if to != "" {
		t, err := time.Parse(dayLayout, to)
		if err != nil {
			return Window{}, fmt.Errorf("invalid end date %q: %w", to, err)
		}
		end = &t
	}
	return NewWindow(start, end), nil
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if w.start != nil && t.Before(*w.start) {
		return false
	}
	if w.end != nil && !t.Before(*w.end) {
		return false
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// parseTimestamp parses an ISO-8601 timestamp string. The feed is not
// guaranteed well-formed here; the false return routes the record to the
// excluded-with-diagnostic path instead of an undefined comparison.
func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
