package models

// TypeFilter selects items by their classified kind.
type TypeFilter string

const (
	TypeAll     TypeFilter = "all"
	TypeIssue   TypeFilter = "issue"
	TypePR      TypeFilter = "pr"
	TypeComment TypeFilter = "comment"
)

// StatusFilter selects items by lifecycle state. Merged pull requests are
// only reachable through StatusMerged, never through StatusClosed.
type StatusFilter string

const (
	StatusAll    StatusFilter = "all"
	StatusOpen   StatusFilter = "open"
	StatusClosed StatusFilter = "closed"
	StatusMerged StatusFilter = "merged"
)

// SortKey picks the timestamp field items are ordered by.
type SortKey string

const (
	SortByUpdated SortKey = "updated"
	SortByCreated SortKey = "created"
)

// FilterConfig is an immutable record of independent filter axes. All axes
// compose by intersection. A config is created with all-permissive defaults
// and replaced wholesale on each edit, never partially mutated.
type FilterConfig struct {
	// Type narrows to issues, pull requests, or comments
	Type TypeFilter `json:"type"`

	// Status narrows by open/closed/merged state
	Status StatusFilter `json:"status"`

	// IncludedLabels must all be present on an item (AND semantics)
	IncludedLabels []string `json:"included_labels,omitempty"`

	// ExcludedLabels drop an item when any one is present (OR semantics)
	ExcludedLabels []string `json:"excluded_labels,omitempty"`

	// Repos restricts to the listed owner/name repositories
	Repos []string `json:"repos,omitempty"`

	// Author is a case-insensitive exact match on the item's user login
	Author string `json:"author,omitempty"`

	// Query is a case-insensitive substring match on title or body
	Query string `json:"query,omitempty"`

	// SortBy orders the filtered result, newest first
	SortBy SortKey `json:"sort_by"`
}

// DefaultFilterConfig returns the all-permissive configuration.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		Type:   TypeAll,
		Status: StatusAll,
		SortBy: SortByUpdated,
	}
}
