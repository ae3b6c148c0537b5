// Package models defines data structures shared across the application.
package models

import (
	"encoding/json"
)

// User represents a GitHub account, either the actor that generated an
// event or a user referenced inside a payload (author, assignee, reviewer).
type User struct {
	// Login is the account name (e.g., "octocat")
	Login string `json:"login"`

	// AvatarURL is the account's avatar image URL
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Label represents a label attached to an issue or pull request.
type Label struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// Repo references the repository an event or item belongs to.
type Repo struct {
	// Name is the full repository name (e.g., "octocat/hello-world")
	Name string `json:"name"`

	// URL is the repository's API URL
	URL string `json:"url,omitempty"`
}

// PullRequestRef marks an item as a pull request. Its presence on an Item
// is the signal that the item represents a pull request or a review or
// review comment on one.
type PullRequestRef struct {
	// MergedAt is set when the pull request has been merged
	MergedAt string `json:"merged_at,omitempty"`

	// URL is the pull request's canonical HTML URL
	URL string `json:"url,omitempty"`
}

// RawEvent is one entry from the activity-event feed: a tagged envelope
// whose payload shape varies by Type. The payload is kept as raw JSON so
// partial or unknown shapes survive decoding; the events package decodes
// it into the matching typed payload.
type RawEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Actor     User            `json:"actor"`
	Repo      Repo            `json:"repo"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt string          `json:"created_at"`
	Public    bool            `json:"public"`
}

// Item is the canonical, source-agnostic representation of an issue, pull
// request, review, comment, or repository activity fact. Timestamps are
// kept as the ISO-8601 strings the sources deliver; parsing happens only
// at the windowing and sorting boundaries so malformed values degrade
// instead of failing.
type Item struct {
	// ID identifies the underlying issue or pull request when one exists;
	// synthesized items (pushes, forks, stars...) reuse the event id.
	ID int64 `json:"id"`

	// EventID distinguishes the originating event from the underlying
	// issue or pull request when both exist.
	EventID string `json:"event_id,omitempty"`

	HTMLURL string `json:"html_url"`
	Title   string `json:"title"`

	// Action is the semantic verb (opened/closed/merged/labeled/pushed/...)
	Action string `json:"action,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
	ClosedAt  string `json:"closed_at,omitempty"`
	MergedAt  string `json:"merged_at,omitempty"`

	// ReviewedAt is set on review items from the search source; windowing
	// uses it in preference to UpdatedAt when present.
	ReviewedAt string `json:"reviewed_at,omitempty"`

	State  string  `json:"state,omitempty"`
	Body   string  `json:"body,omitempty"`
	Labels []Label `json:"labels"`
	Repo   Repo    `json:"repo"`
	Number int     `json:"number,omitempty"`

	// User is the actor who generated the event, not necessarily the
	// original author of the underlying issue or PR. The substitution is
	// deliberate: the feed's actor is always the subject of the item.
	User User `json:"user"`

	Assignee  *User  `json:"assignee,omitempty"`
	Assignees []User `json:"assignees,omitempty"`

	PullRequest *PullRequestRef `json:"pull_request,omitempty"`

	// Original is the untouched payload (or, for push-derived items, the
	// untouched event) that produced this item.
	Original json.RawMessage `json:"original,omitempty"`

	// OriginalEventType is the feed discriminator of the producing event,
	// empty for search-derived items.
	OriginalEventType string `json:"original_event_type,omitempty"`

	// ReviewedBy is set only on review-derived items. When present, User
	// holds the pull request's original author if knowable, otherwise it
	// falls back to the reviewer.
	ReviewedBy *User `json:"reviewed_by,omitempty"`
}

// IsPullRequest reports whether the item represents a pull request or a
// review or review comment on one.
func (it Item) IsPullRequest() bool {
	return it.PullRequest != nil
}

// IsMerged reports whether the item is a merged pull request.
func (it Item) IsMerged() bool {
	return it.PullRequest != nil && it.PullRequest.MergedAt != ""
}

// Diagnostic records why a record was skipped during categorization. It is
// the structured replacement for ad hoc warning logs: callers can surface
// or test skip reasons without depending on a log sink.
type Diagnostic struct {
	// EventID identifies the skipped record when it has an identity
	EventID string `json:"event_id,omitempty"`

	// Kind is the record's discriminator or "search" for search items
	Kind string `json:"kind,omitempty"`

	// Reason is a short human-readable skip reason
	Reason string `json:"reason"`
}
