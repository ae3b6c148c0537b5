// Package events converts raw activity-feed envelopes into canonical items.
//
// The feed delivers a polymorphic payload per event type, frequently with
// fields missing (sometimes a pull request sub-record is nothing but a URL).
// Each recognized kind has its own transform rule; recovery chains fill the
// gaps, and anything unrecognized or too incomplete yields no item at all
// rather than a partial one.
package events

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jpalaw/ghrecap/pkg/models"
)

// Recognized event type discriminators.
const (
	TypeIssues                   = "IssuesEvent"
	TypePullRequest              = "PullRequestEvent"
	TypePullRequestReview        = "PullRequestReviewEvent"
	TypeIssueComment             = "IssueCommentEvent"
	TypePullRequestReviewComment = "PullRequestReviewCommentEvent"
	TypePush                     = "PushEvent"
	TypeCreate                   = "CreateEvent"
	TypeDelete                   = "DeleteEvent"
	TypeFork                     = "ForkEvent"
	TypeWatch                    = "WatchEvent"
	TypePublic                   = "PublicEvent"
	TypeGollum                   = "GollumEvent"
)

// Normalize converts one raw event into a canonical item. It returns the
// item and an empty reason on success, or nil and a short skip reason when
// the event's type is unrecognized or its payload lacks a required
// sub-record. It never returns an error: every partial-data situation
// either degrades through a recovery chain or drops the event.
func Normalize(ev models.RawEvent) (*models.Item, string) {
	switch ev.Type {
	case TypeIssues:
		return normalizeIssues(ev)
	case TypePullRequest:
		return normalizePullRequest(ev)
	case TypePullRequestReview:
		return normalizeReview(ev)
	case TypeIssueComment:
		return normalizeIssueComment(ev)
	case TypePullRequestReviewComment:
		return normalizeReviewComment(ev)
	case TypePush:
		return normalizePush(ev)
	case TypeCreate:
		return normalizeCreate(ev)
	case TypeDelete:
		return normalizeDelete(ev)
	case TypeFork:
		return normalizeFork(ev)
	case TypeWatch:
		return normalizeWatch(ev)
	case TypePublic:
		return normalizePublic(ev)
	case TypeGollum:
		return normalizeGollum(ev)
	default:
		return nil, fmt.Sprintf("unrecognized event type %q", ev.Type)
	}
}

// normalizeIssues builds an item from an IssuesEvent. The item's created_at
// is the event's timestamp, not the issue's; everything else comes from the
// issue sub-record. The user is the acting actor, not the issue's author.
func normalizeIssues(ev models.RawEvent) (*models.Item, string) {
	var p models.IssuesPayload
	if err := json.Unmarshal(ev.Payload, &p); err != nil || p.Issue == nil {
		return nil, "issues event without issue record"
	}

	issue := p.Issue
	item := &models.Item{
		ID:                issue.ID,
		EventID:           ev.ID,
		HTMLURL:           issue.HTMLURL,
		Title:             issue.Title,
		Action:            p.Action,
		CreatedAt:         ev.CreatedAt,
		UpdatedAt:         issue.UpdatedAt,
		ClosedAt:          issue.ClosedAt,
		State:             issue.State,
		Body:              issue.Body,
		Labels:            labelsOrEmpty(issue.Labels),
		Repo:              ev.Repo,
		User:              ev.Actor,
		Assignee:          issue.Assignee,
		Assignees:         issue.Assignees,
		PullRequest:       issue.PullRequest,
		Original:          ev.Payload,
		OriginalEventType: ev.Type,
	}
	if issue.Number != nil {
		item.Number = *issue.Number
	}
	if item.ID == 0 {
		item.ID = eventID(ev)
	}
	return item, ""
}

// normalizeIssueComment builds an item from an IssueCommentEvent. Identity,
// URL and updated_at come from the comment; state, labels, closed_at and
// number come from the issue it was left on.
func normalizeIssueComment(ev models.RawEvent) (*models.Item, string) {
	var p models.IssueCommentPayload
	if err := json.Unmarshal(ev.Payload, &p); err != nil || p.Comment == nil || p.Issue == nil {
		return nil, "issue comment event without comment and issue records"
	}

	comment, issue := p.Comment, p.Issue
	item := &models.Item{
		ID:                comment.ID,
		EventID:           ev.ID,
		HTMLURL:           comment.HTMLURL,
		Title:             "Comment on: " + issue.Title,
		Action:            p.Action,
		CreatedAt:         ev.CreatedAt,
		UpdatedAt:         firstNonEmpty(comment.UpdatedAt, ev.CreatedAt),
		ClosedAt:          issue.ClosedAt,
		State:             issue.State,
		Body:              comment.Body,
		Labels:            labelsOrEmpty(issue.Labels),
		Repo:              ev.Repo,
		User:              ev.Actor,
		PullRequest:       issue.PullRequest,
		Original:          ev.Payload,
		OriginalEventType: ev.Type,
	}
	if issue.Number != nil {
		item.Number = *issue.Number
	}
	if item.ID == 0 {
		item.ID = eventID(ev)
	}
	return item, ""
}

// eventID parses the envelope id as the numeric identity for items that
// have no natural one. Feed ids are decimal strings; an unparsable id
// degrades to zero rather than failing.
func eventID(ev models.RawEvent) int64 {
	n, err := strconv.ParseInt(ev.ID, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// repoHTMLURL derives the repository's web URL from its full name.
func repoHTMLURL(repo models.Repo) string {
	return "https://github.com/" + repo.Name
}

func labelsOrEmpty(labels []models.Label) []models.Label {
	if labels == nil {
		return []models.Label{}
	}
	return labels
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
