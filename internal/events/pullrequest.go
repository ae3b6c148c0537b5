package events

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jpalaw/ghrecap/pkg/models"
)

var (
	htmlPullPattern = regexp.MustCompile(`/pull/(\d+)`)
	apiPullsPattern = regexp.MustCompile(`/pulls/(\d+)`)
)

// recoverPRNumber finds a pull request number through an ordered fallback
// chain: the record's own number field, then a payload-level number, then
// the HTML pull URL, then the API pulls URL. Zero means nothing worked.
func recoverPRNumber(pr *models.PullRequestRecord, payloadNumber *int) int {
	if pr != nil && pr.Number != nil && *pr.Number > 0 {
		return *pr.Number
	}
	if payloadNumber != nil && *payloadNumber > 0 {
		return *payloadNumber
	}
	if pr != nil {
		if n := numberFromURL(pr.HTMLURL, htmlPullPattern); n > 0 {
			return n
		}
		if n := numberFromURL(pr.URL, apiPullsPattern); n > 0 {
			return n
		}
	}
	return 0
}

// numberFromURL extracts the first captured decimal group of pattern from
// url, or zero.
func numberFromURL(url string, pattern *regexp.Regexp) int {
	if url == "" {
		return 0
	}
	m := pattern.FindStringSubmatch(url)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// recoverPRTitle uses the pull request's own title only when it is a
// non-empty string other than the literal "undefined" some feed variants
// deliver; otherwise it synthesizes one from the recovered number and the
// action verb.
func recoverPRTitle(pr *models.PullRequestRecord, number int, action string) string {
	if pr != nil && pr.Title != nil && *pr.Title != "" && *pr.Title != "undefined" {
		return *pr.Title
	}
	if number > 0 {
		return strings.TrimSpace(fmt.Sprintf("Pull Request #%d %s", number, action))
	}
	return strings.TrimSpace("Pull Request " + action)
}

// prHTMLURL prefers the record's own HTML URL and otherwise rebuilds the
// conventional web URL from the repository name and recovered number.
func prHTMLURL(pr *models.PullRequestRecord, repo models.Repo, number int) string {
	if pr != nil && pr.HTMLURL != "" {
		return pr.HTMLURL
	}
	if number > 0 {
		return fmt.Sprintf("%s/pull/%d", repoHTMLURL(repo), number)
	}
	return repoHTMLURL(repo)
}

// prState is the record's own state when present; otherwise the action
// verb decides (a "closed" action means closed, anything else open).
func prState(pr *models.PullRequestRecord, action string) string {
	if pr != nil && pr.State != "" {
		return pr.State
	}
	if action == "closed" {
		return "closed"
	}
	return "open"
}

// normalizePullRequest builds an item from a PullRequestEvent. The feed may
// strip the pull_request record down to a bare URL, so number, title, URL
// and body all run through recovery chains.
func normalizePullRequest(ev models.RawEvent) (*models.Item, string) {
	var p models.PullRequestPayload
	if err := json.Unmarshal(ev.Payload, &p); err != nil || p.PullRequest == nil {
		return nil, "pull request event without pull_request record"
	}

	pr := p.PullRequest
	number := recoverPRNumber(pr, p.Number)
	htmlURL := prHTMLURL(pr, ev.Repo, number)

	body := pr.Body
	if body == "" {
		body = strings.TrimSpace(fmt.Sprintf("Pull request %s by %s", p.Action, ev.Actor.Login))
	}

	labels := p.Labels
	if labels == nil {
		labels = pr.Labels
	}

	item := &models.Item{
		ID:                pr.ID,
		EventID:           ev.ID,
		HTMLURL:           htmlURL,
		Title:             recoverPRTitle(pr, number, p.Action),
		Action:            p.Action,
		CreatedAt:         ev.CreatedAt,
		UpdatedAt:         firstNonEmpty(pr.UpdatedAt, ev.CreatedAt),
		ClosedAt:          pr.ClosedAt,
		MergedAt:          pr.MergedAt,
		State:             prState(pr, p.Action),
		Body:              body,
		Labels:            labelsOrEmpty(labels),
		Repo:              ev.Repo,
		Number:            number,
		User:              ev.Actor,
		Assignee:          pr.Assignee,
		Assignees:         pr.Assignees,
		PullRequest:       &models.PullRequestRef{MergedAt: pr.MergedAt, URL: htmlURL},
		Original:          ev.Payload,
		OriginalEventType: ev.Type,
	}
	if item.ID == 0 {
		item.ID = eventID(ev)
	}
	return item, ""
}

// normalizeReview builds an item from a PullRequestReviewEvent. When the
// pull request's original author is knowable and is not the acting actor,
// the item's user becomes the author and the actor moves to reviewed_by;
// otherwise both collapse to the actor.
func normalizeReview(ev models.RawEvent) (*models.Item, string) {
	var p models.ReviewPayload
	if err := json.Unmarshal(ev.Payload, &p); err != nil || p.PullRequest == nil {
		return nil, "review event without pull_request record"
	}

	pr := p.PullRequest
	number := recoverPRNumber(pr, nil)
	htmlURL := prHTMLURL(pr, ev.Repo, number)

	user := ev.Actor
	reviewer := ev.Actor
	if pr.User != nil && pr.User.Login != "" && pr.User.Login != ev.Actor.Login {
		user = *pr.User
	}

	item := &models.Item{
		ID:                pr.ID,
		EventID:           ev.ID,
		HTMLURL:           htmlURL,
		Title:             "Review on: " + recoverPRTitle(pr, number, p.Action),
		Action:            p.Action,
		CreatedAt:         ev.CreatedAt,
		UpdatedAt:         firstNonEmpty(pr.UpdatedAt, ev.CreatedAt),
		ClosedAt:          pr.ClosedAt,
		MergedAt:          pr.MergedAt,
		State:             prState(pr, p.Action),
		Labels:            labelsOrEmpty(pr.Labels),
		Repo:              ev.Repo,
		Number:            number,
		User:              user,
		PullRequest:       &models.PullRequestRef{MergedAt: pr.MergedAt, URL: htmlURL},
		Original:          ev.Payload,
		OriginalEventType: ev.Type,
		ReviewedBy:        &reviewer,
	}
	if review := p.Review; review != nil {
		if review.ID != 0 {
			item.ID = review.ID
		}
		if review.HTMLURL != "" {
			item.HTMLURL = review.HTMLURL
		}
		if review.SubmittedAt != "" {
			item.UpdatedAt = review.SubmittedAt
			item.ReviewedAt = review.SubmittedAt
		}
		item.Body = review.Body
	}
	if item.ID == 0 {
		item.ID = eventID(ev)
	}
	return item, ""
}

// normalizeReviewComment builds an item from a PullRequestReviewCommentEvent,
// with the same pull request recovery as reviews and the comment supplying
// identity, URL, body and updated_at.
func normalizeReviewComment(ev models.RawEvent) (*models.Item, string) {
	var p models.ReviewCommentPayload
	if err := json.Unmarshal(ev.Payload, &p); err != nil || p.Comment == nil || p.PullRequest == nil {
		return nil, "review comment event without comment and pull_request records"
	}

	pr, comment := p.PullRequest, p.Comment
	number := recoverPRNumber(pr, nil)
	htmlURL := prHTMLURL(pr, ev.Repo, number)

	item := &models.Item{
		ID:                comment.ID,
		EventID:           ev.ID,
		HTMLURL:           firstNonEmpty(comment.HTMLURL, htmlURL),
		Title:             "Review comment on: " + recoverPRTitle(pr, number, p.Action),
		Action:            p.Action,
		CreatedAt:         ev.CreatedAt,
		UpdatedAt:         firstNonEmpty(comment.UpdatedAt, ev.CreatedAt),
		ClosedAt:          pr.ClosedAt,
		MergedAt:          pr.MergedAt,
		State:             prState(pr, p.Action),
		Body:              comment.Body,
		Labels:            labelsOrEmpty(pr.Labels),
		Repo:              ev.Repo,
		Number:            number,
		User:              ev.Actor,
		PullRequest:       &models.PullRequestRef{MergedAt: pr.MergedAt, URL: htmlURL},
		Original:          ev.Payload,
		OriginalEventType: ev.Type,
	}
	if item.ID == 0 {
		item.ID = eventID(ev)
	}
	return item, ""
}
