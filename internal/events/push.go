package events

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jpalaw/ghrecap/pkg/models"
)

// maxBodyLines caps how many commit or page lines a synthesized body lists
// before collapsing the rest into an "... and N more" suffix.
const maxBodyLines = 5

// recoverCommitCount finds how many commits a push carried: the length of
// an explicit commit list, else the payload's size field, else zero.
func recoverCommitCount(p models.PushPayload) int {
	if p.Commits != nil {
		return len(p.Commits)
	}
	if p.Size != nil {
		return *p.Size
	}
	return 0
}

// recoverDistinctCount is the payload's distinct_size when present, else
// the recovered commit count.
func recoverDistinctCount(p models.PushPayload, commitCount int) int {
	if p.DistinctSize != nil {
		return *p.DistinctSize
	}
	return commitCount
}

// pushTitle words the push headline. The raw commit count is preferred over
// the distinct count because it reflects the literal push size; the
// distinct count appears as a parenthetical only when it differs and is
// nonzero. When no count is recoverable but the head and before hashes
// differ, the title still asserts a push happened instead of claiming zero
// commits.
func pushTitle(p models.PushPayload, repo models.Repo, branch string) string {
	count := recoverCommitCount(p)
	distinct := recoverDistinctCount(p, count)

	target := repo.Name + "/" + branch
	if count == 0 {
		if p.Head != p.Before && (p.Head != "" || p.Before != "") {
			return "Committed to " + target
		}
		return "Committed 0 commits to " + target
	}

	noun := "commits"
	if count == 1 {
		noun = "commit"
	}
	if distinct != count && distinct != 0 {
		return fmt.Sprintf("Committed %d %s (%d distinct) to %s", count, noun, distinct, target)
	}
	return fmt.Sprintf("Committed %d %s to %s", count, noun, target)
}

// pushBody lists up to five commit-message first lines under a repository
// heading, with an overflow suffix past five. Lacking commit detail it
// falls back to an abbreviated before...head hash range.
func pushBody(p models.PushPayload, repo models.Repo) string {
	lines := []string{repo.Name}
	if len(p.Commits) > 0 {
		for i, c := range p.Commits {
			if i == maxBodyLines {
				lines = append(lines, fmt.Sprintf("... and %d more", len(p.Commits)-maxBodyLines))
				break
			}
			first, _, _ := strings.Cut(c.Message, "\n")
			lines = append(lines, first)
		}
	} else if p.Before != "" && p.Head != "" {
		lines = append(lines, shortSHA(p.Before)+"..."+shortSHA(p.Head))
	}
	return strings.Join(lines, "\n")
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// normalizePush synthesizes an item for a PushEvent. A push has no natural
// identity, so the event id doubles as the numeric id, and the original
// field keeps the whole untouched event rather than just its payload.
func normalizePush(ev models.RawEvent) (*models.Item, string) {
	var p models.PushPayload
	if err := json.Unmarshal(ev.Payload, &p); err != nil {
		return nil, "push event with malformed payload"
	}

	branch := strings.TrimPrefix(p.Ref, "refs/heads/")
	original, err := json.Marshal(ev)
	if err != nil {
		original = ev.Payload
	}

	return &models.Item{
		ID:                eventID(ev),
		EventID:           ev.ID,
		HTMLURL:           fmt.Sprintf("%s/commits/%s", repoHTMLURL(ev.Repo), branch),
		Title:             pushTitle(p, ev.Repo, branch),
		Action:            "pushed",
		CreatedAt:         ev.CreatedAt,
		UpdatedAt:         ev.CreatedAt,
		Body:              pushBody(p, ev.Repo),
		Labels:            []models.Label{},
		Repo:              ev.Repo,
		User:              ev.Actor,
		Original:          original,
		OriginalEventType: ev.Type,
	}, ""
}
