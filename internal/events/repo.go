package events

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jpalaw/ghrecap/pkg/models"
)

// Transform rules for repository-level events (create, delete, fork, watch,
// public, gollum). These all synthesize items with no natural identity, so
// the event id doubles as the numeric id.

// synthItem fills the fields every synthesized repository item shares.
func synthItem(ev models.RawEvent, title, htmlURL, action string) *models.Item {
	return &models.Item{
		ID:                eventID(ev),
		EventID:           ev.ID,
		HTMLURL:           htmlURL,
		Title:             title,
		Action:            action,
		CreatedAt:         ev.CreatedAt,
		UpdatedAt:         ev.CreatedAt,
		Labels:            []models.Label{},
		Repo:              ev.Repo,
		User:              ev.Actor,
		Original:          ev.Payload,
		OriginalEventType: ev.Type,
	}
}

func normalizeCreate(ev models.RawEvent) (*models.Item, string) {
	var p models.CreatePayload
	if err := json.Unmarshal(ev.Payload, &p); err != nil {
		return nil, "create event with malformed payload"
	}

	var title, link string
	switch p.RefType {
	case "branch":
		title = fmt.Sprintf("Created branch %s in %s", p.Ref, ev.Repo.Name)
		link = fmt.Sprintf("%s/tree/%s", repoHTMLURL(ev.Repo), p.Ref)
	case "tag":
		title = fmt.Sprintf("Created tag %s in %s", p.Ref, ev.Repo.Name)
		link = fmt.Sprintf("%s/releases/tag/%s", repoHTMLURL(ev.Repo), p.Ref)
	default:
		title = "Created repository " + ev.Repo.Name
		if p.Description != "" {
			title += ": " + p.Description
		}
		link = repoHTMLURL(ev.Repo)
	}
	return synthItem(ev, title, link, "created"), ""
}

func normalizeDelete(ev models.RawEvent) (*models.Item, string) {
	var p models.DeletePayload
	if err := json.Unmarshal(ev.Payload, &p); err != nil {
		return nil, "delete event with malformed payload"
	}

	refType := p.RefType
	if refType != "branch" && refType != "tag" {
		refType = "ref"
	}
	item := synthItem(ev, fmt.Sprintf("Deleted %s %s from %s", refType, p.Ref, ev.Repo.Name), repoHTMLURL(ev.Repo), "deleted")
	// A deletion is a finished fact; it never shows up as open.
	item.State = "closed"
	return item, ""
}

func normalizeFork(ev models.RawEvent) (*models.Item, string) {
	var p models.ForkPayload
	if err := json.Unmarshal(ev.Payload, &p); err != nil {
		return nil, "fork event with malformed payload"
	}

	dest := "unknown repository"
	link := repoHTMLURL(ev.Repo)
	if p.Forkee != nil && p.Forkee.FullName != "" {
		dest = p.Forkee.FullName
		if p.Forkee.HTMLURL != "" {
			link = p.Forkee.HTMLURL
		}
	}
	return synthItem(ev, "Forked "+ev.Repo.Name+" to "+dest, link, "forked"), ""
}

func normalizeWatch(ev models.RawEvent) (*models.Item, string) {
	var p models.WatchPayload
	if err := json.Unmarshal(ev.Payload, &p); err != nil {
		return nil, "watch event with malformed payload"
	}

	title := "Unstarred repository"
	if p.Action == "started" {
		title = "Starred repository"
	}
	return synthItem(ev, title, repoHTMLURL(ev.Repo), p.Action), ""
}

func normalizePublic(ev models.RawEvent) (*models.Item, string) {
	return synthItem(ev, "Made repository public", repoHTMLURL(ev.Repo), "publicized"), ""
}

// normalizeGollum turns a wiki edit into an item. An empty page list yields
// no item at all, not an item with an empty body.
func normalizeGollum(ev models.RawEvent) (*models.Item, string) {
	var p models.GollumPayload
	if err := json.Unmarshal(ev.Payload, &p); err != nil || len(p.Pages) == 0 {
		return nil, "gollum event without pages"
	}

	title := fmt.Sprintf("Updated %d wiki pages", len(p.Pages))
	if len(p.Pages) == 1 {
		title = "Updated 1 wiki page"
	}

	var lines []string
	for i, page := range p.Pages {
		if i == maxBodyLines {
			lines = append(lines, fmt.Sprintf("... and %d more", len(p.Pages)-maxBodyLines))
			break
		}
		name := page.Title
		if name == "" {
			name = page.PageName
		}
		lines = append(lines, fmt.Sprintf("%s (%s)", name, page.Action))
	}

	link := p.Pages[0].HTMLURL
	if link == "" {
		link = repoHTMLURL(ev.Repo) + "/wiki"
	}

	item := synthItem(ev, title, link, "updated")
	item.Body = strings.Join(lines, "\n")
	return item, ""
}
