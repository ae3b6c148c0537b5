// Package store caches fetched activity in a local sqlite database so
// repeated runs inside the cache TTL skip the network entirely. The
// normalization core never touches this package; it only sees what the
// commands load back out.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jpalaw/ghrecap/pkg/models"
)

// Source names the cached stream a row belongs to.
const (
	SourceEvents   = "events"
	SourceAuthored = "authored"
	SourceReviewed = "reviewed"
)

// Store wraps the cache database connection.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the cache database at path.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		return nil, err
	}
	return s, nil
}

// initialize creates the cache schema if it doesn't exist. Rows hold the
// records as JSON: the cache only ever round-trips whole envelopes and
// items, it never queries inside them.
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		username TEXT NOT NULL,
		event_id TEXT NOT NULL,
		body TEXT NOT NULL,
		PRIMARY KEY (username, event_id)
	);

	CREATE TABLE IF NOT EXISTS items (
		username TEXT NOT NULL,
		source TEXT NOT NULL,
		position INTEGER NOT NULL,
		body TEXT NOT NULL,
		PRIMARY KEY (username, source, position)
	);

	CREATE TABLE IF NOT EXISTS fetch_metadata (
		username TEXT NOT NULL,
		source TEXT NOT NULL,
		fetched_at TIMESTAMP NOT NULL,
		PRIMARY KEY (username, source)
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create cache schema: %w", err)
	}
	return nil
}

// SaveEvents replaces the cached event feed for a username.
func (s *Store) SaveEvents(username string, events []models.RawEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM events WHERE username = ?`, username); err != nil {
		return fmt.Errorf("failed to clear cached events: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO events (username, event_id, body) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		body, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("failed to encode event %s: %w", ev.ID, err)
		}
		if _, err := stmt.Exec(username, ev.ID, string(body)); err != nil {
			return fmt.Errorf("failed to cache event %s: %w", ev.ID, err)
		}
	}

	if err := setFetched(tx, username, SourceEvents); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadEvents returns the cached event feed for a username.
func (s *Store) LoadEvents(username string) ([]models.RawEvent, error) {
	rows, err := s.db.Query(`SELECT body FROM events WHERE username = ? ORDER BY event_id DESC`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached events: %w", err)
	}
	defer rows.Close()

	var events []models.RawEvent
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan cached event: %w", err)
		}
		var ev models.RawEvent
		if err := json.Unmarshal([]byte(body), &ev); err != nil {
			return nil, fmt.Errorf("failed to decode cached event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// SaveItems replaces the cached search items for a username and source,
// preserving their order.
func (s *Store) SaveItems(username, source string, items []models.Item) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM items WHERE username = ? AND source = ?`, username, source); err != nil {
		return fmt.Errorf("failed to clear cached items: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO items (username, source, position, body) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, it := range items {
		body, err := json.Marshal(it)
		if err != nil {
			return fmt.Errorf("failed to encode item %s: %w", it.HTMLURL, err)
		}
		if _, err := stmt.Exec(username, source, i, string(body)); err != nil {
			return fmt.Errorf("failed to cache item %s: %w", it.HTMLURL, err)
		}
	}

	if err := setFetched(tx, username, source); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadItems returns the cached search items for a username and source in
// their saved order.
func (s *Store) LoadItems(username, source string) ([]models.Item, error) {
	rows, err := s.db.Query(`SELECT body FROM items WHERE username = ? AND source = ? ORDER BY position`, username, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan cached item: %w", err)
		}
		var it models.Item
		if err := json.Unmarshal([]byte(body), &it); err != nil {
			return nil, fmt.Errorf("failed to decode cached item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Fresh reports whether the cached copy of a source for a username is
// younger than ttl.
func (s *Store) Fresh(username, source string, ttl time.Duration) (bool, error) {
	var fetchedAt time.Time
	err := s.db.QueryRow(
		`SELECT fetched_at FROM fetch_metadata WHERE username = ? AND source = ?`,
		username, source,
	).Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read fetch metadata: %w", err)
	}
	return time.Since(fetchedAt) < ttl, nil
}

// Clear wipes all cached activity.
func (s *Store) Clear() error {
	for _, table := range []string{"events", "items", "fetch_metadata"} {
		if _, err := s.db.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func setFetched(tx *sql.Tx, username, source string) error {
	_, err := tx.Exec(`
	INSERT INTO fetch_metadata (username, source, fetched_at)
	VALUES (?, ?, ?)
	ON CONFLICT(username, source) DO UPDATE SET fetched_at = excluded.fetched_at`,
		username, source, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record fetch time: %w", err)
	}
	return nil
}
