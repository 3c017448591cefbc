// Package history records refresh sessions in a local sqlite database.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded refresh of a feed.
type Entry struct {
	FeedURL    string
	FetchedAt  time.Time
	Fetched    int
	Inserted   int
	Duplicates int
	Rejected   int
}

// Log is the on-disk refresh log.
type Log struct {
	db *sql.DB
}

// Open opens (or creates) the log at dbPath.
func Open(dbPath string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	l := &Log{db: db}
	if err := l.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return l, nil
}

func (l *Log) init() error {
	_, err := l.db.Exec(`
		CREATE TABLE IF NOT EXISTS refreshes (
			feed_url   TEXT NOT NULL,
			fetched_at DATETIME NOT NULL,
			fetched    INTEGER NOT NULL,
			inserted   INTEGER NOT NULL,
			duplicates INTEGER NOT NULL,
			rejected   INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_refreshes_fetched_at ON refreshes(fetched_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}

// Record appends one refresh entry.
func (l *Log) Record(e Entry) error {
	_, err := l.db.Exec(`
		INSERT INTO refreshes (feed_url, fetched_at, fetched, inserted, duplicates, rejected)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.FeedURL, e.FetchedAt.Format(time.RFC3339), e.Fetched, e.Inserted, e.Duplicates, e.Rejected)
	if err != nil {
		return fmt.Errorf("recording refresh of %s: %w", e.FeedURL, err)
	}
	return nil
}

// Recent returns the most recent refreshes, newest first.
func (l *Log) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.Query(`
		SELECT feed_url, fetched_at, fetched, inserted, duplicates, rejected
		FROM refreshes ORDER BY fetched_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying refreshes: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var fetchedAt string
		if err := rows.Scan(&e.FeedURL, &fetchedAt, &e.Fetched, &e.Inserted, &e.Duplicates, &e.Rejected); err != nil {
			return nil, fmt.Errorf("scanning refresh: %w", err)
		}
		e.FetchedAt, _ = time.Parse(time.RFC3339, fetchedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
