package history

import (
	"path/filepath"
	"testing"
	"time"
)

func TestRecordAndRecent(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer l.Close()

	base := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{FeedURL: "https://a.example/rss", FetchedAt: base, Fetched: 10, Inserted: 8, Duplicates: 1, Rejected: 1},
		{FeedURL: "https://b.example/rss", FetchedAt: base.Add(time.Minute), Fetched: 3, Inserted: 3},
	}
	for _, e := range entries {
		if err := l.Record(e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := l.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent len = %d, want 2", len(got))
	}
	if got[0].FeedURL != "https://b.example/rss" {
		t.Fatalf("Expected newest first, got %s", got[0].FeedURL)
	}
	if got[1].Inserted != 8 || got[1].Rejected != 1 {
		t.Fatalf("counts not round-tripped: %#v", got[1])
	}
	if !got[0].FetchedAt.Equal(base.Add(time.Minute)) {
		t.Fatalf("FetchedAt = %v", got[0].FetchedAt)
	}
}

func TestRecentLimit(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer l.Close()

	base := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	for i := range 5 {
		e := Entry{FeedURL: "https://a.example/rss", FetchedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := l.Record(e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := l.Recent(2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent len = %d, want 2", len(got))
	}
}

func TestRecentOnEmptyLog(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer l.Close()

	got, err := l.Recent(0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Recent on empty log = %#v", got)
	}
}
