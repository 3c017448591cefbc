package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mmcdole/gofeed"
)

func TestDefaultParserHeaders(t *testing.T) {
	var gotAccept string
	var gotUA string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Example Feed</title>
  <id>urn:uuid:60a76c80-d399-11d9-b93C-0003939e0af6</id>
  <updated>2026-01-01T00:00:00Z</updated>
  <entry>
    <title>Atom-Powered Robots Run Amok</title>
    <id>urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a</id>
    <updated>2026-01-01T00:00:00Z</updated>
    <link href="https://example.com/robots"/>
    <summary>Some text.</summary>
  </entry>
</feed>`))
	}))
	defer server.Close()

	_, err := defaultParser(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("default parser failed: %v", err)
	}

	if gotUA != "rsstash/1.0" {
		t.Errorf("Expected User-Agent 'rsstash/1.0', got %q", gotUA)
	}
	if gotAccept == "" || !strings.Contains(gotAccept, "application/atom+xml") {
		t.Errorf("Expected Accept header to include atom, got %q", gotAccept)
	}
}

func TestFetch(t *testing.T) {
	defer func() {
		ParserFunc = defaultParser
	}()

	t.Run("Mapping", func(t *testing.T) {
		ParserFunc = func(_ context.Context, _ string) (*gofeed.Feed, error) {
			return &gofeed.Feed{
				Title: "Test Feed",
				Items: []*gofeed.Item{
					{Title: "Item 1", Description: "Desc 1", Content: "Content 1", Link: "http://link1.com", Published: "2023-01-01"},
				},
			}, nil
		}

		entries, err := Fetch("http://example.com")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("Expected 1 entry, got %d", len(entries))
		}
		e := entries[0]
		if e.FeedTitle != "Test Feed" {
			t.Errorf("Expected feed title 'Test Feed', got %s", e.FeedTitle)
		}
		if e.Source != "http://example.com" {
			t.Errorf("Expected source to be the feed url, got %s", e.Source)
		}
		if e.Content != "Content 1" {
			t.Errorf("Expected content preferred over description, got %s", e.Content)
		}
	})

	t.Run("Description fallback", func(t *testing.T) {
		ParserFunc = func(_ context.Context, _ string) (*gofeed.Feed, error) {
			return &gofeed.Feed{
				Title: "Test Feed",
				Items: []*gofeed.Item{{Title: "Item 1", Description: "Desc only", Link: "http://link1.com"}},
			}, nil
		}

		entries, err := Fetch("http://example.com")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if entries[0].Content != "Desc only" {
			t.Errorf("Expected description fallback, got %q", entries[0].Content)
		}
	})

	t.Run("Updated fallback", func(t *testing.T) {
		ParserFunc = func(_ context.Context, _ string) (*gofeed.Feed, error) {
			return &gofeed.Feed{
				Title: "Test Feed",
				Items: []*gofeed.Item{{Title: "Item 1", Link: "http://link1.com", Published: "", Updated: "2023-01-02"}},
			}, nil
		}

		entries, err := Fetch("http://example.com")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if entries[0].Published != "2023-01-02" {
			t.Errorf("Expected published '2023-01-02', got %s", entries[0].Published)
		}
	})

	t.Run("Failure", func(t *testing.T) {
		ParserFunc = func(_ context.Context, _ string) (*gofeed.Feed, error) {
			return nil, gofeed.HTTPError{StatusCode: 404, Status: "Not Found"}
		}
		if _, err := Fetch("http://example.com"); err == nil {
			t.Error("Expected error, got nil")
		}
	})
}

func TestFetchTrimsWhitespace(t *testing.T) {
	originalParser := ParserFunc
	defer func() { ParserFunc = originalParser }()

	var gotURL string
	ParserFunc = func(_ context.Context, url string) (*gofeed.Feed, error) {
		gotURL = url
		return &gofeed.Feed{Title: "Trimmed", Items: []*gofeed.Item{}}, nil
	}

	if _, err := Fetch(" \nhttps://example.com/rss\t "); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if gotURL != "https://example.com/rss" {
		t.Fatalf("Expected trimmed url, got %q", gotURL)
	}
}

func TestFetchRejectsEmptyURL(t *testing.T) {
	if _, err := Fetch("   "); err == nil {
		t.Fatal("Expected error for empty url")
	}
}
