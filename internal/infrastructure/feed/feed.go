// Package feed fetches RSS/Atom feeds and extracts raw entries.
package feed

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/tesso57/rsstash/internal/domain/news"
)

const feedAcceptHeader = "application/atom+xml, application/rss+xml, application/feed+json, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"

const defaultTimeout = 10 * time.Second

type acceptTransport struct {
	base http.RoundTripper
}

func (t acceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	if clone.Header.Get("Accept") == "" {
		clone.Header.Set("Accept", feedAcceptHeader)
	}
	return base.RoundTrip(clone)
}

// ParserFunc is exposed for testing.
// It allows mocking the feed parsing logic.
var ParserFunc = defaultParser

func defaultParser(ctx context.Context, url string) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "rsstash/1.0"
	fp.Client = &http.Client{Transport: acceptTransport{base: http.DefaultTransport}}
	return fp.ParseURLWithContext(url, ctx)
}

// Fetch parses a feed from the given URL with a default timeout.
func Fetch(url string) ([]news.Entry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return FetchWithContext(ctx, url)
}

// FetchWithContext parses a feed from the given URL and maps its items to
// raw entries. Publish dates fall back to the updated date; content falls
// back to the description, since many feeds only fill one of the two.
func FetchWithContext(ctx context.Context, url string) ([]news.Entry, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("feed url is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	parsed, err := ParserFunc(ctx, url)
	if err != nil {
		return nil, err
	}

	entries := make([]news.Entry, len(parsed.Items))
	for i, item := range parsed.Items {
		pub := item.Published
		if pub == "" {
			pub = item.Updated
		}
		content := item.Content
		if content == "" {
			content = item.Description
		}

		entries[i] = news.Entry{
			FeedTitle: parsed.Title,
			Source:    url,
			Title:     item.Title,
			Link:      item.Link,
			Published: pub,
			Content:   content,
		}
	}

	return entries, nil
}

// Fetcher implements the usecase.FeedFetcher interface.
type Fetcher struct{}

// Fetch fetches a single feed.
func (Fetcher) Fetch(ctx context.Context, url string) ([]news.Entry, error) {
	return FetchWithContext(ctx, url)
}
