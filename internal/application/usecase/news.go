// Package usecase contains application-level services.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tesso57/rsstash/internal/domain/news"
)

// FeedFetcher abstracts retrieval of raw entries for one feed URL.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]news.Entry, error)
}

// NewsCache abstracts the date-partitioned item store.
type NewsCache interface {
	Put(item news.Item) (bool, error)
	Get(bucket, source string, limit int) ([]news.FeedGroup, error)
}

// NormalizeFunc turns one raw entry into a cacheable item.
type NormalizeFunc func(news.Entry) (news.Item, error)

// RefreshReport summarizes one refresh of a feed.
type RefreshReport struct {
	Source     string
	Fetched    int
	Inserted   int
	Duplicates int
	Rejected   int
}

// NewsService coordinates fetching, normalization and cache writes/reads.
type NewsService struct {
	Fetcher   FeedFetcher
	Cache     NewsCache
	Normalize NormalizeFunc
}

// NewNewsService constructs a NewsService.
func NewNewsService(fetcher FeedFetcher, cache NewsCache, normalize NormalizeFunc) NewsService {
	return NewsService{
		Fetcher:   fetcher,
		Cache:     cache,
		Normalize: normalize,
	}
}

// Refresh fetches one feed, normalizes every entry and caches the result.
// Entries without a link are counted as rejected and skipped; everything
// else that fails aborts the refresh. The returned items are the
// normalized entries in feed order, including duplicates already cached.
func (s NewsService) Refresh(ctx context.Context, url string) ([]news.Item, RefreshReport, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, RefreshReport{}, errors.New("feed url is empty")
	}

	entries, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, RefreshReport{Source: url}, fmt.Errorf("fetching %s: %w", url, err)
	}

	report := RefreshReport{Source: url, Fetched: len(entries)}
	items := make([]news.Item, 0, len(entries))
	for _, entry := range entries {
		item, err := s.Normalize(entry)
		if errors.Is(err, news.ErrMissingLink) {
			report.Rejected++
			continue
		}
		if err != nil {
			return nil, report, fmt.Errorf("normalizing entry %q: %w", entry.Title, err)
		}

		inserted, err := s.Cache.Put(item)
		if err != nil {
			return nil, report, err
		}
		if inserted {
			report.Inserted++
		} else {
			report.Duplicates++
		}
		items = append(items, item)
	}

	return items, report, nil
}

// Cached returns the items stored for one day, optionally filtered by
// source feed and bounded by limit (negative means unbounded).
func (s NewsService) Cached(bucket, source string, limit int) ([]news.FeedGroup, error) {
	if !news.ValidBucket(bucket) {
		return nil, fmt.Errorf("invalid date %q: want YYYYMMDD or %q", bucket, news.UndatedBucket)
	}
	return s.Cache.Get(bucket, strings.TrimSpace(source), limit)
}
