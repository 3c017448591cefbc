// Command rsstash fetches RSS/Atom feeds into a per-day news cache and
// prints cached news back out.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/tesso57/rsstash/internal/application/usecase"
	"github.com/tesso57/rsstash/internal/domain/news"
	"github.com/tesso57/rsstash/internal/infrastructure/cache"
	"github.com/tesso57/rsstash/internal/infrastructure/config"
	"github.com/tesso57/rsstash/internal/infrastructure/feed"
	"github.com/tesso57/rsstash/internal/infrastructure/history"
	"github.com/tesso57/rsstash/internal/infrastructure/normalize"
)

var cli struct {
	URL     string `arg:"" optional:"" help:"Feed URL to fetch and cache. Defaults to the configured feeds."`
	Date    string `short:"d" help:"Print cached news for a day (YYYYMMDD, or 'undated') instead of fetching."`
	Source  string `help:"Restrict --date output to one feed source URL."`
	Limit   int    `short:"n" default:"-1" help:"Maximum number of items to print."`
	JSON    bool   `help:"Print items as JSON."`
	History int    `help:"Print the N most recent refreshes and exit." placeholder:"N"`
	Config  string `help:"Config file path." type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging."`
}

// newsCache joins the cache writer and reader into the single surface
// the service expects.
type newsCache struct {
	*cache.Writer
	*cache.Reader
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("rsstash"),
		kong.Description("Fetch RSS/Atom feeds and keep a per-day news cache."),
	)

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	kctx.FatalIfErrorf(run(logger))
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	if cli.History > 0 {
		return printHistory(cfg.Settings.HistoryFile, cli.History)
	}

	store := cache.NewStore(cfg.Settings.CacheDir, logger)
	svc := usecase.NewNewsService(
		feed.Fetcher{},
		newsCache{cache.NewWriter(store), cache.NewReader(store)},
		normalize.Item,
	)

	if cli.Date != "" {
		return printCached(svc)
	}
	return refresh(svc, cfg, logger)
}

func printCached(svc usecase.NewsService) error {
	groups, err := svc.Cached(cli.Date, cli.Source, cli.Limit)
	if errors.Is(err, news.ErrNotFound) {
		if cli.Source != "" {
			return fmt.Errorf("no cached news for %s from %s", cli.Date, cli.Source)
		}
		return fmt.Errorf("no cached news for %s", cli.Date)
	}
	if err != nil {
		return err
	}
	return printGroups(os.Stdout, groups, cli.JSON)
}

func refresh(svc usecase.NewsService, cfg *config.Store, logger *slog.Logger) error {
	urls := cfg.Feeds()
	if cli.URL != "" {
		urls = []string{cli.URL}
	}
	if len(urls) == 0 {
		return errors.New("no feed url given and none configured")
	}

	log, err := history.Open(cfg.Settings.HistoryFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var groups []news.FeedGroup
	failed := 0
	for _, url := range urls {
		items, report, err := svc.Refresh(ctx, url)
		if err != nil {
			logger.Error("refresh failed", "url", url, "error", err)
			failed++
			continue
		}
		logger.Debug("refreshed feed",
			"url", url,
			"fetched", report.Fetched,
			"inserted", report.Inserted,
			"duplicates", report.Duplicates,
			"rejected", report.Rejected)

		if err := log.Record(history.Entry{
			FeedURL:    url,
			FetchedAt:  time.Now(),
			Fetched:    report.Fetched,
			Inserted:   report.Inserted,
			Duplicates: report.Duplicates,
			Rejected:   report.Rejected,
		}); err != nil {
			logger.Warn("recording refresh failed", "url", url, "error", err)
		}

		groups = append(groups, groupItems(items)...)
	}

	if failed == len(urls) {
		return errors.New("all feeds failed to refresh")
	}

	return printGroups(os.Stdout, boundGroups(groups, cli.Limit), cli.JSON)
}

// groupItems folds a refresh result into per-feed groups, preserving
// feed order.
func groupItems(items []news.Item) []news.FeedGroup {
	var groups []news.FeedGroup
	index := make(map[string]int)
	for _, item := range items {
		i, ok := index[item.Source]
		if !ok {
			i = len(groups)
			index[item.Source] = i
			groups = append(groups, news.FeedGroup{Title: item.FeedTitle, Source: item.Source})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// boundGroups truncates groups to at most limit items overall. A
// negative limit means unbounded.
func boundGroups(groups []news.FeedGroup, limit int) []news.FeedGroup {
	if limit < 0 {
		return groups
	}
	out := make([]news.FeedGroup, 0, len(groups))
	for _, g := range groups {
		if limit <= 0 {
			break
		}
		if len(g.Items) > limit {
			g.Items = g.Items[:limit]
		}
		limit -= len(g.Items)
		out = append(out, g)
	}
	return out
}

func printHistory(path string, limit int) error {
	log, err := history.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	entries, err := log.Recent(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No refreshes recorded yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %s  fetched=%d inserted=%d duplicates=%d rejected=%d\n",
			e.FetchedAt.Format(time.RFC3339), e.FeedURL, e.Fetched, e.Inserted, e.Duplicates, e.Rejected)
	}
	return nil
}
