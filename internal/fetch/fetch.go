package fetch

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/config"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

// Fetcher pulls trend items from one platform.
type Fetcher interface {
	// Source is the platform name recorded on every item.
	Source() string
	// Fetch returns the platform's current items. Implementations degrade
	// per-endpoint; a returned error means the whole source produced
	// nothing usable.
	Fetch(ctx context.Context) ([]trend.Item, error)
}

// FetchAll runs every fetcher in order and assembles a snapshot. A failing
// source is recorded in the snapshot's source summary and never aborts the
// run; partial snapshots are the normal case.
func FetchAll(ctx context.Context, log *slog.Logger, fetchers ...Fetcher) trend.Snapshot {
	if log == nil {
		log = slog.Default()
	}

	snap := trend.Snapshot{
		Timestamp: time.Now().UTC(),
		Sources:   make(map[string]trend.SourceStatus, len(fetchers)),
	}

	for _, f := range fetchers {
		name := f.Source()
		items, err := f.Fetch(ctx)
		if err != nil {
			log.Warn("source failed", "source", name, "error", err)
			snap.Sources[name] = trend.SourceStatus{
				Count:  0,
				Status: "error: " + truncate(err.Error(), 200),
			}
			continue
		}
		log.Info("source fetched", "source", name, "items", len(items))
		snap.Sources[name] = trend.SourceStatus{Count: len(items), Status: "ok"}
		snap.Items = append(snap.Items, items...)
	}
	return snap
}

// FromConfig assembles the full fetcher roster from the configuration.
func FromConfig(cfg config.Config, c *Client) []Fetcher {
	subs := cfg.AllSubreddits()
	sort.Strings(subs)

	return []Fetcher{
		NewYouTube(c, cfg.Fetch.InvidiousInstances, cfg.Fetch.YouTubeCategories),
		NewReddit(c, subs, cfg.Fetch.RedditPostLimit, cfg.CommunityGroups),
		NewGoogleTrends(c, cfg.Fetch.TrendsGeo),
		NewHackerNews(c, cfg.Fetch.HNTopLimit, cfg.Fetch.HNNewLimit),
		NewTwitter(c, cfg.Fetch.NitterInstances, cfg.Fetch.TwitterSearchTerms),
	}
}

// truncate clips s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
