package fetch

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/trendhawk/trendhawk/internal/rss"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

const defaultTrendsFeed = "https://trends.google.com/trending/rss"

// GoogleTrends reads the daily-trends RSS feed. These are pure search
// queries with no supply side, which is exactly what the demand-oriented
// analyzers want.
type GoogleTrends struct {
	Client  *Client
	FeedURL string
	Geo     string
}

// NewGoogleTrends builds the Google Trends fetcher.
func NewGoogleTrends(c *Client, geo string) *GoogleTrends {
	return &GoogleTrends{Client: c, FeedURL: defaultTrendsFeed, Geo: geo}
}

func (g *GoogleTrends) Source() string { return "google_trends" }

// Fetch returns today's trending queries, deduplicated by lowercased title.
func (g *GoogleTrends) Fetch(ctx context.Context) ([]trend.Item, error) {
	url := g.FeedURL
	if g.Geo != "" {
		url += "?geo=" + g.Geo
	}

	body, err := g.Client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	entries, err := rss.ParseTrendsFeed(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("google_trends: empty feed")
	}

	seen := make(map[string]struct{}, len(entries))
	items := make([]trend.Item, 0, len(entries))
	for _, e := range entries {
		key := strings.ToLower(e.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		// Trending queries carry only a rough traffic band; flatten it to
		// a small score so search demand never drowns out engagement.
		score := 1.0
		if e.Traffic > 0 {
			score = float64(e.Traffic) / 1000.0
			if score > 10.0 {
				score = 10.0
			}
		}

		link := e.Link
		if link == "" {
			link = "https://trends.google.com/trends/explore?q=" +
				strings.ReplaceAll(e.Title, " ", "+")
		}
		items = append(items, trend.NewItem(
			"google_trends", e.Title, link, score, "realtime_trending",
			map[string]any{
				"type":           "trending_search",
				"approx_traffic": e.Traffic,
			},
		))
	}
	return items, nil
}
