package fetch

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"

	"github.com/trendhawk/trendhawk/internal/rss"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

const defaultYouTubeFeed = "https://www.youtube.com/feeds/videos.xml?chart=trending"

const (
	youtubeFeedLimit     = 30
	youtubeTrendingLimit = 20
)

// YouTube combines the trending Atom feed with the Invidious trending API.
// Both are keyless; either half can fail independently.
type YouTube struct {
	Client  *Client
	FeedURL string
	// Instances are Invidious base URLs; one is picked at random per call.
	Instances []string
	// Categories maps a label to the Invidious trending type parameter.
	// An empty type means the default trending page.
	Categories map[string]string

	pick func(n int) int
}

// NewYouTube builds the YouTube fetcher.
func NewYouTube(c *Client, instances []string, categories map[string]string) *YouTube {
	return &YouTube{
		Client:     c,
		FeedURL:    defaultYouTubeFeed,
		Instances:  instances,
		Categories: categories,
		pick:       rand.Intn,
	}
}

func (y *YouTube) Source() string { return "youtube" }

type invidiousVideo struct {
	VideoID       string `json:"videoId"`
	Title         string `json:"title"`
	ViewCount     int64  `json:"viewCount"`
	Published     int64  `json:"published"`
	Author        string `json:"author"`
	LengthSeconds int64  `json:"lengthSeconds"`
}

// Fetch merges feed and Invidious results, deduplicated by video URL.
func (y *YouTube) Fetch(ctx context.Context) ([]trend.Item, error) {
	var items []trend.Item
	seen := make(map[string]struct{})

	add := func(batch []trend.Item) {
		for _, it := range batch {
			if _, dup := seen[it.URL]; dup {
				continue
			}
			seen[it.URL] = struct{}{}
			items = append(items, it)
		}
	}

	add(y.fromFeed(ctx))
	add(y.fromInvidious(ctx))

	if len(items) == 0 {
		return nil, fmt.Errorf("youtube: feed and invidious both empty")
	}
	return items, nil
}

func (y *YouTube) fromFeed(ctx context.Context) []trend.Item {
	body, err := y.Client.Get(ctx, y.FeedURL)
	if err != nil {
		return nil
	}
	entries, err := rss.ParseVideoFeed(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	if len(entries) > youtubeFeedLimit {
		entries = entries[:youtubeFeedLimit]
	}

	items := make([]trend.Item, 0, len(entries))
	for _, e := range entries {
		score := 1.0
		if e.Views > 0 {
			score = float64(e.Views) / 1_000_000
		}
		items = append(items, trend.NewItem(
			"youtube", e.Title, e.Link, score, "trending",
			map[string]any{"views": e.Views, "author": e.Author},
		))
	}
	return items
}

func (y *YouTube) fromInvidious(ctx context.Context) []trend.Item {
	if len(y.Instances) == 0 {
		return nil
	}

	var items []trend.Item
	for label, trendingType := range y.Categories {
		instance := y.Instances[y.pick(len(y.Instances))]
		url := instance + "/api/v1/trending"
		if trendingType != "" {
			url += "?type=" + trendingType
		}

		var videos []invidiousVideo
		if err := y.Client.GetJSON(ctx, url, &videos); err != nil {
			continue
		}
		if len(videos) > youtubeTrendingLimit {
			videos = videos[:youtubeTrendingLimit]
		}

		for _, v := range videos {
			score := 0.5
			if v.ViewCount > 0 {
				score = float64(v.ViewCount) / 1_000_000
			}
			items = append(items, trend.NewItem(
				"youtube",
				v.Title,
				"https://www.youtube.com/watch?v="+v.VideoID,
				score,
				label,
				map[string]any{
					"views":          v.ViewCount,
					"author":         v.Author,
					"length_seconds": v.LengthSeconds,
					"published":      v.Published,
					"video_id":       v.VideoID,
				},
			))
		}
	}
	return items
}
