package fetch

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

const defaultHNBase = "https://hacker-news.firebaseio.com/v0"

// HackerNews pulls top and new stories from the official Firebase API.
type HackerNews struct {
	Client   *Client
	BaseURL  string
	TopLimit int
	NewLimit int
}

// NewHackerNews builds the Hacker News fetcher.
func NewHackerNews(c *Client, topLimit, newLimit int) *HackerNews {
	return &HackerNews{
		Client:   c,
		BaseURL:  defaultHNBase,
		TopLimit: topLimit,
		NewLimit: newLimit,
	}
}

func (h *HackerNews) Source() string { return "hackernews" }

type hnStory struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Score       int64  `json:"score"`
	Descendants int64  `json:"descendants"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Text        string `json:"text"`
}

// Fetch resolves the top and new story lists, deduplicated by story ID.
func (h *HackerNews) Fetch(ctx context.Context) ([]trend.Item, error) {
	seen := make(map[int64]struct{})
	var items []trend.Item

	for _, list := range []struct {
		endpoint string
		limit    int
	}{
		{"topstories", h.TopLimit},
		{"newstories", h.NewLimit},
	} {
		ids, err := h.storyIDs(ctx, list.endpoint, list.limit)
		if err != nil {
			continue
		}
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if it, ok := h.story(ctx, id); ok {
				items = append(items, it)
			}
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("hackernews: no stories resolved")
	}
	return items, nil
}

func (h *HackerNews) storyIDs(ctx context.Context, endpoint string, limit int) ([]int64, error) {
	var ids []int64
	if err := h.Client.GetJSON(ctx, h.BaseURL+"/"+endpoint+".json", &ids); err != nil {
		return nil, err
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (h *HackerNews) story(ctx context.Context, id int64) (trend.Item, bool) {
	var story hnStory
	url := fmt.Sprintf("%s/item/%d.json", h.BaseURL, id)
	if err := h.Client.GetJSON(ctx, url, &story); err != nil {
		return trend.Item{}, false
	}
	if story.Type != "story" || story.Title == "" {
		return trend.Item{}, false
	}

	hnURL := fmt.Sprintf("https://news.ycombinator.com/item?id=%d", id)
	storyURL := story.URL
	if storyURL == "" {
		// Ask/Show HN posts have no external link.
		storyURL = hnURL
	}

	extra := map[string]any{
		"hn_id":    id,
		"points":   story.Score,
		"comments": story.Descendants,
		"by":       story.By,
		"time":     story.Time,
		"hn_url":   hnURL,
	}
	if story.Text != "" {
		extra["text_excerpt"] = truncate(stripHTML(story.Text), 500)
	}

	combined := (float64(story.Score) + float64(story.Descendants)*1.5) / 100.0
	return trend.NewItem("hackernews", story.Title, storyURL, combined, "tech", extra), true
}

// stripHTML flattens an HTML fragment to its text content. Self-text on
// Ask HN stories arrives with <p> and <a> markup.
func stripHTML(fragment string) string {
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && (n.Data == "p" || n.Data == "br") && b.Len() > 0 {
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return strings.Join(strings.Fields(b.String()), " ")
}
