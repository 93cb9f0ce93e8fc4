package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

const (
	defaultRedditBase = "https://www.reddit.com"
	redditPause       = 1500 * time.Millisecond
)

// Reddit scrapes the free .json listing endpoints. No OAuth; the shared
// client's browser headers and pacing keep it under the anonymous rate
// limit most of the time.
type Reddit struct {
	Client     *Client
	BaseURL    string
	Subreddits []string
	PostLimit  int
	// Groups maps group name to its subreddits; a post's category is the
	// group its subreddit belongs to.
	Groups map[string][]string

	pause func(time.Duration)
}

// NewReddit builds the reddit fetcher.
func NewReddit(c *Client, subreddits []string, limit int, groups map[string][]string) *Reddit {
	return &Reddit{
		Client:     c,
		BaseURL:    defaultRedditBase,
		Subreddits: subreddits,
		PostLimit:  limit,
		Groups:     groups,
		pause:      time.Sleep,
	}
}

func (r *Reddit) Source() string { return "reddit" }

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title         string  `json:"title"`
	Permalink     string  `json:"permalink"`
	Ups           int64   `json:"ups"`
	NumComments   int64   `json:"num_comments"`
	CreatedUTC    float64 `json:"created_utc"`
	Subreddit     string  `json:"subreddit"`
	LinkFlairText string  `json:"link_flair_text"`
}

// Fetch pulls hot and rising listings from every configured subreddit,
// deduplicated by post URL. Rising posts are the early signal; hot posts
// anchor the baseline.
func (r *Reddit) Fetch(ctx context.Context) ([]trend.Item, error) {
	var items []trend.Item
	seen := make(map[string]struct{})

	for i, sub := range r.Subreddits {
		for _, sort := range []string{"hot", "rising"} {
			posts, err := r.listing(ctx, sub, sort)
			if err != nil {
				continue
			}
			for _, it := range posts {
				if _, dup := seen[it.URL]; dup {
					continue
				}
				seen[it.URL] = struct{}{}
				items = append(items, it)
			}
		}
		// Anonymous reddit rate limits aggressively.
		if i < len(r.Subreddits)-1 {
			r.pause(redditPause)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("reddit: no posts from %d subreddits", len(r.Subreddits))
	}
	return items, nil
}

func (r *Reddit) listing(ctx context.Context, subreddit, sort string) ([]trend.Item, error) {
	u := fmt.Sprintf("%s/r/%s/%s.json?limit=%d&raw_json=1",
		r.BaseURL, url.PathEscape(subreddit), sort, r.PostLimit)

	var listing redditListing
	if err := r.Client.GetJSON(ctx, u, &listing); err != nil {
		return nil, err
	}

	var items []trend.Item
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Title == "" {
			continue
		}
		name := post.Subreddit
		if name == "" {
			name = subreddit
		}

		engagement := post.Ups + post.NumComments*2
		items = append(items, trend.NewItem(
			"reddit",
			post.Title,
			defaultRedditBase+post.Permalink,
			float64(engagement)/1000.0,
			r.category(name),
			map[string]any{
				trend.ExtraSubreddit: name,
				"ups":                post.Ups,
				"num_comments":       post.NumComments,
				"created_utc":        post.CreatedUTC,
				"flair":              post.LinkFlairText,
				"engagement":         engagement,
			},
		))
	}
	return items, nil
}

func (r *Reddit) category(subreddit string) string {
	for group, subs := range r.Groups {
		for _, s := range subs {
			if strings.EqualFold(s, subreddit) {
				return group
			}
		}
	}
	return "general"
}
