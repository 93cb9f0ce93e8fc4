package fetch

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

const twitterSearchLimit = 15

// Twitter scrapes Nitter search pages. Most public instances are down or
// behind rate limits, so this source routinely reports zero items; the
// pipeline treats that as an error status and moves on.
type Twitter struct {
	Client *Client
	// Instances are Nitter base URLs; one is picked at random per term.
	Instances   []string
	SearchTerms []string

	pick func(n int) int
}

// NewTwitter builds the Nitter-backed fetcher.
func NewTwitter(c *Client, instances, terms []string) *Twitter {
	return &Twitter{
		Client:      c,
		Instances:   instances,
		SearchTerms: terms,
		pick:        rand.Intn,
	}
}

func (t *Twitter) Source() string { return "twitter" }

// Fetch searches every configured term, deduplicated by tweet URL.
func (t *Twitter) Fetch(ctx context.Context) ([]trend.Item, error) {
	if len(t.Instances) == 0 {
		return nil, fmt.Errorf("twitter: no nitter instances configured")
	}

	var items []trend.Item
	seen := make(map[string]struct{})

	for _, term := range t.SearchTerms {
		instance := t.Instances[t.pick(len(t.Instances))]
		for _, it := range t.search(ctx, instance, term) {
			if it.URL == "" {
				continue
			}
			if _, dup := seen[it.URL]; dup {
				continue
			}
			seen[it.URL] = struct{}{}
			items = append(items, it)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("twitter: no tweets from %d terms", len(t.SearchTerms))
	}
	return items, nil
}

func (t *Twitter) search(ctx context.Context, instance, term string) []trend.Item {
	url := instance + "/search?f=tweets&q=" + strings.ReplaceAll(term, " ", "+")
	body, err := t.Client.Get(ctx, url)
	if err != nil {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var items []trend.Item
	doc.Find(".timeline-item").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= twitterSearchLimit {
			return false
		}
		content := strings.TrimSpace(sel.Find(".tweet-content").Text())
		if content == "" {
			return true
		}

		// Nitter renders stats in a fixed order: replies, retweets, likes.
		var comments, retweets, likes int64
		sel.Find(".tweet-stat .icon-container").Each(func(j int, stat *goquery.Selection) {
			val := parseStat(stat.Text())
			switch j {
			case 0:
				comments = val
			case 1:
				retweets = val
			case 2:
				likes = val
			}
		})

		tweetURL := ""
		if path, ok := sel.Find(".tweet-link").Attr("href"); ok && path != "" {
			tweetURL = "https://twitter.com" + path
		}

		engagement := likes + retweets*2 + comments*3
		title := content
		if r := []rune(title); len(r) > 120 {
			title = string(r[:120]) + "..."
		}

		items = append(items, trend.NewItem(
			"twitter", title, tweetURL, float64(engagement)/1000.0, "social",
			map[string]any{
				"search_term": term,
				"likes":       likes,
				"retweets":    retweets,
				"comments":    comments,
				"engagement":  engagement,
				"full_text":   truncate(content, 500),
			},
		))
		return true
	})
	return items
}

func parseStat(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
