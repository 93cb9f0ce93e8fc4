// Package rss parses the two feed flavors the fetchers consume: YouTube's
// Atom video feeds and Google Trends' RSS 2.0 daily-trends feed.
package rss

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// VideoEntry is one entry of a YouTube Atom feed.
type VideoEntry struct {
	Title  string
	Link   string
	Author string
	Views  int64
}

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title  string     `xml:"title"`
	Links  []atomLink `xml:"link"`
	Author struct {
		Name string `xml:"name"`
	} `xml:"author"`
	MediaGroup struct {
		Community struct {
			Statistics struct {
				Views int64 `xml:"views,attr"`
			} `xml:"statistics"`
		} `xml:"community"`
	} `xml:"group"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

// ParseVideoFeed decodes a YouTube Atom feed.
func ParseVideoFeed(r io.Reader) ([]VideoEntry, error) {
	var feed atomFeed
	if err := xml.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode atom feed: %w", err)
	}

	out := make([]VideoEntry, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		entry := VideoEntry{
			Title:  strings.TrimSpace(e.Title),
			Author: strings.TrimSpace(e.Author.Name),
			Views:  e.MediaGroup.Community.Statistics.Views,
		}
		for _, l := range e.Links {
			if l.Rel == "" || l.Rel == "alternate" {
				entry.Link = l.Href
				break
			}
		}
		if entry.Title != "" {
			out = append(out, entry)
		}
	}
	return out, nil
}

// TrendEntry is one item of the Google Trends daily RSS feed.
type TrendEntry struct {
	Title   string
	Link    string
	Traffic int64
}

type trendsRSS struct {
	Channel struct {
		Items []trendsItem `xml:"item"`
	} `xml:"channel"`
}

type trendsItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	Traffic string `xml:"approx_traffic"`
}

// ParseTrendsFeed decodes a Google Trends daily-trends RSS feed.
func ParseTrendsFeed(r io.Reader) ([]TrendEntry, error) {
	var feed trendsRSS
	if err := xml.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode trends feed: %w", err)
	}

	out := make([]TrendEntry, 0, len(feed.Channel.Items))
	for _, it := range feed.Channel.Items {
		title := strings.TrimSpace(it.Title)
		if title == "" {
			continue
		}
		out = append(out, TrendEntry{
			Title:   title,
			Link:    strings.TrimSpace(it.Link),
			Traffic: parseTraffic(it.Traffic),
		})
	}
	return out, nil
}

// parseTraffic turns the "200,000+" style traffic hint into a number.
// Unparseable values degrade to zero.
func parseTraffic(s string) int64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "+")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
