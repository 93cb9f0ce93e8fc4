package rss

import (
	"strings"
	"testing"
)

const videoFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015"
      xmlns:media="http://search.yahoo.com/mrss/"
      xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <title>Why Rust is eating the world</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abc123"/>
    <author><name>SystemsChannel</name></author>
    <media:group>
      <media:community>
        <media:statistics views="154233"/>
      </media:community>
    </media:group>
  </entry>
  <entry>
    <title>  </title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=blank"/>
  </entry>
</feed>`

func TestParseVideoFeed(t *testing.T) {
	entries, err := ParseVideoFeed(strings.NewReader(videoFeed))
	if err != nil {
		t.Fatalf("ParseVideoFeed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1 (blank titles dropped)", len(entries))
	}
	e := entries[0]
	if e.Title != "Why Rust is eating the world" {
		t.Errorf("title = %q", e.Title)
	}
	if e.Link != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("link = %q", e.Link)
	}
	if e.Author != "SystemsChannel" {
		t.Errorf("author = %q", e.Author)
	}
	if e.Views != 154233 {
		t.Errorf("views = %d, want 154233", e.Views)
	}
}

const trendsFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:ht="https://trends.google.com/trending/rss">
  <channel>
    <item>
      <title>solar eclipse</title>
      <link>https://trends.google.com/trending?q=solar+eclipse</link>
      <ht:approx_traffic>200,000+</ht:approx_traffic>
    </item>
    <item>
      <title>quiet hiring</title>
      <link>https://trends.google.com/trending?q=quiet+hiring</link>
      <ht:approx_traffic>not-a-number</ht:approx_traffic>
    </item>
  </channel>
</rss>`

func TestParseTrendsFeed(t *testing.T) {
	entries, err := ParseTrendsFeed(strings.NewReader(trendsFeed))
	if err != nil {
		t.Fatalf("ParseTrendsFeed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Traffic != 200000 {
		t.Errorf("traffic = %d, want 200000", entries[0].Traffic)
	}
	if entries[1].Traffic != 0 {
		t.Errorf("unparseable traffic = %d, want 0", entries[1].Traffic)
	}
}

func TestParseVideoFeedBadXML(t *testing.T) {
	if _, err := ParseVideoFeed(strings.NewReader("<feed><entry>")); err == nil {
		t.Fatal("expected error for truncated XML")
	}
}

func TestParseTraffic(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"200,000+", 200000},
		{"500+", 500},
		{"1,000,000+", 1000000},
		{"", 0},
		{"   ", 0},
	}
	for _, c := range cases {
		if got := parseTraffic(c.in); got != c.want {
			t.Errorf("parseTraffic(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
