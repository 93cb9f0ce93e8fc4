// Package trend defines the data model shared by acquisition, storage and
// analysis: one Item per harvested signal, grouped into timestamped
// Snapshots with per-source ingestion status.
package trend

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Item is one ingested text signal from a named source. Items are created
// by the fetch layer and consumed read-only by every analyzer.
type Item struct {
	ID        string         `json:"id"`
	Source    string         `json:"source"`
	Title     string         `json:"title"`
	URL       string         `json:"url"`
	Score     float64        `json:"score"`
	Category  string         `json:"category"`
	Timestamp time.Time      `json:"timestamp"`
	Extra     map[string]any `json:"extra"`
}

// Known Extra keys the analysis layer reads. Unknown keys are ignored.
const (
	ExtraSubreddit = "subreddit"
)

// NewItem builds a standardized item with a stable derived ID.
func NewItem(source, title, url string, score float64, category string, extra map[string]any) Item {
	if extra == nil {
		extra = map[string]any{}
	}
	if category == "" {
		category = "general"
	}
	return Item{
		ID:        ItemID(source, url),
		Source:    source,
		Title:     strings.TrimSpace(title),
		URL:       strings.TrimSpace(url),
		Score:     score,
		Category:  category,
		Timestamp: time.Now().UTC(),
		Extra:     extra,
	}
}

// ItemID derives a short stable hash of (source, url), used for display
// and dedup only, never for analytic identity.
func ItemID(source, url string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s:%s", source, url)))
	return hex.EncodeToString(sum[:])[:12]
}

// Subreddit returns the community sub-identifier carried in Extra, or ""
// when absent or not a string. Absent keys are never an error.
func (it Item) Subreddit() string {
	v, ok := it.Extra[ExtraSubreddit]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// SourceStatus summarizes one fetcher's contribution to a snapshot.
type SourceStatus struct {
	Count  int    `json:"count"`
	Status string `json:"status"`
}

// OK reports whether the source fetched cleanly.
func (s SourceStatus) OK() bool { return s.Status == "ok" }

// Snapshot is one timestamped batch of items plus per-source status.
type Snapshot struct {
	ID        string                  `json:"id"`
	Timestamp time.Time               `json:"timestamp"`
	Sources   map[string]SourceStatus `json:"sources"`
	Items     []Item                  `json:"all_items"`
}

// BySource partitions the snapshot's items by source name.
func (s Snapshot) BySource() map[string][]Item {
	out := make(map[string][]Item)
	for _, it := range s.Items {
		out[it.Source] = append(out[it.Source], it)
	}
	return out
}
