package analyze

import (
	"sort"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/keyword"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

// RelevantItem is an item overlapping the operator's interest vocabulary.
type RelevantItem struct {
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	Source       string   `json:"source"`
	Category     string   `json:"category"`
	Score        float64  `json:"score"`
	Relevance    float64  `json:"relevance"`
	MatchingTags []string `json:"matching_tags"`
}

// ScoreRelevance ranks items by overlap with the keyword union of the
// configured interest tags. Items with zero overlap are dropped.
func ScoreRelevance(items []trend.Item, cfg Config) []RelevantItem {
	ex := cfg.extractor()

	interest := make(map[string]struct{})
	for _, tag := range cfg.InterestTags {
		for kw := range ex.Keywords(tag) {
			interest[kw] = struct{}{}
		}
	}

	denom := len(interest)
	if denom < 1 {
		denom = 1
	}

	var out []RelevantItem
	for _, it := range items {
		overlap := keyword.Intersect(ex.Keywords(it.Title), interest)
		if len(overlap) == 0 {
			continue
		}
		out = append(out, RelevantItem{
			Title:        it.Title,
			URL:          it.URL,
			Source:       it.Source,
			Category:     it.Category,
			Score:        it.Score,
			Relevance:    round3(float64(len(overlap)) / float64(denom)),
			MatchingTags: overlap,
		})
	}

	// Relevance first, platform score as the tiebreak.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Relevance != out[j].Relevance {
			return out[i].Relevance > out[j].Relevance
		}
		return out[i].Score > out[j].Score
	})
	if len(out) > maxRelevant {
		out = out[:maxRelevant]
	}
	return out
}
