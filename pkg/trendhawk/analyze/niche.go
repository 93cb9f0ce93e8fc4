package analyze

import (
	"sort"
	"strings"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/keyword"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

// interestBoost multiplies the niche score when a keyword appears inside
// one of the operator's interest tags.
const interestBoost = 1.5

// Niche is a keyword with high search demand and low video supply.
type Niche struct {
	Keyword        string   `json:"keyword"`
	DemandScore    float64  `json:"demand_score"`
	Supply         int      `json:"youtube_supply"`
	NicheScore     float64  `json:"niche_score"`
	InterestMatch  bool     `json:"interest_match"`
	RelatedQueries []string `json:"related_queries"`
}

// FindNiches ranks keywords from the search-demand source by their
// demand-to-supply ratio against the video platform.
func FindNiches(items []trend.Item, cfg Config) []Niche {
	ex := cfg.extractor()

	type signal struct {
		demand float64
		titles []string
	}
	demand := make(map[string]*signal)
	for _, it := range items {
		if it.Source != cfg.SearchSource {
			continue
		}
		for kw := range ex.Keywords(it.Title) {
			s, ok := demand[kw]
			if !ok {
				s = &signal{}
				demand[kw] = s
			}
			s.demand += it.Score
			s.titles = append(s.titles, it.Title)
		}
	}

	var supplyItems []trend.Item
	for _, it := range items {
		if it.Source == cfg.VideoSource {
			supplyItems = append(supplyItems, it)
		}
	}
	supply := keywordCounts(supplyItems, ex)

	normalizedTags := make([]string, 0, len(cfg.InterestTags))
	for _, tag := range cfg.InterestTags {
		normalizedTags = append(normalizedTags, keyword.Normalize(tag))
	}

	var niches []Niche
	for kw, s := range demand {
		// The +1 offset guards zero supply and softens its effect.
		score := s.demand / float64(supply[kw]+1) * cfg.Weights.LowCompetition

		match := false
		for _, tag := range normalizedTags {
			if strings.Contains(tag, kw) {
				match = true
				break
			}
		}
		if match {
			score *= interestBoost
		}

		niches = append(niches, Niche{
			Keyword:        kw,
			DemandScore:    round2(s.demand),
			Supply:         supply[kw],
			NicheScore:     round2(score),
			InterestMatch:  match,
			RelatedQueries: distinct(s.titles, maxExamples),
		})
	}

	sort.Slice(niches, func(i, j int) bool {
		if niches[i].NicheScore != niches[j].NicheScore {
			return niches[i].NicheScore > niches[j].NicheScore
		}
		return niches[i].Keyword < niches[j].Keyword
	})
	if len(niches) > maxNiches {
		niches = niches[:maxNiches]
	}
	return niches
}

// distinct keeps up to limit entries in first-seen order.
func distinct(values []string, limit int) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}
