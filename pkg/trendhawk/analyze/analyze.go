// Package analyze implements the six trend analyzers and the pipeline that
// runs them over one snapshot plus its history. Every analyzer is a pure
// function of (items, history, config): no shared state, inputs are never
// mutated, output lists are ranked and truncated.
package analyze

import (
	"math"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/config"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/keyword"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

// Result list truncation caps.
const (
	maxGaps     = 50
	maxVelocity = 50
	maxNiches   = 40
	maxBridges  = 40
	maxVoids    = 20
	maxRelevant = 30
	maxExamples = 5
)

// Config carries everything an analyzer needs beyond the item batch.
type Config struct {
	Weights config.Weights

	// VideoSource is the content-supply platform: gap keywords must be
	// absent from it, niche supply is counted on it.
	VideoSource string
	// SearchSource is the search-demand platform feeding niche detection.
	SearchSource string

	// CommunityGroups maps group name to discussion sub-identifiers;
	// SourceCommunities maps non-discussion sources to singleton groups.
	CommunityGroups   map[string][]string
	SourceCommunities map[string]string

	// InterestTags is the operator's interest vocabulary.
	InterestTags []string

	// IncludeNearestArchive keeps history[0] in velocity baselines.
	IncludeNearestArchive bool

	Extractor *keyword.Extractor
}

// FromConfig adapts the application configuration for the analyzers.
func FromConfig(cfg config.Config, ex *keyword.Extractor) Config {
	if ex == nil {
		ex = keyword.NewExtractor(cfg.Analysis.ExtraStopwords...)
	}
	return Config{
		Weights:               cfg.Weights,
		VideoSource:           cfg.Analysis.VideoSource,
		SearchSource:          cfg.Analysis.SearchSource,
		CommunityGroups:       cfg.CommunityGroups,
		SourceCommunities:     cfg.SourceCommunities,
		InterestTags:          cfg.InterestTags,
		IncludeNearestArchive: cfg.Analysis.IncludeNearestArchive,
		Extractor:             ex,
	}
}

func (c Config) extractor() *keyword.Extractor {
	if c.Extractor != nil {
		return c.Extractor
	}
	return keyword.NewExtractor()
}

// keywordCounts tallies, per keyword, how many items mention it. A title
// contributing the same keyword twice still counts once per item.
func keywordCounts(items []trend.Item, ex *keyword.Extractor) map[string]int {
	counts := make(map[string]int)
	for _, it := range items {
		for kw := range ex.Keywords(it.Title) {
			counts[kw]++
		}
	}
	return counts
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
