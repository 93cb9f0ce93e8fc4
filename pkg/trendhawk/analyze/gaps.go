package analyze

import (
	"sort"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

// Gap qualification thresholds: a keyword must be mentioned on at least
// two discussion platforms, at least three times in aggregate, and never
// on the video platform.
const (
	gapMinPlatforms = 2
	gapMinMentions  = 3
)

// Gap is a keyword trending on discussion platforms but missing from the
// video platform — a content opportunity.
type Gap struct {
	Keyword          string       `json:"keyword"`
	PresentOn        []string     `json:"present_on"`
	MissingFrom      []string     `json:"missing_from"`
	MentionCount     int          `json:"mention_count"`
	OpportunityScore float64      `json:"opportunity_score"`
	Examples         []GapExample `json:"examples"`
}

// GapExample is a representative item whose title mentions the keyword.
type GapExample struct {
	Title  string  `json:"title"`
	Source string  `json:"source"`
	URL    string  `json:"url"`
	Score  float64 `json:"score"`
}

// DetectGaps finds keywords present on two or more discussion platforms
// and absent from the video platform's batch.
func DetectGaps(items []trend.Item, cfg Config) []Gap {
	ex := cfg.extractor()

	bySource := make(map[string][]trend.Item)
	for _, it := range items {
		bySource[it.Source] = append(bySource[it.Source], it)
	}

	videoKeywords := make(map[string]struct{})
	for _, it := range bySource[cfg.VideoSource] {
		for kw := range ex.Keywords(it.Title) {
			videoKeywords[kw] = struct{}{}
		}
	}

	type presence struct {
		platforms map[string]struct{}
		count     int
	}
	byKeyword := make(map[string]*presence)
	for source, sourceItems := range bySource {
		if source == cfg.VideoSource {
			continue
		}
		for kw, n := range keywordCounts(sourceItems, ex) {
			p, ok := byKeyword[kw]
			if !ok {
				p = &presence{platforms: make(map[string]struct{})}
				byKeyword[kw] = p
			}
			p.platforms[source] = struct{}{}
			p.count += n
		}
	}

	var gaps []Gap
	for kw, p := range byKeyword {
		if len(p.platforms) < gapMinPlatforms || p.count < gapMinMentions {
			continue
		}
		if _, onVideo := videoKeywords[kw]; onVideo {
			continue
		}

		platforms := make([]string, 0, len(p.platforms))
		for name := range p.platforms {
			platforms = append(platforms, name)
		}
		sort.Strings(platforms)

		var examples []GapExample
		for _, it := range items {
			if len(examples) == maxExamples {
				break
			}
			if _, ok := ex.Keywords(it.Title)[kw]; ok {
				examples = append(examples, GapExample{
					Title:  it.Title,
					Source: it.Source,
					URL:    it.URL,
					Score:  it.Score,
				})
			}
		}

		gaps = append(gaps, Gap{
			Keyword:          kw,
			PresentOn:        platforms,
			MissingFrom:      []string{cfg.VideoSource},
			MentionCount:     p.count,
			OpportunityScore: round2(float64(p.count) * float64(len(p.platforms)) * cfg.Weights.CrossPlatformPresence),
			Examples:         examples,
		})
	}

	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].OpportunityScore != gaps[j].OpportunityScore {
			return gaps[i].OpportunityScore > gaps[j].OpportunityScore
		}
		return gaps[i].Keyword < gaps[j].Keyword
	})
	if len(gaps) > maxGaps {
		gaps = gaps[:maxGaps]
	}
	return gaps
}
