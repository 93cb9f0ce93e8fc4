package analyze

import (
	"sort"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

// Velocity labels, from fastest to slowest growth.
const (
	LabelExploding = "exploding"
	LabelRising    = "rising"
	LabelStable    = "stable"
	LabelDeclining = "declining"
	LabelNew       = "new"
)

// Velocity floor applied when combining with the base score so a flat or
// declining topic never zeroes out platform popularity entirely.
const velocityFloor = 0.1

// VelocityItem is an item ranked by the frequency acceleration of its
// keywords versus the historical baseline.
type VelocityItem struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Source        string  `json:"source"`
	Category      string  `json:"category"`
	BaseScore     float64 `json:"base_score"`
	Velocity      float64 `json:"velocity"`
	Label         string  `json:"velocity_label"`
	CombinedScore float64 `json:"combined_score"`
}

// ScoreVelocity ranks items by keyword acceleration. With no history the
// platform score stands in as a proxy and everything is labeled "new".
func ScoreVelocity(items []trend.Item, history []trend.Snapshot, cfg Config) []VelocityItem {
	if len(history) == 0 {
		return velocityFallback(items)
	}

	ex := cfg.extractor()
	current := keywordCounts(items, ex)

	// The freshest archive usually near-duplicates the current batch, so
	// it is excluded from the baseline unless configured otherwise.
	skip := 1
	if cfg.IncludeNearestArchive {
		skip = 0
	}
	historical := make(map[string]int)
	for _, snap := range history {
		if skip > 0 {
			skip--
			continue
		}
		for kw, n := range keywordCounts(snap.Items, ex) {
			historical[kw] += n
		}
	}

	numSnapshots := len(history) - 1
	if cfg.IncludeNearestArchive {
		numSnapshots = len(history)
	}
	if numSnapshots < 1 {
		numSnapshots = 1
	}

	perKeyword := make(map[string]float64, len(current))
	for kw, count := range current {
		histAvg := float64(historical[kw]) / float64(numSnapshots)
		if histAvg > 0 {
			perKeyword[kw] = (float64(count) - histAvg) / histAvg
		} else {
			// Zero prior history = maximally new.
			perKeyword[kw] = float64(count) * 2.0
		}
	}

	var out []VelocityItem
	for _, it := range items {
		kws := ex.Keywords(it.Title)
		if len(kws) == 0 {
			continue
		}
		sum := 0.0
		for kw := range kws {
			sum += perKeyword[kw]
		}
		velocity := sum / float64(len(kws))

		combined := it.Score * cfg.Weights.Velocity * maxFloat(velocity, velocityFloor)
		out = append(out, VelocityItem{
			Title:         it.Title,
			URL:           it.URL,
			Source:        it.Source,
			Category:      it.Category,
			BaseScore:     it.Score,
			Velocity:      round3(velocity),
			Label:         velocityLabel(velocity),
			CombinedScore: round2(combined),
		})
	}

	sortVelocity(out)
	if len(out) > maxVelocity {
		out = out[:maxVelocity]
	}
	return out
}

func velocityFallback(items []trend.Item) []VelocityItem {
	out := make([]VelocityItem, 0, len(items))
	for _, it := range items {
		out = append(out, VelocityItem{
			Title:     it.Title,
			URL:       it.URL,
			Source:    it.Source,
			Category:  it.Category,
			BaseScore: it.Score,
			Velocity:  round3(it.Score * 1.5),
			Label:     LabelNew,
		})
	}

	sortVelocity(out)
	if len(out) > maxVelocity {
		out = out[:maxVelocity]
	}
	return out
}

// velocityLabel buckets a velocity value; thresholds are exclusive lower
// bounds evaluated fastest-first.
func velocityLabel(v float64) string {
	switch {
	case v > 2.0:
		return LabelExploding
	case v > 0.5:
		return LabelRising
	case v > -0.2:
		return LabelStable
	default:
		return LabelDeclining
	}
}

// sortVelocity orders by velocity descending, keeping input order on ties.
func sortVelocity(items []VelocityItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Velocity > items[j].Velocity
	})
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
