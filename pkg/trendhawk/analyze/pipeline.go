package analyze

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

// Result is the composite output of one pipeline run: six independently
// ranked lists plus the ingestion summary carried through from the
// snapshot. It is write-once per run.
type Result struct {
	ID              string                        `json:"id"`
	Timestamp       time.Time                     `json:"timestamp"`
	ScrapeTimestamp time.Time                     `json:"scrape_timestamp"`
	TotalItems      int                           `json:"total_items_analyzed"`
	Sources         map[string]trend.SourceStatus `json:"sources_summary"`
	Gaps            []Gap                         `json:"cross_platform_gaps"`
	Velocity        []VelocityItem                `json:"velocity_leaders"`
	Niches          []Niche                       `json:"niche_opportunities"`
	Bridges         []Bridge                      `json:"bridge_topics"`
	Voids           []Void                        `json:"linguistic_voids"`
	Relevant        []RelevantItem                `json:"personal_relevance"`
}

// Empty reports whether the run produced no rankings at all.
func (r Result) Empty() bool { return r.TotalItems == 0 }

// Run executes all six analyzers over one snapshot and its history
// (newest-first) and assembles the composite result. The analyzers are
// pure functions over read-only input, so they run concurrently. An empty
// batch short-circuits to an empty result; it is not an error.
func Run(snap trend.Snapshot, history []trend.Snapshot, cfg Config) Result {
	res := Result{
		ID:              ulid.Make().String(),
		Timestamp:       time.Now().UTC(),
		ScrapeTimestamp: snap.Timestamp,
		TotalItems:      len(snap.Items),
		Sources:         snap.Sources,
	}
	if len(snap.Items) == 0 {
		return res
	}

	items := snap.Items

	var wg sync.WaitGroup
	wg.Add(6)
	go func() { defer wg.Done(); res.Gaps = DetectGaps(items, cfg) }()
	go func() { defer wg.Done(); res.Velocity = ScoreVelocity(items, history, cfg) }()
	go func() { defer wg.Done(); res.Niches = FindNiches(items, cfg) }()
	go func() { defer wg.Done(); res.Bridges = DetectBridges(items, cfg) }()
	go func() { defer wg.Done(); res.Voids = DetectVoids(items, cfg) }()
	go func() { defer wg.Done(); res.Relevant = ScoreRelevance(items, cfg) }()
	wg.Wait()

	return res
}
