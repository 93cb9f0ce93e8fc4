package analyze

import (
	"sort"
	"strings"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/cooccur"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/keyword"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

// Void detection thresholds: seed pairs need co-occurrence >= 3, cluster
// extensions need >= 2 with both seeds, and only the strongest 100 pairs
// are considered per run.
const (
	voidSeedMinCount   = 3
	voidExtendMinCount = 2
	voidMaxSeedPairs   = 100
	voidMinClusterSize = 3
	voidHintKeywords   = 4
)

// Void is a tight cluster of co-occurring keywords with no single dominant
// label — a concept people discuss but have not named.
type Void struct {
	ConceptCluster  []string      `json:"concept_cluster"`
	ConceptHint     string        `json:"concept_hint"`
	ClusterSize     int           `json:"cluster_size"`
	DiscussionCount int           `json:"discussion_count"`
	VoidScore       float64       `json:"void_score"`
	Examples        []VoidExample `json:"examples"`
}

// VoidExample is an item whose keywords overlap the cluster in at least
// two positions.
type VoidExample struct {
	Title            string   `json:"title"`
	Source           string   `json:"source"`
	MatchingKeywords []string `json:"matching_keywords"`
}

// DetectVoids grows keyword clusters greedily from the strongest
// co-occurring pairs. Clusters never share keywords within one run: once a
// cluster is accepted, all of its members are excluded from later seeds
// and extensions, so accepting order (pair count descending, lexicographic
// on ties) fully determines the output.
func DetectVoids(items []trend.Item, cfg Config) []Void {
	ex := cfg.extractor()

	counter := cooccur.NewCounter()
	itemKeywords := make([]map[string]struct{}, len(items))
	for i, it := range items {
		kws := ex.Keywords(it.Title)
		itemKeywords[i] = kws
		counter.Add(kws)
	}

	var voids []Void
	used := make(map[string]struct{})

	for _, sp := range counter.StrongPairs(voidSeedMinCount, voidMaxSeedPairs) {
		if _, ok := used[sp.A]; ok {
			continue
		}
		if _, ok := used[sp.B]; ok {
			continue
		}

		cluster := map[string]struct{}{sp.A: {}, sp.B: {}}
		partnersB := counter.Partners(sp.B)
		for _, candidate := range keyword.Sorted(asSet(counter.Partners(sp.A))) {
			if _, taken := used[candidate]; taken {
				continue
			}
			if counter.Count(sp.A, candidate) >= voidExtendMinCount &&
				partnersB[candidate] >= voidExtendMinCount {
				cluster[candidate] = struct{}{}
			}
		}

		if len(cluster) < voidMinClusterSize {
			continue
		}

		members := keyword.Sorted(cluster)
		hint := strings.Join(members[:minInt(voidHintKeywords, len(members))], " + ")

		var examples []VoidExample
		discussions := 0
		for i, it := range items {
			overlap := keyword.Intersect(itemKeywords[i], cluster)
			if len(overlap) < 2 {
				continue
			}
			discussions++
			if len(examples) < maxExamples {
				examples = append(examples, VoidExample{
					Title:            it.Title,
					Source:           it.Source,
					MatchingKeywords: overlap,
				})
			}
		}
		if discussions == 0 {
			continue
		}

		voids = append(voids, Void{
			ConceptCluster:  members,
			ConceptHint:     hint,
			ClusterSize:     len(members),
			DiscussionCount: discussions,
			VoidScore:       round2(float64(len(members)) * float64(discussions) * float64(sp.Count) * 0.5),
			Examples:        examples,
		})
		for m := range cluster {
			used[m] = struct{}{}
		}
	}

	sort.SliceStable(voids, func(i, j int) bool {
		return voids[i].VoidScore > voids[j].VoidScore
	})
	if len(voids) > maxVoids {
		voids = voids[:maxVoids]
	}
	return voids
}

func asSet(m map[string]int64) map[string]struct{} {
	set := make(map[string]struct{}, len(m))
	for k := range m {
		set[k] = struct{}{}
	}
	return set
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
