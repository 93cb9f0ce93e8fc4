// Package cooccur maintains symmetric co-occurrence counts over keyword
// sets. The void detector builds its clusters from these counts.
package cooccur

import "sort"

// Pair is a canonically ordered keyword pair (A < B).
type Pair struct {
	A, B string
}

// Counter accumulates pair counts across documents. One document
// contributes at most one count per unordered pair.
type Counter struct {
	docs     int64
	pairs    map[Pair]int64
	partners map[string]map[string]int64
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{
		pairs:    make(map[Pair]int64),
		partners: make(map[string]map[string]int64),
	}
}

// Add updates counts for one document's unique keywords.
func (c *Counter) Add(keywords map[string]struct{}) {
	c.docs++

	sorted := make([]string, 0, len(keywords))
	for k := range keywords {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			c.pairs[Pair{A: sorted[i], B: sorted[j]}]++
			c.link(sorted[i], sorted[j])
			c.link(sorted[j], sorted[i])
		}
	}
}

func (c *Counter) link(from, to string) {
	m, ok := c.partners[from]
	if !ok {
		m = make(map[string]int64)
		c.partners[from] = m
	}
	m[to]++
}

// Count returns the co-occurrence count for a pair, in either order.
func (c *Counter) Count(a, b string) int64 {
	if a > b {
		a, b = b, a
	}
	return c.pairs[Pair{A: a, B: b}]
}

// Partners returns every keyword that co-occurs with the given one,
// mapped to its pair count. The returned map is live; callers must not
// mutate it.
func (c *Counter) Partners(keyword string) map[string]int64 {
	return c.partners[keyword]
}

// Docs returns the number of documents added.
func (c *Counter) Docs() int64 { return c.docs }

// UniquePairs returns the number of distinct pairs seen.
func (c *Counter) UniquePairs() int { return len(c.pairs) }

// StrongPair is a pair whose count cleared the strength threshold.
type StrongPair struct {
	Pair
	Count int64
}

// StrongPairs lists pairs with count >= minCount, sorted by count
// descending; equal counts order lexicographically by (A, B) so the
// iteration order is reproducible. At most limit pairs are returned
// (limit <= 0 means no cap).
func (c *Counter) StrongPairs(minCount int64, limit int) []StrongPair {
	out := make([]StrongPair, 0)
	for p, n := range c.pairs {
		if n >= minCount {
			out = append(out, StrongPair{Pair: p, Count: n})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
