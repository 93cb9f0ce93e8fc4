package cooccur

import "testing"

func set(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func TestCountSymmetric(t *testing.T) {
	c := NewCounter()
	c.Add(set("alpha", "beta", "gamma"))
	c.Add(set("alpha", "beta"))

	if got := c.Count("alpha", "beta"); got != 2 {
		t.Errorf("Count(alpha,beta) = %d, want 2", got)
	}
	if got := c.Count("beta", "alpha"); got != 2 {
		t.Errorf("Count must be order-independent, got %d", got)
	}
	if got := c.Count("beta", "gamma"); got != 1 {
		t.Errorf("Count(beta,gamma) = %d, want 1", got)
	}
	if got := c.Count("alpha", "missing"); got != 0 {
		t.Errorf("Count of unseen pair = %d, want 0", got)
	}
}

func TestPartners(t *testing.T) {
	c := NewCounter()
	c.Add(set("alpha", "beta", "gamma"))

	p := c.Partners("alpha")
	if len(p) != 2 || p["beta"] != 1 || p["gamma"] != 1 {
		t.Errorf("Partners(alpha) = %v", p)
	}
	if c.Partners("missing") != nil {
		t.Error("Partners of unseen keyword should be nil")
	}
}

func TestStrongPairsOrdering(t *testing.T) {
	c := NewCounter()
	for i := 0; i < 3; i++ {
		c.Add(set("alpha", "beta"))
	}
	for i := 0; i < 5; i++ {
		c.Add(set("gamma", "delta"))
	}
	for i := 0; i < 3; i++ {
		c.Add(set("alpha", "aardvark"))
	}
	c.Add(set("weak", "pair"))

	pairs := c.StrongPairs(3, 0)
	if len(pairs) != 3 {
		t.Fatalf("StrongPairs returned %d pairs, want 3", len(pairs))
	}
	if pairs[0].A != "delta" || pairs[0].B != "gamma" || pairs[0].Count != 5 {
		t.Errorf("top pair = %+v", pairs[0])
	}
	// Equal counts break ties lexicographically for reproducible output.
	if pairs[1].A != "aardvark" || pairs[2].A != "alpha" {
		t.Errorf("tie-break order wrong: %+v then %+v", pairs[1], pairs[2])
	}
}

func TestStrongPairsLimit(t *testing.T) {
	c := NewCounter()
	for i := 0; i < 4; i++ {
		c.Add(set("one1", "two2", "three3"))
	}

	if got := len(c.StrongPairs(3, 2)); got != 2 {
		t.Errorf("limit not applied, got %d pairs", got)
	}
}

func TestDocsAndUniquePairs(t *testing.T) {
	c := NewCounter()
	c.Add(set("alpha", "beta"))
	c.Add(set("alpha", "beta"))

	if c.Docs() != 2 {
		t.Errorf("Docs = %d, want 2", c.Docs())
	}
	if c.UniquePairs() != 1 {
		t.Errorf("UniquePairs = %d, want 1", c.UniquePairs())
	}
}
