package trend

import "testing"

func TestItemIDStable(t *testing.T) {
	a := ItemID("reddit", "https://example.com/1")
	b := ItemID("reddit", "https://example.com/1")
	if a != b {
		t.Errorf("same inputs gave different IDs: %s vs %s", a, b)
	}
	if len(a) != 12 {
		t.Errorf("ID length = %d, want 12", len(a))
	}

	if ItemID("hackernews", "https://example.com/1") == a {
		t.Error("different sources should give different IDs")
	}
}

func TestNewItemDefaults(t *testing.T) {
	it := NewItem("reddit", "  A Title  ", " https://r/1 ", 1.5, "", nil)

	if it.Title != "A Title" || it.URL != "https://r/1" {
		t.Errorf("fields not trimmed: %q %q", it.Title, it.URL)
	}
	if it.Category != "general" {
		t.Errorf("Category = %q, want general", it.Category)
	}
	if it.Extra == nil {
		t.Error("Extra should default to an empty map")
	}
}

func TestSubredditLookup(t *testing.T) {
	cases := []struct {
		extra map[string]any
		want  string
	}{
		{map[string]any{"subreddit": "Fitness"}, "Fitness"},
		{map[string]any{"subreddit": 42}, ""},
		{map[string]any{"ups": 10}, ""},
		{nil, ""},
	}

	for _, c := range cases {
		it := Item{Extra: c.extra}
		if got := it.Subreddit(); got != c.want {
			t.Errorf("Subreddit() with extra %v = %q, want %q", c.extra, got, c.want)
		}
	}
}

func TestBySource(t *testing.T) {
	snap := Snapshot{Items: []Item{
		{Source: "reddit", Title: "a"},
		{Source: "youtube", Title: "b"},
		{Source: "reddit", Title: "c"},
	}}

	parts := snap.BySource()
	if len(parts["reddit"]) != 2 || len(parts["youtube"]) != 1 {
		t.Errorf("unexpected partition: %v", parts)
	}
}
