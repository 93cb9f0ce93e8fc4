package analyze

import (
	"testing"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/config"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/keyword"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

// testConfig mirrors the shipped defaults with unit weights where a test
// needs to read scores directly.
func testConfig() Config {
	return Config{
		Weights: config.Weights{
			CrossPlatformPresence: 3.0,
			Velocity:              2.5,
			LowCompetition:        2.0,
			Recency:               1.5,
			CommunityBridge:       2.0,
		},
		VideoSource:  "youtube",
		SearchSource: "google_trends",
		CommunityGroups: map[string][]string{
			"tech":      {"programming", "machinelearning"},
			"lifestyle": {"Fitness", "selfimprovement"},
		},
		SourceCommunities: map[string]string{
			"hackernews":    "tech",
			"google_trends": "mainstream",
			"youtube":       "content",
			"twitter":       "social",
		},
		InterestTags: []string{"AI", "automation", "machine learning"},
		Extractor:    keyword.NewExtractor(),
	}
}

func item(source, title string, score float64) trend.Item {
	return trend.NewItem(source, title, "https://example.com/"+trend.ItemID(source, title), score, "", nil)
}

func redditItem(sub, title string, score float64) trend.Item {
	return trend.NewItem("reddit", title, "https://reddit.com/"+trend.ItemID("reddit", title), score, "",
		map[string]any{"subreddit": sub})
}

func TestKeywordCounts(t *testing.T) {
	ex := keyword.NewExtractor()
	items := []trend.Item{
		item("reddit", "crypto crash deepens", 1),
		item("reddit", "crypto crypto crypto", 1),
	}

	counts := keywordCounts(items, ex)
	if counts["crypto"] != 2 {
		t.Errorf("crypto counted %d times, want once per item = 2", counts["crypto"])
	}
	if counts["crash"] != 1 {
		t.Errorf("crash = %d, want 1", counts["crash"])
	}
}

func TestRounding(t *testing.T) {
	if got := round2(1.2345); got != 1.23 {
		t.Errorf("round2 = %v", got)
	}
	if got := round3(4.0 / 3.0); got != 1.333 {
		t.Errorf("round3 = %v", got)
	}
}
