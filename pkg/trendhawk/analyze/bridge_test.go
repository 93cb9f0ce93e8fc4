package analyze

import (
	"reflect"
	"testing"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

func TestDetectBridgesAcrossTwoGroups(t *testing.T) {
	cfg := testConfig()
	items := []trend.Item{
		redditItem("Fitness", "fasting changed everything", 2.0),
		item("google_trends", "fasting timeline", 1.0),
	}

	bridges := DetectBridges(items, cfg)
	var fasting *Bridge
	for i := range bridges {
		if bridges[i].Keyword == "fasting" {
			fasting = &bridges[i]
		}
	}
	if fasting == nil {
		t.Fatalf("fasting not found: %+v", bridges)
	}

	if !reflect.DeepEqual(fasting.Communities, []string{"lifestyle", "mainstream"}) {
		t.Errorf("communities = %v", fasting.Communities)
	}
	if fasting.NumCommunities != 2 || fasting.NumCommunities != len(fasting.Communities) {
		t.Errorf("num_communities = %d, communities = %v", fasting.NumCommunities, fasting.Communities)
	}
	// 2 groups x (2.0 + 1.0) total score x weight 2.0
	if fasting.BridgeScore != 12.0 {
		t.Errorf("bridge_score = %v, want 12", fasting.BridgeScore)
	}
	if fasting.TotalMentions != 2 {
		t.Errorf("total_mentions = %d, want 2", fasting.TotalMentions)
	}
}

func TestDetectBridgesCardinalityInvariant(t *testing.T) {
	cfg := testConfig()
	items := []trend.Item{
		redditItem("programming", "rust burnout stories", 1.0),
		redditItem("Fitness", "burnout recovery protocol", 1.0),
		item("hackernews", "burnout in open source", 1.0),
		item("twitter", "burnout discourse", 1.0),
	}

	bridges := DetectBridges(items, cfg)
	if len(bridges) == 0 {
		t.Fatal("expected bridges")
	}
	for _, b := range bridges {
		if b.NumCommunities < 2 {
			t.Errorf("%q: num_communities = %d, want >= 2", b.Keyword, b.NumCommunities)
		}
		if b.NumCommunities != len(b.Communities) {
			t.Errorf("%q: num mismatch: %d vs %v", b.Keyword, b.NumCommunities, b.Communities)
		}
	}
}

func TestDetectBridgesSubredditCaseInsensitive(t *testing.T) {
	cfg := testConfig()
	items := []trend.Item{
		redditItem("fitness", "kettlebell snatch form", 1.0),
		redditItem("FITNESS", "kettlebell programming", 1.0),
		item("hackernews", "kettlebell startup pivot", 1.0),
	}

	bridges := DetectBridges(items, cfg)
	var kb *Bridge
	for i := range bridges {
		if bridges[i].Keyword == "kettlebell" {
			kb = &bridges[i]
		}
	}
	if kb == nil {
		t.Fatal("kettlebell not found")
	}
	if !reflect.DeepEqual(kb.Communities, []string{"lifestyle", "tech"}) {
		t.Errorf("communities = %v", kb.Communities)
	}
}

func TestDetectBridgesExcludesUngroupedItems(t *testing.T) {
	cfg := testConfig()
	items := []trend.Item{
		// Unknown subreddit: resolves to no group at all.
		redditItem("obscuresub", "mystery topic rising", 1.0),
		item("hackernews", "mystery topic debated", 1.0),
	}

	for _, b := range DetectBridges(items, cfg) {
		if b.Keyword == "mystery" || b.Keyword == "topic" {
			t.Errorf("keyword %q bridged with an ungrouped item", b.Keyword)
		}
	}
}

func TestDetectBridgesSingleGroupNotBridge(t *testing.T) {
	cfg := testConfig()
	items := []trend.Item{
		redditItem("programming", "monorepo tooling debate", 1.0),
		item("hackernews", "monorepo tooling at scale", 1.0),
	}

	// Both resolve to "tech": one group, no bridge.
	if got := DetectBridges(items, cfg); len(got) != 0 {
		t.Errorf("single-group keyword qualified: %+v", got)
	}
}
