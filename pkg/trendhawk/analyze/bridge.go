package analyze

import (
	"sort"
	"strings"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

// Bridge is a keyword spanning two or more otherwise disconnected
// community groups.
type Bridge struct {
	Keyword        string          `json:"keyword"`
	Communities    []string        `json:"communities"`
	NumCommunities int             `json:"num_communities"`
	BridgeScore    float64         `json:"bridge_score"`
	TotalMentions  int             `json:"total_mentions"`
	Examples       []BridgeExample `json:"examples"`
}

// BridgeExample is one of the items carrying a bridge keyword.
type BridgeExample struct {
	Title    string `json:"title"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

// DetectBridges finds keywords whose items resolve to at least two
// distinct community groups.
func DetectBridges(items []trend.Item, cfg Config) []Bridge {
	ex := cfg.extractor()

	subToGroup := make(map[string]string)
	for group, subs := range cfg.CommunityGroups {
		for _, sub := range subs {
			subToGroup[strings.ToLower(sub)] = group
		}
	}

	type entry struct {
		groups   map[string]struct{}
		items    []trend.Item
		score    float64
		mentions int
	}
	byKeyword := make(map[string]*entry)

	for _, it := range items {
		groups := resolveGroups(it, subToGroup, cfg.SourceCommunities)
		if len(groups) == 0 {
			continue
		}
		for kw := range ex.Keywords(it.Title) {
			e, ok := byKeyword[kw]
			if !ok {
				e = &entry{groups: make(map[string]struct{})}
				byKeyword[kw] = e
			}
			for g := range groups {
				e.groups[g] = struct{}{}
			}
			e.mentions++
			e.score += it.Score
			if len(e.items) < maxExamples {
				e.items = append(e.items, it)
			}
		}
	}

	var bridges []Bridge
	for kw, e := range byKeyword {
		if len(e.groups) < 2 {
			continue
		}

		communities := make([]string, 0, len(e.groups))
		for g := range e.groups {
			communities = append(communities, g)
		}
		sort.Strings(communities)

		examples := make([]BridgeExample, 0, len(e.items))
		for _, it := range e.items {
			examples = append(examples, BridgeExample{
				Title:    it.Title,
				Source:   it.Source,
				Category: it.Category,
			})
		}

		bridges = append(bridges, Bridge{
			Keyword:        kw,
			Communities:    communities,
			NumCommunities: len(communities),
			BridgeScore:    round2(float64(len(communities)) * e.score * cfg.Weights.CommunityBridge),
			TotalMentions:  e.mentions,
			Examples:       examples,
		})
	}

	sort.Slice(bridges, func(i, j int) bool {
		if bridges[i].BridgeScore != bridges[j].BridgeScore {
			return bridges[i].BridgeScore > bridges[j].BridgeScore
		}
		return bridges[i].Keyword < bridges[j].Keyword
	})
	if len(bridges) > maxBridges {
		bridges = bridges[:maxBridges]
	}
	return bridges
}

// resolveGroups maps an item to its community groups. Items carrying a
// sub-identifier resolve through the configured groups (case-insensitive);
// every other source resolves to its fixed singleton group. Items that
// match neither resolve to nothing and are excluded.
func resolveGroups(it trend.Item, subToGroup map[string]string, sourceGroups map[string]string) map[string]struct{} {
	groups := make(map[string]struct{})

	if sub := it.Subreddit(); sub != "" {
		if g, ok := subToGroup[strings.ToLower(sub)]; ok {
			groups[g] = struct{}{}
		}
		return groups
	}

	if g, ok := sourceGroups[it.Source]; ok {
		groups[g] = struct{}{}
	}
	return groups
}
