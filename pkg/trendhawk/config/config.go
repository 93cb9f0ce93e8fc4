// Package config holds every tunable of the monitor: scoring weights,
// community groupings, interest tags, source settings, storage paths and
// run cadence. One YAML file, environment overrides for deploy knobs.
package config

import (
	"fmt"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/internalerr"
)

// Weights ranks opportunities across analyzers. All must be positive;
// the core assumes no defaults.
type Weights struct {
	CrossPlatformPresence float64 `yaml:"cross_platform_presence"`
	Velocity              float64 `yaml:"velocity"`
	LowCompetition        float64 `yaml:"low_competition"`
	Recency               float64 `yaml:"recency"` // reserved, not read by analyzers yet
	CommunityBridge       float64 `yaml:"community_bridge"`
}

// Analysis groups the knobs consumed by the analysis pipeline.
type Analysis struct {
	// VideoSource is the platform treated as the content-supply side of
	// gap and niche detection.
	VideoSource string `yaml:"video_source"`
	// SearchSource is the platform treated as the search-demand side of
	// niche detection.
	SearchSource string `yaml:"search_source"`
	// HistoryDepth is how many archived snapshots feed velocity baselines.
	HistoryDepth int `yaml:"history_depth"`
	// IncludeNearestArchive keeps the most recent archive in the velocity
	// baseline. Off by default: that archive usually near-duplicates the
	// current batch and would flatten every velocity to zero.
	IncludeNearestArchive bool `yaml:"include_nearest_archive"`
	// ExtraStopwords extends the built-in keyword filter list.
	ExtraStopwords []string `yaml:"extra_stopwords"`
}

// Fetch configures the acquisition layer.
type Fetch struct {
	HNTopLimit         int               `yaml:"hn_top_limit"`
	HNNewLimit         int               `yaml:"hn_new_limit"`
	RedditPostLimit    int               `yaml:"reddit_post_limit"`
	InvidiousInstances []string          `yaml:"invidious_instances"`
	NitterInstances    []string          `yaml:"nitter_instances"`
	TwitterSearchTerms []string          `yaml:"twitter_search_terms"`
	YouTubeCategories  map[string]string `yaml:"youtube_categories"`
	TrendsGeo          string            `yaml:"trends_geo"`
}

// Server configures the dashboard HTTP server.
type Server struct {
	Addr string `yaml:"addr"`
}

// Scheduler configures the daemon's pull-compute-save cadence.
type Scheduler struct {
	Cron string `yaml:"cron"`
}

// Logging configures daemon log output.
type Logging struct {
	Level string `yaml:"level"`
}

// Config is the root configuration document.
type Config struct {
	DataDir   string    `yaml:"data_dir"`
	DocsDir   string    `yaml:"docs_dir"`
	Retention int       `yaml:"retention"`
	Weights   Weights   `yaml:"weights"`
	Analysis  Analysis  `yaml:"analysis"`
	Fetch     Fetch     `yaml:"fetch"`
	Server    Server    `yaml:"server"`
	Scheduler Scheduler `yaml:"scheduler"`
	Logging   Logging   `yaml:"logging"`

	// CommunityGroups partitions discussion sub-identifiers (subreddits)
	// into named groups. The same list drives reddit scraping.
	CommunityGroups map[string][]string `yaml:"community_groups"`
	// SourceCommunities maps each non-discussion source to its fixed
	// singleton group.
	SourceCommunities map[string]string `yaml:"source_communities"`
	// InterestTags is the operator's free-text interest vocabulary.
	InterestTags []string `yaml:"interest_tags"`
}

// AllSubreddits flattens the community groups into the scraping list.
func (c Config) AllSubreddits() []string {
	var subs []string
	for _, group := range c.CommunityGroups {
		subs = append(subs, group...)
	}
	return subs
}

// Validate checks the invariants the analysis layer depends on.
func (c Config) Validate() error {
	named := map[string]float64{
		"cross_platform_presence": c.Weights.CrossPlatformPresence,
		"velocity":                c.Weights.Velocity,
		"low_competition":         c.Weights.LowCompetition,
		"recency":                 c.Weights.Recency,
		"community_bridge":        c.Weights.CommunityBridge,
	}
	for name, w := range named {
		if w <= 0 {
			return fmt.Errorf("%w: weight %s must be positive, got %v",
				internalerr.ErrInvalidConfig, name, w)
		}
	}

	if c.Analysis.VideoSource == "" {
		return fmt.Errorf("%w: analysis.video_source is required", internalerr.ErrInvalidConfig)
	}
	if c.Analysis.SearchSource == "" {
		return fmt.Errorf("%w: analysis.search_source is required", internalerr.ErrInvalidConfig)
	}
	if c.Analysis.HistoryDepth < 0 {
		return fmt.Errorf("%w: analysis.history_depth must be >= 0", internalerr.ErrInvalidConfig)
	}
	if c.Retention < 1 {
		return fmt.Errorf("%w: retention must be >= 1", internalerr.ErrInvalidConfig)
	}
	return nil
}

// Default returns the shipped configuration, mirroring the canonical
// deployment: five sources, six community groups, 6-hourly runs.
func Default() Config {
	return Config{
		DataDir:   "data",
		DocsDir:   "docs",
		Retention: 120,
		Weights: Weights{
			CrossPlatformPresence: 3.0,
			Velocity:              2.5,
			LowCompetition:        2.0,
			Recency:               1.5,
			CommunityBridge:       2.0,
		},
		Analysis: Analysis{
			VideoSource:  "youtube",
			SearchSource: "google_trends",
			HistoryDepth: 20,
		},
		Fetch: Fetch{
			HNTopLimit:      60,
			HNNewLimit:      30,
			RedditPostLimit: 15,
			InvidiousInstances: []string{
				"https://vid.puffyan.us",
				"https://invidious.fdn.fr",
				"https://invidious.nerdvpn.de",
				"https://inv.nadeko.net",
				"https://invidious.privacyredirect.com",
			},
			NitterInstances: []string{
				"https://nitter.privacydev.net",
				"https://nitter.poast.org",
				"https://nitter.cz",
			},
			TwitterSearchTerms: []string{
				"trending", "viral", "AI", "startup", "creator economy",
			},
			YouTubeCategories: map[string]string{
				"default":    "",
				"music":      "Music",
				"gaming":     "Gaming",
				"film":       "Film",
				"science":    "Science",
				"technology": "Technology",
			},
			TrendsGeo: "US",
		},
		Server:    Server{Addr: ":8080"},
		Scheduler: Scheduler{Cron: "0 */6 * * *"},
		Logging:   Logging{Level: "info"},
		CommunityGroups: map[string][]string{
			"tech": {
				"technology", "programming", "machinelearning", "artificial",
				"webdev", "devops", "datascience", "ChatGPT",
			},
			"business": {
				"entrepreneur", "startups", "smallbusiness", "marketing",
				"SideProject", "passive_income",
			},
			"finance": {
				"investing", "CryptoCurrency", "wallstreetbets", "personalfinance",
				"stocks",
			},
			"science": {
				"science", "Futurology", "space", "biotech",
			},
			"lifestyle": {
				"selfimprovement", "productivity", "getdisciplined",
				"LifeProTips", "Fitness",
			},
			"creative": {
				"filmmaking", "videography", "youtubers", "NewTubers",
				"ContentCreation",
			},
		},
		SourceCommunities: map[string]string{
			"hackernews":    "tech",
			"google_trends": "mainstream",
			"youtube":       "content",
			"twitter":       "social",
		},
		InterestTags: []string{
			"AI", "automation", "content creation", "passive income",
			"SaaS", "open source", "productivity", "creator tools",
			"machine learning", "side hustle", "no-code", "indie hacking",
		},
	}
}
