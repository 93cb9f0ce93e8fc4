package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/internalerr"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsBadWeights(t *testing.T) {
	cfg := Default()
	cfg.Weights.Velocity = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for zero weight")
	}
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
	}
}

func TestValidateRequiresSources(t *testing.T) {
	cfg := Default()
	cfg.Analysis.VideoSource = ""
	if cfg.Validate() == nil {
		t.Error("expected error for missing video source")
	}

	cfg = Default()
	cfg.Analysis.SearchSource = ""
	if cfg.Validate() == nil {
		t.Error("expected error for missing search source")
	}
}

func TestAllSubreddits(t *testing.T) {
	cfg := Config{CommunityGroups: map[string][]string{
		"tech":      {"programming", "devops"},
		"lifestyle": {"Fitness"},
	}}

	subs := cfg.AllSubreddits()
	if len(subs) != 3 {
		t.Errorf("AllSubreddits returned %d entries, want 3", len(subs))
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	doc := `
data_dir: /tmp/trends
retention: 10
weights:
  cross_platform_presence: 1.0
  velocity: 1.0
  low_competition: 1.0
  recency: 1.0
  community_bridge: 4.5
analysis:
  video_source: youtube
  search_source: google_trends
  history_depth: 5
interest_tags: [golang, homelab]
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/tmp/trends" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Weights.CommunityBridge != 4.5 {
		t.Errorf("CommunityBridge = %v", cfg.Weights.CommunityBridge)
	}
	if cfg.Analysis.HistoryDepth != 5 {
		t.Errorf("HistoryDepth = %v", cfg.Analysis.HistoryDepth)
	}
	if len(cfg.InterestTags) != 2 {
		t.Errorf("InterestTags = %v", cfg.InterestTags)
	}
	// Unspecified sections keep their defaults.
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("weights:\n  velocity: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv(envDataDir, "/var/lib/trendhawk")
	t.Setenv(envServerAddr, ":9999")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/var/lib/trendhawk" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}
