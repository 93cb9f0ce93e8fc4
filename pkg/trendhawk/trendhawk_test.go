package trendhawk

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/config"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/internalerr"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/store/filestore"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()

	st, err := filestore.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Retention = 3

	eng, err := New(Options{Store: st, Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { eng.Close() })
	return eng
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Weights.Velocity = -1

	if _, err := New(Options{Config: cfg}); err == nil {
		t.Error("expected config validation error")
	}
}

func TestAnalyzeWithoutSnapshots(t *testing.T) {
	eng := testEngine(t)

	_, err := eng.Analyze(context.Background())
	if !errors.Is(err, internalerr.ErrNoSnapshot) {
		t.Errorf("want ErrNoSnapshot, got %v", err)
	}
}

func TestIngestAndAnalyze(t *testing.T) {
	eng := testEngine(t)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		snap := trend.Snapshot{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Sources:   map[string]trend.SourceStatus{"reddit": {Count: 2, Status: "ok"}},
			Items: []trend.Item{
				trend.NewItem("reddit", "deepfake detection tools", "https://r/1", 2.0, "tech",
					map[string]any{"subreddit": "technology"}),
				trend.NewItem("reddit", "deepfake legislation stalls", "https://r/2", 1.0, "tech",
					map[string]any{"subreddit": "technology"}),
				trend.NewItem("hackernews", "deepfake detection startup", "https://hn/1", 3.0, "tech", nil),
			},
		}
		if err := eng.Ingest(ctx, snap); err != nil {
			t.Fatalf("ingest %d: %v", i, err)
		}
	}

	res, err := eng.Analyze(ctx)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if res.TotalItems != 3 {
		t.Errorf("total items = %d, want 3", res.TotalItems)
	}
	if res.Sources["reddit"].Count != 2 {
		t.Errorf("sources_summary = %+v", res.Sources)
	}
	if len(res.Gaps) == 0 {
		t.Error("expected gap results for a keyword on two discussion platforms")
	}
}

func TestIngestPrunesRetention(t *testing.T) {
	eng := testEngine(t) // retention 3
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		snap := trend.Snapshot{Timestamp: base.Add(time.Duration(i) * time.Hour)}
		if err := eng.Ingest(ctx, snap); err != nil {
			t.Fatal(err)
		}
	}

	history, err := eng.store.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Errorf("retention left %d archives, want 3", len(history))
	}
}
