// Package trendhawk ties the snapshot store, configuration and analyzers
// into one engine: ingest a scraped batch, analyze the latest batch
// against its history.
package trendhawk

import (
	"context"
	"fmt"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/analyze"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/config"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/keyword"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/store"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

// Engine is the main monitor facade.
type Engine struct {
	store      store.Store
	cfg        config.Config
	analyzeCfg analyze.Config
}

// Options configures an Engine instance.
type Options struct {
	Store  store.Store
	Config config.Config
	// Extractor overrides the keyword extractor; nil builds one from the
	// config's extra stopwords.
	Extractor *keyword.Extractor
}

// New creates an Engine with the given dependencies.
func New(opts Options) (*Engine, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("engine requires a snapshot store")
	}
	return &Engine{
		store:      opts.Store,
		cfg:        opts.Config,
		analyzeCfg: analyze.FromConfig(opts.Config, opts.Extractor),
	}, nil
}

// Close cleanly shuts down the engine.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Ingest archives a scraped snapshot and prunes archives beyond the
// configured retention.
func (e *Engine) Ingest(ctx context.Context, snap trend.Snapshot) error {
	if err := e.store.SaveSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if _, err := e.store.Prune(ctx, e.cfg.Retention); err != nil {
		return fmt.Errorf("prune archives: %w", err)
	}
	return nil
}

// Analyze runs the full pipeline over the latest snapshot and its history.
func (e *Engine) Analyze(ctx context.Context) (analyze.Result, error) {
	snap, err := e.store.Latest(ctx)
	if err != nil {
		return analyze.Result{}, fmt.Errorf("load latest snapshot: %w", err)
	}

	history, err := e.store.Recent(ctx, e.cfg.Analysis.HistoryDepth)
	if err != nil {
		return analyze.Result{}, fmt.Errorf("load history: %w", err)
	}

	return analyze.Run(snap, history, e.analyzeCfg), nil
}
