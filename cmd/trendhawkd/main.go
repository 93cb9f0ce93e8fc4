// trendhawkd is the long-running monitor: it scrapes and analyzes on a
// cron schedule and serves the live dashboard over HTTP.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/trendhawk/trendhawk/internal/fetch"
	"github.com/trendhawk/trendhawk/internal/logging"
	"github.com/trendhawk/trendhawk/internal/report"
	"github.com/trendhawk/trendhawk/internal/server"
	"github.com/trendhawk/trendhawk/pkg/trendhawk"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/analyze"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/config"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/store"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/store/filestore"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/store/sqlite"
)

// daemon owns the engine and the last published result.
type daemon struct {
	engine *trendhawk.Engine
	cfg    config.Config
	log    *slog.Logger

	mu     sync.RWMutex
	latest analyze.Result
	ready  bool
}

// Current implements server.Provider.
func (d *daemon) Current() (analyze.Result, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.latest, d.ready
}

// runOnce executes a full scrape-analyze-publish cycle. Only one cycle
// runs at a time; cron is configured to skip overlapping fires.
func (d *daemon) runOnce(ctx context.Context) {
	start := time.Now()
	d.log.Info("cycle started")

	client := fetch.NewClient(15 * time.Second)
	snap := fetch.FetchAll(ctx, d.log, fetch.FromConfig(d.cfg, client)...)

	if err := d.engine.Ingest(ctx, snap); err != nil {
		d.log.Error("ingest failed", "error", err)
		return
	}

	res, err := d.engine.Analyze(ctx)
	if err != nil {
		d.log.Error("analyze failed", "error", err)
		return
	}

	d.mu.Lock()
	d.latest = res
	d.ready = true
	d.mu.Unlock()

	d.publish(res)
	d.log.Info("cycle finished",
		"items", res.TotalItems,
		"gaps", len(res.Gaps),
		"duration", time.Since(start).Round(time.Millisecond))
}

// publish writes analysis.json and the static dashboard so the output
// survives daemon restarts.
func (d *daemon) publish(res analyze.Result) {
	raw, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		d.log.Error("encode analysis", "error", err)
		return
	}
	path := filepath.Join(d.cfg.DataDir, "analysis.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		d.log.Error("write analysis", "error", err, "path", path)
	}
	if _, err := report.WriteFile(d.cfg.DocsDir, res); err != nil {
		d.log.Error("write dashboard", "error", err)
	}
}

func main() {
	// Missing .env is fine; the environment may be set by the supervisor.
	_ = godotenv.Load()

	var (
		configPath = flag.String("config", "", "Path to YAML config (optional)")
		backend    = flag.String("store", "files", "Snapshot store backend: files or sqlite")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	st, err := openStore(ctx, *backend, cfg.DataDir)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	engine, err := trendhawk.New(trendhawk.Options{Store: st, Config: cfg})
	if err != nil {
		log.Fatalf("init engine: %v", err)
	}
	defer engine.Close()

	d := &daemon{engine: engine, cfg: cfg, log: logger}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(cfg.Scheduler.Cron, func() { d.runOnce(ctx) }); err != nil {
		log.Fatalf("bad cron spec %q: %v", cfg.Scheduler.Cron, err)
	}

	srv := server.New(cfg.Server.Addr, d)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dashboard listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	c.Start()
	// First cycle immediately; the schedule covers the rest.
	go d.runOnce(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		logger.Error("server failed", "error", err)
	}

	cancel()
	<-c.Stop().Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
}

func openStore(ctx context.Context, backend, dataDir string) (store.Store, error) {
	switch backend {
	case "files":
		return filestore.Open(dataDir)
	case "sqlite":
		return sqlite.Open(ctx, filepath.Join(dataDir, "trendhawk.db"))
	}
	return nil, fmt.Errorf("unknown store backend %q", backend)
}
