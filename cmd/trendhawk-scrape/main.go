// trendhawk-scrape pulls the current batch from every configured platform
// and archives it. Run it on a schedule; analysis reads the archives.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/trendhawk/trendhawk/internal/fetch"
	"github.com/trendhawk/trendhawk/internal/logging"
	"github.com/trendhawk/trendhawk/pkg/trendhawk"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/config"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/store"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/store/filestore"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config (optional)")
		backend    = flag.String("store", "files", "Snapshot store backend: files or sqlite")
		timeout    = flag.Duration("timeout", 10*time.Minute, "Overall scrape deadline")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.Logging.Level)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
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

	client := fetch.NewClient(15 * time.Second)
	snap := fetch.FetchAll(ctx, logger, fetch.FromConfig(cfg, client)...)

	if err := engine.Ingest(ctx, snap); err != nil {
		log.Fatalf("save snapshot: %v", err)
	}

	for name, status := range snap.Sources {
		logger.Info("source summary", "source", name, "count", status.Count, "status", status.Status)
	}
	logger.Info("snapshot archived", "items", len(snap.Items), "data_dir", cfg.DataDir)
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
