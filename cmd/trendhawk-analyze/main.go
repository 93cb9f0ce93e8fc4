// trendhawk-analyze runs the full analysis pipeline over the latest
// archived snapshot, writes analysis.json and regenerates the static
// dashboard.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/trendhawk/trendhawk/internal/report"
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
		outPath    = flag.String("out", "", "analysis.json path (default <data_dir>/analysis.json)")
		dashboard  = flag.Bool("dashboard", true, "Regenerate the static dashboard")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	st, err := openStore(ctx, *backend, cfg.DataDir)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	engine, err := trendhawk.New(trendhawk.Options{Store: st, Config: cfg})
	if err != nil {
		log.Fatalf("init engine: %v", err)
	}
	defer engine.Close()

	res, err := engine.Analyze(ctx)
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}
	if res.Empty() {
		log.Print("latest snapshot is empty; writing empty analysis")
	}

	path := *outPath
	if path == "" {
		path = filepath.Join(cfg.DataDir, "analysis.json")
	}
	raw, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		log.Fatalf("encode analysis: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		log.Fatalf("write analysis: %v", err)
	}
	log.Printf("analysis written: %s (%d items, %d gaps, %d velocity leaders)",
		path, res.TotalItems, len(res.Gaps), len(res.Velocity))

	if *dashboard {
		htmlPath, err := report.WriteFile(cfg.DocsDir, res)
		if err != nil {
			log.Fatalf("build dashboard: %v", err)
		}
		log.Printf("dashboard written: %s", htmlPath)
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
