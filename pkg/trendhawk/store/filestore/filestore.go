// Package filestore persists snapshots as JSON files in a single data
// directory: latest_scrape.json plus one timestamped archive per run.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/internalerr"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/store"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

const (
	latestName    = "latest_scrape.json"
	archivePrefix = "scrape_"
	archiveSuffix = ".json"
	archiveStamp  = "2006-01-02_1504"
)

// Store is the JSON-file snapshot store.
type Store struct {
	dir string
}

var _ store.Store = (*Store)(nil)

// Open creates the data directory if needed and returns a store over it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Close implements store.Store; the file store holds no resources.
func (s *Store) Close() error { return nil }

// SaveSnapshot writes the snapshot as the latest file and as a timestamped
// archive.
func (s *Store) SaveSnapshot(ctx context.Context, snap trend.Snapshot) error {
	if snap.ID == "" {
		snap.ID = ulid.Make().String()
	}

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	latest := filepath.Join(s.dir, latestName)
	if err := os.WriteFile(latest, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", latest, err)
	}

	archive := filepath.Join(s.dir, archivePrefix+snap.Timestamp.UTC().Format(archiveStamp)+archiveSuffix)
	if err := os.WriteFile(archive, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", archive, err)
	}
	return nil
}

// Latest loads the most recent snapshot.
func (s *Store) Latest(ctx context.Context) (trend.Snapshot, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, latestName))
	if os.IsNotExist(err) {
		return trend.Snapshot{}, internalerr.ErrNoSnapshot
	}
	if err != nil {
		return trend.Snapshot{}, fmt.Errorf("read latest snapshot: %w", err)
	}

	var snap trend.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return trend.Snapshot{}, fmt.Errorf("decode latest snapshot: %w", err)
	}
	return snap, nil
}

// Recent loads up to n archives, newest first. Archives that fail to
// decode are skipped rather than aborting the whole read.
func (s *Store) Recent(ctx context.Context, n int) ([]trend.Snapshot, error) {
	names, err := s.archiveNames()
	if err != nil {
		return nil, err
	}

	// Archive names embed the timestamp, so reverse-lexicographic order
	// is newest-first.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	if n > 0 && len(names) > n {
		names = names[:n]
	}

	out := make([]trend.Snapshot, 0, len(names))
	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		var snap trend.Snapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			continue
		}
		out = append(out, snap)
	}
	return out, nil
}

// Prune removes the oldest archives beyond keep.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		keep = 1
	}
	names, err := s.archiveNames()
	if err != nil {
		return 0, err
	}
	if len(names) <= keep {
		return 0, nil
	}

	sort.Strings(names)
	removed := 0
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			return removed, fmt.Errorf("prune %s: %w", name, err)
		}
		removed++
	}
	return removed, nil
}

func (s *Store) archiveNames() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list data dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, archivePrefix) || !strings.HasSuffix(name, archiveSuffix) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
