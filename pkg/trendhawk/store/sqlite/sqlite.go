// Package sqlite persists snapshots in a single SQLite database. It holds
// the same data as the file store but supports pruning and newest-first
// reads without directory scans.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/internalerr"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/store"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

type sqliteStore struct {
	db *sql.DB
}

var _ store.Store = (*sqliteStore)(nil)

// Open opens (creating if needed) a snapshot database with WAL enabled.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	taken_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_sources (
	snapshot_id TEXT NOT NULL,
	source TEXT NOT NULL,
	count INTEGER NOT NULL,
	status TEXT NOT NULL,
	UNIQUE(snapshot_id, source),
	FOREIGN KEY(snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS snapshot_items (
	snapshot_id TEXT NOT NULL,
	pos INTEGER NOT NULL,
	item_id TEXT NOT NULL,
	source TEXT NOT NULL,
	title TEXT NOT NULL,
	url TEXT,
	score REAL NOT NULL DEFAULT 0,
	category TEXT,
	fetched_at TEXT,
	extra TEXT,
	PRIMARY KEY(snapshot_id, pos),
	FOREIGN KEY(snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_snapshots_taken_at ON snapshots(taken_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveSnapshot stores the snapshot and its items in one transaction.
func (s *sqliteStore) SaveSnapshot(ctx context.Context, snap trend.Snapshot) error {
	if snap.ID == "" {
		snap.ID = ulid.Make().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshots (id, taken_at) VALUES (?, ?)`,
		snap.ID, snap.Timestamp.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	for source, st := range snap.Sources {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO snapshot_sources (snapshot_id, source, count, status) VALUES (?, ?, ?, ?)`,
			snap.ID, source, st.Count, st.Status); err != nil {
			return fmt.Errorf("insert source %s: %w", source, err)
		}
	}

	for pos, it := range snap.Items {
		extra, err := json.Marshal(it.Extra)
		if err != nil {
			return fmt.Errorf("encode extra for %s: %w", it.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO snapshot_items
			 (snapshot_id, pos, item_id, source, title, url, score, category, fetched_at, extra)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			snap.ID, pos, it.ID, it.Source, it.Title, it.URL, it.Score, it.Category,
			it.Timestamp.UTC().Format(time.RFC3339Nano), string(extra)); err != nil {
			return fmt.Errorf("insert item %d: %w", pos, err)
		}
	}

	return tx.Commit()
}

// Latest returns the most recent snapshot.
func (s *sqliteStore) Latest(ctx context.Context) (trend.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, taken_at FROM snapshots ORDER BY taken_at DESC, id DESC LIMIT 1`)

	var id, takenAt string
	if err := row.Scan(&id, &takenAt); err == sql.ErrNoRows {
		return trend.Snapshot{}, internalerr.ErrNoSnapshot
	} else if err != nil {
		return trend.Snapshot{}, err
	}
	return s.loadSnapshot(ctx, id, takenAt)
}

// Recent returns up to n snapshots, newest first. n <= 0 returns all.
func (s *sqliteStore) Recent(ctx context.Context, n int) ([]trend.Snapshot, error) {
	query := `SELECT id, taken_at FROM snapshots ORDER BY taken_at DESC, id DESC`
	args := []any{}
	if n > 0 {
		query += ` LIMIT ?`
		args = append(args, n)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type head struct{ id, takenAt string }
	var heads []head
	for rows.Next() {
		var h head
		if err := rows.Scan(&h.id, &h.takenAt); err != nil {
			return nil, err
		}
		heads = append(heads, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]trend.Snapshot, 0, len(heads))
	for _, h := range heads {
		snap, err := s.loadSnapshot(ctx, h.id, h.takenAt)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}

// Prune deletes the oldest snapshots beyond keep; item and source rows
// cascade.
func (s *sqliteStore) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		keep = 1
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY taken_at DESC, id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *sqliteStore) loadSnapshot(ctx context.Context, id, takenAt string) (trend.Snapshot, error) {
	ts, err := time.Parse(time.RFC3339Nano, takenAt)
	if err != nil {
		return trend.Snapshot{}, fmt.Errorf("snapshot %s: bad timestamp: %w", id, err)
	}

	snap := trend.Snapshot{
		ID:        id,
		Timestamp: ts,
		Sources:   make(map[string]trend.SourceStatus),
	}

	srcRows, err := s.db.QueryContext(ctx,
		`SELECT source, count, status FROM snapshot_sources WHERE snapshot_id = ?`, id)
	if err != nil {
		return trend.Snapshot{}, err
	}
	defer srcRows.Close()
	for srcRows.Next() {
		var source string
		var st trend.SourceStatus
		if err := srcRows.Scan(&source, &st.Count, &st.Status); err != nil {
			return trend.Snapshot{}, err
		}
		snap.Sources[source] = st
	}
	if err := srcRows.Err(); err != nil {
		return trend.Snapshot{}, err
	}

	itemRows, err := s.db.QueryContext(ctx, `
		SELECT item_id, source, title, url, score, category, fetched_at, extra
		FROM snapshot_items WHERE snapshot_id = ? ORDER BY pos`, id)
	if err != nil {
		return trend.Snapshot{}, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it trend.Item
		var fetchedAt, extra string
		if err := itemRows.Scan(&it.ID, &it.Source, &it.Title, &it.URL, &it.Score,
			&it.Category, &fetchedAt, &extra); err != nil {
			return trend.Snapshot{}, err
		}
		if fetchedAt != "" {
			if t, err := time.Parse(time.RFC3339Nano, fetchedAt); err == nil {
				it.Timestamp = t
			}
		}
		if extra != "" {
			if err := json.Unmarshal([]byte(extra), &it.Extra); err != nil {
				return trend.Snapshot{}, fmt.Errorf("snapshot %s: bad extra: %w", id, err)
			}
		}
		snap.Items = append(snap.Items, it)
	}
	return snap, itemRows.Err()
}
