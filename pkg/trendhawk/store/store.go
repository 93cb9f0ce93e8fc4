// Package store defines the snapshot persistence boundary: save the
// current batch, load the latest, enumerate archives newest-first, prune
// beyond a retention count.
package store

import (
	"context"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

// Store persists and retrieves snapshots.
type Store interface {
	// SaveSnapshot archives the snapshot and makes it the latest.
	// A missing snapshot ID is assigned by the implementation.
	SaveSnapshot(ctx context.Context, snap trend.Snapshot) error

	// Latest returns the most recent snapshot, or internalerr.ErrNoSnapshot
	// when nothing has been saved yet.
	Latest(ctx context.Context) (trend.Snapshot, error)

	// Recent returns up to n archived snapshots, newest first.
	// n <= 0 returns every archive.
	Recent(ctx context.Context, n int) ([]trend.Snapshot, error)

	// Prune removes the oldest archives beyond keep and reports how many
	// were removed.
	Prune(ctx context.Context, keep int) (int, error)

	Close() error
}
