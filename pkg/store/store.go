// Package store persists named catalog snapshots.
//
// A snapshot is a grouped catalog saved under a caller-chosen name so it
// can be listed, re-exported, or served later. The Store interface has
// implementations for different backends:
//   - file: JSON files on disk for CLI usage (default)
//   - redis: Redis-backed storage for shared deployments
//   - mongo: MongoDB-backed storage
//
// # Usage
//
// Create a store:
//
//	// CLI
//	st, err := store.NewFileStore("") // uses ~/.local/share/coursemap/snapshots/
//
//	// Shared
//	st := store.NewRedisStore(redis.NewClient(&redis.Options{Addr: addr}))
//
// Save and retrieve snapshots:
//
//	snap := store.NewSnapshot("fall-2026", c)
//	if err := st.Save(ctx, snap); err != nil {
//	    return err
//	}
//	snap, err := st.Get(ctx, "fall-2026")
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lmarten/coursemap/pkg/catalog"
)

// ErrNotFound is returned by Get and Delete when no snapshot exists under
// the given name.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is a named, persisted catalog.
type Snapshot struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Catalog   *catalog.Catalog `json:"catalog"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewSnapshot creates a snapshot of c under the given name with a fresh
// random ID and the current time.
func NewSnapshot(name string, c *catalog.Catalog) *Snapshot {
	return &Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		Catalog:   c,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface for snapshot storage backends.
// Saving under an existing name replaces the previous snapshot.
type Store interface {
	// Save stores a snapshot, overwriting any snapshot with the same name.
	Save(ctx context.Context, snap *Snapshot) error

	// Get retrieves a snapshot by name.
	// Returns ErrNotFound if no snapshot exists under the name.
	Get(ctx context.Context, name string) (*Snapshot, error)

	// List returns all snapshots ordered by creation time.
	List(ctx context.Context) ([]*Snapshot, error)

	// Delete removes a snapshot by name.
	// Returns ErrNotFound if no snapshot exists under the name.
	Delete(ctx context.Context, name string) error
}
