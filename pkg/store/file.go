package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lmarten/coursemap/pkg/config"
)

// FileStore implements a file-based snapshot store for CLI usage.
// Each snapshot is one JSON file in a directory; the file name is derived
// from a hash of the snapshot name so arbitrary names stay filesystem-safe.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in the given directory, creating
// it if needed. An empty dir selects the standard data location
// (~/.local/share/coursemap/snapshots/).
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := config.DataDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "snapshots")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Save writes the snapshot to disk, replacing any snapshot with the same name.
func (s *FileStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(snap.Name), data, 0644)
}

// Get reads the snapshot saved under name.
func (s *FileStore) Get(ctx context.Context, name string) (*Snapshot, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", name, err)
	}
	return &snap, nil
}

// List returns all snapshots in the directory ordered by creation time.
// Unreadable or foreign files are skipped.
func (s *FileStore) List(ctx context.Context) ([]*Snapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var snaps []*Snapshot
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil || snap.Name == "" {
			continue
		}
		snaps = append(snaps, &snap)
	}

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].CreatedAt.Before(snaps[j].CreatedAt) })
	return snaps, nil
}

// Delete removes the snapshot saved under name.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// path returns the file path for a snapshot name.
func (s *FileStore) path(name string) string {
	sum := sha256.Sum256([]byte(name))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:16])+".json")
}
