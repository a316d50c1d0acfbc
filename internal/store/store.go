// Package store persists the compacted index snapshot.
//
// The snapshot is a single JSON file holding every index field except section
// bodies, which are dropped at save time to bound on-disk size. Absence and
// corruption both read back as "no index"; callers decide whether to rebuild.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	docerr "github.com/docdex/docdex/internal/errors"
	"github.com/docdex/docdex/internal/index"
)

// Store reads and writes the snapshot at a fixed path.
type Store struct {
	path string
	lock *flock.Flock
}

// New creates a Store for the given snapshot path.
// The write lock lives next to the snapshot.
func New(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the snapshot location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a snapshot file is present.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Save writes the compacted projection of idx. The write happens under a
// file lock and through a temp-file rename so readers never observe a
// partial snapshot.
func (s *Store) Save(idx *index.Index) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return docerr.StoreError("failed to create index directory", err)
	}

	if err := s.lock.Lock(); err != nil {
		return docerr.StoreError("failed to acquire index lock", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	data, err := json.MarshalIndent(idx.Compact(), "", "  ")
	if err != nil {
		return docerr.StoreError("failed to encode index", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return docerr.StoreError("failed to write index snapshot", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return docerr.StoreError(fmt.Sprintf("failed to move snapshot into place at %s", s.path), err)
	}
	return nil
}

// Load returns the compacted snapshot, or nil when none is available.
// A corrupt snapshot is treated as missing, never as a failure.
func (s *Store) Load() *index.Index {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var idx index.Index
	if err := json.Unmarshal(data, &idx); err != nil {
		slog.Warn("discarding unreadable index snapshot",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return nil
	}
	return &idx
}
