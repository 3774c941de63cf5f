package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"model_rankings/internal/models"
	"model_rankings/internal/utils"
)

// DiskSnapshotStore keeps one JSON document per source under a fixed cache
// directory. Writes go through a temp file and rename so readers only ever
// see an entirely old or entirely new snapshot, never a torn mix.
type DiskSnapshotStore struct {
	dir    string
	ttl    time.Duration
	logger *utils.Logger
}

// NewDiskSnapshotStore creates a store rooted at dir. Snapshots older than
// ttl read as absent.
func NewDiskSnapshotStore(dir string, ttl time.Duration) *DiskSnapshotStore {
	return &DiskSnapshotStore{
		dir:    dir,
		ttl:    ttl,
		logger: utils.NewLogger("disk-snapshot", utils.Info),
	}
}

func (s *DiskSnapshotStore) path(source string) string {
	return filepath.Join(s.dir, source+".json")
}

// Load reads and validates the snapshot for a source. Missing files, parse
// failures and stale snapshots all report absent rather than an error.
func (s *DiskSnapshotStore) Load(_ context.Context, source string) (*Snapshot, error) {
	raw, err := os.ReadFile(s.path(source))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("snapshot read failed", "source", source, "error", err)
		}
		return nil, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.logger.Warn("snapshot parse failed", "source", source, "error", err)
		return nil, nil
	}

	if snap.Age(time.Now()) > s.ttl {
		return nil, nil
	}
	return &snap, nil
}

// Save writes the whole snapshot atomically (temp file + rename).
func (s *DiskSnapshotStore) Save(_ context.Context, source string, data []models.RawModel) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", s.dir, err)
	}

	raw, err := json.Marshal(NewSnapshot(data, time.Now()))
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot for %s: %w", source, err)
	}

	tmp, err := os.CreateTemp(s.dir, source+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot for %s: %w", source, err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot for %s: %w", source, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close snapshot for %s: %w", source, err)
	}

	if err := os.Rename(tmp.Name(), s.path(source)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace snapshot for %s: %w", source, err)
	}
	return nil
}

// Delete removes the snapshot file. A missing file is not an error.
func (s *DiskSnapshotStore) Delete(_ context.Context, source string) error {
	if err := os.Remove(s.path(source)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot for %s: %w", source, err)
	}
	return nil
}
