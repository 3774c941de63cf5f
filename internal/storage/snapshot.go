package storage

import (
	"context"
	"time"

	"model_rankings/internal/models"
)

// Snapshot is one durable catalog capture for a single source. The document
// is fully self-contained so concurrent writers resolve last-write-wins.
type Snapshot struct {
	Data        []models.RawModel `json:"data"`
	Timestamp   int64             `json:"timestamp"` // epoch milliseconds
	LastUpdated string            `json:"last_updated"`
}

// NewSnapshot captures a catalog at the given instant.
func NewSnapshot(data []models.RawModel, now time.Time) *Snapshot {
	return &Snapshot{
		Data:        data,
		Timestamp:   now.UnixMilli(),
		LastUpdated: now.UTC().Format(time.RFC3339),
	}
}

// Age returns how old the snapshot is relative to now.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(s.Timestamp))
}

// SnapshotStore persists one snapshot per source so a process restart does
// not force a live fetch. Durability is an optimization, not a correctness
// requirement: Load reports (nil, nil) for missing, corrupt or stale
// snapshots, and callers treat Save failures as log-and-continue.
type SnapshotStore interface {
	// Load returns the snapshot for a source, or nil if absent or older
	// than the store's TTL.
	Load(ctx context.Context, source string) (*Snapshot, error)

	// Save overwrites the snapshot for a source.
	Save(ctx context.Context, source string, data []models.RawModel) error

	// Delete removes the snapshot for a source, forcing a cold fetch.
	Delete(ctx context.Context, source string) error
}
