package sources

import (
	"context"
	"sync"
	"time"

	"model_rankings/internal/models"
	"model_rankings/internal/storage"
	"model_rankings/internal/utils"
)

// CachedFetcher layers the memory cache and the snapshot store in front of
// a live source. The memory tier is always consulted before any I/O.
// Concurrent callers on a cache miss may each issue a redundant live fetch;
// catalog reads are idempotent so no coalescing is done.
type CachedFetcher struct {
	source    Source
	cache     *storage.MemoryCache
	snapshots storage.SnapshotStore
	memoryTTL time.Duration
	logger    *utils.Logger

	mu       sync.RWMutex
	lastSync time.Time
	healthy  bool
}

// NewCachedFetcher wires a live source to its cache tiers.
func NewCachedFetcher(source Source, cache *storage.MemoryCache, snapshots storage.SnapshotStore, memoryTTL time.Duration) *CachedFetcher {
	return &CachedFetcher{
		source:    source,
		cache:     cache,
		snapshots: snapshots,
		memoryTTL: memoryTTL,
		logger:    utils.NewLogger("fetcher", utils.Info),
	}
}

// Name returns the underlying source name.
func (f *CachedFetcher) Name() string {
	return f.source.Name()
}

// Fetch returns the source catalog, preferring memory, then the snapshot
// store, then a live fetch. A live-fetch failure degrades to an empty
// catalog (logged, never propagated) so the aggregation pipeline keeps
// running with whatever the other sources contributed.
func (f *CachedFetcher) Fetch(ctx context.Context) []models.RawModel {
	name := f.source.Name()

	if data, ok := f.cache.Get(name); ok {
		if ts, ok := f.cache.Timestamp(name); ok {
			f.record(ts, true)
		}
		return data
	}

	if snap, err := f.snapshots.Load(ctx, name); err == nil && snap != nil {
		f.cache.Set(name, snap.Data, f.memoryTTL)
		f.record(time.UnixMilli(snap.Timestamp), true)
		return snap.Data
	}

	data, err := f.source.Fetch(ctx)
	if err != nil {
		f.logger.Error("live fetch failed", "source", name, "error", err)
		f.record(time.Time{}, false)
		return []models.RawModel{}
	}

	f.cache.Set(name, data, f.memoryTTL)
	if err := f.snapshots.Save(ctx, name, data); err != nil {
		// Snapshot durability is best-effort.
		f.logger.Warn("snapshot write failed", "source", name, "error", err)
	}
	f.record(time.Now(), true)

	f.logger.Info("live fetch succeeded", "source", name, "models", len(data))
	return data
}

// Invalidate drops the snapshot for this source, forcing the next miss to
// go live.
func (f *CachedFetcher) Invalidate(ctx context.Context) error {
	return f.snapshots.Delete(ctx, f.source.Name())
}

// LastSync returns when the currently served catalog was captured.
func (f *CachedFetcher) LastSync() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastSync
}

// Healthy reports whether the most recent fetch produced usable data.
func (f *CachedFetcher) Healthy() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.healthy
}

func (f *CachedFetcher) record(ts time.Time, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !ts.IsZero() {
		f.lastSync = ts
	}
	f.healthy = ok
}
