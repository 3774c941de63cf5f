package storage

import (
	"sync"
	"time"

	"model_rankings/internal/models"
)

// cacheEntry is a cached catalog with its own expiry window.
type cacheEntry struct {
	data      []models.RawModel
	timestamp time.Time
	ttl       time.Duration
}

func (e cacheEntry) expired(now time.Time) bool {
	return now.Sub(e.timestamp) > e.ttl
}

// MemoryCache is the in-process tier of the catalog cache, keyed by source
// name. Entries are immutable snapshots; expired entries read as absent.
// Construct one per process and inject it, there is no package singleton.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewMemoryCache creates an empty memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached catalog for a source if present and unexpired.
func (c *MemoryCache) Get(source string) ([]models.RawModel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[source]
	if !found || entry.expired(time.Now()) {
		return nil, false
	}
	return entry.data, true
}

// Timestamp returns when the cached catalog for a source was stored,
// regardless of expiry.
func (c *MemoryCache) Timestamp(source string) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[source]
	if !found {
		return time.Time{}, false
	}
	return entry.timestamp, true
}

// Set stores or overwrites a catalog unconditionally, resetting its age.
func (c *MemoryCache) Set(source string, data []models.RawModel, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[source] = cacheEntry{
		data:      data,
		timestamp: time.Now(),
		ttl:       ttl,
	}
}

// Clear drops all entries. Used for forced refresh.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

// Len returns the number of entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
