package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisSnapshotStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisSnapshotStoreWithClient(client, ttl), mr
}

func TestRedisSnapshotRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t, 24*time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "openrouter", testCatalog()))

	snap, err := store.Load(ctx, "openrouter")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Len(t, snap.Data, 2)
}

func TestRedisSnapshotMissingReadsAbsent(t *testing.T) {
	store, _ := newTestRedisStore(t, 24*time.Hour)

	snap, err := store.Load(context.Background(), "openrouter")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestRedisSnapshotCorruptReadsAbsent(t *testing.T) {
	store, mr := newTestRedisStore(t, 24*time.Hour)

	require.NoError(t, mr.Set(redisSnapshotPrefix+"openrouter", "{not json"))

	snap, err := store.Load(context.Background(), "openrouter")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestRedisSnapshotStaleReadsAbsent(t *testing.T) {
	store, mr := newTestRedisStore(t, 24*time.Hour)

	stale := NewSnapshot(testCatalog(), time.Now().Add(-25*time.Hour))
	raw, err := json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, mr.Set(redisSnapshotPrefix+"openrouter", string(raw)))

	snap, err := store.Load(context.Background(), "openrouter")
	require.NoError(t, err)
	assert.Nil(t, snap, "the embedded timestamp stays authoritative")
}

func TestRedisSnapshotDelete(t *testing.T) {
	store, _ := newTestRedisStore(t, 24*time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "openrouter", testCatalog()))
	require.NoError(t, store.Delete(ctx, "openrouter"))

	snap, err := store.Load(ctx, "openrouter")
	require.NoError(t, err)
	assert.Nil(t, snap)
}
