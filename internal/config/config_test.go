package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "./cache", cfg.Cache.Dir)
	assert.Equal(t, "disk", cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.MemoryTTL)
	assert.Equal(t, 24*time.Hour, cfg.Cache.SnapshotTTL)
	assert.Equal(t, 15*time.Second, cfg.Source.FetchTimeout)
	assert.Empty(t, cfg.Source.OpenRouterBaseURL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, int64(10_485_760), cfg.RequestLogger.MaxSize)
	assert.Equal(t, 5, cfg.RequestLogger.MaxFiles)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ADMIN_API_KEY", "env-admin-key")
	t.Setenv("ADMIN_JWT_SECRET", "env-jwt-secret")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("CACHE_MEMORY_TTL", "30m")
	t.Setenv("CACHE_SNAPSHOT_TTL", "48h")
	t.Setenv("OPENROUTER_BASE_URL", "http://localhost:9999/api/v1")
	t.Setenv("SOURCE_FETCH_TIMEOUT", "5s")
	t.Setenv("REDIS_ADDRESS", "redis.internal:6380")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "env-admin-key", cfg.Admin.Key)
	assert.Equal(t, []byte("env-jwt-secret"), cfg.Admin.JWTSecret)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Cache.MemoryTTL)
	assert.Equal(t, 48*time.Hour, cfg.Cache.SnapshotTTL)
	assert.Equal(t, "http://localhost:9999/api/v1", cfg.Source.OpenRouterBaseURL)
	assert.Equal(t, 5*time.Second, cfg.Source.FetchTimeout)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Address)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadMalformedValuesFallBack(t *testing.T) {
	t.Setenv("CACHE_MEMORY_TTL", "not-a-duration")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("REQUEST_LOGGER_MAX_SIZE", "huge")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.Cache.MemoryTTL)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, int64(10_485_760), cfg.RequestLogger.MaxSize)
}
