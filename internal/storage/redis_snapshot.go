package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"model_rankings/internal/models"
	"model_rankings/internal/utils"
)

const redisSnapshotPrefix = "rankings:snapshot:"

// RedisSnapshotStore keeps snapshots in Redis so multiple pods share one
// durable tier. Same contract as the disk store; the snapshot's embedded
// timestamp stays authoritative for staleness, with the Redis key TTL as a
// backstop.
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *utils.Logger
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Address      string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewRedisSnapshotStore connects to Redis and verifies the connection.
func NewRedisSnapshotStore(cfg RedisConfig, ttl time.Duration) (*RedisSnapshotStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSnapshotStore{
		client: client,
		ttl:    ttl,
		logger: utils.NewLogger("redis-snapshot", utils.Info),
	}, nil
}

// NewRedisSnapshotStoreWithClient wraps an existing client. Used in tests.
func NewRedisSnapshotStoreWithClient(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{
		client: client,
		ttl:    ttl,
		logger: utils.NewLogger("redis-snapshot", utils.Info),
	}
}

// Load returns the snapshot for a source, absent on miss, parse failure or
// staleness.
func (s *RedisSnapshotStore) Load(ctx context.Context, source string) (*Snapshot, error) {
	raw, err := s.client.Get(ctx, redisSnapshotPrefix+source).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
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

// Save overwrites the snapshot for a source.
func (s *RedisSnapshotStore) Save(ctx context.Context, source string, data []models.RawModel) error {
	raw, err := json.Marshal(NewSnapshot(data, time.Now()))
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot for %s: %w", source, err)
	}

	if err := s.client.Set(ctx, redisSnapshotPrefix+source, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot for %s: %w", source, err)
	}
	return nil
}

// Delete removes the snapshot key.
func (s *RedisSnapshotStore) Delete(ctx context.Context, source string) error {
	if err := s.client.Del(ctx, redisSnapshotPrefix+source).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot for %s: %w", source, err)
	}
	return nil
}

// Close releases the underlying Redis connection pool.
func (s *RedisSnapshotStore) Close() error {
	return s.client.Close()
}
