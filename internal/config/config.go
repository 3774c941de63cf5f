package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds configuration for the rankings service.
type Config struct {
	HTTPPort      string
	Admin         AdminConfig
	Cache         CacheConfig
	Source        SourceConfig
	Redis         RedisConfig
	RequestLogger RequestLoggerConfig
}

// AdminConfig holds the admin write-path credentials.
type AdminConfig struct {
	Key       string // plaintext admin key; ignored when KeyHash is set
	KeyHash   string // bcrypt hash of the admin key
	JWTSecret []byte // signs short-lived admin session tokens
}

// CacheConfig holds the cache tier settings.
type CacheConfig struct {
	Dir         string        // snapshot directory for the disk backend
	Backend     string        // "disk" or "redis"
	MemoryTTL   time.Duration // memory-tier entry lifetime
	SnapshotTTL time.Duration // snapshot staleness threshold
}

// SourceConfig holds catalog source settings.
type SourceConfig struct {
	OpenRouterBaseURL string
	FetchTimeout      time.Duration
}

// RedisConfig holds Redis connection settings for the redis cache backend.
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

// RequestLoggerConfig holds settings for the JSONL request logger.
type RequestLoggerConfig struct {
	FilePathTemplate string
	MaxSize          int64
	MaxFiles         int
	BufferSize       int
	FlushInterval    time.Duration
}

func getEnvInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getEnvInt64(key string, defaultValue int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	intVal, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultValue
	}
	return intVal
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(val)
	if err != nil {
		return defaultValue
	}

	return duration
}

func getEnvString(key string, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	return val
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort: getEnvString("HTTP_PORT", "8080"),
		Admin: AdminConfig{
			Key:       getEnvString("ADMIN_API_KEY", ""),
			KeyHash:   getEnvString("ADMIN_API_KEY_HASH", ""),
			JWTSecret: []byte(getEnvString("ADMIN_JWT_SECRET", "supersecretkey")),
		},
		Cache: CacheConfig{
			Dir:         getEnvString("CACHE_DIR", "./cache"),
			Backend:     getEnvString("CACHE_BACKEND", "disk"),
			MemoryTTL:   getEnvDuration("CACHE_MEMORY_TTL", 1*time.Hour),
			SnapshotTTL: getEnvDuration("CACHE_SNAPSHOT_TTL", 24*time.Hour),
		},
		Source: SourceConfig{
			OpenRouterBaseURL: getEnvString("OPENROUTER_BASE_URL", ""),
			FetchTimeout:      getEnvDuration("SOURCE_FETCH_TIMEOUT", 15*time.Second),
		},
		Redis: RedisConfig{
			Address:      getEnvString("REDIS_ADDRESS", "localhost:6379"),
			Password:     getEnvString("REDIS_PASSWORD", ""),
			DB:           getEnvInt("REDIS_DB", 0),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		RequestLogger: RequestLoggerConfig{
			FilePathTemplate: getEnvString("REQUEST_LOGGER_FILE_PATH_TEMPLATE", "/var/log/model-rankings/requests-%s.jsonl"),
			MaxSize:          getEnvInt64("REQUEST_LOGGER_MAX_SIZE", 10_485_760),              // default 10 MB
			MaxFiles:         getEnvInt("REQUEST_LOGGER_MAX_FILES", 5),                        // default 5
			BufferSize:       getEnvInt("REQUEST_LOGGER_BUFFER_SIZE", 100),                    // default 100
			FlushInterval:    getEnvDuration("REQUEST_LOGGER_FLUSH_INTERVAL", 60*time.Second), // default 60 seconds
		},
	}

	return cfg, nil
}
