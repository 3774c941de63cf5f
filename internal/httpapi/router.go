package httpapi

import (
	"fmt"
	"net/http"

	"model_rankings/internal/config"
	"model_rankings/internal/logging"
	"model_rankings/internal/middleware"
	"model_rankings/internal/rankings"
	"model_rankings/internal/sources"
	"model_rankings/internal/storage"
	"model_rankings/internal/utils"
)

// Dependencies aggregates all services the HTTP layer needs.
type Dependencies struct {
	Rankings      *rankings.Service
	RequestLogger *logging.RequestLogger
	Config        *config.Config
}

// NewRouter creates an HTTP handler with all dependencies wired up.
func NewRouter(cfg *config.Config) (http.Handler, *Dependencies, error) {
	cache := storage.NewMemoryCache()

	var snapshots storage.SnapshotStore
	switch cfg.Cache.Backend {
	case "", "disk":
		snapshots = storage.NewDiskSnapshotStore(cfg.Cache.Dir, cfg.Cache.SnapshotTTL)
	case "redis":
		store, err := storage.NewRedisSnapshotStore(storage.RedisConfig{
			Address:      cfg.Redis.Address,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}, cfg.Cache.SnapshotTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize Redis snapshot store: %w", err)
		}
		snapshots = store
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}

	openRouter := sources.NewOpenRouterSource(sources.OpenRouterConfig{
		BaseURL: cfg.Source.OpenRouterBaseURL,
		Timeout: cfg.Source.FetchTimeout,
	})
	fetcher := sources.NewCachedFetcher(openRouter, cache, snapshots, cfg.Cache.MemoryTTL)

	// The benchmark provider is not live yet; the stub keeps the merge
	// path wired so enabling it is a one-line swap here.
	bench := sources.NewDisabledBenchmarkSource("benchmarks")

	service := rankings.NewService([]*sources.CachedFetcher{fetcher}, bench, cache)

	requestLogger, err := logging.NewRequestLogger(
		cfg.RequestLogger.FilePathTemplate,
		cfg.RequestLogger.MaxSize,
		cfg.RequestLogger.MaxFiles,
		cfg.RequestLogger.BufferSize,
		cfg.RequestLogger.FlushInterval,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize request logger: %w", err)
	}

	deps := &Dependencies{
		Rankings:      service,
		RequestLogger: requestLogger,
		Config:        cfg,
	}

	mux := http.NewServeMux()
	registerRoutes(mux, deps, cfg)

	handler := middleware.RequestLogging(requestLogger)(mux)
	return handler, deps, nil
}

func registerRoutes(mux *http.ServeMux, deps *Dependencies, cfg *config.Config) {
	adminAuth := middleware.AdminMiddleware(cfg)

	// Read path is public; the write path on the same route is gated.
	mux.HandleFunc("/api/v1/rankings", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			deps.handleGetRankings(w, r)
		case http.MethodPost:
			adminAuth(http.HandlerFunc(deps.handleAdminRankings)).ServeHTTP(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/admin/auth/login", deps.handleAdminLogin)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}
