package rankings

import (
	"context"
	"time"

	"model_rankings/internal/models"
	"model_rankings/internal/sources"
	"model_rankings/internal/storage"
	"model_rankings/internal/utils"
)

// Status describes the provenance of one aggregation pass.
type Status struct {
	LastSync time.Time
	Sources  map[string]bool
}

// Service runs the full pipeline: cached catalog fetches, benchmark merge,
// aggregation. It owns the memory cache shared by its fetchers so admin
// actions can invalidate all tiers in one place.
type Service struct {
	fetchers []*sources.CachedFetcher
	bench    sources.BenchmarkSource
	cache    *storage.MemoryCache
	logger   *utils.Logger
}

// NewService wires the pipeline together.
func NewService(fetchers []*sources.CachedFetcher, bench sources.BenchmarkSource, cache *storage.MemoryCache) *Service {
	return &Service{
		fetchers: fetchers,
		bench:    bench,
		cache:    cache,
		logger:   utils.NewLogger("rankings", utils.Info),
	}
}

// Rankings produces the aggregated, ranked model list. Source-level
// failures have already degraded to empty catalogs inside the fetchers;
// an aggregation failure propagates to the caller.
func (s *Service) Rankings(ctx context.Context) ([]models.ModelRanking, Status, error) {
	catalogs := make([]Catalog, 0, len(s.fetchers))
	for _, fetcher := range s.fetchers {
		catalogs = append(catalogs, Catalog{
			Source: fetcher.Name(),
			Models: fetcher.Fetch(ctx),
		})
	}

	bench, err := s.bench.Fetch(ctx)
	if err != nil {
		// Benchmark data is an enrichment; treat its failure like any
		// other soft source failure.
		s.logger.Error("benchmark fetch failed", "source", s.bench.Name(), "error", err)
		bench = sources.BenchmarkData{}
	}

	list, err := Aggregate(catalogs, bench, s.bench.Name(), time.Now())
	if err != nil {
		return nil, Status{}, err
	}

	return list, s.status(len(bench) > 0), nil
}

// Refresh drops the memory tier (and with force, the snapshots) and runs a
// fresh aggregation pass. Returns the number of records produced.
func (s *Service) Refresh(ctx context.Context, force bool) (int, error) {
	s.cache.Clear()
	if force {
		for _, fetcher := range s.fetchers {
			if err := fetcher.Invalidate(ctx); err != nil {
				s.logger.Warn("snapshot invalidation failed", "source", fetcher.Name(), "error", err)
			}
		}
	}

	list, _, err := s.Rankings(ctx)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// ClearCache drops both cache tiers without refetching.
func (s *Service) ClearCache(ctx context.Context) error {
	s.cache.Clear()
	for _, fetcher := range s.fetchers {
		if err := fetcher.Invalidate(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) status(benchContributed bool) Status {
	status := Status{Sources: make(map[string]bool, len(s.fetchers)+1)}
	for _, fetcher := range s.fetchers {
		status.Sources[fetcher.Name()] = fetcher.Healthy()
		if sync := fetcher.LastSync(); sync.After(status.LastSync) {
			status.LastSync = sync
		}
	}
	status.Sources[s.bench.Name()] = benchContributed
	return status
}
