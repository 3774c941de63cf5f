package sources

import (
	"context"

	"model_rankings/internal/models"
)

// Source is implemented by each external catalog provider.
type Source interface {
	// Name returns the unique identifier for this source, used as the
	// cache and snapshot key.
	Name() string

	// Fetch retrieves the raw model catalog from the source.
	Fetch(ctx context.Context) ([]models.RawModel, error)
}

// BenchmarkEntry is the per-model contribution of a benchmark source.
type BenchmarkEntry struct {
	Benchmarks  map[string]float64
	Performance *models.Performance
}

// BenchmarkData maps lowercased model names to benchmark results.
type BenchmarkData map[string]BenchmarkEntry

// BenchmarkSource supplies benchmark and performance figures merged into
// the ranking records by name.
type BenchmarkSource interface {
	Name() string
	Fetch(ctx context.Context) (BenchmarkData, error)
}

// DisabledBenchmarkSource is the no-op integration point for a benchmark
// provider that is not currently live. Re-enabling the source is a
// one-line swap at construction; the merge path downstream stays intact.
type DisabledBenchmarkSource struct {
	name string
}

// NewDisabledBenchmarkSource creates a disabled stub under the given name.
func NewDisabledBenchmarkSource(name string) *DisabledBenchmarkSource {
	return &DisabledBenchmarkSource{name: name}
}

// Name returns the source identifier.
func (s *DisabledBenchmarkSource) Name() string {
	return s.name
}

// Fetch returns an empty result immediately.
func (s *DisabledBenchmarkSource) Fetch(_ context.Context) (BenchmarkData, error) {
	return BenchmarkData{}, nil
}
