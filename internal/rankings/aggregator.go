package rankings

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"model_rankings/internal/models"
	"model_rankings/internal/sources"
)

// benchmarkWeights is the fixed weight table for the composite score.
// Weights sum to 1.0.
var benchmarkWeights = map[string]float64{
	"mmlu":          0.25,
	"gsm8k":         0.20,
	"hellaswag":     0.15,
	"arc_challenge": 0.15,
	"truthfulqa":    0.15,
	"big_bench":     0.10,
}

// featuredFragments is the curated allow-list of notable model name
// fragments. Matching is against the lowercased model name.
var featuredFragments = []string{
	"gpt-4",
	"gpt-5",
	"o1",
	"o3",
	"claude-3",
	"claude-4",
	"gemini",
	"llama-3",
	"mistral-large",
	"deepseek",
	"grok",
}

// Catalog pairs a source name with its raw model list.
type Catalog struct {
	Source string
	Models []models.RawModel
}

// Aggregate merges raw catalogs into the unified ranking list: it
// normalizes pricing to cost per million tokens, derives capability
// metadata, merges benchmark data by case-insensitive name match, computes
// the composite score, and assigns dense ranks over the score-sorted list.
// It is a pure function of its inputs; timestamps are stamped uniformly
// from now.
//
// Unlike source fetches, which degrade to empty catalogs, a malformed
// record that cannot be normalized aborts the whole run: operators must be
// able to tell a crashed pipeline from an empty catalog.
func Aggregate(catalogs []Catalog, bench sources.BenchmarkData, benchSource string, now time.Time) ([]models.ModelRanking, error) {
	var rankings []models.ModelRanking
	seen := make(map[string]int)

	for _, catalog := range catalogs {
		for _, raw := range catalog.Models {
			ranking, err := buildRanking(catalog.Source, raw, bench, benchSource, now)
			if err != nil {
				return nil, fmt.Errorf("aggregation failed for source %s: %w", catalog.Source, err)
			}

			// Distinct upstream models can normalize to the same slug;
			// later ones get a positional discriminator so ids stay
			// unique within a run.
			seen[ranking.ID]++
			if n := seen[ranking.ID]; n > 1 {
				ranking.ID = fmt.Sprintf("%s-%d", ranking.ID, n)
			}

			rankings = append(rankings, *ranking)
		}
	}

	// Ranks are a byproduct of the global sort, never assigned per record.
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].CompositeScore > rankings[j].CompositeScore
	})
	for i := range rankings {
		rankings[i].CompositeRank = i + 1
	}

	return rankings, nil
}

func buildRanking(source string, raw models.RawModel, bench sources.BenchmarkData, benchSource string, now time.Time) (*models.ModelRanking, error) {
	provider := raw.Provider()
	name := raw.DisplayName()

	id := models.Slug(provider, name)
	if id == "" {
		return nil, fmt.Errorf("model %q has no usable identifier", raw.ID)
	}

	promptPerToken := models.ParseCost(raw.Pricing.Prompt)
	completionPerToken := models.ParseCost(raw.Pricing.Completion)

	benchmarks := make(map[string]float64)
	var performance *models.Performance
	entry, hasBench := bench[strings.ToLower(name)]
	if hasBench {
		for k, v := range entry.Benchmarks {
			benchmarks[k] = v
		}
		performance = entry.Performance
	}

	ranking := &models.ModelRanking{
		ID:             id,
		Name:           name,
		Provider:       provider,
		CompositeScore: compositeScore(benchmarks, raw.ContextLength, promptPerToken),
		Pricing: models.Pricing{
			PromptCost:     promptPerToken * 1_000_000,
			CompletionCost: completionPerToken * 1_000_000,
			Currency:       "USD",
		},
		Benchmarks: benchmarks,
		Metadata: models.RankingMetadata{
			ContextLength: raw.ContextLength,
			Architecture:  raw.Architecture.Tokenizer,
			Modality:      deriveModality(raw),
			Availability:  deriveAvailability(raw),
			Featured:      isFeatured(name),
		},
		Performance: performance,
		Sources: map[string]bool{
			source:      true,
			benchSource: hasBench,
		},
		LastUpdated: now,
		CreatedAt:   now,
	}

	return ranking, nil
}

func deriveModality(raw models.RawModel) models.Modality {
	if raw.IsMultimodal() {
		return models.ModalityMultimodal
	}
	return models.ModalityText
}

func deriveAvailability(raw models.RawModel) models.Availability {
	id := strings.ToLower(raw.ID)
	switch {
	case strings.Contains(id, "deprecated"):
		return models.AvailabilityDeprecated
	case strings.Contains(id, "beta") || strings.Contains(id, "preview"):
		return models.AvailabilityBeta
	default:
		return models.AvailabilityActive
	}
}

func isFeatured(name string) bool {
	lower := strings.ToLower(name)
	for _, fragment := range featuredFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

// compositeScore computes the weighted benchmark average. Partial coverage
// is rescaled by the present weight sum, not penalized. With no weighted
// benchmarks at all (the common case today) it falls back to a heuristic:
// up to 30 points for context length saturating at 200K tokens, plus up to
// 20 points shrinking as the raw per-token prompt price rises.
func compositeScore(benchmarks map[string]float64, contextLength int, promptCostPerToken float64) float64 {
	var total, weightSum float64
	for key, weight := range benchmarkWeights {
		if score, ok := benchmarks[key]; ok {
			total += score * weight
			weightSum += weight
		}
	}

	if weightSum == 0 {
		contextScore := math.Min(float64(contextLength)/200_000, 1) * 30
		priceScore := math.Max(0, 1-promptCostPerToken) * 20
		return contextScore + priceScore
	}

	return total / weightSum
}
