package rankings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model_rankings/internal/models"
	"model_rankings/internal/sources"
)

func rawModel(id string, contextLength int, prompt, completion string) models.RawModel {
	return models.RawModel{
		ID:            id,
		ContextLength: contextLength,
		Pricing: models.RawPricing{
			Prompt:     prompt,
			Completion: completion,
		},
	}
}

func aggregateOne(t *testing.T, raw ...models.RawModel) []models.ModelRanking {
	t.Helper()
	list, err := Aggregate(
		[]Catalog{{Source: "openrouter", Models: raw}},
		sources.BenchmarkData{}, "benchmarks", time.Now(),
	)
	require.NoError(t, err)
	return list
}

func TestAggregateIdempotentIDs(t *testing.T) {
	raw := rawModel("openai/gpt-4", 128000, "0.00003", "0.00006")

	first := aggregateOne(t, raw)
	second := aggregateOne(t, raw)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "openai-gpt-4", first[0].ID)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestAggregatePricingNormalization(t *testing.T) {
	list := aggregateOne(t, rawModel("x/y", 4096, "0.000002", "0.000004"))

	require.Len(t, list, 1)
	assert.Equal(t, 2.0, list[0].Pricing.PromptCost)
	assert.Equal(t, 4.0, list[0].Pricing.CompletionCost)
	assert.Equal(t, "USD", list[0].Pricing.Currency)
}

func TestAggregateRankPermutation(t *testing.T) {
	list := aggregateOne(t,
		rawModel("a/one", 8000, "0.00001", "0.00002"),
		rawModel("b/two", 32000, "0.00002", "0.00004"),
		rawModel("c/three", 200000, "0", "0"),
		rawModel("d/four", 0, "0.5", "0.5"),
	)

	require.Len(t, list, 4)
	ranks := make(map[int]bool)
	for _, r := range list {
		ranks[r.CompositeRank] = true
	}
	for want := 1; want <= len(list); want++ {
		assert.True(t, ranks[want], "missing rank %d", want)
	}

	// Sorted descending by score, rank 1 first.
	for i := 1; i < len(list); i++ {
		assert.GreaterOrEqual(t, list[i-1].CompositeScore, list[i].CompositeScore)
		assert.Equal(t, i+1, list[i].CompositeRank)
	}
}

func TestCompositeScoreFallback(t *testing.T) {
	// No benchmarks: 30 points for saturated context, 20 for a free model.
	list := aggregateOne(t, rawModel("a/max", 200000, "0", "0"))
	require.Len(t, list, 1)
	assert.InDelta(t, 50.0, list[0].CompositeScore, 1e-9)
}

func TestCompositeScoreWeightedAverageNotPenalized(t *testing.T) {
	// Only mmlu present: 80*0.25 / 0.25 = 80, not 20.
	score := compositeScore(map[string]float64{"mmlu": 80}, 0, 0)
	assert.InDelta(t, 80.0, score, 1e-9)
}

func TestCompositeScorePartialCoverage(t *testing.T) {
	score := compositeScore(map[string]float64{"mmlu": 90, "gsm8k": 45}, 0, 0)
	// (90*0.25 + 45*0.20) / 0.45
	assert.InDelta(t, (90*0.25+45*0.20)/0.45, score, 1e-9)
}

func TestAggregateEndToEndScenario(t *testing.T) {
	list := aggregateOne(t,
		rawModel("openai/gpt-4", 128000, "0.00003", "0.00006"),
		rawModel("anthropic/claude-3-opus", 200000, "0.000015", "0.000075"),
	)
	require.Len(t, list, 2)

	byID := make(map[string]models.ModelRanking, 2)
	for _, r := range list {
		byID[r.ID] = r
	}

	gpt4 := byID["openai-gpt-4"]
	opus := byID["anthropic-claude-3-opus"]

	assert.InDelta(t, 128000.0/200000*30+(1-0.00003)*20, gpt4.CompositeScore, 1e-9)
	assert.InDelta(t, 30+(1-0.000015)*20, opus.CompositeScore, 1e-9)

	assert.Equal(t, 1, opus.CompositeRank)
	assert.Equal(t, 2, gpt4.CompositeRank)
}

func TestAggregateIDCollisionDiscriminator(t *testing.T) {
	list := aggregateOne(t,
		rawModel("openai/gpt-4", 8000, "0.00001", "0.00002"),
		rawModel("openai/GPT 4", 8000, "0.00001", "0.00002"),
	)
	require.Len(t, list, 2)

	ids := map[string]bool{list[0].ID: true, list[1].ID: true}
	assert.True(t, ids["openai-gpt-4"])
	assert.True(t, ids["openai-gpt-4-2"])
}

func TestAggregateMalformedRecordPropagates(t *testing.T) {
	_, err := Aggregate(
		[]Catalog{{Source: "openrouter", Models: []models.RawModel{{ID: "///"}}}},
		sources.BenchmarkData{}, "benchmarks", time.Now(),
	)
	assert.Error(t, err)
}

func TestAggregateEmptyCatalog(t *testing.T) {
	list, err := Aggregate(
		[]Catalog{{Source: "openrouter", Models: nil}},
		sources.BenchmarkData{}, "benchmarks", time.Now(),
	)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAggregateBenchmarkMerge(t *testing.T) {
	raw := models.RawModel{
		ID:            "openai/gpt-4",
		Name:          "GPT-4",
		ContextLength: 128000,
		Pricing:       models.RawPricing{Prompt: "0.00003", Completion: "0.00006"},
	}
	bench := sources.BenchmarkData{
		"gpt-4": { // matched case-insensitively against the display name
			Benchmarks:  map[string]float64{"mmlu": 86.4},
			Performance: &models.Performance{LatencyP50: 420, LatencyP95: 1200, Throughput: 35},
		},
	}

	list, err := Aggregate(
		[]Catalog{{Source: "openrouter", Models: []models.RawModel{raw}}},
		bench, "benchmarks", time.Now(),
	)
	require.NoError(t, err)
	require.Len(t, list, 1)

	assert.InDelta(t, 86.4, list[0].CompositeScore, 1e-9)
	assert.Equal(t, 86.4, list[0].Benchmarks["mmlu"])
	require.NotNil(t, list[0].Performance)
	assert.Equal(t, 420.0, list[0].Performance.LatencyP50)
	assert.True(t, list[0].Sources["benchmarks"])
	assert.True(t, list[0].Sources["openrouter"])
}

func TestAggregateMetadataDerivation(t *testing.T) {
	multimodal := models.RawModel{
		ID:            "openai/gpt-4-vision",
		ContextLength: 128000,
		Pricing:       models.RawPricing{Prompt: "0.00001", Completion: "0.00003"},
		Architecture:  models.RawArchitecture{Modality: "text+image->text"},
	}
	beta := rawModel("google/gemini-ultra-preview", 32000, "0.00001", "0.00002")
	deprecated := rawModel("openai/text-davinci-003-deprecated", 4000, "0.00002", "0.00002")

	list := aggregateOne(t, multimodal, beta, deprecated)
	require.Len(t, list, 3)

	byID := make(map[string]models.ModelRanking, 3)
	for _, r := range list {
		byID[r.ID] = r
	}

	assert.Equal(t, models.ModalityMultimodal, byID["openai-gpt-4-vision"].Metadata.Modality)
	assert.Equal(t, models.AvailabilityBeta, byID["google-gemini-ultra-preview"].Metadata.Availability)
	assert.Equal(t, models.AvailabilityDeprecated, byID["openai-text-davinci-003-deprecated"].Metadata.Availability)
	assert.Equal(t, models.AvailabilityActive, byID["openai-gpt-4-vision"].Metadata.Availability)
}

func TestIsFeatured(t *testing.T) {
	assert.True(t, isFeatured("GPT-4 Turbo"))
	assert.True(t, isFeatured("Claude-3 Opus"))
	assert.True(t, isFeatured("Gemini Pro 1.5"))
	assert.False(t, isFeatured("community-finetune-7b"))
}

func TestAggregateTimestampsUniform(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	list, err := Aggregate(
		[]Catalog{{Source: "openrouter", Models: []models.RawModel{
			rawModel("a/one", 8000, "0.00001", "0.00002"),
			rawModel("b/two", 16000, "0.00001", "0.00002"),
		}}},
		sources.BenchmarkData{}, "benchmarks", now,
	)
	require.NoError(t, err)

	for _, r := range list {
		assert.Equal(t, now, r.LastUpdated)
		assert.Equal(t, now, r.CreatedAt)
	}
}
