package models

import (
	"strings"
	"time"
)

//
// ModelRanking (the unified ranking record)
//

// Modality classifies the primary input/output mode of a model.
type Modality string

const (
	ModalityText       Modality = "text"
	ModalityMultimodal Modality = "multimodal"
	ModalityCode       Modality = "code"
	ModalityEmbedding  Modality = "embedding"
)

// Availability describes the lifecycle state of a model.
type Availability string

const (
	AvailabilityActive     Availability = "active"
	AvailabilityInactive   Availability = "inactive"
	AvailabilityBeta       Availability = "beta"
	AvailabilityDeprecated Availability = "deprecated"
)

// Pricing holds costs normalized to USD per one million tokens.
type Pricing struct {
	PromptCost     float64 `json:"prompt_cost" db:"prompt_cost"`
	CompletionCost float64 `json:"completion_cost" db:"completion_cost"`
	Currency       string  `json:"currency" db:"currency"`
}

// RankingMetadata carries descriptive attributes of a ranked model.
type RankingMetadata struct {
	ContextLength  int          `json:"context_length"`
	ParameterCount string       `json:"parameter_count,omitempty"`
	ReleaseDate    string       `json:"release_date,omitempty"`
	Architecture   string       `json:"architecture,omitempty"`
	Modality       Modality     `json:"modality"`
	Availability   Availability `json:"availability"`
	Featured       bool         `json:"featured"`
}

// Performance holds observed latency/throughput figures. Present only when
// a performance-data source contributed.
type Performance struct {
	LatencyP50 float64 `json:"latency_p50"`
	LatencyP95 float64 `json:"latency_p95"`
	Throughput float64 `json:"throughput"`
}

// ModelRanking is the unified ranking record produced by aggregation.
// Records are always rebuilt wholesale, never field-patched.
type ModelRanking struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Provider       string             `json:"provider"`
	CompositeScore float64            `json:"composite_score"`
	CompositeRank  int                `json:"composite_rank"`
	Pricing        Pricing            `json:"pricing"`
	Benchmarks     map[string]float64 `json:"benchmarks"`
	Metadata       RankingMetadata    `json:"metadata"`
	Performance    *Performance       `json:"performance,omitempty"`
	Sources        map[string]bool    `json:"sources"`
	LastUpdated    time.Time          `json:"last_updated"`
	CreatedAt      time.Time          `json:"created_at"`
}

// Slug derives the stable record identifier from provider and name:
// lowercased, with runs of non-alphanumeric characters collapsed to a
// single "-". Idempotent across aggregation runs.
func Slug(provider, name string) string {
	var b strings.Builder
	b.Grow(len(provider) + len(name) + 1)

	dash := false
	write := func(s string) {
		for _, r := range strings.ToLower(s) {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
				dash = false
			} else if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	write(provider)
	if b.Len() > 0 && !dash {
		b.WriteByte('-')
		dash = true
	}
	write(name)

	return strings.Trim(b.String(), "-")
}
