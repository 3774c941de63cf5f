package models

import (
	"strconv"
	"strings"
)

//
// RawModel (as-fetched catalog record)
//

// RawCatalogResponse is the envelope returned by the catalog endpoint.
type RawCatalogResponse struct {
	Data []RawModel `json:"data"`
}

// RawModel is the source-specific representation of a model before
// normalization. The schema follows the OpenRouter models endpoint.
type RawModel struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Created       int64           `json:"created,omitempty"`
	ContextLength int             `json:"context_length"`
	Pricing       RawPricing      `json:"pricing"`
	Architecture  RawArchitecture `json:"architecture,omitempty"`
	TopProvider   RawTopProvider  `json:"top_provider,omitempty"`
}

// RawPricing reports costs per single token, as decimal strings.
type RawPricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
	Request    string `json:"request,omitempty"`
	Image      string `json:"image,omitempty"`
}

// RawArchitecture holds model architecture details.
type RawArchitecture struct {
	Modality     string `json:"modality,omitempty"`
	Tokenizer    string `json:"tokenizer,omitempty"`
	InstructType string `json:"instruct_type,omitempty"`
}

// RawTopProvider describes the best provider serving this model upstream.
type RawTopProvider struct {
	MaxCompletionTokens int  `json:"max_completion_tokens,omitempty"`
	IsModerated         bool `json:"is_moderated,omitempty"`
}

// ParseCost parses a per-token cost string. Missing or malformed values
// parse to 0 so a single bad record cannot take down a whole catalog.
func ParseCost(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Provider returns the namespace portion of the raw identifier, i.e. the
// text before the first "/". Identifiers without a namespace map to
// themselves.
func (m RawModel) Provider() string {
	if i := strings.Index(m.ID, "/"); i >= 0 {
		return m.ID[:i]
	}
	return m.ID
}

// DisplayName returns the human-readable model name, falling back to the
// portion of the identifier after the namespace.
func (m RawModel) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	if i := strings.Index(m.ID, "/"); i >= 0 {
		return m.ID[i+1:]
	}
	return m.ID
}

// IsMultimodal reports whether the architecture tag indicates the model
// accepts non-text input (e.g. "text+image->text").
func (m RawModel) IsMultimodal() bool {
	modality := strings.ToLower(m.Architecture.Modality)
	return strings.Contains(modality, "image") || strings.Contains(modality, "multimodal")
}
