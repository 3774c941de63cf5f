package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"model_rankings/internal/models"
)

const (
	openRouterDefaultBaseURL = "https://openrouter.ai/api/v1"
	openRouterTimeout        = 15 * time.Second
)

// OpenRouterSource fetches the public model catalog from OpenRouter. It is
// the only live catalog source.
type OpenRouterSource struct {
	client  *http.Client
	baseURL string
}

// OpenRouterConfig holds settings for the OpenRouter client.
type OpenRouterConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewOpenRouterSource creates the catalog client. The request timeout is
// enforced by the client itself, independent of caller cancellation.
func NewOpenRouterSource(cfg OpenRouterConfig) *OpenRouterSource {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openRouterDefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = openRouterTimeout
	}

	return &OpenRouterSource{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL: baseURL,
	}
}

// Name returns the source identifier.
func (s *OpenRouterSource) Name() string {
	return "openrouter"
}

// Fetch retrieves the full model catalog.
func (s *OpenRouterSource) Fetch(ctx context.Context) ([]models.RawModel, error) {
	url := s.baseURL + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog request returned status %d", resp.StatusCode)
	}

	var catalog models.RawCatalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	return catalog.Data, nil
}

// Close releases idle connections.
func (s *OpenRouterSource) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
