package httpapi

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"model_rankings/internal/models"
	"model_rankings/internal/rankings"
	"model_rankings/internal/utils"
)

// rankingsCacheControl allows shared caches to serve the list for an hour
// and revalidate in the background for another half hour.
const rankingsCacheControl = "public, s-maxage=3600, stale-while-revalidate=1800"

type rankingsResponse struct {
	Models         []models.ModelRanking `json:"models"`
	Total          int                   `json:"total"`
	Page           int                   `json:"page"`
	Limit          int                   `json:"limit"`
	Pages          int                   `json:"pages"`
	LastSync       string                `json:"last_sync,omitempty"`
	SourcesStatus  map[string]bool       `json:"sources_status"`
	ProcessingTime int64                 `json:"processing_time"`
}

// handleGetRankings serves the read path: aggregate (through the cache
// tiers), then filter, sort and paginate per the query string.
func (d *Dependencies) handleGetRankings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	list, status, err := d.Rankings.Rankings(r.Context())
	if err != nil {
		utils.RespondWithTimedError(w, http.StatusInternalServerError,
			"Failed to aggregate rankings: "+err.Error(), time.Since(start).Milliseconds())
		return
	}

	result := rankings.Query(list, parseQueryOptions(r.URL.Query()))

	lastSync := ""
	if !status.LastSync.IsZero() {
		lastSync = status.LastSync.UTC().Format(time.RFC3339)
	}

	w.Header().Set("Cache-Control", rankingsCacheControl)
	utils.RespondWithJSON(w, http.StatusOK, rankingsResponse{
		Models:         result.Items,
		Total:          result.Total,
		Page:           result.Page,
		Limit:          result.Limit,
		Pages:          result.Pages,
		LastSync:       lastSync,
		SourcesStatus:  status.Sources,
		ProcessingTime: time.Since(start).Milliseconds(),
	})
}

// parseQueryOptions maps query-string parameters onto query options.
// Numeric parameters that fail to parse are treated as absent rather than
// rejected; both behaviors are defensible, this service picks the lenient
// one.
func parseQueryOptions(q url.Values) rankings.QueryOptions {
	opts := rankings.QueryOptions{
		Search:        q.Get("search"),
		Providers:     splitList(q.Get("providers")),
		Modalities:    splitList(q.Get("modalities")),
		Availability:  splitList(q.Get("availability")),
		MinScore:      parseFloatParam(q.Get("min_score")),
		MaxScore:      parseFloatParam(q.Get("max_score")),
		MinPromptCost: parseFloatParam(q.Get("min_prompt_cost")),
		MaxPromptCost: parseFloatParam(q.Get("max_prompt_cost")),
		FeaturedOnly:  q.Get("featured_only") == "true",
		SortField:     q.Get("sort"),
		SortOrder:     q.Get("order"),
		Page:          parseIntParam(q.Get("page"), 1),
		Limit:         parseIntParam(q.Get("limit"), rankings.DefaultLimit),
	}
	return opts
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFloatParam(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntParam(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return v
}
