package rankings

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"model_rankings/internal/models"
)

const (
	// DefaultLimit is the page size when the caller does not specify one.
	DefaultLimit = 50
	// MaxLimit bounds the page size to keep responses small.
	MaxLimit = 100
	// DefaultSortField orders by dense rank when no sort is requested.
	DefaultSortField = "composite_rank"
)

// QueryOptions are the filter/sort/paginate inputs. Nil range bounds mean
// "no constraint"; empty membership lists likewise.
type QueryOptions struct {
	Search        string
	Providers     []string
	Modalities    []string
	Availability  []string
	MinScore      *float64
	MaxScore      *float64
	MinPromptCost *float64
	MaxPromptCost *float64
	FeaturedOnly  bool
	SortField     string
	SortOrder     string // "asc" or "desc"
	Page          int
	Limit         int
}

// QueryResult is one page of the filtered list plus the pre-slice count.
type QueryResult struct {
	Items []models.ModelRanking
	Total int
	Page  int
	Limit int
	Pages int
}

// Query applies search, filters, sorting and pagination over an aggregated
// list. Pure and stateless; the input slice is not modified.
func Query(items []models.ModelRanking, opts QueryOptions) QueryResult {
	filtered := make([]models.ModelRanking, 0, len(items))
	for _, item := range items {
		if matches(item, opts) {
			filtered = append(filtered, item)
		}
	}

	sortRankings(filtered, opts.SortField, opts.SortOrder)

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}

	total := len(filtered)
	pages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return QueryResult{
		Items: filtered[start:end],
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
}

func matches(item models.ModelRanking, opts QueryOptions) bool {
	if opts.Search != "" {
		needle := strings.ToLower(opts.Search)
		if !strings.Contains(strings.ToLower(item.Name), needle) &&
			!strings.Contains(strings.ToLower(item.Provider), needle) {
			return false
		}
	}

	if len(opts.Providers) > 0 && !contains(opts.Providers, item.Provider) {
		return false
	}
	if len(opts.Modalities) > 0 && !contains(opts.Modalities, string(item.Metadata.Modality)) {
		return false
	}
	if len(opts.Availability) > 0 && !contains(opts.Availability, string(item.Metadata.Availability)) {
		return false
	}

	if opts.MinScore != nil && item.CompositeScore < *opts.MinScore {
		return false
	}
	if opts.MaxScore != nil && item.CompositeScore > *opts.MaxScore {
		return false
	}
	if opts.MinPromptCost != nil && item.Pricing.PromptCost < *opts.MinPromptCost {
		return false
	}
	if opts.MaxPromptCost != nil && item.Pricing.PromptCost > *opts.MaxPromptCost {
		return false
	}

	if opts.FeaturedOnly && !item.Metadata.Featured {
		return false
	}

	return true
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// sortRankings orders records by a dotted field path over the record's
// JSON form, so callers can sort by nested fields like
// "pricing.prompt_cost" with the same names the API serializes.
func sortRankings(items []models.ModelRanking, field, order string) {
	if field == "" {
		field = DefaultSortField
	}
	descending := strings.EqualFold(order, "desc")

	// Resolve each record's sort key once up front.
	keys := make([]any, len(items))
	for i := range items {
		keys[i] = resolveField(&items[i], field)
	}

	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		cmp := compareValues(keys[idx[a]], keys[idx[b]])
		if descending {
			cmp = -cmp
		}
		return cmp < 0
	})

	sorted := make([]models.ModelRanking, len(items))
	for i, j := range idx {
		sorted[i] = items[j]
	}
	copy(items, sorted)
}

// resolveField walks a dotted path through the JSON tree of a record.
// A missing segment yields nil for that record.
func resolveField(item *models.ModelRanking, path string) any {
	raw, err := json.Marshal(item)
	if err != nil {
		return nil
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil
	}

	var current any = tree
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		value, ok := node[segment]
		if !ok {
			return nil
		}
		current = value
	}
	return current
}

// compareValues orders two resolved sort keys: both-nil equal, nil sorts
// first ascending, numbers numerically, strings lexically, anything mixed
// by stringified comparison.
func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	af, aNum := a.(float64)
	bf, bNum := b.(float64)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as, aStr := a.(string)
	bs, bStr := b.(string)
	if aStr && bStr {
		return strings.Compare(as, bs)
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
