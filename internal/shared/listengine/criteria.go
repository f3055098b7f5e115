package listengine

import (
	"maps"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// DefaultPageSize is the window size used when a view does not configure one.
const DefaultPageSize = 8

// MaxPageSize bounds the window size accepted from callers.
const MaxPageSize = 100

// Criteria captures the search, sort, page and facet preferences of a list view.
type Criteria struct {
	Search    string            `json:"search,omitempty"`
	SortKey   string            `json:"sortKey,omitempty"`
	Direction Direction         `json:"direction,omitempty"`
	Page      int               `json:"page"`
	Filters   map[string]string `json:"filters,omitempty"`
}

// Normalize returns a sanitized copy applying defaults. A zero page becomes the first page.
func (c Criteria) Normalize() Criteria {
	normalized := c
	if normalized.Page <= 0 {
		normalized.Page = 1
	}
	normalized.Search = strings.TrimSpace(normalized.Search)
	normalized.SortKey = strings.TrimSpace(normalized.SortKey)
	if normalized.Direction != "" {
		normalized.Direction = ParseDirection(string(normalized.Direction))
	}
	normalized.Filters = sanitizeFilters(normalized.Filters)
	return normalized
}

// Refine returns c updated with the query parameters present in values: q or search, sort
// or sortBy, order or sortOrder, page, and the listed facets. Absent parameters keep their
// current value and an empty one clears it. Without a page parameter the page is left to
// Engine.Apply, which keeps it unless the search or the filters changed.
func (c Criteria) Refine(values url.Values, facets []string) Criteria {
	next := c
	next.Filters = maps.Clone(c.Filters)
	if search, ok := lookup(values, "q", "search"); ok {
		next.Search = search
	}
	if sortKey, ok := lookup(values, "sort", "sortBy"); ok {
		next.SortKey = sortKey
	}
	if order, ok := lookup(values, "order", "sortOrder"); ok {
		next.Direction = ""
		if order != "" {
			next.Direction = ParseDirection(order)
		}
	}
	next.Page = 0
	if raw, ok := lookup(values, "page"); ok {
		if page, err := strconv.Atoi(raw); err == nil {
			next.Page = page
		}
	}
	for _, facet := range facets {
		value, ok := lookup(values, facet)
		if !ok {
			continue
		}
		if next.Filters == nil {
			next.Filters = make(map[string]string)
		}
		next.Filters[strings.ToLower(facet)] = value
	}
	return next
}

// lookup returns the first of keys present in values, trimmed.
func lookup(values url.Values, keys ...string) (string, bool) {
	for _, key := range keys {
		if values.Has(key) {
			return strings.TrimSpace(values.Get(key)), true
		}
	}
	return "", false
}

func sanitizeFilters(filters map[string]string) map[string]string {
	if len(filters) == 0 {
		return nil
	}
	sanitized := make(map[string]string, len(filters))
	for key, value := range filters {
		trimmedKey := strings.TrimSpace(key)
		trimmedValue := strings.TrimSpace(value)
		if trimmedKey == "" || trimmedValue == "" || strings.EqualFold(trimmedValue, "all") {
			continue
		}
		sanitized[strings.ToLower(trimmedKey)] = trimmedValue
	}
	if len(sanitized) == 0 {
		return nil
	}
	return sanitized
}

func canonicalFiltersKey(filters map[string]string) string {
	if len(filters) == 0 {
		return ""
	}
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for index, key := range keys {
		if index > 0 {
			builder.WriteString(";")
		}
		builder.WriteString(key)
		builder.WriteString("=")
		builder.WriteString(strings.ToLower(filters[key]))
	}
	return builder.String()
}
