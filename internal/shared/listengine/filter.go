package listengine

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Filter keeps the records whose searchable fields contain term, compared case-insensitively.
// An empty or blank term keeps every record. The result never aliases records.
func Filter[T any](records []T, schema Schema[T], term string) []T {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return append([]T(nil), records...)
	}

	folder := cases.Fold()
	needle := folder.String(trimmed)

	matched := make([]T, 0, len(records))
	for _, record := range records {
		if matchesSearch(record, schema, needle, folder) {
			matched = append(matched, record)
		}
	}
	return matched
}

func matchesSearch[T any](record T, schema Schema[T], needle string, folder cases.Caser) bool {
	for _, name := range schema.Searchable {
		field, ok := schema.Fields[name]
		if !ok {
			continue
		}
		for _, value := range searchTexts(field, record) {
			if value == "" {
				continue
			}
			if strings.Contains(folder.String(value), needle) {
				return true
			}
		}
	}
	return false
}

func searchTexts[T any](field Field[T], record T) []string {
	if texts := field.texts(record); texts != nil {
		return texts
	}
	if field.Number != nil {
		return []string{strconv.FormatFloat(field.Number(record), 'f', -1, 64)}
	}
	return nil
}

// FilterFacets keeps the records whose facet fields equal the requested values,
// case-insensitively. Multi-valued fields match when any of their values does. Unknown facets
// are ignored.
func FilterFacets[T any](records []T, schema Schema[T], filters map[string]string) []T {
	active := make(map[string]string, len(filters))
	for key, value := range sanitizeFilters(filters) {
		if schema.HasFacet(key) {
			active[key] = value
		}
	}
	if len(active) == 0 {
		return append([]T(nil), records...)
	}

	matched := make([]T, 0, len(records))
	for _, record := range records {
		if matchesFacets(record, schema, active) {
			matched = append(matched, record)
		}
	}
	return matched
}

func matchesFacets[T any](record T, schema Schema[T], active map[string]string) bool {
	for key, want := range active {
		field, ok := lookupField(schema, key)
		if !ok {
			continue
		}
		found := false
		for _, value := range searchTexts(field, record) {
			if strings.EqualFold(strings.TrimSpace(value), want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func lookupField[T any](schema Schema[T], name string) (Field[T], bool) {
	if field, ok := schema.Fields[name]; ok {
		return field, true
	}
	for key, field := range schema.Fields {
		if strings.EqualFold(key, name) {
			return field, true
		}
	}
	return Field[T]{}, false
}
