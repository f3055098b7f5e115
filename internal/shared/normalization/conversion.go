package normalization

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// AsString trims and returns the string representation of value. Numbers are formatted without
// trailing zeros so numeric ids survive the conversion.
func AsString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case json.Number:
		return typed.String()
	default:
		return ""
	}
}

// AsInt coerces numeric values (including numeric strings) into Go ints.
func AsInt(value any) int {
	switch typed := value.(type) {
	case float64:
		return int(typed)
	case float32:
		return int(typed)
	case int:
		return typed
	case int32:
		return int(typed)
	case int64:
		return int(typed)
	case string:
		return int(AsFloat64(typed))
	default:
		return 0
	}
}

// AsFloat64 coerces numeric values (including numeric strings) into float64.
func AsFloat64(value any) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case float32:
		return float64(typed)
	case int:
		return float64(typed)
	case int32:
		return float64(typed)
	case int64:
		return float64(typed)
	case json.Number:
		if parsed, err := typed.Float64(); err == nil {
			return parsed
		}
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return parsed
			}
		}
	}
	return 0
}

// AsBool accepts booleans, "true"/"false" strings and 0/1 numbers.
func AsBool(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		return err == nil && parsed
	case float64:
		return typed != 0
	case int:
		return typed != 0
	default:
		return false
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// AsTime parses the timestamp formats emitted by the backend. The zero time means unknown.
func AsTime(value any) time.Time {
	raw := AsString(value)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

// AsStringSlice trims each entry from an arbitrary slice preserving non-empty values. A string
// holding a JSON array is decoded first, and a comma separated string is split.
func AsStringSlice(value any) []string {
	switch typed := value.(type) {
	case []string:
		return compact(typed)
	case []any:
		items := make([]string, 0, len(typed))
		for _, entry := range typed {
			items = append(items, AsString(entry))
		}
		return compact(items)
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return nil
		}
		if strings.HasPrefix(trimmed, "[") {
			var decoded []any
			if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
				return AsStringSlice(decoded)
			}
		}
		return compact(strings.Split(trimmed, ","))
	default:
		return nil
	}
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// AsInterfaceSlice normalizes different collection types into a []any.
func AsInterfaceSlice(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []map[string]any:
		items := make([]any, 0, len(typed))
		for _, entry := range typed {
			items = append(items, entry)
		}
		return items
	default:
		return nil
	}
}

// MapFromPayload attempts to unwrap common envelope structures (e.g. {"data": {...}})
// into a plain map for normalization routines.
func MapFromPayload(value any) map[string]any {
	if value == nil {
		return nil
	}
	if typed, ok := value.(map[string]any); ok {
		if data, ok := typed["data"].(map[string]any); ok {
			return data
		}
		return typed
	}
	return nil
}

// ListFromPayload returns the collection in value, unwrapping {"data": [...]} or a named
// envelope key such as {"coupons": [...]}.
func ListFromPayload(value any, keys ...string) []any {
	if items := AsInterfaceSlice(value); items != nil {
		return items
	}
	typed, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	for _, key := range append([]string{"data", "items", "results"}, keys...) {
		if items := AsInterfaceSlice(typed[key]); items != nil {
			return items
		}
		if nested, ok := typed[key].(map[string]any); ok {
			if items := ListFromPayload(nested, keys...); items != nil {
				return items
			}
		}
	}
	return nil
}

// FirstString returns the first non-empty string found under keys.
func FirstString(source map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := AsString(source[key]); value != "" {
			return value
		}
	}
	return ""
}
