package listengine

import (
	"strings"
	"time"
)

// Direction is the ordering applied to a sort key.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection maps user input onto a Direction, defaulting to ascending.
func ParseDirection(raw string) Direction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "desc", "descending", "dsc":
		return Descending
	default:
		return Ascending
	}
}

// Field exposes one typed value of a record. Exactly one accessor is expected to be set; the
// first non-nil one (Number, Time, Texts, Text) decides how the field compares.
type Field[T any] struct {
	Text   func(T) string
	Texts  func(T) []string
	Number func(T) float64
	Time   func(T) time.Time
}

func (f Field[T]) texts(record T) []string {
	switch {
	case f.Texts != nil:
		return f.Texts(record)
	case f.Text != nil:
		return []string{f.Text(record)}
	default:
		return nil
	}
}

// SortOption is a named ordering shown to users, e.g. "Price (Low to High)".
type SortOption struct {
	Label     string    `json:"label"`
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Schema describes how the engine reads records of type T.
type Schema[T any] struct {
	// ID returns the stable identity of a record.
	ID func(T) string
	// Fields maps field names to typed accessors.
	Fields map[string]Field[T]
	// Searchable lists the fields matched by the free-text search.
	Searchable []string
	// Facets lists the fields that accept exact-match filters.
	Facets []string
	// SortOptions are the named orderings offered by the view.
	SortOptions []SortOption
	// DefaultSort is the label (or field key) applied when criteria carry none.
	DefaultSort string
}

// ResolveSort turns a user supplied sort key into a field key and direction. Named options are
// matched by label, case-insensitively; anything else is treated as a raw field key.
func (s Schema[T]) ResolveSort(key string, direction Direction) (string, Direction) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		trimmed = strings.TrimSpace(s.DefaultSort)
	}
	for _, option := range s.SortOptions {
		if strings.EqualFold(option.Label, trimmed) {
			return option.Key, option.Direction
		}
	}
	if direction == "" {
		direction = Ascending
	}
	return trimmed, direction
}

// HasFacet reports whether name is a configured facet.
func (s Schema[T]) HasFacet(name string) bool {
	for _, facet := range s.Facets {
		if strings.EqualFold(facet, name) {
			return true
		}
	}
	return false
}

func (s Schema[T]) idOf(record T) string {
	if s.ID == nil {
		return ""
	}
	return s.ID(record)
}
