package listengine

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Sort returns a stably ordered copy of records. Records that compare equal keep their
// relative order, in either direction. An unknown key leaves the original order untouched.
func Sort[T any](records []T, schema Schema[T], key string, direction Direction) []T {
	sorted := append([]T(nil), records...)
	field, ok := lookupField(schema, key)
	if !ok {
		return sorted
	}

	compare := comparator(field)
	if compare == nil {
		return sorted
	}
	if direction == Descending {
		slices.SortStableFunc(sorted, func(a, b T) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(sorted, compare)
	}
	return sorted
}

func comparator[T any](field Field[T]) func(a, b T) int {
	switch {
	case field.Number != nil:
		return func(a, b T) int { return cmp.Compare(field.Number(a), field.Number(b)) }
	case field.Time != nil:
		return func(a, b T) int { return field.Time(a).Compare(field.Time(b)) }
	case field.Texts != nil || field.Text != nil:
		folder := cases.Fold()
		return func(a, b T) int {
			return strings.Compare(
				folder.String(strings.Join(field.texts(a), " ")),
				folder.String(strings.Join(field.texts(b), " ")),
			)
		}
	default:
		return nil
	}
}
