// Package listengine implements the in-memory list behaviour shared by every dashboard view.
//
// A view hands the engine its source collection once (on mount) and then drives it with
// criteria changes coming from the user:
//   - Filter: case-insensitive substring search over the schema's searchable fields, plus
//     exact-match facet filters
//   - Sort: stable ordering by a typed field or a named sort option ("Newest", ...)
//   - Paginate: fixed-size windows with page clamping (there is always at least one page)
//   - SelectionSet: ids checked for bulk actions, kept consistent with the source
//
// Every operation is synchronous and total. The engine is not safe for concurrent use; the
// owner serializes access.
package listengine
