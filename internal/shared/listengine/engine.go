package listengine

// Page is the visible window of a list view together with its navigation state.
type Page[T any] struct {
	Items           []T      `json:"items"`
	Page            int      `json:"page"`
	PageSize        int      `json:"pageSize"`
	TotalPages      int      `json:"totalPages"`
	TotalItems      int      `json:"totalItems"`
	SourceItems     int      `json:"sourceItems"`
	HasPrevious     bool     `json:"hasPrevious"`
	HasNext         bool     `json:"hasNext"`
	Selected        []string `json:"selected"`
	PageAllSelected bool     `json:"pageAllSelected"`
	Criteria        Criteria `json:"criteria"`
}

// Engine owns one view's source collection, its criteria and its selection.
type Engine[T any] struct {
	schema    Schema[T]
	pageSize  int
	source    []T
	criteria  Criteria
	selection *SelectionSet
}

// New creates an empty engine. A non-positive pageSize falls back to DefaultPageSize.
func New[T any](schema Schema[T], pageSize int) *Engine[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return &Engine[T]{
		schema:    schema,
		pageSize:  pageSize,
		criteria:  Criteria{Page: 1},
		selection: NewSelectionSet(),
	}
}

// Schema exposes the engine's schema.
func (e *Engine[T]) Schema() Schema[T] {
	return e.schema
}

// PageSize is the configured window size.
func (e *Engine[T]) PageSize() int {
	return e.pageSize
}

// Load replaces the source collection. Selected ids that no longer exist are dropped and the
// current page is clamped to the new bounds.
func (e *Engine[T]) Load(records []T) {
	e.source = append([]T(nil), records...)
	e.pruneSelection()
	e.clampPage()
}

// Records returns a copy of the source collection.
func (e *Engine[T]) Records() []T {
	return append([]T(nil), e.source...)
}

// Len is the size of the source collection.
func (e *Engine[T]) Len() int {
	return len(e.source)
}

// Find returns the source record with id.
func (e *Engine[T]) Find(id string) (T, bool) {
	if index := e.indexOf(id); index >= 0 {
		return e.source[index], true
	}
	var zero T
	return zero, false
}

// Upsert replaces the record sharing the same id, or prepends it when new.
func (e *Engine[T]) Upsert(record T) {
	id := e.schema.idOf(record)
	if index := e.indexOf(id); index >= 0 && id != "" {
		e.source[index] = record
		return
	}
	e.source = append([]T{record}, e.source...)
}

// Update rewrites the record with id in place and reports whether it existed.
func (e *Engine[T]) Update(id string, mutate func(T) T) bool {
	index := e.indexOf(id)
	if index < 0 {
		return false
	}
	e.source[index] = mutate(e.source[index])
	return true
}

// Criteria returns the current criteria.
func (e *Engine[T]) Criteria() Criteria {
	return e.criteria
}

// Apply replaces the criteria. A zero page keeps the current page unless the search term or
// the filters changed, in which case the view returns to the first page.
func (e *Engine[T]) Apply(criteria Criteria) {
	next := criteria.Normalize()
	if criteria.Page <= 0 {
		next.Page = e.criteria.Page
		if next.Search != e.criteria.Search || canonicalFiltersKey(next.Filters) != canonicalFiltersKey(e.criteria.Filters) {
			next.Page = 1
		}
	}
	e.criteria = next
	e.clampPage()
}

// SetSearch changes the search term and resets the page to 1.
func (e *Engine[T]) SetSearch(term string) {
	e.criteria.Search = Criteria{Search: term}.Normalize().Search
	e.criteria.Page = 1
}

// SetSort changes the ordering. key may be a named sort option label or a field key.
func (e *Engine[T]) SetSort(key string, direction Direction) {
	e.criteria.SortKey = key
	e.criteria.Direction = direction
}

// SetFilter sets (or clears, with an empty value) a facet filter and resets the page to 1.
func (e *Engine[T]) SetFilter(key, value string) {
	filters := make(map[string]string, len(e.criteria.Filters)+1)
	for existingKey, existingValue := range e.criteria.Filters {
		filters[existingKey] = existingValue
	}
	filters[key] = value
	e.criteria.Filters = sanitizeFilters(filters)
	e.criteria.Page = 1
}

// SetPage moves to page, clamped to the filtered bounds.
func (e *Engine[T]) SetPage(page int) {
	e.criteria.Page = page
	e.clampPage()
}

// NextPage advances one page when possible.
func (e *Engine[T]) NextPage() {
	e.SetPage(e.criteria.Page + 1)
}

// PreviousPage goes back one page when possible.
func (e *Engine[T]) PreviousPage() {
	e.SetPage(e.criteria.Page - 1)
}

// Visible returns the filtered and ordered collection, before pagination.
func (e *Engine[T]) Visible() []T {
	filtered := Filter(e.source, e.schema, e.criteria.Search)
	filtered = FilterFacets(filtered, e.schema, e.criteria.Filters)
	key, direction := e.schema.ResolveSort(e.criteria.SortKey, e.criteria.Direction)
	return Sort(filtered, e.schema, key, direction)
}

// View renders the current page.
func (e *Engine[T]) View() Page[T] {
	visible := e.Visible()
	items, totalPages := Paginate(visible, e.criteria.Page, e.pageSize)
	e.criteria.Page = ClampPage(e.criteria.Page, totalPages)

	ids := e.idsOf(items)
	return Page[T]{
		Items:           items,
		Page:            e.criteria.Page,
		PageSize:        e.pageSize,
		TotalPages:      totalPages,
		TotalItems:      len(visible),
		SourceItems:     len(e.source),
		HasPrevious:     e.criteria.Page > 1,
		HasNext:         e.criteria.Page < totalPages,
		Selected:        e.Selected(),
		PageAllSelected: e.selection.ContainsAll(ids),
		Criteria:        e.criteria,
	}
}

// PageIDs returns the ids shown on the current page.
func (e *Engine[T]) PageIDs() []string {
	items, _ := Paginate(e.Visible(), e.criteria.Page, e.pageSize)
	return e.idsOf(items)
}

// VisibleIDs returns the ids of every record passing the current filters.
func (e *Engine[T]) VisibleIDs() []string {
	return e.idsOf(e.Visible())
}

// ToggleSelect flips the selection of id. Ids absent from the source are ignored.
func (e *Engine[T]) ToggleSelect(id string) bool {
	if e.indexOf(id) < 0 {
		return false
	}
	return e.selection.Toggle(id)
}

// ToggleSelectAllOnPage deselects pageIDs when all of them are selected, otherwise selects all
// of them. Selections outside the page are untouched.
func (e *Engine[T]) ToggleSelectAllOnPage(pageIDs []string) {
	known := make([]string, 0, len(pageIDs))
	for _, id := range pageIDs {
		if e.indexOf(id) >= 0 {
			known = append(known, id)
		}
	}
	if e.selection.ContainsAll(known) {
		e.selection.Remove(known...)
		return
	}
	e.selection.Add(known...)
}

// ToggleSelectCurrentPage applies ToggleSelectAllOnPage to the current page.
func (e *Engine[T]) ToggleSelectCurrentPage() {
	e.ToggleSelectAllOnPage(e.PageIDs())
}

// ToggleSelectAllVisible selects every filtered record, or clears the selection when all of
// them are already selected.
func (e *Engine[T]) ToggleSelectAllVisible() {
	ids := e.VisibleIDs()
	if e.selection.ContainsAll(ids) {
		e.selection.Remove(ids...)
		return
	}
	e.selection.Add(ids...)
}

// ClearSelection deselects everything.
func (e *Engine[T]) ClearSelection() {
	e.selection.Clear()
}

// Selected returns the selected ids in source order.
func (e *Engine[T]) Selected() []string {
	ids := make([]string, 0, e.selection.Len())
	for _, record := range e.source {
		if id := e.schema.idOf(record); e.selection.Contains(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// SelectedRecords returns the selected records in source order.
func (e *Engine[T]) SelectedRecords() []T {
	records := make([]T, 0, e.selection.Len())
	for _, record := range e.source {
		if e.selection.Contains(e.schema.idOf(record)) {
			records = append(records, record)
		}
	}
	return records
}

// ApplyDeletion removes the records with ids from the source, drops them from the selection
// and clamps the page. It returns how many records were removed.
func (e *Engine[T]) ApplyDeletion(ids ...string) int {
	if len(ids) == 0 {
		return 0
	}
	doomed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		doomed[id] = struct{}{}
	}

	kept := make([]T, 0, len(e.source))
	for _, record := range e.source {
		if _, ok := doomed[e.schema.idOf(record)]; ok {
			continue
		}
		kept = append(kept, record)
	}
	removed := len(e.source) - len(kept)
	e.source = kept
	e.selection.Remove(ids...)
	e.clampPage()
	return removed
}

func (e *Engine[T]) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for index, record := range e.source {
		if e.schema.idOf(record) == id {
			return index
		}
	}
	return -1
}

func (e *Engine[T]) idsOf(records []T) []string {
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, e.schema.idOf(record))
	}
	return ids
}

func (e *Engine[T]) pruneSelection() {
	present := make(map[string]struct{}, len(e.source))
	for _, record := range e.source {
		present[e.schema.idOf(record)] = struct{}{}
	}
	e.selection.Retain(func(id string) bool {
		_, ok := present[id]
		return ok
	})
}

func (e *Engine[T]) clampPage() {
	totalPages := TotalPages(len(e.Visible()), e.pageSize)
	e.criteria.Page = ClampPage(e.criteria.Page, totalPages)
}
