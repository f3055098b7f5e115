package listengine

// TotalPages is the number of windows needed for count records, never less than one.
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// ClampPage bounds page to [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate returns the window of ordered at page (clamped) and the total page count.
func Paginate[T any](ordered []T, page, pageSize int) ([]T, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages := TotalPages(len(ordered), pageSize)
	page = ClampPage(page, totalPages)

	start := (page - 1) * pageSize
	if start >= len(ordered) {
		return []T{}, totalPages
	}
	end := min(start+pageSize, len(ordered))
	return append([]T(nil), ordered[start:end]...), totalPages
}
