package query

// TotalPages returns the number of pages needed for rowCount rows.
// An empty result still has one (empty) page.
func TotalPages(rowCount, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if rowCount <= 0 {
		return 1
	}
	return (rowCount + pageSize - 1) / pageSize
}

// ClampPage corrects an out-of-range page number. Pages run 1-based; a page
// beyond the last resets to the first page rather than the nearest valid one,
// so a shrinking result set lands the user back at the top.
func ClampPage(page, totalPages int) int {
	if page < 1 || page > totalPages {
		return 1
	}
	return page
}

// PageSlice returns the rows belonging to the given 1-based page.
// The final page may be shorter than pageSize.
func PageSlice(rows []*Row, page, pageSize int) []*Row {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	start := (page - 1) * pageSize
	if start < 0 || start >= len(rows) {
		return nil
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
