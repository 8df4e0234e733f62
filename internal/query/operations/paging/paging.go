package paging

// DefaultPageSize is the page size a grid starts with when the caller
// does not choose one.
const DefaultPageSize = 10

// Slice returns the rows belonging to the 1-based page at the given
// page size. The window is (page-1)*size to page*size, clipped to the
// slice. Pages past the end yield an empty result rather than being
// clamped back into range: whoever changed the row count decides
// whether to move the page, not the paginator.
func Slice[R any](rows []R, page, size int) []R {
	if page < 1 || size < 1 {
		return nil
	}

	start := (page - 1) * size
	if start >= len(rows) {
		return nil
	}

	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// TotalPages returns ceil(total/size). Zero rows means zero pages,
// not one empty page.
func TotalPages(total, size int) int {
	if total <= 0 || size < 1 {
		return 0
	}
	return (total + size - 1) / size
}
