package model

// Pagination defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage clamps page and page size to usable values.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Paginate returns the 1-indexed page of s. Out-of-range pages yield an
// empty, non-nil slice.
func Paginate[T any](s []T, page, pageSize int) []T {
	page, pageSize = NormalizePage(page, pageSize)
	start := (page - 1) * pageSize
	if start >= len(s) {
		return []T{}
	}
	end := min(start+pageSize, len(s))
	return s[start:end]
}
