package domain

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// Page is one slice of a keyset-paginated listing. Next is empty on the
// last page.
type Page[T any] struct {
	Items []T
	Next  string
}

// NormalizeLimit clamps a requested page size.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
