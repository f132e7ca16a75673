package usecase

import (
	"context"
	"errors"
	"iter"

	"github.com/iho/restledger/internal/domain"
)

// ErrCursorStuck is returned when a listing hands back the cursor it was given.
var ErrCursorStuck = errors.New("pagination cursor did not advance")

// PageInput selects one page of a keyset-paginated listing.
type PageInput struct {
	Cursor string
	Limit  int
}

// walk yields every item of a paginated listing, fetching one page at a time.
// Iteration ends after the last page, on the first error (which is yielded),
// or when the caller stops early. Each call to the returned sequence starts
// again from the first page.
func walk[T any](ctx context.Context, pageSize int, fetch func(context.Context, PageInput) (*domain.Page[T], error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		cursor := ""
		for {
			if err := ctx.Err(); err != nil {
				yield(zero, err)
				return
			}

			page, err := fetch(ctx, PageInput{Cursor: cursor, Limit: pageSize})
			if err != nil {
				yield(zero, err)
				return
			}

			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}

			if page.Next == "" {
				return
			}
			if page.Next == cursor {
				yield(zero, ErrCursorStuck)
				return
			}
			cursor = page.Next
		}
	}
}

// Collect exhausts seq. It returns every item or, on any error, nil and the
// error; a partial result is never returned.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var items []T
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// pageOf builds a page from rows fetched with limit+1 so the presence of a
// following page is known without a count query.
func pageOf[T any](rows []T, limit int, key func(T) string) *domain.Page[T] {
	if len(rows) <= limit {
		return &domain.Page[T]{Items: rows}
	}
	rows = rows[:limit]
	return &domain.Page[T]{Items: rows, Next: key(rows[len(rows)-1])}
}
