package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/iho/restledger/internal/domain"
)

// numbers serves 1..total in pages keyed by the last number.
func numbers(total int, calls *int) func(context.Context, PageInput) (*domain.Page[int], error) {
	return func(ctx context.Context, in PageInput) (*domain.Page[int], error) {
		*calls++
		after := 0
		if in.Cursor != "" {
			after, _ = strconv.Atoi(in.Cursor)
		}
		var rows []int
		for n := after + 1; n <= total && len(rows) < in.Limit+1; n++ {
			rows = append(rows, n)
		}
		return pageOf(rows, in.Limit, strconv.Itoa), nil
	}
}

func TestWalk(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		pageSize  int
		wantCalls int
	}{
		{name: "empty", total: 0, pageSize: 3, wantCalls: 1},
		{name: "single partial page", total: 2, pageSize: 3, wantCalls: 1},
		{name: "exact multiple", total: 6, pageSize: 3, wantCalls: 2},
		{name: "several pages", total: 7, pageSize: 3, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			got, err := Collect(walk(context.Background(), tt.pageSize, numbers(tt.total, &calls)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.total {
				t.Fatalf("got %d items, want %d", len(got), tt.total)
			}
			for i, n := range got {
				if n != i+1 {
					t.Fatalf("item %d = %d, want %d", i, n, i+1)
				}
			}
			if calls != tt.wantCalls {
				t.Fatalf("fetched %d pages, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestWalk_StopsEarly(t *testing.T) {
	calls := 0
	seen := 0
	for n, err := range walk(context.Background(), 2, numbers(100, &calls)) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen++
		if n == 3 {
			break
		}
	}

	if seen != 3 {
		t.Fatalf("saw %d items, want 3", seen)
	}
	if calls != 2 {
		t.Fatalf("fetched %d pages, want 2", calls)
	}
}

func TestWalk_RestartsFromFirstPage(t *testing.T) {
	calls := 0
	seq := walk(context.Background(), 2, numbers(3, &calls))

	first, _ := Collect(seq)
	second, _ := Collect(seq)
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected both passes to yield 3 items, got %d and %d", len(first), len(second))
	}
}

func TestCollect_FailureReturnsNothing(t *testing.T) {
	boom := errors.New("page two failed")
	calls := 0
	fetch := func(ctx context.Context, in PageInput) (*domain.Page[int], error) {
		calls++
		if calls == 2 {
			return nil, boom
		}
		return &domain.Page[int]{Items: []int{1, 2}, Next: "2"}, nil
	}

	got, err := Collect(walk(context.Background(), 2, fetch))
	if !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if got != nil {
		t.Fatalf("expected no partial result, got %v", got)
	}
}

func TestWalk_CursorStuck(t *testing.T) {
	fetch := func(ctx context.Context, in PageInput) (*domain.Page[int], error) {
		return &domain.Page[int]{Items: []int{1}, Next: "same"}, nil
	}

	_, err := Collect(walk(context.Background(), 1, fetch))
	if !errors.Is(err, ErrCursorStuck) {
		t.Fatalf("expected ErrCursorStuck, got %v", err)
	}
}

func TestWalk_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Collect(walk(ctx, 2, numbers(5, &calls)))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no fetch after cancel, got %d", calls)
	}
}
