package executor

import (
	"container/heap"
	"context"
	"slices"
)

// rowHeap is a heap of decorated rows. The row at the root is the one that
// sorts last, so it is the first to be evicted once the heap holds more than
// K rows.
type rowHeap struct {
	rows []sortRow
	cmp  *comparator
}

func (h *rowHeap) Len() int {
	return len(h.rows)
}

func (h *rowHeap) Less(i, j int) bool {
	return h.cmp.compareStable(h.rows[i], h.rows[j]) > 0
}

func (h *rowHeap) Swap(i, j int) {
	h.rows[i], h.rows[j] = h.rows[j], h.rows[i]
}

func (h *rowHeap) Push(x any) {
	h.rows = append(h.rows, x.(sortRow))
}

func (h *rowHeap) Pop() any {
	old := h.rows
	n := len(old)
	x := old[n-1]
	h.rows = old[0 : n-1]
	return x
}

// TopK returns the first k rows that [Sort] would produce, without sorting
// all of rows. rows is not modified. Ties keep their input order, and a k of
// zero or less returns no rows.
//
// As with Sort, shuffle keys permute the input before selection; with only
// shuffle keys TopK picks k rows uniformly at random.
func TopK(ctx context.Context, rows []any, k int, keys []SortKey, rnd Shuffler) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return []any{}, nil
	}

	// Rows are copied so shuffling and selection leave the caller's slice
	// untouched.
	input := slices.Clone(rows)
	if len(keys) == 0 || shuffled(keys) || k >= len(input) {
		if err := Sort(ctx, input, keys, rnd); err != nil {
			return nil, err
		}
		return input[:min(k, len(input))], nil
	}

	cmp, err := newComparator(keys)
	if err != nil {
		return nil, err
	}
	decorated, err := cmp.decorate(input)
	if err != nil {
		return nil, err
	}

	h := &rowHeap{rows: make([]sortRow, 0, k+1), cmp: cmp}
	for _, r := range decorated {
		heap.Push(h, r)
		if h.Len() > k {
			heap.Pop(h)
		}
		if cmp.err != nil {
			return nil, cmp.err
		}
	}

	slices.SortFunc(h.rows, cmp.compareStable)
	if cmp.err != nil {
		return nil, cmp.err
	}

	out := make([]any, len(h.rows))
	for i, r := range h.rows {
		out[i] = r.row
	}
	return out, nil
}
