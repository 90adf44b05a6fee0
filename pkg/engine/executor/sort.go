// Package executor implements the sort stage of the engine: multi-key sorts
// and bounded top K selection over rows, ordered by [order.Order]
// directives.
package executor

import (
	"context"
	"slices"

	"github.com/pkg/errors"

	"github.com/grafana/sortorder/pkg/order"
)

// ErrNoShuffler is returned when a sort requests a shuffle but no random
// source was provided.
var ErrNoShuffler = errors.New("shuffle requested without a random source")

// Shuffler applies a random permutation. *rand.Rand implements Shuffler.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Sort sorts rows in place by keys, in order of precedence.
//
// When no keys are given, rows are sorted ascending by their own value.
// Shuffle keys do not take part in comparison: if any key is a shuffle, rows
// are first permuted with rnd and then stable-sorted by the remaining keys,
// so rows that tie on those keys end up in random order.
//
// The first key extraction or comparison error aborts the sort and leaves
// rows unchanged, shuffle included.
func Sort(ctx context.Context, rows []any, keys []SortKey, rnd Shuffler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		keys = []SortKey{{Key: Identity, Order: order.Asc}}
	}

	cmp, err := newComparator(keys)
	if err != nil {
		return err
	}

	input := rows
	if shuffled(keys) {
		if rnd == nil {
			return ErrNoShuffler
		}
		input = slices.Clone(rows)
		rnd.Shuffle(len(input), func(i, j int) { input[i], input[j] = input[j], input[i] })
	}
	if len(cmp.keys) == 0 {
		copy(rows, input)
		return nil
	}

	decorated, err := cmp.decorate(input)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	slices.SortStableFunc(decorated, cmp.compare)
	if cmp.err != nil {
		return cmp.err
	}

	for i, r := range decorated {
		rows[i] = r.row
	}
	return nil
}
