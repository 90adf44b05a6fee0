package executor

import (
	"github.com/pkg/errors"

	"github.com/grafana/sortorder/pkg/order"
)

// sortRow is a row decorated with its extracted sort keys. Keys are
// extracted once per row rather than once per comparison.
type sortRow struct {
	row  any
	keys []any
	seq  int // Position in the input, for stable tie-breaking.
}

// comparator compares decorated rows over the deterministic (non-shuffle)
// sort keys in order of precedence.
type comparator struct {
	keys []SortKey
	pos  []int // Position of each key among all sort keys, for errors.
	err  error // First comparison error, if any.
}

func newComparator(keys []SortKey) (*comparator, error) {
	c := &comparator{
		keys: make([]SortKey, 0, len(keys)),
		pos:  make([]int, 0, len(keys)),
	}
	for i, k := range keys {
		if !k.Order.Valid() {
			return nil, errors.Wrapf(order.ErrUnknownOrder, "sort key %d: %s", i, k.Order)
		}
		if k.Key == nil {
			return nil, errors.Errorf("sort key %d: missing key function", i)
		}
		if k.Order != order.Shuffle {
			c.keys = append(c.keys, k)
			c.pos = append(c.pos, i)
		}
	}
	return c, nil
}

// shuffled reports whether keys contain at least one shuffle directive.
func shuffled(keys []SortKey) bool {
	for _, k := range keys {
		if k.Order == order.Shuffle {
			return true
		}
	}
	return false
}

func (c *comparator) decorate(rows []any) ([]sortRow, error) {
	out := make([]sortRow, len(rows))
	for i, row := range rows {
		keys := make([]any, len(c.keys))
		for j, k := range c.keys {
			v, err := k.Key(row)
			if err != nil {
				return nil, errors.Wrapf(err, "extracting sort key %d of row %d", c.pos[j], i)
			}
			keys[j] = v
		}
		out[i] = sortRow{row: row, keys: keys, seq: i}
	}
	return out, nil
}

// compare returns the ordering of a and b. Once a comparison fails, c.err is
// set and every further call reports the rows as equal.
func (c *comparator) compare(a, b sortRow) int {
	if c.err != nil {
		return 0
	}
	for i, k := range c.keys {
		res, err := k.Order.Compare(a.keys[i], b.keys[i])
		if err != nil {
			c.err = errors.Wrapf(err, "sort key %d", c.pos[i])
			return 0
		}
		if res != 0 {
			return res
		}
	}
	return 0
}

// compareStable is compare with ties broken by input position.
func (c *comparator) compareStable(a, b sortRow) int {
	if res := c.compare(a, b); res != 0 {
		return res
	}
	switch {
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	default:
		return 0
	}
}
