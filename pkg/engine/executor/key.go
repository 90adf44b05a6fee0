package executor

import (
	"github.com/grafana/sortorder/pkg/order"
)

// KeyFunc extracts the sort key of a row. A nil key sorts as null.
type KeyFunc func(row any) (any, error)

// Identity uses the row itself as its sort key.
func Identity(row any) (any, error) { return row, nil }

// Field returns a KeyFunc that walks nested documents along path. Documents
// are map[string]any or map[any]any; in the latter a key may also be an
// [order.Tag] whose canonical name matches the path segment. A missing
// field or a non-document value along the path yields a nil key.
func Field(path ...string) KeyFunc {
	return func(row any) (any, error) {
		cur := row
		for _, seg := range path {
			next, ok := lookup(cur, seg)
			if !ok {
				return nil, nil
			}
			cur = next
		}
		return cur, nil
	}
}

func lookup(doc any, name string) (any, bool) {
	switch doc := doc.(type) {
	case map[string]any:
		v, ok := doc[name]
		return v, ok
	case map[any]any:
		if v, ok := doc[name]; ok {
			return v, true
		}
		for k, v := range doc {
			if t, ok := k.(order.Tag); ok && t.Name() == name {
				return v, true
			}
		}
	}
	return nil, false
}

// SortKey is one level of a multi-key sort: the key to extract from each row
// and the directive to order those keys by.
type SortKey struct {
	Key   KeyFunc
	Order order.Order
}
