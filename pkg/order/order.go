// Package order provides the ordering directives used by the sort stage of
// the query engine.
//
// A directive is one of [Asc], [Desc] or [Shuffle]. Asc and Desc compare
// arbitrary values: numbers by value regardless of their representation,
// strings and enumerated tags lexicographically, and null before (Asc) or
// after (Desc) every other value. Shuffle is a marker telling the caller to
// apply a random permutation; it has no comparator.
package order

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"
)

// Order is an ordering directive. The zero value is [Asc].
type Order int

// Recognized values of [Order].
const (
	Asc     Order = iota // Ascending order, nulls first.
	Desc                 // Descending order, nulls last.
	Shuffle              // Random order. Marker only.
)

// Canonical names of the directives. These appear in persisted queries and
// configuration and must not change.
const (
	nameAsc     = "asc"
	nameDesc    = "desc"
	nameShuffle = "shuffle"
)

var orderNames = map[Order]string{
	Asc:     nameAsc,
	Desc:    nameDesc,
	Shuffle: nameShuffle,
}

// Parse returns the directive with the canonical name s. Names are case
// sensitive.
func Parse(s string) (Order, error) {
	switch s {
	case nameAsc:
		return Asc, nil
	case nameDesc:
		return Desc, nil
	case nameShuffle:
		return Shuffle, nil
	default:
		return 0, errors.Wrapf(ErrUnknownOrder, "%q", s)
	}
}

// String returns the canonical name of o.
func (o Order) String() string {
	if s, ok := orderNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// Valid reports whether o is one of the known directives.
func (o Order) Valid() bool {
	_, ok := orderNames[o]
	return ok
}

// Reversed returns the opposite directive. Shuffle is its own reverse.
func (o Order) Reversed() Order {
	switch o {
	case Asc:
		return Desc
	case Desc:
		return Asc
	default:
		return o
	}
}

// Compare compares a and b under o and returns a negative, zero or positive
// result when a sorts before, with or after b.
//
// Enumerated tags (see [Tag]) are replaced by their canonical names first.
// When both operands are then numbers they are compared by value; Desc swaps
// the operands rather than negating the result. Any other pair must share a
// natural order, otherwise the returned error wraps
// [ErrIncomparableOperands].
//
// Compare on Shuffle always returns [ErrUnsupportedMarkerUse].
func (o Order) Compare(a, b any) (int, error) {
	switch o {
	case Asc:
		return compareAsc(normalize(a), normalize(b))
	case Desc:
		return compareAsc(normalize(b), normalize(a))
	case Shuffle:
		return 0, ErrUnsupportedMarkerUse
	default:
		return 0, errors.Wrapf(ErrUnknownOrder, "%d", int(o))
	}
}

// compareAsc is the ascending comparison. Desc is derived from it by swapping
// operands, which also turns nulls-first into nulls-last.
func compareAsc(a, b any) (int, error) {
	if !isNull(a) && !isNull(b) {
		if x, ok := toNumber(a); ok {
			if y, ok := toNumber(b); ok {
				return compareNumber(x, y), nil
			}
		}
	}
	return compareNullsFirst(a, b)
}

// Sort sorts values in place under o. The sort is stable. The first
// comparison error stops the sort and is returned; values are then left in
// an unspecified order.
//
// Sort with Shuffle returns [ErrUnsupportedMarkerUse] without touching
// values.
func Sort(values []any, o Order) error {
	if o == Shuffle {
		return ErrUnsupportedMarkerUse
	}
	if !o.Valid() {
		return errors.Wrapf(ErrUnknownOrder, "%d", int(o))
	}

	var sortErr error
	slices.SortStableFunc(values, func(a, b any) int {
		if sortErr != nil {
			return 0
		}
		res, err := o.Compare(a, b)
		if err != nil {
			sortErr = err
			return 0
		}
		return res
	})
	return sortErr
}
