// Package traversal defines the tokens traversals use to address the
// built-in parts of an element.
package traversal

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/grafana/sortorder/pkg/order"
)

// ErrUnknownToken is returned when parsing an unrecognized token name.
var ErrUnknownToken = errors.New("unknown token")

// T is a token naming a built-in property of an element. Documents may use a
// T as a map key in place of its string name.
type T int

// Recognized values of [T].
const (
	TID    T = iota + 1 // Element identifier.
	TLabel              // Element label.
	TKey                // Property key.
	TValue              // Property value.
)

var tokenNames = map[T]string{
	TID:    "id",
	TLabel: "label",
	TKey:   "key",
	TValue: "value",
}

var _ order.Tag = T(0)

// Name returns the canonical name of t. Ordering directives compare a T by
// this name.
func (t T) Name() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("T(%d)", int(t))
}

// String returns the canonical name of t.
func (t T) String() string { return t.Name() }

// ParseT returns the token with the canonical name s.
func ParseT(s string) (T, error) {
	for t, name := range tokenNames {
		if name == s {
			return t, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownToken, "%q", s)
}
