package order

import "github.com/pkg/errors"

var (
	// ErrUnsupportedMarkerUse is returned when [Shuffle] is used as a
	// comparator. Shuffle only marks that the caller must apply a random
	// permutation.
	ErrUnsupportedMarkerUse = errors.New("order shuffle is a marker and cannot compare values")

	// ErrIncomparableOperands is returned when two values have no mutual
	// ordering.
	ErrIncomparableOperands = errors.New("incomparable operands")

	// ErrUnknownOrder is returned for names or values outside the set of
	// known directives.
	ErrUnknownOrder = errors.New("unknown order")
)

func incomparable(a, b any) error {
	return errors.Wrapf(ErrIncomparableOperands, "cannot compare %T with %T", a, b)
}
