package order

import (
	"bytes"
	"reflect"
	"strings"
	"time"
)

// compareNullsFirst orders null before every other value and otherwise
// defers to compareNatural. Two nulls are equal.
func compareNullsFirst(a, b any) (int, error) {
	switch aNull, bNull := isNull(a), isNull(b); {
	case aNull && bNull:
		return 0, nil
	case aNull:
		return -1, nil
	case bNull:
		return 1, nil
	}
	return compareNatural(a, b)
}

// compareNatural compares two non-null values that share a natural order.
func compareNatural(a, b any) (int, error) {
	// A JSON number that is not numeric is malformed, not text.
	if isJSONNumber(a) || isJSONNumber(b) {
		return 0, incomparable(a, b)
	}

	switch a := a.(type) {
	case string:
		if b, ok := b.(string); ok {
			return strings.Compare(a, b), nil
		}
	case bool:
		if b, ok := b.(bool); ok {
			return compareBool(a, b), nil
		}
	case time.Time:
		if b, ok := b.(time.Time); ok {
			return a.Compare(b), nil
		}
	case []byte:
		if b, ok := b.([]byte); ok {
			return bytes.Compare(a, b), nil
		}
	}

	if c, ok := a.(Comparable); ok {
		return c.CompareTo(b)
	}
	if c, ok := b.(Comparable); ok {
		res, err := c.CompareTo(a)
		return -res, err
	}

	return compareReflect(a, b)
}

// compareReflect compares values of the same named string or bool type by
// their underlying value. Named numeric types never reach this point since
// they are handled as numbers.
func compareReflect(a, b any) (int, error) {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Type() != bv.Type() {
		return 0, incomparable(a, b)
	}

	switch av.Kind() {
	case reflect.String:
		return strings.Compare(av.String(), bv.String()), nil
	case reflect.Bool:
		return compareBool(av.Bool(), bv.Bool()), nil
	default:
		return 0, incomparable(a, b)
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
