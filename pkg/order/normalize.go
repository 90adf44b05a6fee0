package order

import "reflect"

// Tag is implemented by enumerated tags. Before comparison a Tag is replaced
// by its canonical name, so a tag and its plain string form compare equal.
// This matters when sorting map keys that mix typed tokens and strings.
type Tag interface {
	Name() string
}

// Comparable is implemented by values that define their own ordering.
// CompareTo returns a negative, zero or positive result when the receiver
// sorts before, with or after other, and an error wrapping
// [ErrIncomparableOperands] when other is not of a kind it can be compared
// with.
type Comparable interface {
	CompareTo(other any) (int, error)
}

// normalize replaces a Tag with its canonical name. All other values are
// returned unchanged.
func normalize(v any) any {
	if t, ok := v.(Tag); ok && !isNull(v) {
		return t.Name()
	}
	return v
}

// isNull reports whether v is absent: a nil interface or a nil value of a
// nillable kind.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
