package order

import (
	"cmp"
	"encoding/json"
	"math"
	"math/big"
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

// maxExactFloatInt is the largest magnitude below which every integer has an
// exact float64 representation.
const maxExactFloatInt = 1 << 53

type numberKind uint8

const (
	kindInt numberKind = iota
	kindUint
	kindFloat
	kindExact
	kindScientific
)

// number holds a numeric operand in the cheapest representation that keeps
// its exact value.
type number struct {
	kind numberKind
	i    int64
	u    uint64
	f    float64
	r    *big.Rat
	s    *scientific
}

// IsNumber reports whether v is a value [CompareNumbers] accepts.
func IsNumber(v any) bool {
	_, ok := toNumber(v)
	return ok
}

// CompareNumbers compares two numeric values by their mathematical value and
// returns -1, 0 or +1. The operands may use different representations:
// fixed-width integers and floats, math/big values, decimal.Decimal, or
// decoded JSON numbers.
//
// NaN sorts below every other number and is equal to itself, so the result
// is a total order.
func CompareNumbers(a, b any) (int, error) {
	x, ok := toNumber(a)
	if !ok {
		return 0, incomparable(a, b)
	}
	y, ok := toNumber(b)
	if !ok {
		return 0, incomparable(a, b)
	}
	return compareNumber(x, y), nil
}

func toNumber(v any) (number, bool) {
	switch v := v.(type) {
	case int:
		return number{kind: kindInt, i: int64(v)}, true
	case int8:
		return number{kind: kindInt, i: int64(v)}, true
	case int16:
		return number{kind: kindInt, i: int64(v)}, true
	case int32:
		return number{kind: kindInt, i: int64(v)}, true
	case int64:
		return number{kind: kindInt, i: v}, true
	case uint:
		return number{kind: kindUint, u: uint64(v)}, true
	case uint8:
		return number{kind: kindUint, u: uint64(v)}, true
	case uint16:
		return number{kind: kindUint, u: uint64(v)}, true
	case uint32:
		return number{kind: kindUint, u: uint64(v)}, true
	case uint64:
		return number{kind: kindUint, u: v}, true
	case uintptr:
		return number{kind: kindUint, u: uint64(v)}, true
	case float32:
		return number{kind: kindFloat, f: float64(v)}, true
	case float64:
		return number{kind: kindFloat, f: v}, true
	case *big.Int:
		if v == nil {
			return number{}, false
		}
		if v.IsInt64() {
			return number{kind: kindInt, i: v.Int64()}, true
		}
		return number{kind: kindExact, r: new(big.Rat).SetInt(v)}, true
	case *big.Float:
		if v == nil {
			return number{}, false
		}
		if v.IsInf() {
			return number{kind: kindFloat, f: math.Inf(v.Sign())}, true
		}
		r, _ := v.Rat(nil)
		return number{kind: kindExact, r: r}, true
	case *big.Rat:
		if v == nil {
			return number{}, false
		}
		return number{kind: kindExact, r: v}, true
	case decimal.Decimal:
		return number{kind: kindExact, r: v.Rat()}, true
	case *decimal.Decimal:
		if v == nil {
			return number{}, false
		}
		return number{kind: kindExact, r: v.Rat()}, true
	case json.Number:
		return parseNumber(string(v))
	case jsoniter.Number:
		return parseNumber(string(v))
	}

	// Named numeric types, e.g. time.Duration.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{kind: kindInt, i: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{kind: kindUint, u: rv.Uint()}, true
	case reflect.Float32, reflect.Float64:
		return number{kind: kindFloat, f: rv.Float()}, true
	default:
		return number{}, false
	}
}

func compareNumber(x, y number) int {
	switch {
	case x.kind == kindInt && y.kind == kindInt:
		return cmp.Compare(x.i, y.i)
	case x.kind == kindUint && y.kind == kindUint:
		return cmp.Compare(x.u, y.u)
	case x.kind == kindInt && y.kind == kindUint:
		if x.i < 0 {
			return -1
		}
		return cmp.Compare(uint64(x.i), y.u)
	case x.kind == kindUint && y.kind == kindInt:
		return -compareNumber(y, x)
	case x.kind == kindFloat && y.kind == kindFloat:
		return cmp.Compare(x.f, y.f)
	}

	// At most one side is a float from here on. NaN and infinities have no
	// rational form, so they are ordered before falling back to exact
	// comparison.
	if x.kind == kindFloat {
		if res, ok := compareSpecialFloat(x.f); ok {
			return res
		}
	}
	if y.kind == kindFloat {
		if res, ok := compareSpecialFloat(y.f); ok {
			return -res
		}
	}

	if x.kind == kindScientific || y.kind == kindScientific {
		return compareScientific(x, y)
	}

	if xf, ok := x.exactFloat(); ok {
		if yf, ok := y.exactFloat(); ok {
			return cmp.Compare(xf, yf)
		}
	}
	return x.rat().Cmp(y.rat())
}

// compareScientific compares numbers when at least one is in scientific
// form. Neither may be NaN or infinite.
func compareScientific(x, y number) int {
	switch {
	case x.kind != kindScientific:
		return -compareScientific(y, x)
	case y.kind == kindScientific:
		return x.s.cmp(y.s)
	default:
		return x.s.cmpRat(y.rat())
	}
}

// compareSpecialFloat orders a NaN or infinite f against any finite, non-NaN
// number. ok is false when f is finite.
func compareSpecialFloat(f float64) (res int, ok bool) {
	switch {
	case math.IsNaN(f):
		return -1, true
	case math.IsInf(f, 1):
		return 1, true
	case math.IsInf(f, -1):
		return -1, true
	default:
		return 0, false
	}
}

// exactFloat returns n as a float64 when the conversion loses nothing.
func (n number) exactFloat() (float64, bool) {
	switch n.kind {
	case kindFloat:
		return n.f, true
	case kindInt:
		if n.i > -maxExactFloatInt && n.i < maxExactFloatInt {
			return float64(n.i), true
		}
	case kindUint:
		if n.u < maxExactFloatInt {
			return float64(n.u), true
		}
	}
	return 0, false
}

// rat returns n as an exact rational. n must not be NaN or infinite.
func (n number) rat() *big.Rat {
	switch n.kind {
	case kindInt:
		return new(big.Rat).SetInt64(n.i)
	case kindUint:
		return new(big.Rat).SetUint64(n.u)
	case kindFloat:
		return new(big.Rat).SetFloat64(n.f)
	default:
		return n.r
	}
}
