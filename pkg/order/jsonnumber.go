package order

import (
	"cmp"
	"encoding/json"
	"math/big"
	"strings"

	"github.com/grafana/regexp"
	jsoniter "github.com/json-iterator/go"
)

// jsonNumberRE matches the JSON number grammar (RFC 8259, section 6).
var jsonNumberRE = regexp.MustCompile(`^(-)?(0|[1-9][0-9]*)(?:\.([0-9]+))?(?:[eE]([+-]?[0-9]+))?$`)

// maxMaterializedOrder bounds the decimal order of magnitude of JSON numbers
// that are converted to a big.Rat up front. Larger numbers are kept in
// scientific form and only materialized when compared against a value of a
// similar magnitude.
const maxMaterializedOrder = 400

// scientific is a non-zero decimal number ±0.digits × 10^ord. digits has no
// leading or trailing zeros.
type scientific struct {
	neg    bool
	digits string
	ord    *big.Int
}

func isJSONNumber(v any) bool {
	switch v.(type) {
	case json.Number, jsoniter.Number:
		return true
	default:
		return false
	}
}

// parseNumber parses a decoded JSON number. Numbers with an exponent too
// large for big.Rat are still accepted and compared exactly.
func parseNumber(s string) (number, bool) {
	m := jsonNumberRE.FindStringSubmatch(s)
	if m == nil {
		return number{}, false
	}
	neg, intPart, frac, exp := m[1] == "-", m[2], m[3], m[4]

	digits := strings.TrimLeft(intPart+frac, "0")
	if digits == "" {
		return number{kind: kindInt}, true
	}
	trimmed := strings.TrimRight(digits, "0")

	// s = ±digits × 10^(exp - len(frac)), so the order of magnitude is
	// exp - len(frac) + len(digits).
	ord := new(big.Int)
	if exp != "" {
		ord.SetString(exp, 10)
	}
	ord.Add(ord, big.NewInt(int64(len(digits)-len(frac))))

	if ord.CmpAbs(big.NewInt(maxMaterializedOrder)) <= 0 {
		if r, ok := new(big.Rat).SetString(s); ok {
			if r.IsInt() && r.Num().IsInt64() {
				return number{kind: kindInt, i: r.Num().Int64()}, true
			}
			return number{kind: kindExact, r: r}, true
		}
	}
	return number{kind: kindScientific, s: &scientific{neg: neg, digits: trimmed, ord: ord}}, true
}

func (s *scientific) sign() int {
	if s.neg {
		return -1
	}
	return 1
}

// cmp compares two numbers in scientific form without materializing them.
func (s *scientific) cmp(o *scientific) int {
	if s.neg != o.neg {
		return cmp.Compare(s.sign(), o.sign())
	}
	res := s.ord.Cmp(o.ord)
	if res == 0 {
		res = strings.Compare(s.digits, o.digits)
	}
	return s.sign() * res
}

// cmpRat compares s against a finite rational. The value of s is only built
// when both sides have orders of magnitude within two of each other.
func (s *scientific) cmpRat(r *big.Rat) int {
	if rs := r.Sign(); rs != s.sign() {
		return cmp.Compare(s.sign(), rs)
	}

	// |r| lies in (10^(d-1), 10^(d+1)) and |s| in [10^(ord-1), 10^ord).
	d := big.NewInt(int64(len(r.Num().Text(10)) - len(r.Denom().Text(10))))
	if r.Sign() < 0 {
		d.Sub(d, big.NewInt(1)) // Text includes the minus sign.
	}
	switch {
	case s.ord.Cmp(d) < 0:
		return -s.sign()
	case s.ord.Cmp(new(big.Int).Add(d, big.NewInt(2))) >= 0:
		return s.sign()
	}
	return s.rat().Cmp(r)
}

// rat returns the exact value of s. Only call it when ord is small.
func (s *scientific) rat() *big.Rat {
	mant, _ := new(big.Int).SetString(s.digits, 10)
	if s.neg {
		mant.Neg(mant)
	}
	shift := s.ord.Int64() - int64(len(s.digits))
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(abs(shift)), nil)
	if shift >= 0 {
		return new(big.Rat).SetInt(mant.Mul(mant, pow))
	}
	return new(big.Rat).SetFrac(mant, pow)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
