package dynjson

import (
	"cmp"
	"math/big"
	"strings"
)

// bigFloatPrec is the mantissa precision used to compare literals that do
// not fit a 64-bit integer.
const bigFloatPrec = 512

// Equal reports whether v and other hold the same JSON value. Values of
// different variants are never equal, except that every Null equals every
// other Null. Numbers compare by value ("1.0" equals "1"), Objects compare
// entry by entry ignoring key order, and Unknown values equal nothing.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeNull:
		return true
	case TypeBool:
		return v.b == other.b
	case TypeNumber:
		c, _ := compareNumbers(v.num, other.num)
		return c == 0
	case TypeString:
		return v.str == other.str
	case TypeArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case TypeObject:
		if v.obj.Len() != other.obj.Len() {
			return false
		}
		for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
			o, ok := other.obj.Get(pair.Key)
			if !ok || !pair.Value.Equal(o) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare orders two Numbers numerically or two Strings lexically. ok is
// false for any other pair, which has no defined order.
func Compare(a, b Value) (c int, ok bool) {
	if a.typ != b.typ {
		return 0, false
	}
	switch a.typ {
	case TypeNumber:
		return compareNumbers(a.num, b.num)
	case TypeString:
		return strings.Compare(a.str, b.str), true
	default:
		return 0, false
	}
}

// Less reports whether v orders strictly before other.
func (v Value) Less(other Value) bool {
	c, ok := Compare(v, other)
	return ok && c < 0
}

// compareNumbers compares exactly when both literals are integers and with
// bigFloatPrec bits of precision otherwise.
func compareNumbers(a, b Number) (int, bool) {
	if a.IsInteger() && b.IsInteger() {
		if x, err := a.Int64(); err == nil {
			if y, err := b.Int64(); err == nil {
				return cmp.Compare(x, y), true
			}
		}
		if x, err := a.Uint64(); err == nil {
			if y, err := b.Uint64(); err == nil {
				return cmp.Compare(x, y), true
			}
		}
		x, okX := new(big.Int).SetString(string(a), 10)
		y, okY := new(big.Int).SetString(string(b), 10)
		if okX && okY {
			return x.Cmp(y), true
		}
	}
	x, _, errX := big.ParseFloat(string(a), 10, bigFloatPrec, big.ToNearestEven)
	y, _, errY := big.ParseFloat(string(b), 10, bigFloatPrec, big.ToNearestEven)
	if errX == nil && errY == nil {
		return x.Cmp(y), true
	}
	return cmp.Compare(a.float64OrZero(), b.float64OrZero()), true
}
