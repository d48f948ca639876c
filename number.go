package dynjson

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/cybergodev/dynjson/internal"
)

// Number is a JSON number kept as its literal text so integers and floats
// print back the way they were read.
type Number string

// NumberFromInt64 returns the literal for i.
func NumberFromInt64(i int64) Number { return Number(strconv.FormatInt(i, 10)) }

// NumberFromUint64 returns the literal for u.
func NumberFromUint64(u uint64) Number { return Number(strconv.FormatUint(u, 10)) }

// NumberFromFloat64 returns the shortest literal for f. NaN and the
// infinities have no JSON form and report false.
func NumberFromFloat64(f float64) (Number, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return Number(strconv.FormatFloat(f, 'g', -1, 64)), true
}

// String returns the literal text of the number.
func (n Number) String() string { return string(n) }

// IsInteger reports whether the literal has no fraction or exponent.
func (n Number) IsInteger() bool {
	return !strings.ContainsAny(string(n), ".eE")
}

// Valid reports whether n is a well-formed JSON number literal.
func (n Number) Valid() bool {
	return internal.IsValidNumber(string(n))
}

// Float64 returns the number as a float64.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// Int64 returns the number as an int64. Literals with a fraction or
// exponent are accepted only when they hold an exact integer.
func (n Number) Int64() (int64, error) {
	if n.IsInteger() {
		return strconv.ParseInt(string(n), 10, 64)
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, &strconv.NumError{Func: "Int64", Num: string(n), Err: strconv.ErrRange}
	}
	return int64(f), nil
}

// Uint64 returns the number as a uint64, with the same exactness rule as
// Int64.
func (n Number) Uint64() (uint64, error) {
	if n.IsInteger() {
		return strconv.ParseUint(string(n), 10, 64)
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
		return 0, &strconv.NumError{Func: "Uint64", Num: string(n), Err: strconv.ErrRange}
	}
	return uint64(f), nil
}

// truncInt64 converts n to int64 truncating toward zero and clamping to the
// int64 range. Unparseable literals give 0.
func (n Number) truncInt64() int64 {
	if n.IsInteger() {
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return i
		}
	}
	// ParseFloat yields 0 on bad syntax and ±Inf out of range.
	f, _ := n.Float64()
	return clampFloatToInt64(f)
}

// truncUint64 is truncInt64 for the unsigned range.
func (n Number) truncUint64() uint64 {
	if n.IsInteger() {
		if u, err := strconv.ParseUint(string(n), 10, 64); err == nil {
			return u
		}
	}
	f, _ := n.Float64()
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= math.MaxUint64:
		return math.MaxUint64
	}
	return uint64(f)
}

func (n Number) float64OrZero() float64 {
	f, _ := n.Float64()
	if math.IsNaN(f) {
		return 0
	}
	return f
}

func (n Number) isZero() bool {
	f, _ := n.Float64()
	return f == 0
}

// jsonNumber converts n for encoding/json and native trees.
func (n Number) jsonNumber() json.Number { return json.Number(n) }

func clampFloatToInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f <= math.MinInt64:
		return math.MinInt64
	case f >= math.MaxInt64:
		return math.MaxInt64
	}
	return int64(f)
}
