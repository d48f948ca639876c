package dynjson

import (
	"math"
	"strconv"
	"strings"

	"github.com/cybergodev/dynjson/internal"
)

// Optional projections: the second result is false when the variant does
// not match.

// AsBool returns the payload of a Bool value.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.typ == TypeBool
}

// AsString returns the payload of a String value.
func (v Value) AsString() (string, bool) {
	return v.str, v.typ == TypeString
}

// AsNumber returns the payload of a Number value.
func (v Value) AsNumber() (Number, bool) {
	return v.num, v.typ == TypeNumber
}

// AsInt64 returns the payload of a Number value holding an exact int64.
func (v Value) AsInt64() (int64, bool) {
	if v.typ != TypeNumber {
		return 0, false
	}
	i, err := v.num.Int64()
	return i, err == nil
}

// AsFloat64 returns the payload of a Number value as a float64.
func (v Value) AsFloat64() (float64, bool) {
	if v.typ != TypeNumber {
		return 0, false
	}
	f, err := v.num.Float64()
	return f, err == nil
}

// AsArray returns the elements of an Array value as a new slice.
func (v Value) AsArray() ([]Value, bool) {
	if v.typ != TypeArray {
		return nil, false
	}
	arr := make([]Value, len(v.arr))
	copy(arr, v.arr)
	return arr, true
}

// AsObject returns the entries of an Object value as a new map.
func (v Value) AsObject() (map[string]Value, bool) {
	if v.typ != TypeObject {
		return nil, false
	}
	m := make(map[string]Value, v.obj.Len())
	for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
		m[pair.Key] = pair.Value
	}
	return m, true
}

// Fields returns the entries of an Object value in insertion order.
func (v Value) Fields() []Field {
	if v.typ != TypeObject {
		return nil
	}
	fields := make([]Field, 0, v.obj.Len())
	for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
		fields = append(fields, Field{Key: pair.Key, Value: pair.Value})
	}
	return fields
}

// Coercive projections never fail. Bool, Number and String convert into
// each other; every other variant gives the zero value.

// BoolValue coerces v to a bool. Numbers are true when non-zero; strings
// are true when they match "true", "y", "t", "yes" or "1" ignoring case.
func (v Value) BoolValue() bool {
	switch v.typ {
	case TypeBool:
		return v.b
	case TypeNumber:
		return !v.num.isZero()
	case TypeString:
		_, ok := truthyStrings[strings.ToLower(v.str)]
		return ok
	default:
		return false
	}
}

// StringValue coerces v to a string. Numbers render their literal text and
// booleans render "true" or "false".
func (v Value) StringValue() string {
	switch v.typ {
	case TypeString:
		return v.str
	case TypeNumber:
		return v.num.String()
	case TypeBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// NumberValue coerces v to a Number. Booleans give 1 or 0; strings are
// parsed as decimals and give 0 when they are not numbers.
func (v Value) NumberValue() Number {
	switch v.typ {
	case TypeNumber:
		return v.num
	case TypeBool:
		if v.b {
			return "1"
		}
		return "0"
	case TypeString:
		if n, ok := parseDecimal(v.str); ok {
			return n
		}
		return "0"
	default:
		return "0"
	}
}

// parseDecimal reads s as a number: a JSON literal is kept verbatim, other
// forms strconv accepts (leading '+', ".5") are normalised.
func parseDecimal(s string) (Number, bool) {
	s = strings.TrimSpace(s)
	if internal.IsValidNumber(s) {
		return Number(s), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", false
	}
	return NumberFromFloat64(f)
}

// Float64Value coerces v to a float64.
func (v Value) Float64Value() float64 { return v.NumberValue().float64OrZero() }

// Float32Value coerces v to a float32.
func (v Value) Float32Value() float32 { return float32(v.Float64Value()) }

// Int64Value coerces v to an int64, truncating fractions toward zero and
// clamping to the int64 range.
func (v Value) Int64Value() int64 { return v.NumberValue().truncInt64() }

// IntValue coerces v to an int.
func (v Value) IntValue() int { return int(clampInt(v.Int64Value(), math.MinInt, math.MaxInt)) }

// Int8Value coerces v to an int8, clamping to its range.
func (v Value) Int8Value() int8 { return int8(clampInt(v.Int64Value(), math.MinInt8, math.MaxInt8)) }

// Int16Value coerces v to an int16, clamping to its range.
func (v Value) Int16Value() int16 {
	return int16(clampInt(v.Int64Value(), math.MinInt16, math.MaxInt16))
}

// Int32Value coerces v to an int32, clamping to its range.
func (v Value) Int32Value() int32 {
	return int32(clampInt(v.Int64Value(), math.MinInt32, math.MaxInt32))
}

// Uint64Value coerces v to a uint64; negative numbers give 0.
func (v Value) Uint64Value() uint64 { return v.NumberValue().truncUint64() }

// UintValue coerces v to a uint.
func (v Value) UintValue() uint { return uint(clampUint(v.Uint64Value(), math.MaxUint)) }

// Uint8Value coerces v to a uint8, clamping to its range.
func (v Value) Uint8Value() uint8 { return uint8(clampUint(v.Uint64Value(), math.MaxUint8)) }

// Uint16Value coerces v to a uint16, clamping to its range.
func (v Value) Uint16Value() uint16 { return uint16(clampUint(v.Uint64Value(), math.MaxUint16)) }

// Uint32Value coerces v to a uint32, clamping to its range.
func (v Value) Uint32Value() uint32 { return uint32(clampUint(v.Uint64Value(), math.MaxUint32)) }

func clampInt(i, lo, hi int64) int64 {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}

func clampUint(u, hi uint64) uint64 {
	if u > hi {
		return hi
	}
	return u
}

// Native projections

// Interface returns v as a native tree of nil, bool, json.Number, string,
// []any and map[string]any. Unknown values map to nil.
func (v Value) Interface() any {
	switch v.typ {
	case TypeBool:
		return v.b
	case TypeNumber:
		return v.num.jsonNumber()
	case TypeString:
		return v.str
	case TypeArray:
		return v.ArrayObject()
	case TypeObject:
		return v.DictionaryObject()
	default:
		return nil
	}
}

// ArrayObject returns an Array value as []any, or nil for other variants.
func (v Value) ArrayObject() []any {
	if v.typ != TypeArray {
		return nil
	}
	out := make([]any, len(v.arr))
	for i, item := range v.arr {
		out[i] = item.Interface()
	}
	return out
}

// DictionaryObject returns an Object value as map[string]any, or nil for
// other variants.
func (v Value) DictionaryObject() map[string]any {
	if v.typ != TypeObject {
		return nil
	}
	out := make(map[string]any, v.obj.Len())
	for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value.Interface()
	}
	return out
}
