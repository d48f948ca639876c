package dynjson

import (
	"encoding/json"
	"fmt"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// newObject returns the storage of an Object value: keys are unique and keep
// the order they were first inserted in.
func newObject() *orderedmap.OrderedMap[string, Value] {
	return orderedmap.New[string, Value]()
}

// Value is a JSON value of any type plus an optional attached error.
//
// Navigation never panics and never returns Go errors: a failed lookup
// yields a Null value whose Err describes the first failure, so chains such
// as v.Key("a").Index(2).Key("c") are always safe and can be checked once at
// the end with Exists.
//
// The zero Value is JSON null. Values behave as values: assigning or
// navigating yields an independent copy, and mutators copy a container
// before writing to it, so a change is never visible through another Value.
type Value struct {
	typ Type
	b   bool
	num Number
	str string
	arr []Value
	obj *orderedmap.OrderedMap[string, Value]
	err *ValueError
	// missing marks a lookup through an erroneous receiver. err keeps the
	// receiver's kind, which need not be an absence.
	missing bool
}

// Field is one key/value entry used to build an Object in a given order.
type Field struct {
	Key   string
	Value Value
}

// Null returns a JSON null.
func Null() Value { return Value{} }

// Bool returns a JSON boolean.
func Bool(b bool) Value { return Value{typ: TypeBool, b: b} }

// String returns a JSON string.
func String(s string) Value { return Value{typ: TypeString, str: s} }

// Int returns a JSON number holding i.
func Int(i int64) Value { return Value{typ: TypeNumber, num: NumberFromInt64(i)} }

// Uint returns a JSON number holding u.
func Uint(u uint64) Value { return Value{typ: TypeNumber, num: NumberFromUint64(u)} }

// Float returns a JSON number holding f. NaN and the infinities cannot be
// represented and give an Unknown value tagged KindUnsupportedType.
func Float(f float64) Value {
	n, ok := NumberFromFloat64(f)
	if !ok {
		return unknown(newValueError(KindUnsupportedType, "", "%v has no JSON representation", f))
	}
	return Value{typ: TypeNumber, num: n}
}

// NumberOf returns a JSON number from a literal. Malformed literals give an
// Unknown value tagged KindUnsupportedType.
func NumberOf(n Number) Value {
	if !n.Valid() {
		return unknown(newValueError(KindUnsupportedType, "", "invalid number literal %q", string(n)))
	}
	return Value{typ: TypeNumber, num: n}
}

// Array returns a JSON array of items.
func Array(items ...Value) Value {
	arr := make([]Value, len(items))
	copy(arr, items)
	return Value{typ: TypeArray, arr: arr}
}

// Object returns a JSON object holding m. Go maps are unordered, so the
// entries are inserted in sorted key order.
func Object(m map[string]Value) Value {
	obj := newObject()
	for _, k := range sortedKeys(m) {
		obj.Set(k, m[k])
	}
	return Value{typ: TypeObject, obj: obj}
}

// ObjectOf returns a JSON object with fields inserted in order. A repeated
// key keeps its first position and its last value.
func ObjectOf(fields ...Field) Value {
	obj := newObject()
	for _, f := range fields {
		obj.Set(f.Key, f.Value)
	}
	return Value{typ: TypeObject, obj: obj}
}

func unknown(err *ValueError) Value {
	return Value{typ: TypeUnknown, err: err}
}

// failed returns the Null value used to report navigation failures.
func failed(err *ValueError) Value {
	return Value{typ: TypeNull, err: err}
}

// lost is the result of subscripting an erroneous v: it does not exist and
// carries v's error unchanged.
func (v Value) lost() Value {
	return Value{typ: TypeNull, err: v.err, missing: true}
}

// New classifies a native payload into a Value.
//
// Accepted payloads are nil, bool, every Go integer and float width,
// json.Number, Number, string, Value, *Value, []Value, []any, []string,
// map[string]Value, map[string]any, map[string]string, the ordered maps
// *orderedmap.OrderedMap[string, any] and *orderedmap.OrderedMap[string, Value],
// and []byte, which is parsed as JSON text (a parse failure gives Null tagged
// KindInvalidJSON). Anything else, including nested, gives an Unknown value
// tagged KindUnsupportedType at that position. Nesting deeper than
// DefaultMaxParseDepth, such as a slice that contains itself, is cut off with
// an Unknown value tagged KindElementTooDeep.
func New(native any) Value {
	if data, ok := native.([]byte); ok {
		return ParseBytes(data)
	}
	return classify(native, DefaultMaxParseDepth)
}

func classify(native any, depth int) Value {
	if depth <= 0 {
		return unknown(newValueError(KindElementTooDeep, "", "native payload nested deeper than %d levels", DefaultMaxParseDepth))
	}

	switch v := native.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case *Value:
		if v == nil {
			return Null()
		}
		return *v
	case bool:
		return Bool(v)
	case string:
		return String(v)
	case Number:
		return NumberOf(v)
	case json.Number:
		return NumberOf(Number(v))
	case int:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int64:
		return Int(v)
	case uint:
		return Uint(uint64(v))
	case uint8:
		return Uint(uint64(v))
	case uint16:
		return Uint(uint64(v))
	case uint32:
		return Uint(uint64(v))
	case uint64:
		return Uint(v)
	case float32:
		return Float(float64(v))
	case float64:
		return Float(v)
	case []Value:
		return Array(v...)
	case []any:
		arr := make([]Value, len(v))
		for i, item := range v {
			arr[i] = classify(item, depth-1)
		}
		return Value{typ: TypeArray, arr: arr}
	case []string:
		arr := make([]Value, len(v))
		for i, item := range v {
			arr[i] = String(item)
		}
		return Value{typ: TypeArray, arr: arr}
	case map[string]Value:
		return Object(v)
	case map[string]any:
		obj := newObject()
		for _, k := range sortedKeys(v) {
			obj.Set(k, classify(v[k], depth-1))
		}
		return Value{typ: TypeObject, obj: obj}
	case map[string]string:
		obj := newObject()
		for _, k := range sortedKeys(v) {
			obj.Set(k, String(v[k]))
		}
		return Value{typ: TypeObject, obj: obj}
	case *orderedmap.OrderedMap[string, any]:
		if v == nil {
			return Null()
		}
		obj := newObject()
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			obj.Set(pair.Key, classify(pair.Value, depth-1))
		}
		return Value{typ: TypeObject, obj: obj}
	case *orderedmap.OrderedMap[string, Value]:
		if v == nil {
			return Null()
		}
		obj := newObject()
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			obj.Set(pair.Key, pair.Value)
		}
		return Value{typ: TypeObject, obj: obj}
	default:
		return unknown(newValueError(KindUnsupportedType, "", "cannot represent %T as JSON", native))
	}
}

// Type returns the active variant.
func (v Value) Type() Type { return v.typ }

// IsNull reports whether v is JSON null, including failed lookups.
func (v Value) IsNull() bool { return v.typ == TypeNull }

// Err returns the error attached to v, or nil.
func (v Value) Err() error {
	if v.err == nil {
		return nil
	}
	return v.err
}

// Exists reports whether v is present. Values produced by a failed lookup
// (missing key, index out of range, wrong container type, or any subscript
// of an erroneous value) do not exist; values carrying other errors, such as
// Unknown payloads, still do.
func (v Value) Exists() bool {
	if v.err == nil {
		return true
	}
	return !v.missing && !v.err.Kind.IsAbsence()
}

// Len returns the number of elements of an Array or entries of an Object,
// and 0 for every other type.
func (v Value) Len() int {
	switch v.typ {
	case TypeArray:
		return len(v.arr)
	case TypeObject:
		return v.obj.Len()
	default:
		return 0
	}
}

// Clone returns a deep copy of v that shares no storage with it.
func (v Value) Clone() Value {
	switch v.typ {
	case TypeArray:
		arr := make([]Value, len(v.arr))
		for i, item := range v.arr {
			arr[i] = item.Clone()
		}
		v.arr = arr
	case TypeObject:
		obj := newObject()
		for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
			obj.Set(pair.Key, pair.Value.Clone())
		}
		v.obj = obj
	}
	return v
}

// SetObject replaces v with the classification of native. The tag is
// re-derived from the payload and any attached error is replaced.
func (v *Value) SetObject(native any) {
	*v = New(native)
}

// GoString supports %#v.
func (v Value) GoString() string {
	if v.err != nil {
		return fmt.Sprintf("dynjson.Value{%s, err: %v}", v.typ, v.err)
	}
	return fmt.Sprintf("dynjson.Value{%s: %s}", v.typ, v.String())
}

func sortedKeys[M ~map[string]E, E any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
