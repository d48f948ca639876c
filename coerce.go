package dynjson

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

var (
	valueType  = reflect.TypeFor[Value]()
	numberType = reflect.TypeFor[Number]()
)

// decodeItem converts item to target: a direct, type-matching decode first,
// then the coercion table, then the converters. container and key locate
// item for the converters.
func (d *Decoder) decodeItem(container Value, key string, item Value, target reflect.Type, depth int) (reflect.Value, error) {
	if depth <= 0 {
		return reflect.Value{}, &DecodeError{
			Key:     key,
			Target:  target.String(),
			Kind:    KindElementTooDeep,
			Message: "target type nested too deeply",
		}
	}

	rv, directErr := d.direct(container, key, item, target, depth)
	if directErr == nil {
		return rv, nil
	}

	rv, ok, reason := coerce(item, target)
	if ok {
		return rv, nil
	}

	if rv, ok := d.convert(container, key, target); ok {
		return rv, nil
	}

	if reason != "" {
		return reflect.Value{}, &DecodeError{
			Key:     key,
			Target:  target.String(),
			Kind:    KindWrongType,
			Message: reason,
			Err:     directErr,
		}
	}
	return reflect.Value{}, directErr
}

func mismatch(key string, target reflect.Type, item Value) *DecodeError {
	return &DecodeError{
		Key:     key,
		Target:  target.String(),
		Kind:    KindWrongType,
		Message: fmt.Sprintf("found %s", item.typ),
	}
}

// direct decodes item when its variant already matches target.
func (d *Decoder) direct(container Value, key string, item Value, target reflect.Type, depth int) (reflect.Value, error) {
	switch target {
	case valueType:
		return reflect.ValueOf(item), nil
	case numberType:
		if item.typ != TypeNumber {
			return reflect.Value{}, mismatch(key, target, item)
		}
		return reflect.ValueOf(item.num), nil
	}

	out := reflect.New(target).Elem()
	switch target.Kind() {
	case reflect.Interface:
		if target.NumMethod() != 0 {
			break
		}
		if native := item.Interface(); native != nil {
			out.Set(reflect.ValueOf(native))
		}
		return out, nil

	case reflect.Bool:
		if item.typ != TypeBool {
			return reflect.Value{}, mismatch(key, target, item)
		}
		out.SetBool(item.b)
		return out, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if item.typ != TypeNumber {
			return reflect.Value{}, mismatch(key, target, item)
		}
		i, err := item.num.Int64()
		if err != nil || out.OverflowInt(i) {
			return reflect.Value{}, &DecodeError{Key: key, Target: target.String(), Kind: KindWrongType,
				Message: fmt.Sprintf("number %s does not fit %s", item.num, target)}
		}
		out.SetInt(i)
		return out, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if item.typ != TypeNumber {
			return reflect.Value{}, mismatch(key, target, item)
		}
		u, err := item.num.Uint64()
		if err != nil || out.OverflowUint(u) {
			return reflect.Value{}, &DecodeError{Key: key, Target: target.String(), Kind: KindWrongType,
				Message: fmt.Sprintf("number %s does not fit %s", item.num, target)}
		}
		out.SetUint(u)
		return out, nil

	case reflect.Float32, reflect.Float64:
		if item.typ != TypeNumber {
			return reflect.Value{}, mismatch(key, target, item)
		}
		f, err := strconv.ParseFloat(string(item.num), target.Bits())
		if err != nil {
			return reflect.Value{}, &DecodeError{Key: key, Target: target.String(), Kind: KindWrongType,
				Message: fmt.Sprintf("number %s does not fit %s", item.num, target), Err: err}
		}
		out.SetFloat(f)
		return out, nil

	case reflect.String:
		if item.typ != TypeString {
			return reflect.Value{}, mismatch(key, target, item)
		}
		out.SetString(item.str)
		return out, nil

	case reflect.Slice:
		if item.typ != TypeArray {
			return reflect.Value{}, mismatch(key, target, item)
		}
		slice := reflect.MakeSlice(target, len(item.arr), len(item.arr))
		for i, elem := range item.arr {
			ev, err := d.decodeItem(item, strconv.Itoa(i), elem, target.Elem(), depth-1)
			if err != nil {
				return reflect.Value{}, err
			}
			slice.Index(i).Set(ev)
		}
		return slice, nil

	case reflect.Map:
		if target.Key().Kind() != reflect.String {
			break
		}
		if item.typ != TypeObject {
			return reflect.Value{}, mismatch(key, target, item)
		}
		m := reflect.MakeMapWithSize(target, item.obj.Len())
		for pair := item.obj.Oldest(); pair != nil; pair = pair.Next() {
			ev, err := d.decodeItem(item, pair.Key, pair.Value, target.Elem(), depth-1)
			if err != nil {
				return reflect.Value{}, err
			}
			m.SetMapIndex(reflect.ValueOf(pair.Key).Convert(target.Key()), ev)
		}
		return m, nil

	case reflect.Struct:
		if !hasExportedFields(target) {
			break
		}
		if item.typ != TypeObject {
			return reflect.Value{}, mismatch(key, target, item)
		}
		if err := d.decodeStruct(item, out, depth-1); err != nil {
			return reflect.Value{}, err
		}
		return out, nil

	case reflect.Pointer:
		if item.typ == TypeNull {
			return out, nil
		}
		ev, err := d.decodeItem(container, key, item, target.Elem(), depth-1)
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(ev)
		return ptr, nil
	}

	return reflect.Value{}, &DecodeError{
		Key:     key,
		Target:  target.String(),
		Kind:    KindUnsupportedType,
		Message: "no built-in rule decodes this type",
	}
}

// coerce applies the cross-type rules. reason explains a rule that applied
// to the input but rejected it, such as an overflow.
func coerce(item Value, target reflect.Type) (rv reflect.Value, ok bool, reason string) {
	if target == numberType {
		switch item.typ {
		case TypeString:
			if n, ok := parseDecimal(item.str); ok {
				return reflect.ValueOf(n), true, ""
			}
			return reflect.Value{}, false, fmt.Sprintf("string %q is not a number", item.str)
		case TypeBool:
			return reflect.ValueOf(Bool(item.b).NumberValue()), true, ""
		}
		return reflect.Value{}, false, ""
	}

	out := reflect.New(target).Elem()
	switch target.Kind() {
	case reflect.Bool:
		switch item.typ {
		case TypeNumber:
			out.SetBool(!item.num.isZero())
			return out, true, ""
		case TypeString:
			_, truthy := truthyStrings[strings.ToLower(item.str)]
			out.SetBool(truthy)
			return out, true, ""
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok, reason := numericSource(item)
		if !ok {
			return reflect.Value{}, false, reason
		}
		i, inRange := truncToInt64(n)
		if !inRange || out.OverflowInt(i) {
			return reflect.Value{}, false, fmt.Sprintf("%s overflows %s", n, target)
		}
		out.SetInt(i)
		return out, true, ""

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, ok, reason := numericSource(item)
		if !ok {
			return reflect.Value{}, false, reason
		}
		u, inRange := truncToUint64(n)
		if !inRange || out.OverflowUint(u) {
			return reflect.Value{}, false, fmt.Sprintf("%s overflows %s", n, target)
		}
		out.SetUint(u)
		return out, true, ""

	case reflect.Float32, reflect.Float64:
		n, ok, reason := numericSource(item)
		if !ok {
			return reflect.Value{}, false, reason
		}
		f, err := strconv.ParseFloat(string(n), target.Bits())
		if err != nil {
			return reflect.Value{}, false, fmt.Sprintf("%s overflows %s", n, target)
		}
		out.SetFloat(f)
		return out, true, ""

	case reflect.String:
		switch item.typ {
		case TypeNumber:
			out.SetString(item.num.String())
			return out, true, ""
		case TypeBool:
			out.SetString(strconv.FormatBool(item.b))
			return out, true, ""
		}
	}
	return reflect.Value{}, false, ""
}

// numericSource reads a number out of a Number, numeric String or Bool.
func numericSource(item Value) (Number, bool, string) {
	switch item.typ {
	case TypeNumber:
		return item.num, true, ""
	case TypeBool:
		return Bool(item.b).NumberValue(), true, ""
	case TypeString:
		if n, ok := parseDecimal(item.str); ok {
			return n, true, ""
		}
		return "", false, fmt.Sprintf("string %q is not a number", item.str)
	}
	return "", false, ""
}

// truncToInt64 truncates n toward zero, reporting false when the result
// does not fit an int64.
func truncToInt64(n Number) (int64, bool) {
	if n.IsInteger() {
		i, err := strconv.ParseInt(string(n), 10, 64)
		return i, err == nil
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	f = math.Trunc(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// truncToUint64 is truncToInt64 for the unsigned range.
func truncToUint64(n Number) (uint64, bool) {
	if n.IsInteger() {
		u, err := strconv.ParseUint(string(n), 10, 64)
		return u, err == nil
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	f = math.Trunc(f)
	if f < 0 || f >= math.MaxUint64 {
		return 0, false
	}
	return uint64(f), true
}

func hasExportedFields(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			return true
		}
	}
	return false
}
