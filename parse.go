package dynjson

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/josharian/intern"
)

// Parse parses JSON text into a Value. Malformed input gives a Null value
// tagged KindInvalidJSON.
func Parse(s string) Value {
	return ParseBytes([]byte(s))
}

// ParseBytes parses JSON bytes into a Value using the default parse depth.
func ParseBytes(data []byte) Value {
	return parse(data, DefaultMaxParseDepth)
}

// ParseWithConfig parses JSON bytes honouring cfg.MaxParseDepth.
func ParseWithConfig(data []byte, cfg *Config) Value {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return parse(data, cfg.MaxParseDepth)
}

func parse(data []byte, maxDepth int) Value {
	// jsonparser walks lazily and tolerates trailing garbage, so the
	// document is checked against the full grammar first.
	if !json.Valid(data) {
		return failed(newValueError(KindInvalidJSON, "", "input is not valid JSON"))
	}
	raw, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return failed(wrapValueError(KindInvalidJSON, "", err, "cannot read document"))
	}
	v, verr := buildValue(raw, dataType, maxDepth)
	if verr != nil {
		return failed(verr)
	}
	return v
}

// buildValue converts one raw jsonparser token into a Value. Numbers keep
// their literal text.
func buildValue(raw []byte, dataType jsonparser.ValueType, depth int) (Value, *ValueError) {
	switch dataType {
	case jsonparser.Null:
		return Null(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return Value{}, wrapValueError(KindInvalidJSON, "", err, "malformed boolean")
		}
		return Bool(b), nil
	case jsonparser.Number:
		return Value{typ: TypeNumber, num: Number(raw)}, nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return Value{}, wrapValueError(KindInvalidJSON, "", err, "malformed string")
		}
		return String(s), nil
	case jsonparser.Array:
		if depth <= 0 {
			return Value{}, newValueError(KindElementTooDeep, "", "document nested deeper than the parse limit")
		}
		return buildArray(raw, depth)
	case jsonparser.Object:
		if depth <= 0 {
			return Value{}, newValueError(KindElementTooDeep, "", "document nested deeper than the parse limit")
		}
		return buildObject(raw, depth)
	default:
		return Value{}, newValueError(KindInvalidJSON, "", "unexpected token %q", truncate(raw, 32))
	}
}

func buildArray(raw []byte, depth int) (Value, *ValueError) {
	arr := make([]Value, 0)
	var firstErr *ValueError
	_, err := jsonparser.ArrayEach(raw, func(item []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if firstErr != nil {
			return
		}
		v, verr := buildValue(item, dataType, depth-1)
		if verr != nil {
			firstErr = verr
			return
		}
		arr = append(arr, v)
	})
	if firstErr != nil {
		return Value{}, firstErr
	}
	if err != nil {
		return Value{}, wrapValueError(KindInvalidJSON, "", err, "malformed array")
	}
	return Value{typ: TypeArray, arr: arr}, nil
}

func buildObject(raw []byte, depth int) (Value, *ValueError) {
	obj := newObject()
	// ObjectEach hands over keys already unescaped. Keys are interned.
	err := jsonparser.ObjectEach(raw, func(key, item []byte, dataType jsonparser.ValueType, _ int) error {
		k := intern.Bytes(key)
		v, verr := buildValue(item, dataType, depth-1)
		if verr != nil {
			if verr.Path == "" {
				verr.Path = k
			}
			return verr
		}
		obj.Set(k, v)
		return nil
	})
	if err != nil {
		var verr *ValueError
		if errors.As(err, &verr) {
			return Value{}, verr
		}
		return Value{}, wrapValueError(KindInvalidJSON, "", err, "malformed object")
	}
	return Value{typ: TypeObject, obj: obj}, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return fmt.Sprintf("%s...", b[:n])
}
