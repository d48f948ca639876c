package dynjson

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/mailru/easyjson/jwriter"

	"github.com/cybergodev/dynjson/internal"
)

// RawData serializes v to JSON bytes.
//
// By default v is converted to a native tree and handed to encoding/json;
// this requires v to be null-safe, that is free of Unknown values and failed
// lookups, and fails with KindInvalidJSON otherwise. Object keys come out
// sorted on this path.
//
// WithCastNilToNull(true) selects the lenient writer instead: it walks v
// itself, writes Unknown and failed values as null, keeps Object keys in
// insertion order and fails with KindElementTooDeep once the nesting exceeds
// WithMaxObjectDepth (default 10, where a scalar counts as one level and
// each enclosing container adds one).
//
// Failures are returned and logged as warnings; RawData never panics.
func (v Value) RawData(opts ...WriteOption) ([]byte, error) {
	o := defaultWriteOptions()
	for _, opt := range opts {
		opt(&o)
	}
	data, err := v.rawData(o)
	if err != nil {
		logger().Warn("JSON serialization failed",
			slog.String("type", v.typ.String()),
			slog.Bool("lenient", o.CastNilToNull),
			slog.Int("max_object_depth", o.MaxObjectDepth),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return data, nil
}

// RawString is RawData returning a string.
func (v Value) RawString(opts ...WriteOption) (string, error) {
	data, err := v.RawData(opts...)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (v Value) rawData(o WriteOptions) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if o.CastNilToNull {
		data, err = writeLenient(v, o)
	} else {
		data, err = writeStrict(v, o)
	}
	if err != nil {
		return nil, err
	}
	if o.Encoding == ASCII {
		data = internal.EscapeNonASCII(data)
	}
	return data, nil
}

// writeStrict is the encoding/json path.
func writeStrict(v Value, o WriteOptions) ([]byte, error) {
	if bad, ok := findUnsafe(v); ok {
		return nil, wrapValueError(KindInvalidJSON, "", bad.Err(),
			"value holds "+describeUnsafe(bad)+"; serialize with WithCastNilToNull(true) to write it as null")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(o.EscapeHTML)
	if o.PrettyPrint {
		enc.SetIndent("", o.Indent)
	}
	if err := enc.Encode(v.Interface()); err != nil {
		return nil, wrapValueError(KindInvalidJSON, "", err, "encoding/json rejected the value")
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// findUnsafe returns the first value that has no faithful JSON form.
func findUnsafe(v Value) (Value, bool) {
	if v.err != nil || v.typ == TypeUnknown {
		return v, true
	}
	switch v.typ {
	case TypeArray:
		for _, item := range v.arr {
			if bad, ok := findUnsafe(item); ok {
				return bad, true
			}
		}
	case TypeObject:
		for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
			if bad, ok := findUnsafe(pair.Value); ok {
				return bad, true
			}
		}
	}
	return Value{}, false
}

func describeUnsafe(v Value) string {
	if v.typ == TypeUnknown {
		return "an unknown value"
	}
	return "a failed lookup"
}

// lenientWriter renders a Value with easyjson's writer, one recursive call
// per nesting level.
type lenientWriter struct {
	w     jwriter.Writer
	opts  WriteOptions
	level int
}

func writeLenient(v Value, o WriteOptions) ([]byte, error) {
	lw := &lenientWriter{opts: o}
	lw.w.NoEscapeHTML = !o.EscapeHTML
	if err := lw.write(v, o.MaxObjectDepth); err != nil {
		return nil, err
	}
	data, err := lw.w.BuildBytes()
	if err != nil {
		return nil, wrapValueError(KindInvalidJSON, "", err, "cannot build output")
	}
	return data, nil
}

func (lw *lenientWriter) write(v Value, remaining int) error {
	if remaining <= 0 {
		return newValueError(KindElementTooDeep, "",
			"value nested deeper than %d levels", lw.opts.MaxObjectDepth)
	}
	if v.err != nil || v.typ == TypeUnknown {
		lw.w.RawString("null")
		return nil
	}

	switch v.typ {
	case TypeNull:
		lw.w.RawString("null")
	case TypeBool:
		lw.w.Bool(v.b)
	case TypeNumber:
		lw.w.RawString(string(v.num))
	case TypeString:
		lw.w.String(v.str)
	case TypeArray:
		lw.w.RawByte('[')
		lw.level++
		for i, item := range v.arr {
			if i > 0 {
				lw.w.RawByte(',')
			}
			lw.newline()
			if err := lw.write(item, remaining-1); err != nil {
				return err
			}
		}
		lw.level--
		if len(v.arr) > 0 {
			lw.newline()
		}
		lw.w.RawByte(']')
	case TypeObject:
		lw.w.RawByte('{')
		lw.level++
		first := true
		for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				lw.w.RawByte(',')
			}
			first = false
			lw.newline()
			lw.w.String(pair.Key)
			lw.w.RawByte(':')
			if lw.opts.PrettyPrint {
				lw.w.RawByte(' ')
			}
			if err := lw.write(pair.Value, remaining-1); err != nil {
				return err
			}
		}
		lw.level--
		if !first {
			lw.newline()
		}
		lw.w.RawByte('}')
	}
	return nil
}

func (lw *lenientWriter) newline() {
	if !lw.opts.PrettyPrint {
		return
	}
	lw.w.RawByte('\n')
	lw.w.RawString(strings.Repeat(lw.opts.Indent, lw.level))
}

// String renders v as indented JSON for display. Values the strict path
// rejects are rendered leniently; "null" is the last resort.
func (v Value) String() string {
	o := defaultWriteOptions()
	o.PrettyPrint = true
	if data, err := v.rawData(o); err == nil {
		return string(data)
	}
	o.CastNilToNull = true
	o.MaxObjectDepth = MaxAllowedObjectDepth
	if data, err := v.rawData(o); err == nil {
		return string(data)
	}
	return "null"
}

// MarshalJSON implements json.Marshaler with the lenient writer, so Object
// keys keep their insertion order and Unknown values become null.
func (v Value) MarshalJSON() ([]byte, error) {
	o := defaultWriteOptions()
	o.CastNilToNull = true
	o.MaxObjectDepth = MaxAllowedObjectDepth
	return v.rawData(o)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed := ParseBytes(data)
	if parsed.err != nil {
		return parsed.err
	}
	*v = parsed
	return nil
}
