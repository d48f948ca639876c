package dynjson

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/cybergodev/dynjson/internal"
)

// Decoder is a decode session: an optional per-session converter, a shared
// converter registry and a logger. A nil *Decoder behaves like
// NewDecoder() and a Decoder is safe for concurrent use.
type Decoder struct {
	registry *Registry
	session  Converter
	logger   *slog.Logger
	maxDepth int
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithRegistry sets the shared converter registry.
func WithRegistry(r *Registry) DecoderOption {
	return func(d *Decoder) { d.registry = r }
}

// WithConverter sets the session converter, consulted before the registry.
func WithConverter(c Converter) DecoderOption {
	return func(d *Decoder) { d.session = c }
}

// WithLogger sets the logger for debug output of key fallbacks and
// converter hits. By default the package logger is used.
func WithLogger(l *slog.Logger) DecoderOption {
	return func(d *Decoder) { d.logger = l }
}

// WithMaxDecodeDepth bounds target type nesting.
func WithMaxDecodeDepth(depth int) DecoderOption {
	return func(d *Decoder) {
		if depth > 0 {
			d.maxDepth = depth
		}
	}
}

// NewDecoder creates a Decoder. Without WithRegistry it has no converters.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{maxDepth: DefaultMaxDecodeDepth}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = NewDecoder()

func (d *Decoder) orDefault() *Decoder {
	if d == nil {
		return defaultDecoder
	}
	return d
}

func (d *Decoder) log() *slog.Logger {
	if d.logger != nil {
		return d.logger
	}
	return logger()
}

// DecodeStruct fills the exported fields of the struct dst points to from
// the Object v.
//
// A field's candidate keys come from its dynjson tag, separated by '|' and
// optionally followed by ",required":
//
//	UserID string `dynjson:"user_id|userId|data.user.id,required"`
//
// Without a dynjson tag the json tag name is used, then the field name. A
// tag of "-" skips the field and untagged embedded structs, or pointers to
// them, are filled from v itself. Missing optional fields keep their current
// value; a missing required field fails with KindNotExist.
func (d *Decoder) DecodeStruct(v Value, dst any) error {
	d = d.orDefault()
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return &DecodeError{
			Target:  fmt.Sprintf("%T", dst),
			Kind:    KindUnsupportedType,
			Message: "destination must be a non-nil pointer to a struct",
		}
	}
	if v.typ != TypeObject {
		return &DecodeError{
			Target:  rv.Elem().Type().String(),
			Kind:    KindWrongType,
			Message: fmt.Sprintf("cannot decode %s into a struct", v.typ),
			Err:     v.Err(),
		}
	}
	return d.decodeStruct(v, rv.Elem(), d.maxDepth)
}

func (d *Decoder) decodeStruct(obj Value, out reflect.Value, depth int) error {
	for _, f := range cachedFields(out.Type()) {
		field := out.FieldByIndex(f.index)
		if f.embedded {
			if err := d.decodeEmbedded(obj, field, depth-1); err != nil {
				return err
			}
			continue
		}

		rv, found, err := d.lookup(obj, f.keys, f.typ, depth)
		if err != nil {
			return fmt.Errorf("dynjson: field %s: %w", f.name, err)
		}
		if !found {
			if f.required {
				return fmt.Errorf("dynjson: field %s: %w", f.name, &DecodeError{
					Key:     strings.Join(f.keys, "|"),
					Target:  f.typ.String(),
					Kind:    KindNotExist,
					Message: "required field is missing",
				})
			}
			continue
		}
		field.Set(rv)
	}
	return nil
}

// decodeEmbedded fills an embedded struct from obj. A nil embedded pointer
// is allocated only when decoding sets one of its fields.
func (d *Decoder) decodeEmbedded(obj Value, field reflect.Value, depth int) error {
	if field.Kind() != reflect.Pointer {
		return d.decodeStruct(obj, field, depth)
	}
	if !field.IsNil() {
		return d.decodeStruct(obj, field.Elem(), depth)
	}
	ptr := reflect.New(field.Type().Elem())
	if err := d.decodeStruct(obj, ptr.Elem(), depth); err != nil {
		return err
	}
	if !ptr.Elem().IsZero() {
		field.Set(ptr)
	}
	return nil
}

// structField describes one decodable struct field.
type structField struct {
	name     string
	index    []int
	typ      reflect.Type
	keys     []string
	required bool
	embedded bool
}

var fieldCache = internal.NewTypeCache[[]structField]()

// CacheStats reports the size and hit counts of a reflection cache.
type CacheStats = internal.CacheStats

// Stats is a snapshot of the process-wide caches behind DecodeStruct and
// SchemaFor.
type Stats struct {
	Fields  CacheStats `json:"fields"`
	Schemas CacheStats `json:"schemas"`
}

// GetStats returns the current cache statistics.
func GetStats() Stats {
	return Stats{
		Fields:  fieldCache.GetStats(),
		Schemas: schemaCache.GetStats(),
	}
}

func cachedFields(t reflect.Type) []structField {
	return fieldCache.LoadOrCompute(t, func() []structField { return typeFields(t) })
}

func typeFields(t reflect.Type) []structField {
	fields := make([]structField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, hasTag := sf.Tag.Lookup("dynjson")
		if tag == "-" {
			continue
		}
		if sf.Anonymous && !hasTag && embeddable(sf) {
			if _, jsonTagged := sf.Tag.Lookup("json"); !jsonTagged {
				fields = append(fields, structField{name: sf.Name, index: sf.Index, typ: sf.Type, embedded: true})
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}

		f := structField{name: sf.Name, index: sf.Index, typ: sf.Type}
		if hasTag {
			names, opts, _ := strings.Cut(tag, ",")
			f.required = hasOption(opts, "required")
			for _, k := range strings.Split(names, "|") {
				if k = strings.TrimSpace(k); k != "" {
					f.keys = append(f.keys, k)
				}
			}
		} else if jsonTag, ok := sf.Tag.Lookup("json"); ok {
			name, _, _ := strings.Cut(jsonTag, ",")
			if name == "-" {
				continue
			}
			if name != "" {
				f.keys = []string{name}
			}
		}
		if len(f.keys) == 0 {
			f.keys = []string{sf.Name}
		}
		fields = append(fields, f)
	}
	return fields
}

// embeddable reports whether an anonymous field is flattened into its
// parent: a struct, or a pointer to a struct when the field is exported.
func embeddable(sf reflect.StructField) bool {
	switch t := sf.Type; t.Kind() {
	case reflect.Struct:
		return true
	case reflect.Pointer:
		return sf.IsExported() && t.Elem().Kind() == reflect.Struct
	default:
		return false
	}
}

func hasOption(opts, name string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if strings.TrimSpace(opt) == name {
			return true
		}
	}
	return false
}
