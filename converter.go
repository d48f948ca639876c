package dynjson

import (
	"math"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Converter is consulted when no built-in rule decodes the entry at key of
// container into target. Implementations read the entry with
// container.Member(key) and return false when they do not handle target.
// The returned value must be assignable to target.
type Converter interface {
	Convert(container Value, key string, target reflect.Type) (any, bool)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(container Value, key string, target reflect.Type) (any, bool)

// Convert calls f.
func (f ConverterFunc) Convert(container Value, key string, target reflect.Type) (any, bool) {
	return f(container, key, target)
}

// Registry is an append-only, ordered list of converters. It is safe for
// concurrent use.
type Registry struct {
	mu         sync.RWMutex
	converters []Converter
}

// NewRegistry creates a registry holding converters in the given order.
func NewRegistry(converters ...Converter) *Registry {
	r := &Registry{}
	for _, c := range converters {
		r.Register(c)
	}
	return r
}

// NewStandardRegistry creates a registry with the UUID and time converters.
func NewStandardRegistry() *Registry {
	return NewRegistry(UUIDConverter(), TimeConverter())
}

// Register appends c. Converters registered earlier are consulted first.
func (r *Registry) Register(c Converter) {
	if c == nil {
		return
	}
	r.mu.Lock()
	r.converters = append(r.converters, c)
	r.mu.Unlock()
}

// Len returns the number of registered converters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.converters)
}

// snapshot returns the converters registered so far. Registration only
// appends, so the returned slice is never written to.
func (r *Registry) snapshot() []Converter {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.converters[:len(r.converters):len(r.converters)]
}

var (
	uuidType = reflect.TypeFor[uuid.UUID]()
	timeType = reflect.TypeFor[time.Time]()
)

// UUIDConverter decodes canonical, braced and URN UUID strings into
// uuid.UUID.
func UUIDConverter() Converter {
	return ConverterFunc(func(container Value, key string, target reflect.Type) (any, bool) {
		if target != uuidType {
			return nil, false
		}
		s, ok := container.Member(key).AsString()
		if !ok {
			return nil, false
		}
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, false
		}
		return id, true
	})
}

// DefaultTimeLayouts are tried in order by TimeConverter when it is given
// no layouts.
var DefaultTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// TimeConverter decodes strings matching one of layouts, and numbers as unix
// seconds with an optional fraction, into time.Time.
func TimeConverter(layouts ...string) Converter {
	if len(layouts) == 0 {
		layouts = DefaultTimeLayouts
	}
	layouts = append([]string(nil), layouts...)

	return ConverterFunc(func(container Value, key string, target reflect.Type) (any, bool) {
		if target != timeType {
			return nil, false
		}
		item := container.Member(key)
		switch item.Type() {
		case TypeString:
			s := strings.TrimSpace(item.str)
			for _, layout := range layouts {
				if t, err := time.Parse(layout, s); err == nil {
					return t, true
				}
			}
		case TypeNumber:
			if item.num.IsInteger() {
				if sec, err := item.num.Int64(); err == nil {
					return time.Unix(sec, 0).UTC(), true
				}
				return nil, false
			}
			f, err := item.num.Float64()
			if err != nil || math.IsInf(f, 0) {
				return nil, false
			}
			sec, frac := math.Modf(f)
			return time.Unix(int64(sec), int64(frac*1e9)).UTC(), true
		}
		return nil, false
	})
}

// convert offers the entry to the session converter, then to the registry.
func (d *Decoder) convert(container Value, key string, target reflect.Type) (reflect.Value, bool) {
	try := func(c Converter) (reflect.Value, bool) {
		out, ok := c.Convert(container, key, target)
		if !ok || out == nil {
			return reflect.Value{}, false
		}
		rv := reflect.ValueOf(out)
		if !rv.Type().AssignableTo(target) {
			d.log().Debug("converter result ignored",
				"key", key,
				"target", target.String(),
				"got", rv.Type().String(),
			)
			return reflect.Value{}, false
		}
		d.log().Debug("converter applied", "key", key, "target", target.String())
		return rv, true
	}

	if d.session != nil {
		if rv, ok := try(d.session); ok {
			return rv, true
		}
	}
	for _, c := range d.registry.snapshot() {
		if rv, ok := try(c); ok {
			return rv, true
		}
	}
	return reflect.Value{}, false
}
