package dynjson

import (
	"reflect"
	"strings"

	"github.com/cybergodev/dynjson/internal"
)

// Lookup decodes the first candidate key of container that yields a T.
//
// Each key is tried literally first. When that fails and the key contains
// a '.', it is split into a path and followed through nested Objects; a
// non-Object on the way is a miss. Missing keys and null entries are soft
// misses; entries that exist but cannot be decoded are hard failures.
//
// The first success wins. When every candidate misses softly Lookup returns
// (zero, false, nil). When a hard failure occurred and nothing succeeded it
// returns the first hard failure if throwOnFailure is set, and otherwise
// (zero, false, nil).
func Lookup[T any](d *Decoder, container Value, keys []string, throwOnFailure bool) (T, bool, error) {
	var zero T
	d = d.orDefault()
	rv, found, err := d.lookup(container, keys, reflect.TypeFor[T](), d.maxDepth)
	if err != nil {
		if throwOnFailure {
			return zero, false, err
		}
		return zero, false, nil
	}
	if !found {
		return zero, false, nil
	}
	// Converters may return any type assignable to T.
	if want := reflect.TypeFor[T](); rv.Type() != want {
		nv := reflect.New(want).Elem()
		nv.Set(rv)
		rv = nv
	}
	out, _ := rv.Interface().(T)
	return out, true, nil
}

// Decode is Lookup for a required entry: when no candidate is present it
// fails with a DecodeError of KindNotExist.
func Decode[T any](d *Decoder, container Value, keys ...string) (T, error) {
	out, found, err := Lookup[T](d, container, keys, true)
	if err != nil {
		return out, err
	}
	if !found {
		return out, &DecodeError{
			Key:     strings.Join(keys, "|"),
			Target:  reflect.TypeFor[T]().String(),
			Kind:    KindNotExist,
			Message: "no candidate key is present",
		}
	}
	return out, nil
}

// DecodeIfPresent is Lookup for an optional entry. It never fails: hard
// failures are reported as absence.
func DecodeIfPresent[T any](d *Decoder, container Value, keys ...string) (T, bool) {
	out, found, _ := Lookup[T](d, container, keys, false)
	return out, found
}

// Resolve decodes the entry at a single dotted path such as "data.user.id".
func Resolve[T any](d *Decoder, container Value, path string) (T, error) {
	return Decode[T](d, container, path)
}

// DecodeAny returns the first present candidate as a native tree (see
// Value.Interface).
func (d *Decoder) DecodeAny(container Value, keys ...string) (any, bool) {
	v, found := DecodeIfPresent[Value](d, container, keys...)
	if !found {
		return nil, false
	}
	return v.Interface(), true
}

// lookup tries each candidate in order, keeping the first hard failure.
func (d *Decoder) lookup(container Value, keys []string, target reflect.Type, depth int) (reflect.Value, bool, error) {
	var firstErr error
	for _, key := range keys {
		rv, found, err := d.lookupKey(container, key, target, depth)
		if found {
			return rv, true, nil
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return reflect.Value{}, false, firstErr
}

// lookupKey tries key literally, then as a dotted path.
func (d *Decoder) lookupKey(container Value, key string, target reflect.Type, depth int) (reflect.Value, bool, error) {
	rv, found, err := d.decodeAt(container, key, target, depth)
	if found || !strings.Contains(key, ".") {
		return rv, found, err
	}

	segments := internal.SplitDotted(key)
	parent := container
	for _, seg := range segments[:len(segments)-1] {
		parent = parent.Key(seg)
		if parent.typ != TypeObject {
			return reflect.Value{}, false, err
		}
	}
	prv, pfound, perr := d.decodeAt(parent, segments[len(segments)-1], target, depth)
	if pfound {
		d.log().Debug("candidate key resolved as path", "key", key, "target", target.String())
		return prv, true, nil
	}
	if err == nil {
		err = perr
	}
	return reflect.Value{}, false, err
}

// decodeAt decodes the entry key of container. A missing entry is a soft
// miss, as is a null one unless target can hold null.
func (d *Decoder) decodeAt(container Value, key string, target reflect.Type, depth int) (reflect.Value, bool, error) {
	item := container.Key(key)
	if !item.Exists() {
		return reflect.Value{}, false, nil
	}
	if item.typ == TypeNull && !nullable(target) {
		return reflect.Value{}, false, nil
	}
	rv, err := d.decodeItem(container, key, item, target, depth)
	if err != nil {
		return reflect.Value{}, false, err
	}
	return rv, true, nil
}

// nullable reports whether target has a natural representation of null.
func nullable(target reflect.Type) bool {
	switch {
	case target == valueType:
		return true
	case target.Kind() == reflect.Pointer:
		return true
	case target.Kind() == reflect.Interface && target.NumMethod() == 0:
		return true
	}
	return false
}
