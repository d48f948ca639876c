package dynjson

import (
	"fmt"
	"strconv"

	"github.com/cybergodev/dynjson/internal"
)

// Index returns element i of an Array value.
//
// An index outside [0, Len) gives Null tagged KindIndexOutOfBounds and a
// non-Array receiver gives Null tagged KindWrongType. A receiver that is
// itself a failed lookup passes its error through unchanged, so the first
// failure in a chain is the one reported.
func (v Value) Index(i int) Value {
	if v.typ != TypeArray {
		return v.notContainer("["+strconv.Itoa(i)+"]", "array")
	}
	if i < 0 || i >= len(v.arr) {
		return failed(newValueError(KindIndexOutOfBounds, "["+strconv.Itoa(i)+"]",
			"index %d outside [0, %d)", i, len(v.arr)))
	}
	return v.arr[i]
}

// Key returns the entry k of an Object value. A missing key gives Null
// tagged KindNotExist; errors otherwise follow Index.
func (v Value) Key(k string) Value {
	if v.typ != TypeObject {
		return v.notContainer(k, "object")
	}
	item, ok := v.obj.Get(k)
	if !ok {
		return failed(newValueError(KindNotExist, k, "key does not exist"))
	}
	return item
}

// notContainer builds the result of subscripting a value that is not the
// container the segment needs.
func (v Value) notContainer(segment, want string) Value {
	if v.err != nil {
		return v.lost()
	}
	return failed(newValueError(KindWrongType, segment, "%s is not an %s", v.typ, want))
}

// Get follows path left to right. Each segment is an int (array index) or
// a string (object key); any other segment type gives Null tagged
// KindWrongType. Get never panics.
func (v Value) Get(path ...any) Value {
	cur := v
	for _, seg := range path {
		switch s := seg.(type) {
		case int:
			cur = cur.Index(s)
		case string:
			cur = cur.Key(s)
		default:
			if cur.err != nil {
				return cur.lost()
			}
			return failed(newValueError(KindWrongType, fmt.Sprint(seg), "path segment of type %T", seg))
		}
	}
	return cur
}

// Member looks name up as a dynamic member: names that parse as integers
// index Arrays, anything else is an Object key. On an Object receiver a
// numeric name is still a key, so {"0": x} is reachable.
func (v Value) Member(name string) Value {
	if i, ok := internal.ParseIndex(name); ok && v.typ != TypeObject {
		return v.Index(i)
	}
	return v.Key(name)
}

// GetPath follows a textual path such as "a.b[2].c", "a.b.2.c", `a["x.y"]`
// or the JSON Pointer "/a/b/2". Bare segments resolve like Member. A path
// that cannot be parsed gives Null tagged KindNotExist.
func (v Value) GetPath(path string) Value {
	segments, err := internal.ParsePath(path)
	if err != nil {
		return failed(wrapValueError(KindNotExist, path, err, "malformed path"))
	}
	cur := v
	for _, seg := range segments {
		cur = cur.segment(seg)
	}
	return cur
}

func (v Value) segment(seg internal.Segment) Value {
	switch seg.Kind {
	case internal.IndexSegment:
		return v.Index(seg.Index)
	case internal.KeySegment:
		return v.Key(seg.Key)
	default:
		return v.Member(seg.Key)
	}
}

// SetIndex replaces element i of an Array value. It reports false and does
// nothing when v is not an Array or i is out of range; arrays never grow.
func (v *Value) SetIndex(i int, item Value) bool {
	if v.typ != TypeArray || i < 0 || i >= len(v.arr) {
		return false
	}
	v.ownArray(0)
	v.arr[i] = item
	return true
}

// SetKey adds or replaces entry k of an Object value. It reports false and
// does nothing when v is not an Object.
func (v *Value) SetKey(k string, item Value) bool {
	if v.typ != TypeObject {
		return false
	}
	v.ownObject()
	v.obj.Set(k, item)
	return true
}

// Set writes item at path. An empty path replaces v itself. Longer paths
// are rebuilt bottom-up: the child at the first segment is fetched, the
// rest of the path is set into it and the child is written back. No
// intermediate container is created, so a path through a missing or
// scalar segment leaves v untouched and reports false.
func (v *Value) Set(item Value, path ...any) bool {
	switch len(path) {
	case 0:
		*v = item
		return true
	case 1:
		return v.setSegment(path[0], item)
	}

	child := v.Get(path[0])
	if child.err != nil || !child.typ.IsContainer() {
		return false
	}
	if !child.Set(item, path[1:]...) {
		return false
	}
	return v.setSegment(path[0], child)
}

func (v *Value) setSegment(seg any, item Value) bool {
	switch s := seg.(type) {
	case int:
		return v.SetIndex(s, item)
	case string:
		return v.SetKey(s, item)
	default:
		return false
	}
}

// SetMember is the write side of Member.
func (v *Value) SetMember(name string, item Value) bool {
	if i, ok := internal.ParseIndex(name); ok && v.typ != TypeObject {
		return v.SetIndex(i, item)
	}
	return v.SetKey(name, item)
}

// SetPath is the write side of GetPath, with the rebuild rules of Set.
func (v *Value) SetPath(path string, item Value) bool {
	segments, err := internal.ParsePath(path)
	if err != nil {
		return false
	}
	return v.setSegments(segments, item)
}

func (v *Value) setSegments(segments []internal.Segment, item Value) bool {
	if len(segments) == 0 {
		*v = item
		return true
	}
	seg := segments[0]
	if len(segments) == 1 {
		return v.writeSegment(seg, item)
	}
	child := v.segment(seg)
	if child.err != nil || !child.typ.IsContainer() {
		return false
	}
	if !child.setSegments(segments[1:], item) {
		return false
	}
	return v.writeSegment(seg, child)
}

func (v *Value) writeSegment(seg internal.Segment, item Value) bool {
	switch seg.Kind {
	case internal.IndexSegment:
		return v.SetIndex(seg.Index, item)
	case internal.KeySegment:
		return v.SetKey(seg.Key, item)
	default:
		return v.SetMember(seg.Key, item)
	}
}

// Append adds items to the end of an Array value.
func (v *Value) Append(items ...Value) bool {
	if v.typ != TypeArray {
		return false
	}
	v.ownArray(len(items))
	v.arr = append(v.arr, items...)
	return true
}

// Delete removes entry k from an Object value and reports whether it was
// present.
func (v *Value) Delete(k string) bool {
	if v.typ != TypeObject {
		return false
	}
	if _, ok := v.obj.Get(k); !ok {
		return false
	}
	v.ownObject()
	v.obj.Delete(k)
	return true
}

// Remove removes element i from an Array value and reports whether it was
// in range.
func (v *Value) Remove(i int) bool {
	if v.typ != TypeArray || i < 0 || i >= len(v.arr) {
		return false
	}
	arr := make([]Value, 0, len(v.arr)-1)
	arr = append(arr, v.arr[:i]...)
	v.arr = append(arr, v.arr[i+1:]...)
	return true
}

// ownArray replaces v's element slice with a private copy with room for
// extra more elements. Writers call it first, so storage reachable from
// another Value is never written.
func (v *Value) ownArray(extra int) {
	arr := make([]Value, len(v.arr), len(v.arr)+extra)
	copy(arr, v.arr)
	v.arr = arr
}

// ownObject is ownArray for Object entries. Entries are copied shallowly:
// nested containers are only ever written through their own copies.
func (v *Value) ownObject() {
	obj := newObject()
	for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
		obj.Set(pair.Key, pair.Value)
	}
	v.obj = obj
}

// Keys returns the keys of an Object value in insertion order.
func (v Value) Keys() []string {
	if v.typ != TypeObject {
		return nil
	}
	keys := make([]string, 0, v.obj.Len())
	for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every element of an Array (key is the decimal index)
// or entry of an Object, in order, until fn returns false.
func (v Value) Each(fn func(key string, item Value) bool) {
	switch v.typ {
	case TypeArray:
		for i, item := range v.arr {
			if !fn(strconv.Itoa(i), item) {
				return
			}
		}
	case TypeObject:
		for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
			if !fn(pair.Key, pair.Value) {
				return
			}
		}
	}
}
