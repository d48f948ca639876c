package dynjson

import (
	"encoding/json"
	"math"
	"testing"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func TestNewClassification(t *testing.T) {
	helper := NewTestHelper(t)

	tests := []struct {
		name   string
		native any
		want   Type
		text   string
	}{
		{"nil", nil, TypeNull, "null"},
		{"bool", true, TypeBool, "true"},
		{"string", "hi", TypeString, `"hi"`},
		{"int", 42, TypeNumber, "42"},
		{"int8", int8(-8), TypeNumber, "-8"},
		{"uint64", uint64(math.MaxUint64), TypeNumber, "18446744073709551615"},
		{"float64", 1.5, TypeNumber, "1.5"},
		{"float32", float32(0.25), TypeNumber, "0.25"},
		{"json.Number", json.Number("1.0"), TypeNumber, "1.0"},
		{"Number", Number("-3e2"), TypeNumber, "-3e2"},
		{"slice", []any{1, "a", nil}, TypeArray, `[1,"a",null]`},
		{"strings", []string{"x", "y"}, TypeArray, `["x","y"]`},
		{"map", map[string]any{"b": 1, "a": 2}, TypeObject, `{"a":2,"b":1}`},
		{"Value", Int(7), TypeNumber, "7"},
		{"bytes", []byte(`{"k":[true]}`), TypeObject, `{"k":[true]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.native)
			helper.AssertEqual(tt.want, v.Type())
			helper.AssertNil(v.Err())
			out, err := v.RawString()
			helper.AssertNoError(err)
			helper.AssertEqual(tt.text, out)
		})
	}
}

func TestNewUnsupported(t *testing.T) {
	helper := NewTestHelper(t)

	t.Run("Channel", func(t *testing.T) {
		v := New(make(chan int))
		helper.AssertEqual(TypeUnknown, v.Type())
		helper.AssertErrorKind(KindUnsupportedType, v.Err())
		helper.AssertTrue(v.Exists(), "unknown payloads are present")
	})

	t.Run("NestedStruct", func(t *testing.T) {
		v := New([]any{1, struct{}{}})
		helper.AssertEqual(TypeArray, v.Type())
		helper.AssertEqual(TypeUnknown, v.Index(1).Type())
		helper.AssertEqual(TypeNumber, v.Index(0).Type())
	})

	t.Run("NaN", func(t *testing.T) {
		v := New(math.NaN())
		helper.AssertEqual(TypeUnknown, v.Type())
		helper.AssertErrorKind(KindUnsupportedType, v.Err())
	})

	t.Run("BadNumberLiteral", func(t *testing.T) {
		v := New(json.Number("true"))
		helper.AssertEqual(TypeUnknown, v.Type())
	})

	t.Run("InvalidBytes", func(t *testing.T) {
		v := New([]byte(`{"a":`))
		helper.AssertTrue(v.IsNull())
		helper.AssertErrorKind(KindInvalidJSON, v.Err())
	})

	t.Run("SelfReferencingSlice", func(t *testing.T) {
		s := make([]any, 1)
		s[0] = s
		var v Value
		helper.AssertNoPanic(func() { v = New(s) })
		helper.AssertEqual(TypeArray, v.Type())
	})
}

func TestNewOrderedMap(t *testing.T) {
	helper := NewTestHelper(t)

	om := orderedmap.New[string, any]()
	om.Set("z", 1)
	om.Set("a", []any{true})
	v := New(om)

	helper.AssertEqual([]string{"z", "a"}, v.Keys())
	out, err := v.RawString(WithCastNilToNull(true))
	helper.AssertNoError(err)
	helper.AssertEqual(`{"z":1,"a":[true]}`, out)
}

func TestConstructors(t *testing.T) {
	helper := NewTestHelper(t)

	t.Run("ZeroValueIsNull", func(t *testing.T) {
		var v Value
		helper.AssertTrue(v.IsNull())
		helper.AssertTrue(v.Exists())
		helper.AssertNil(v.Err())
	})

	t.Run("ObjectOfKeepsOrder", func(t *testing.T) {
		v := ObjectOf(
			Field{"b", Int(1)},
			Field{"a", Int(2)},
			Field{"b", Int(3)},
		)
		helper.AssertEqual(2, v.Len())
		helper.AssertEqual([]string{"b", "a"}, v.Keys())
		helper.AssertEqual(int64(3), v.Key("b").Int64Value())
	})

	t.Run("ArrayCopiesItems", func(t *testing.T) {
		items := []Value{Int(1), Int(2)}
		v := Array(items...)
		items[0] = Int(9)
		helper.AssertEqual(int64(1), v.Index(0).Int64Value())
	})

	t.Run("NumberOfRejectsMalformed", func(t *testing.T) {
		helper.AssertEqual(TypeNumber, NumberOf("12.5e3").Type())
		helper.AssertEqual(TypeUnknown, NumberOf("01").Type())
		helper.AssertEqual(TypeUnknown, NumberOf("1.").Type())
	})

	t.Run("SetObject", func(t *testing.T) {
		v := String("x")
		v.SetObject(map[string]any{"n": 1})
		helper.AssertEqual(TypeObject, v.Type())
		v.SetObject(nil)
		helper.AssertTrue(v.IsNull())
	})
}

func TestObjectKeyUniqueness(t *testing.T) {
	helper := NewTestHelper(t)

	v := Parse(`{"a":1,"b":2,"a":3}`)
	helper.AssertEqual(2, v.Len())
	helper.AssertEqual(int64(3), v.Key("a").Int64Value())

	v.SetKey("b", Int(4))
	v.SetKey("c", Int(5))
	helper.AssertEqual([]string{"a", "b", "c"}, v.Keys())
}

func TestClone(t *testing.T) {
	helper := NewTestHelper(t)

	orig := Parse(`{"list":[1,2],"obj":{"k":"v"}}`)
	shared := orig
	clone := orig.Clone()

	inner := clone.Key("obj")
	inner.SetKey("k", String("changed"))
	clone.SetKey("obj", inner)
	clone.Set(Int(9), "list", 0)

	helper.AssertEqual("v", orig.GetPath("obj.k").StringValue())
	helper.AssertEqual(int64(1), orig.Get("list", 0).Int64Value())
	helper.AssertEqual("changed", clone.GetPath("obj.k").StringValue())
	helper.AssertEqual(int64(9), clone.Get("list", 0).Int64Value())

	// Plain copies are independent too.
	shared.SetKey("new", Null())
	helper.AssertEqual(2, orig.Len())
	helper.AssertEqual(3, shared.Len())
	helper.AssertJSONEqual(orig, orig.Clone())
}

func TestLen(t *testing.T) {
	helper := NewTestHelper(t)

	helper.AssertEqual(3, Parse(`[1,2,3]`).Len())
	helper.AssertEqual(1, Parse(`{"a":1}`).Len())
	helper.AssertEqual(0, String("abc").Len())
	helper.AssertEqual(0, Null().Len())
}

func TestTypeString(t *testing.T) {
	helper := NewTestHelper(t)

	helper.AssertEqual("null", TypeNull.String())
	helper.AssertEqual("object", TypeObject.String())
	helper.AssertEqual("unknown", TypeUnknown.String())
	helper.AssertTrue(TypeArray.IsContainer())
	helper.AssertFalse(TypeString.IsContainer())
}
