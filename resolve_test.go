package dynjson

import (
	"bytes"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLookup(t *testing.T) {
	helper := NewTestHelper(t)

	t.Run("DottedFallback", func(t *testing.T) {
		v := Parse(`{"b":{"c":5}}`)
		got, found, err := Lookup[int](nil, v, []string{"a", "b.c"}, true)
		helper.AssertNoError(err)
		helper.AssertTrue(found)
		helper.AssertEqual(5, got)
	})

	t.Run("LiteralKeyWinsOverPath", func(t *testing.T) {
		v := Parse(`{"b.c":1,"b":{"c":2}}`)
		got, found, err := Lookup[int](nil, v, []string{"b.c"}, true)
		helper.AssertNoError(err)
		helper.AssertTrue(found)
		helper.AssertEqual(1, got)
	})

	t.Run("AllSoftMisses", func(t *testing.T) {
		got, found, err := Lookup[int](nil, Parse(`{}`), []string{"x", "y"}, true)
		helper.AssertNoError(err)
		helper.AssertFalse(found)
		helper.AssertEqual(0, got)
	})

	t.Run("HardFailurePropagates", func(t *testing.T) {
		v := Parse(`{"z":"not a number"}`)
		_, found, err := Lookup[int](nil, v, []string{"z"}, true)
		helper.AssertFalse(found)
		helper.AssertErrorKind(KindWrongType, err)
		helper.AssertErrorContains(err, `"not a number" is not a number`)

		_, found, err = Lookup[int](nil, v, []string{"z"}, false)
		helper.AssertFalse(found)
		helper.AssertNoError(err, "without throwOnFailure hard failures are swallowed")
	})

	t.Run("FirstHardFailureIsKept", func(t *testing.T) {
		v := Parse(`{"a":"x","b":[1]}`)
		_, _, err := Lookup[int](nil, v, []string{"missing", "a", "b"}, true)
		helper.AssertErrorContains(err, "decode a as int")
	})

	t.Run("LaterSuccessBeatsEarlierFailure", func(t *testing.T) {
		v := Parse(`{"a":"x","b":7}`)
		got, found, err := Lookup[int](nil, v, []string{"a", "b"}, true)
		helper.AssertNoError(err)
		helper.AssertTrue(found)
		helper.AssertEqual(7, got)
	})

	t.Run("NullIsSoftMiss", func(t *testing.T) {
		v := Parse(`{"a":null,"b":3}`)
		got, found, err := Lookup[int](nil, v, []string{"a", "b"}, true)
		helper.AssertNoError(err)
		helper.AssertTrue(found)
		helper.AssertEqual(3, got)

		_, found, err = Lookup[string](nil, v, []string{"a"}, true)
		helper.AssertNoError(err)
		helper.AssertFalse(found)

		nv, found, err := Lookup[Value](nil, v, []string{"a"}, true)
		helper.AssertNoError(err)
		helper.AssertTrue(found, "a Value target can hold null")
		helper.AssertTrue(nv.IsNull())
	})

	t.Run("PathThroughNonObjectIsSoftMiss", func(t *testing.T) {
		v := Parse(`{"a":[{"b":1}],"s":"str"}`)
		_, found, err := Lookup[int](nil, v, []string{"a.b", "s.len"}, true)
		helper.AssertNoError(err)
		helper.AssertFalse(found)
	})

	t.Run("PathFailureAtLeafIsHard", func(t *testing.T) {
		v := Parse(`{"data":{"id":"abc"}}`)
		_, _, err := Lookup[int](nil, v, []string{"data.id"}, true)
		helper.AssertErrorKind(KindWrongType, err)
	})

	t.Run("NonObjectContainer", func(t *testing.T) {
		_, found, err := Lookup[int](nil, Parse(`[1,2]`), []string{"0"}, true)
		helper.AssertNoError(err)
		helper.AssertFalse(found)
	})

	t.Run("NoCandidates", func(t *testing.T) {
		_, found, err := Lookup[int](nil, Parse(`{"a":1}`), nil, true)
		helper.AssertNoError(err)
		helper.AssertFalse(found)
	})
}

func TestDecodeSugar(t *testing.T) {
	helper := NewTestHelper(t)
	v := Parse(`{"user_id":"42","profile":{"email":"a@b.c"},"bad":{}}`)

	id, err := Decode[int64](nil, v, "userId", "user_id")
	helper.AssertNoError(err)
	helper.AssertEqual(int64(42), id)

	_, err = Decode[int64](nil, v, "userId", "uid")
	helper.AssertErrorKind(KindNotExist, err)
	helper.AssertErrorContains(err, "userId|uid")

	email, ok := DecodeIfPresent[string](nil, v, "email", "profile.email")
	helper.AssertTrue(ok)
	helper.AssertEqual("a@b.c", email)

	_, ok = DecodeIfPresent[int](nil, v, "bad")
	helper.AssertFalse(ok, "hard failures read as absent")

	email, err = Resolve[string](nil, v, "profile.email")
	helper.AssertNoError(err)
	helper.AssertEqual("a@b.c", email)

	_, err = Resolve[string](nil, v, "profile.phone")
	helper.AssertErrorKind(KindNotExist, err)
}

func TestDecodeAny(t *testing.T) {
	helper := NewTestHelper(t)
	d := NewDecoder()
	v := Parse(`{"a":null,"b":{"c":[1]}}`)

	native, ok := d.DecodeAny(v, "x", "b")
	helper.AssertTrue(ok)
	m, isMap := native.(map[string]any)
	helper.AssertTrue(isMap)
	helper.AssertEqual(1, len(m))

	native, ok = d.DecodeAny(v, "a")
	helper.AssertTrue(ok, "a present null is found")
	helper.AssertNil(native)

	_, ok = d.DecodeAny(v, "nope")
	helper.AssertFalse(ok)

	var nilDecoder *Decoder
	_, ok = nilDecoder.DecodeAny(v, "b.c")
	helper.AssertTrue(ok)
}

func TestPathFallbackIsLogged(t *testing.T) {
	helper := NewTestHelper(t)

	var buf bytes.Buffer
	d := NewDecoder(WithLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))))

	_, err := Decode[int](d, Parse(`{"a":{"b":1}}`), "a.b")
	helper.AssertNoError(err)
	helper.AssertTrue(strings.Contains(buf.String(), "candidate key resolved as path"), "log: %s", buf.String())
}

func TestConcurrentDecode(t *testing.T) {
	v := Parse(`{"a":{"b":[1,2,3]},"n":"5"}`)
	d := NewDecoder(WithRegistry(NewStandardRegistry()))

	NewConcurrencyTester(t, 8, 200).Run(func(workerID, iteration int) error {
		if _, err := Decode[[]int](d, v, "a.b"); err != nil {
			return err
		}
		_, err := Decode[int](d, v, "n")
		return err
	})
}

type tagList []string

func TestLookupAssignableConverterResult(t *testing.T) {
	helper := NewTestHelper(t)

	split := ConverterFunc(func(container Value, key string, target reflect.Type) (any, bool) {
		s, ok := container.Member(key).AsString()
		if !ok {
			return nil, false
		}
		switch target {
		case reflect.TypeFor[tagList]():
			return strings.Split(s, ","), true
		case reflect.TypeFor[fmt.Stringer]():
			d, err := time.ParseDuration(s)
			return d, err == nil
		}
		return nil, false
	})
	d := NewDecoder(WithConverter(split))
	v := Parse(`{"tags":"a,b","wait":"1m30s","nested":{"tags":"c"}}`)

	tags, found, err := Lookup[tagList](d, v, []string{"tags"}, true)
	helper.AssertNoError(err)
	helper.AssertTrue(found)
	helper.AssertEqual(tagList{"a", "b"}, tags)

	tags, err = Resolve[tagList](d, v, "nested.tags")
	helper.AssertNoError(err)
	helper.AssertEqual(tagList{"c"}, tags)

	wait, err := Decode[fmt.Stringer](d, v, "wait")
	helper.AssertNoError(err)
	helper.AssertEqual("1m30s", wait.String())

	ptr, err := Decode[*tagList](d, v, "tags")
	helper.AssertNoError(err)
	helper.AssertEqual(tagList{"a", "b"}, *ptr)
}
