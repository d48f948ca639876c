package dynjson

import "testing"

func TestMerge(t *testing.T) {
	helper := NewTestHelper(t)

	tests := []struct {
		name  string
		base  string
		other string
		want  string
	}{
		{"ObjectsRecursive", `{"a":1,"b":{"x":1,"y":2}}`, `{"b":{"y":3,"z":4},"c":5}`, `{"a":1,"b":{"x":1,"y":3,"z":4},"c":5}`},
		{"ArraysConcatenate", `[1,2]`, `[2,3]`, `[1,2,2,3]`},
		{"NestedArraysConcatenate", `{"tags":["a"]}`, `{"tags":["b"]}`, `{"tags":["a","b"]}`},
		{"NestedMismatchReplaces", `{"a":{"x":1}}`, `{"a":[1]}`, `{"a":[1]}`},
		{"ScalarRightWins", `1`, `2`, `2`},
		{"NullIntoNull", `null`, `null`, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Parse(tt.base)
			helper.AssertNoError(v.Merge(Parse(tt.other)))
			helper.AssertJSONEqual(Parse(tt.want), v)
		})
	}
}

func TestMergeTopLevelMismatch(t *testing.T) {
	helper := NewTestHelper(t)

	v := Parse(`{"a":1}`)
	err := v.Merge(Parse(`[1]`))
	helper.AssertErrorKind(KindWrongType, err)
	helper.AssertJSONEqual(Parse(`{"a":1}`), v, "receiver is unchanged")

	s := String("x")
	helper.AssertErrorKind(KindWrongType, s.Merge(Int(1)))
}

func TestMergeKeepsKeyOrder(t *testing.T) {
	helper := NewTestHelper(t)

	v := Parse(`{"z":1,"a":2}`)
	helper.AssertNoError(v.Merge(Parse(`{"m":3,"z":4}`)))
	helper.AssertEqual([]string{"z", "a", "m"}, v.Keys())
}

func TestMerged(t *testing.T) {
	helper := NewTestHelper(t)

	base := Parse(`{"list":[1],"obj":{"k":1}}`)
	out, err := base.Merged(Parse(`{"list":[2],"obj":{"j":2}}`))
	helper.AssertNoError(err)
	helper.AssertJSONEqual(Parse(`{"list":[1,2],"obj":{"k":1,"j":2}}`), out)
	helper.AssertJSONEqual(Parse(`{"list":[1],"obj":{"k":1}}`), base, "Merged leaves the receiver alone")

	_, err = base.Merged(Int(1))
	helper.AssertErrorKind(KindWrongType, err)
}
