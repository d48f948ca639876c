package dynjson

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	helper := NewTestHelper(t)

	absent := []ErrorKind{KindNotExist, KindIndexOutOfBounds, KindWrongType}
	present := []ErrorKind{KindInvalidJSON, KindUnsupportedType, KindElementTooDeep}

	for _, k := range absent {
		helper.AssertTrue(k.IsAbsence(), "%s is an absence", k)
	}
	for _, k := range present {
		helper.AssertFalse(k.IsAbsence(), "%s is not an absence", k)
	}

	helper.AssertEqual("not_exist", KindNotExist.String())
	helper.AssertEqual("kind(99)", ErrorKind(99).String())
}

func TestValueError(t *testing.T) {
	helper := NewTestHelper(t)

	err := error(newValueError(KindNotExist, "user", "key does not exist"))
	helper.AssertEqual("dynjson not_exist at 'user': key does not exist", err.Error())
	helper.AssertTrue(errors.Is(err, ErrNotExist))
	helper.AssertFalse(errors.Is(err, ErrWrongType))
	helper.AssertTrue(errors.Is(err, &ValueError{Kind: KindNotExist}), "ValueErrors match by kind")
	helper.AssertTrue(IsAbsent(err))

	cause := errors.New("boom")
	wrapped := fmt.Errorf("context: %w", wrapValueError(KindInvalidJSON, "", cause, "bad input"))
	helper.AssertTrue(errors.Is(wrapped, cause))
	helper.AssertTrue(errors.Is(wrapped, ErrInvalidJSON))
	helper.AssertEqual(KindInvalidJSON, KindOf(wrapped))
	helper.AssertFalse(IsAbsent(wrapped))

	helper.AssertEqual(ErrorKind(0), KindOf(errors.New("plain")))
	helper.AssertEqual(KindWrongType, KindOf(fmt.Errorf("x: %w", ErrWrongType)))
}

func TestDecodeErrorWrapping(t *testing.T) {
	helper := NewTestHelper(t)

	cause := errors.New("strconv failure")
	err := error(&DecodeError{Key: "age", Target: "int", Kind: KindWrongType, Message: "found string", Err: cause})

	helper.AssertEqual("dynjson decode age as int failed: found string", err.Error())
	helper.AssertTrue(errors.Is(err, ErrWrongType))
	helper.AssertTrue(errors.Is(err, cause))
	helper.AssertEqual(KindWrongType, KindOf(err))

	var de *DecodeError
	helper.AssertTrue(errors.As(fmt.Errorf("field Age: %w", err), &de))
	helper.AssertEqual("age", de.Key)
}
