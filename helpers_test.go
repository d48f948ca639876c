package dynjson

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
)

// TestHelper provides assertion utilities for value and decode tests
type TestHelper struct {
	t *testing.T
}

// NewTestHelper creates a new test helper
func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

func message(def string, msgAndArgs []any) string {
	if len(msgAndArgs) > 0 {
		if format, ok := msgAndArgs[0].(string); ok {
			return fmt.Sprintf(format, msgAndArgs[1:]...)
		}
	}
	return def
}

// AssertEqual checks if two values are equal
func (h *TestHelper) AssertEqual(expected, actual any, msgAndArgs ...any) {
	h.t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		h.t.Errorf("%s\nExpected: %v (%T)\nActual: %v (%T)",
			message("Values are not equal", msgAndArgs), expected, expected, actual, actual)
	}
}

// AssertJSONEqual checks that two Values are equal under Value.Equal
func (h *TestHelper) AssertJSONEqual(expected, actual Value, msgAndArgs ...any) {
	h.t.Helper()
	if !expected.Equal(actual) {
		h.t.Errorf("%s\nExpected: %s\nActual: %s",
			message("JSON values are not equal", msgAndArgs), expected.String(), actual.String())
	}
}

// AssertNoError checks that error is nil
func (h *TestHelper) AssertNoError(err error, msgAndArgs ...any) {
	h.t.Helper()
	if err != nil {
		h.t.Errorf("%s, but got: %v", message("Expected no error", msgAndArgs), err)
	}
}

// AssertError checks that error is not nil
func (h *TestHelper) AssertError(err error, msgAndArgs ...any) {
	h.t.Helper()
	if err == nil {
		h.t.Errorf("%s, but got nil", message("Expected an error", msgAndArgs))
	}
}

// AssertErrorKind checks that err carries the given kind
func (h *TestHelper) AssertErrorKind(kind ErrorKind, err error, msgAndArgs ...any) {
	h.t.Helper()
	if err == nil {
		h.t.Errorf("%s: expected %s, got nil", message("Wrong error kind", msgAndArgs), kind)
		return
	}
	if got := KindOf(err); got != kind {
		h.t.Errorf("%s: expected %s, got %s (%v)", message("Wrong error kind", msgAndArgs), kind, got, err)
	}
	if !errors.Is(err, kind.sentinel()) {
		h.t.Errorf("%s: errors.Is(err, %v) is false", message("Wrong error kind", msgAndArgs), kind.sentinel())
	}
}

// AssertErrorContains checks that error contains specific text
func (h *TestHelper) AssertErrorContains(err error, contains string, msgAndArgs ...any) {
	h.t.Helper()
	if err == nil {
		h.t.Errorf("%s, but got nil", message("Expected an error", msgAndArgs))
		return
	}
	if !strings.Contains(err.Error(), contains) {
		h.t.Errorf("%s\nExpected to contain: %s\nActual error: %s",
			message("Error message mismatch", msgAndArgs), contains, err.Error())
	}
}

// AssertNoPanic checks that function does not panic
func (h *TestHelper) AssertNoPanic(fn func(), msgAndArgs ...any) {
	h.t.Helper()
	defer func() {
		if r := recover(); r != nil {
			h.t.Errorf("%s, but panicked with: %v", message("Expected no panic", msgAndArgs), r)
		}
	}()
	fn()
}

// AssertTrue checks that condition is true
func (h *TestHelper) AssertTrue(condition bool, msgAndArgs ...any) {
	h.t.Helper()
	if !condition {
		h.t.Error(message("Expected condition to be true", msgAndArgs))
	}
}

// AssertFalse checks that condition is false
func (h *TestHelper) AssertFalse(condition bool, msgAndArgs ...any) {
	h.t.Helper()
	if condition {
		h.t.Error(message("Expected condition to be false", msgAndArgs))
	}
}

// AssertNil checks that value is nil
func (h *TestHelper) AssertNil(value any, msgAndArgs ...any) {
	h.t.Helper()
	if value == nil {
		return
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return
		}
	}
	h.t.Errorf("%s, but got: %v", message("Expected nil", msgAndArgs), value)
}

// ConcurrencyTester runs an operation from several goroutines
type ConcurrencyTester struct {
	t           *testing.T
	concurrency int
	iterations  int
}

// NewConcurrencyTester creates a concurrency tester
func NewConcurrencyTester(t *testing.T, concurrency, iterations int) *ConcurrencyTester {
	return &ConcurrencyTester{t: t, concurrency: concurrency, iterations: iterations}
}

// Run executes operation concurrency*iterations times and reports the first error
func (ct *ConcurrencyTester) Run(operation func(workerID, iteration int) error) {
	ct.t.Helper()
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for w := 0; w < ct.concurrency; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := 0; i < ct.iterations; i++ {
				if err := operation(workerID, i); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("worker %d, iteration %d: %w", workerID, i, err)
					}
					mu.Unlock()
					return
				}
			}
		}(w)
	}
	wg.Wait()
	if firstErr != nil {
		ct.t.Error(firstErr)
	}
}
