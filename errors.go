package dynjson

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per ErrorKind. Errors attached to values and errors
// returned by the decode surface unwrap to these, so callers match with
// errors.Is.
var (
	ErrUnsupportedType  = errors.New("unsupported type")
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	ErrElementTooDeep   = errors.New("element too deep")
	ErrWrongType        = errors.New("wrong type")
	ErrNotExist         = errors.New("key does not exist")
	ErrInvalidJSON      = errors.New("invalid JSON")
)

// ErrorKind classifies the failures a Value can carry.
type ErrorKind uint8

const (
	KindUnsupportedType ErrorKind = iota + 1
	KindIndexOutOfBounds
	KindElementTooDeep
	KindWrongType
	KindNotExist
	KindInvalidJSON
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnsupportedType:
		return "unsupported_type"
	case KindIndexOutOfBounds:
		return "index_out_of_bounds"
	case KindElementTooDeep:
		return "element_too_deep"
	case KindWrongType:
		return "wrong_type"
	case KindNotExist:
		return "not_exist"
	case KindInvalidJSON:
		return "invalid_json"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// IsAbsence reports whether a value carrying this kind counts as missing.
// Lookup failures are absences; payload problems (bad input, an
// unclassifiable native value, a serializer limit) leave the value present.
func (k ErrorKind) IsAbsence() bool {
	switch k {
	case KindNotExist, KindIndexOutOfBounds, KindWrongType:
		return true
	default:
		return false
	}
}

// sentinel returns the package-level error matching k.
func (k ErrorKind) sentinel() error {
	switch k {
	case KindUnsupportedType:
		return ErrUnsupportedType
	case KindIndexOutOfBounds:
		return ErrIndexOutOfBounds
	case KindElementTooDeep:
		return ErrElementTooDeep
	case KindWrongType:
		return ErrWrongType
	case KindNotExist:
		return ErrNotExist
	case KindInvalidJSON:
		return ErrInvalidJSON
	default:
		return nil
	}
}

// KindOf extracts the ErrorKind from err, or 0 when err carries none.
func KindOf(err error) ErrorKind {
	var kinded interface{ errorKind() ErrorKind }
	if errors.As(err, &kinded) {
		return kinded.errorKind()
	}
	for _, k := range []ErrorKind{
		KindUnsupportedType, KindIndexOutOfBounds, KindElementTooDeep,
		KindWrongType, KindNotExist, KindInvalidJSON,
	} {
		if errors.Is(err, k.sentinel()) {
			return k
		}
	}
	return 0
}

// ValueError is the error attached to a Value by navigation, construction
// or serialization.
type ValueError struct {
	Kind    ErrorKind `json:"kind"`
	Path    string    `json:"path"`    // Segment where the failure happened
	Message string    `json:"message"` // Human-readable detail
	Err     error     `json:"-"`       // Underlying cause, if any
}

func (e *ValueError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("dynjson %s at '%s': %s", e.Kind, e.Path, e.Message)
	}
	return fmt.Sprintf("dynjson %s: %s", e.Kind, e.Message)
}

// Unwrap returns the cause and the kind's sentinel.
func (e *ValueError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind.sentinel(), e.Err}
	}
	return []error{e.Kind.sentinel()}
}

func (e *ValueError) errorKind() ErrorKind { return e.Kind }

// Is matches another *ValueError by kind.
func (e *ValueError) Is(target error) bool {
	if t, ok := target.(*ValueError); ok {
		return e.Kind == t.Kind
	}
	return false
}

// DecodeError is returned by the decode surface for hard failures and, from
// Decode, for required keys that could not be found.
type DecodeError struct {
	Key     string    `json:"key"`    // Candidate key (or path) that failed
	Target  string    `json:"target"` // Name of the requested Go type
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DecodeError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("dynjson decode %s as %s failed: %s", e.Key, e.Target, e.Message)
	}
	return fmt.Sprintf("dynjson decode as %s failed: %s", e.Target, e.Message)
}

func (e *DecodeError) errorKind() ErrorKind { return e.Kind }

// Unwrap returns the cause and the kind's sentinel.
func (e *DecodeError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// newValueError creates a ValueError with a formatted message.
func newValueError(kind ErrorKind, path, format string, args ...any) *ValueError {
	return &ValueError{
		Kind:    kind,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
}

// wrapValueError attaches a cause to a new ValueError.
func wrapValueError(kind ErrorKind, path string, err error, message string) *ValueError {
	return &ValueError{
		Kind:    kind,
		Path:    path,
		Message: message,
		Err:     err,
	}
}

// IsAbsent reports whether err describes a missing value.
func IsAbsent(err error) bool {
	k := KindOf(err)
	return k != 0 && k.IsAbsence()
}
