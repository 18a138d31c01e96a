package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error the way the gateway needs to translate it
// onto the wire (spec.md §7). A kind is not a message: two errors of the
// same kind can carry different text and still map to the same status code.
type Kind int

const (
	KindInvalidArgument Kind = iota + 1
	KindNotFound
	KindConflict
	KindPreconditionFailed
	KindIntegrity
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindPreconditionFailed:
		return "precondition_failed"
	case KindIntegrity:
		return "integrity"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// Error is a typed domain error. Reason carries structured detail for
// PreconditionFailed (spec.md §7: "400 with a structured reason"); it is
// nil for kinds that don't need one.
type Error struct {
	Kind    Kind
	Message string
	Reason  map[string]any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is lets errors.Is(err, domain.ErrNotFound) style checks keep working
// against the sentinel values below, by kind rather than identity.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

func newErr(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func InvalidArgument(msg string) *Error { return newErr(KindInvalidArgument, msg) }
func NotFound(msg string) *Error        { return newErr(KindNotFound, msg) }
func Conflict(msg string) *Error        { return newErr(KindConflict, msg) }
func Configuration(msg string) *Error   { return newErr(KindConfiguration, msg) }

// Integrity wraps a store-level constraint violation. Per spec.md §7 this
// indicates an engine bug: it should be impossible if the engine computed
// its preconditions correctly, so the original error is kept for logging.
func Integrity(msg string, cause error) *Error {
	e := newErr(KindIntegrity, msg)
	e.cause = cause
	return e
}

// PreconditionFailed wraps a domain-rule violation (insufficient stock,
// reserved below issue qty, wrong-site destination, product not on PO)
// with a structured reason the gateway echoes verbatim in the response body.
func PreconditionFailed(msg string, reason map[string]any) *Error {
	e := newErr(KindPreconditionFailed, msg)
	e.Reason = reason
	return e
}

// Sentinel values for errors.Is comparisons against a bare kind, mirroring
// the teacher's package-level Err* variables.
var (
	ErrNotFound          = newErr(KindNotFound, "resource not found")
	ErrInvalidInput      = newErr(KindInvalidArgument, "invalid input")
	ErrConflict          = newErr(KindConflict, "conflict with current state")
	ErrPreconditionFailed = newErr(KindPreconditionFailed, "precondition failed")
	ErrIntegrity         = newErr(KindIntegrity, "integrity violation")
	ErrConfiguration     = newErr(KindConfiguration, "required configuration missing")
)
