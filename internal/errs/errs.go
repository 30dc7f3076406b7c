// Package errs defines the error kinds surfaced by the ledger core.
//
// Every failure leaving a service is an *Error carrying one Kind so the
// transport layer can map it to a response code without string matching.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// KindServer is a persistence failure or any unexpected error.
	KindServer Kind = iota
	// KindValidation is malformed input: bad category or duration, a
	// non-numeric amount, shares not summing to one.
	KindValidation
	// KindNotFound is a missing budget, expense, split or group expense.
	KindNotFound
	// KindUnauthorized is an acting user that is missing, soft-deleted or
	// not the owner of the resource being mutated.
	KindUnauthorized
	// KindConflict is a create that collides with an existing record.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	default:
		return "server"
	}
}

// Error is a classified failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validationf returns a KindValidation error.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf returns a KindNotFound error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Unauthorizedf returns a KindUnauthorized error.
func Unauthorizedf(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Conflictf returns a KindConflict error.
func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Server wraps err as a KindServer error. An err that is already
// classified is returned unchanged.
func Server(err error, msg string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindServer, Message: msg, Err: err}
}

// KindOf reports the kind of err. Unclassified errors are KindServer.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServer
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
