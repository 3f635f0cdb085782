// Package apperror carries the error taxonomy shared by every layer of the
// user service. Errors are tagged with a Kind so the delivery layer can map
// them to transport status codes without inspecting messages.
package apperror

import (
	"errors"
	"fmt"
)

// Kind is a sentinel describing the category of a failure.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new error kind sentinel.
func NewKind(name string) Kind { return kind{s: name} }

var (
	// ErrValidation means caller input was rejected.
	ErrValidation = NewKind("VALIDATION")
	// ErrNotFound means the addressed user does not exist.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrAlreadyExists means a uniqueness rule (username or email) was violated.
	ErrAlreadyExists = NewKind("ALREADY_EXISTS")
	// ErrInfrastructure means the storage or another dependency failed.
	ErrInfrastructure = NewKind("INFRASTRUCTURE")
)

// Error is a kinded error with an optional cause and message.
// errors.Is and errors.As match against both the kind and the cause.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With builds an error of kind k with a formatted message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap builds an error of kind k wrapping err.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly builds an error that carries nothing but its kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	case e.kind != nil:
		return e.kind.Error()
	default:
		return "unknown error"
	}
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	return e.err != nil && errors.Is(e.err, target)
}

func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	return e.err != nil && errors.As(e.err, target)
}

func (e *Error) Kind() Kind      { return e.kind }
func (e *Error) Message() string { return e.msg }
func (e *Error) Cause() error    { return e.err }

// KindOf returns the kind carried anywhere in err's chain, or nil.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) && e.kind != nil {
		return e.kind
	}
	return nil
}

// HasKind reports whether err carries any kind.
func HasKind(err error) bool { return KindOf(err) != nil }

func IsValidation(err error) bool    { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool      { return errors.Is(err, ErrNotFound) }
func IsAlreadyExists(err error) bool { return errors.Is(err, ErrAlreadyExists) }
