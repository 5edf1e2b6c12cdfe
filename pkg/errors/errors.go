// Package errors provides the error type used throughout weathervane.
//
// It augments the standard errors package with sentinel errors that can be
// wrapped with a cause while still matching the original sentinel through
// errors.Is. Unlike fmt.Errorf("%w", ...), wrapping keeps the sentinel
// identity, so packages may export errors such as status.ErrNotFound and
// attach per-call context without losing comparability.
package errors

import (
	stderr "errors"

	"go.uber.org/zap"
)

var _ error = New("")

// New creates a sentinel Error with the given message.
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Error is an error with an optional cause. Wrapping returns a copy so
// package-level sentinels remain immutable and safe for concurrent use.
type Error struct {
	msg  string
	root *Error
	err  error
}

// Error message, with the cause appended when present.
func (e *Error) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

// Unwrap yields the cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap returns a copy of this error carrying err as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, root: e.origin(), err: err}
}

// WrapMessage returns a copy of this error carrying a message-only cause.
func (e *Error) WrapMessage(msg string) *Error {
	return e.Wrap(stderr.New(msg))
}

// WrapWithLog logs the wrapped error with the given fields, then returns it.
func (e *Error) WrapWithLog(l *zap.Logger, err error, fields ...zap.Field) *Error {
	wrapped := e.Wrap(err)
	if l != nil {
		l.Error(wrapped.msg, append(fields, zap.Error(err))...)
	}
	return wrapped
}

// Is matches wrapped copies against their originating sentinel.
func (e *Error) Is(target error) bool {
	o, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.origin() == o.origin()
}

func (e *Error) origin() *Error {
	if e.root != nil {
		return e.root
	}
	return e
}

// As finds the first error in err's chain that matches target
// (a shortcut to the standard library errors.As).
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is reports whether any error in err's chain matches target
// (a shortcut to the standard library errors.Is).
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
