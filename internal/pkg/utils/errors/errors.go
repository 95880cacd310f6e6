// Package errors extends the standard errors package with stack traces, multi-errors and nested errors.
// Errors are formatted to a human-readable bullet list by Format.
package errors

import (
	stdErrors "errors"
	"fmt"
	"runtime"
)

type StackTrace []uintptr

type stackTracer interface {
	StackTrace() StackTrace
}

type withStack struct {
	error
	trace StackTrace
}

type wrappedError struct {
	msg   string
	err   error
	trace StackTrace
}

func New(msg string) error {
	return &withStack{error: stdErrors.New(msg), trace: callers()}
}

func Errorf(format string, a ...any) error {
	return &withStack{error: fmt.Errorf(format, a...), trace: callers()} // nolint: goerr113
}

// Wrap replaces the error message, the original error is kept for errors.Is/As and debug output.
func Wrap(err error, msg string) error {
	return &wrappedError{msg: msg, err: err, trace: callers()}
}

func Wrapf(err error, format string, a ...any) error {
	return &wrappedError{msg: fmt.Sprintf(format, a...), err: err, trace: callers()}
}

func WithStack(err error) error {
	if err == nil {
		return nil
	}
	return &withStack{error: err, trace: callers()}
}

func Is(err, target error) bool {
	return stdErrors.Is(err, target)
}

func As(err error, target any) bool {
	return stdErrors.As(err, target)
}

func Unwrap(err error) error {
	return stdErrors.Unwrap(err)
}

func (e *withStack) Unwrap() error {
	return e.error
}

func (e *withStack) StackTrace() StackTrace {
	return e.trace
}

func (e *wrappedError) Error() string {
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.err
}

func (e *wrappedError) StackTrace() StackTrace {
	return e.trace
}

func callers() StackTrace {
	pcs := make([]uintptr, 1)
	n := runtime.Callers(3, pcs)
	return pcs[:n]
}
