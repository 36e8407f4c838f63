package apperrors

import (
	"errors"
	"strings"
)

// appError is the concrete Error implementation. The base field links a
// derived error back to the sentinel it came from so errors.Is matches
// across derivations.
type appError struct {
	msg     string
	base    error
	wrapped []error
}

func (e *appError) Error() string {
	return e.msg
}

// ErrorAll returns the message followed by every wrapped error, separated
// by semicolons.
func (e *appError) ErrorAll() string {
	if len(e.wrapped) == 0 {
		return e.msg
	}
	var b strings.Builder
	b.WriteString(e.msg)
	for _, err := range e.wrapped {
		b.WriteString("; ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *appError) Unwrap() error {
	return e.base
}

func (e *appError) UnwrapAll() []error {
	return e.wrapped
}

// New creates a fresh error using the current error as its template.
// The new error matches the template under errors.Is.
func (e *appError) New(msg string) Error {
	return &appError{msg: msg, base: e}
}

// Msg creates a new error with the given message that wraps the original.
func (e *appError) Msg(msg string) Error {
	return &appError{
		msg:     msg,
		base:    e,
		wrapped: append([]error{e}, e.wrapped...),
	}
}

// MsgErr creates a new error with the given message that wraps the
// original along with any additional errors.
func (e *appError) MsgErr(msg string, errs ...error) Error {
	return &appError{
		msg:     msg,
		base:    e,
		wrapped: append([]error{e}, errs...),
	}
}

// Err attaches additional errors while keeping the current message.
func (e *appError) Err(errs ...error) Error {
	return &appError{
		msg:     e.msg,
		base:    e,
		wrapped: append([]error{e}, errs...),
	}
}

// Is reports whether the error, its base, or any wrapped error matches
// the target.
func (e *appError) Is(target error) bool {
	if target == nil {
		return false
	}
	if errors.Is(e.base, target) {
		return true
	}
	for _, err := range e.wrapped {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// New creates a root-level error with the given message. Root errors act
// as sentinels: any error derived from one matches it under errors.Is.
func New(msg string) Error {
	return &appError{msg: msg}
}
