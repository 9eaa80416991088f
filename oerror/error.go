// Package oerror provides a single lightweight error type for conditions
// that carry no underlying cause. Many pipeline errors are built with
// fmt.Errorf instead, so not every pipeline error is an *Error.
package oerror

import "fmt"

// Error is a plain formatted error message with no wrapped cause.
type Error struct {
	msg string
}

// New formats a message exactly like fmt.Errorf, without requiring a %w verb.
func New(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.msg
}
