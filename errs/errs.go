// Package errs implements the single error type shared by every layer of
// the pipeline (lexer, slicer, cooker, evaluator, env), per spec §7: a
// message, either a source line or a wrapped foreign error, and an
// optional chain of "while ..." context strings accumulated as the error
// unwinds.
package errs

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Error is the interpreter's single error currency.
type Error struct {
	Message string
	Line    uint32
	HasLine bool
	Wrapped error // set instead of Line when this wraps a foreign error
	Context []string
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.HasLine {
		fmt.Fprintf(&b, "line %d: %s", e.Line, e.Message)
	} else if e.Wrapped != nil {
		fmt.Fprintf(&b, "%s: %s", e.Message, e.Wrapped.Error())
	} else {
		b.WriteString(e.Message)
	}
	for _, c := range e.Context {
		b.WriteByte('\n')
		b.WriteString(c)
	}
	return b.String()
}

// Unwrap lets errors.Is/errors.As and pkg/errors.Cause see through to a
// wrapped foreign error.
func (e *Error) Unwrap() error { return e.Wrapped }

// New builds a line-anchored error, the common case raised directly by the
// lexer/slicer/cooker/evaluator.
func New(line uint32, format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Line: line, HasLine: true}
}

// Wrap builds an error around a foreign error (IO, strconv, TOML decode).
func Wrap(cause error, format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Wrapped: errors.WithStack(cause)}
}

// With appends a "while ..." context frame and returns the same error,
// keeping each frame distinct instead of concatenating them in place.
func (e *Error) With(format string, args ...interface{}) *Error {
	e.Context = append(e.Context, fmt.Sprintf(format, args...))
	return e
}

// With attaches a context frame to any error, promoting plain errors (e.g.
// from a deeper layer that didn't use this package) into *Error.
func With(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e.With(format, args...)
	}
	return &Error{Message: err.Error(), Context: []string{fmt.Sprintf(format, args...)}}
}
