// Package geomerr defines the single error kind raised by the geometry
// and pipeline packages. Failures are immediate; callers are expected to
// validate wiring before processing.
package geomerr

import (
	"errors"
	"fmt"
)

// Error is a geometry or pipeline failure.
type Error struct {
	Op  string // operation that failed, e.g. "node.Process"
	Msg string
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
	return e.Msg
}

// New creates an Error for op with a formatted message.
func New(op, format string, args ...interface{}) *Error {
	return &Error{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err is, or wraps, a geometry error.
func Is(err error) bool {
	var ge *Error
	return errors.As(err, &ge)
}
