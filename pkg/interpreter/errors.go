package interpreter

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCommand     = errors.New("unknown command")
	ErrMalformedStatement = errors.New("malformed statement")
	ErrInvalidValue       = errors.New("invalid value")
	ErrUnderflow          = errors.New("subtraction result would be negative")
	ErrUndefinedFunction  = errors.New("undefined function")
	ErrDuplicateName      = errors.New("duplicate function name")
	ErrMaxStepsExceeded   = errors.New("maximum steps exceeded")
)

// LineError reports a fatal error raised while executing a loaded line.
type LineError struct {
	Line   int    // index into the line table
	Source string // raw text of the failing line
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Source, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
