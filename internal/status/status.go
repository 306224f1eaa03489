// Package status defines the fixed exit-code taxonomy and the error type
// that carries a code from a failure site up to main.
package status

import (
	"errors"
	"fmt"
)

// Exit codes. The values are part of the tool's external contract and must
// not be renumbered.
const (
	Success              = 0
	Interrupted          = 1
	GeneralError         = 2
	NotRoot              = 3
	StopError            = 4
	OptionError          = 101
	ValidationError      = 102
	DeploymentError      = 103
	ExternallyTerminated = 127
)

// Error is an error with an associated process exit code.
type Error struct {
	Code int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Msg != "" {
			return fmt.Sprintf("%s: %v", e.Msg, e.Err)
		}
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a status error with the given code and message.
func New(code int, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Errorf formats a status error with the given code.
func Errorf(code int, format string, args ...interface{}) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches an exit code to err. Returns nil if err is nil.
func Wrap(code int, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Msg: msg, Err: err}
}

// CodeOf extracts the exit code from err. Errors without a status code map
// to GeneralError; nil maps to Success.
func CodeOf(err error) int {
	if err == nil {
		return Success
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return GeneralError
}

// IsInterrupted reports whether err carries the interrupted outcome, the
// designated non-fatal stop that is safe to resume from.
func IsInterrupted(err error) bool {
	return CodeOf(err) == Interrupted
}
