package declcli

import (
	"errors"
	"flag"
	"fmt"
)

// NewError creates a new error with the given error code and error.
func NewError(code ErrorCode, err error) error {
	return &Error{code: code, err: err}
}

// ErrorCode represents an error code for a specific error type.
type ErrorCode int

const (
	// ErrShowHelp is returned when help was requested. The error unwraps to [flag.ErrHelp].
	ErrShowHelp ErrorCode = iota + 1
	// ErrParse is returned when the argument vector does not match the declared commands.
	ErrParse
	// ErrDefinition is returned when the declared commands and options cannot be built into a
	// parser.
	ErrDefinition
)

func (c ErrorCode) String() string {
	return convertErrorCode(c)
}

func convertErrorCode(code ErrorCode) string {
	switch code {
	case ErrShowHelp:
		return "show help"
	case ErrParse:
		return "parse error"
	case ErrDefinition:
		return "definition error"
	default:
		return "unknown error"
	}
}

// Error represents an error with an error code and an underlying error.
type Error struct {
	code ErrorCode
	err  error
	// usage is the full help text for ErrShowHelp, and the usage line for ErrParse.
	usage string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.err == nil {
		return convertErrorCode(e.code) + ": <nil>"
	}
	return e.err.Error()
}

func (e *Error) Unwrap() error { return e.err }

// Code returns the error code.
func (e *Error) Code() ErrorCode { return e.code }

// Usage returns the help text attached to the error. For [ErrShowHelp] this is the full help of
// the command that was asked for help; for [ErrParse] it is that command's usage line.
func (e *Error) Usage() string { return e.usage }

func helpError(text string) error {
	return &Error{code: ErrShowHelp, err: flag.ErrHelp, usage: text}
}

func parseErrorf(n *node, format string, args ...any) error {
	return &Error{
		code:  ErrParse,
		err:   fmt.Errorf("%s: %w", n.path(), fmt.Errorf(format, args...)),
		usage: n.usageLine(),
	}
}

func definitionErrorf(format string, args ...any) error {
	return &Error{code: ErrDefinition, err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error returned by [App.Run] to a process exit status: 0 for success and help
// requests, 2 for parse errors and 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cliErr *Error
	if errors.As(err, &cliErr) {
		switch cliErr.code {
		case ErrShowHelp:
			return 0
		case ErrParse:
			return 2
		}
	}
	return 1
}
