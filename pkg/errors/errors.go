// Package errors defines the coded error type shared by the dxfview
// packages.
//
// Every failure that crosses a package boundary carries a [Code] so the CLI
// can pick an exit message and the HTTP server can pick a status without
// matching on strings:
//
//	PARSE_FAILURE      drawing could not be decoded; rendered as a placeholder
//	ENTITY_PROCESSING  one entity failed in a bounds pass; logged and skipped
//	RENDER_FAILURE     render pass abandoned; rendered as a placeholder
//	INVALID_*          rejected options or input
//	*_NOT_FOUND        missing file, block or route
//	NETWORK_ERROR      fetching a drawing by URL failed
//
// Degenerate bounds are not an error: the bounds pass substitutes a default
// box instead.
//
//	if err := errors.ValidateRotation(deg); err != nil {
//		return err
//	}
//	data, err := os.ReadFile(path)
//	if err != nil {
//		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Pipeline failures
	ErrCodeParseFailure     Code = "PARSE_FAILURE"
	ErrCodeEntityProcessing Code = "ENTITY_PROCESSING"
	ErrCodeRenderFailure    Code = "RENDER_FAILURE"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidRotation Code = "INVALID_ROTATION"
	ErrCodeInvalidSize     Code = "INVALID_SIZE"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeBlockNotFound Code = "BLOCK_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code
// or cause, or err.Error() for other errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// FromPanic converts a value returned by recover into an *Error. Error
// values are kept as the cause so errors.Is still sees them.
func FromPanic(code Code, r any, format string, args ...any) *Error {
	cause, ok := r.(error)
	if !ok {
		cause = fmt.Errorf("%v", r)
	}
	return Wrap(code, cause, format, args...)
}
