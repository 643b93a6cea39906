// Package errs defines the typed failures returned by the bingo engine.
package errs

import "errors"

// Code is a machine-readable error code.
type Code string

const (
	CodeOutOfRange   Code = "OUT_OF_RANGE"
	CodeDuplicateID  Code = "DUPLICATE_ID"
	CodeDuplicate    Code = "DUPLICATE"
	CodeAlreadyDrawn Code = "ALREADY_DRAWN"
	CodeEmptyPool    Code = "EMPTY_POOL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeValidation   Code = "VALIDATION"
)

// Sentinels for errors.Is comparisons. Matching is by code only.
var (
	ErrOutOfRange   = &Error{Code: CodeOutOfRange}
	ErrDuplicateID  = &Error{Code: CodeDuplicateID}
	ErrDuplicate    = &Error{Code: CodeDuplicate}
	ErrAlreadyDrawn = &Error{Code: CodeAlreadyDrawn}
	ErrEmptyPool    = &Error{Code: CodeEmptyPool}
	ErrNotFound     = &Error{Code: CodeNotFound}
	ErrValidation   = &Error{Code: CodeValidation}
)

// Error is a recoverable engine failure. Message is suitable for display.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates an error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata creates an error carrying extra context.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// CodeOf returns the code of the first *Error in err's chain, or "" if there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
