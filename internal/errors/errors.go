// Package errors provides structured errors for the console. Each error
// carries a category code, a user-facing message, and an optional
// suggestion for how to recover.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing failures.
const (
	ErrConfig  = "CONFIG"  // configuration missing or invalid
	ErrRoster  = "ROSTER"  // population roster query failed
	ErrCollect = "COLLECT" // per-instance live collection failed
	ErrRuntime = "RUNTIME" // collaborator binary unavailable or misbehaving
)

// Error is a structured error with code, message, suggestion, and optional
// cause. Rendered as:
//
//	x <What failed>
//
//	  <Why it failed>
//
//	  <How to fix it>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message under the RUNTIME code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrRuntime,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and
// suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("x %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Code == code
	}
	return false
}
