// Package errors provides structured error types for layerroute.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes mirror the failure kinds of the build and solve pipeline:
//   - MALFORMED_SOURCE: a source file is missing a delimiter, section marker
//     or count line. Fatal: no graph is exposed.
//   - UNKNOWN_NODE_REFERENCE: an edge references an undeclared node or
//     category. Recovered by skipping that edge.
//   - NO_PATH_FOUND: a search produced nothing. The run still writes its
//     outputs; solve then reports the error and exits non-zero.
//   - CACHE_CORRUPT: a cached snapshot could not be decoded. Recovered by
//     rebuilding from source.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedSource, "%s:%d: missing %q", name, line, marker)
//	if errors.Is(err, errors.ErrCodeMalformedSource) {
//	    // abort the run
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeCacheCorrupt, origErr, "decode snapshot %s", key)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Source errors
	ErrCodeMalformedSource      Code = "MALFORMED_SOURCE"
	ErrCodeUnknownNodeReference Code = "UNKNOWN_NODE_REFERENCE"

	// Search errors
	ErrCodeNoPathFound Code = "NO_PATH_FOUND"

	// Cache errors
	ErrCodeCacheCorrupt Code = "CACHE_CORRUPT"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsFatal reports whether err must abort a run. Only malformed sources,
// invalid input and internal failures are fatal; skipped references, empty
// searches and corrupt caches are recovered by the caller.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeUnknownNodeReference, ErrCodeNoPathFound, ErrCodeCacheCorrupt:
		return false
	case "":
		return err != nil
	default:
		return true
	}
}
