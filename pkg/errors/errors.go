// Package errors provides structured error types for the tintstack renderer.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Errors fall into three families, matching where the mistake lives:
//   - INVALID_* / UNKNOWN_* / MALFORMED_* / UNSUPPORTED_*: caller
//     configuration errors (bad recipe, bad color token)
//   - DIMENSION_MISMATCH: layer consistency violations, fatal per render
//   - SOURCE_* / OUTPUT_*: I/O failures from the image collaborators,
//     propagated unchanged and never retried
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownColorName, "no such color: %s", name)
//	if errors.Is(err, errors.ErrCodeUnknownColorName) {
//	    // Handle the bad token
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSourceDecode, origErr, "decoding %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Caller configuration errors
	ErrCodeInvalidRecipe          Code = "INVALID_RECIPE"
	ErrCodeInvalidPath            Code = "INVALID_PATH"
	ErrCodeInvalidFormat          Code = "INVALID_FORMAT"
	ErrCodeInvalidMapping         Code = "INVALID_MAPPING"
	ErrCodeUnsupportedColorFormat Code = "UNSUPPORTED_COLOR_FORMAT"
	ErrCodeUnknownColorName       Code = "UNKNOWN_COLOR_NAME"
	ErrCodeMalformedColorSpec     Code = "MALFORMED_COLOR_SPEC"

	// Layer consistency errors
	ErrCodeDimensionMismatch Code = "DIMENSION_MISMATCH"

	// Collaborator I/O errors
	ErrCodeSourceNotFound Code = "SOURCE_NOT_FOUND"
	ErrCodeSourceDecode   Code = "SOURCE_DECODE_ERROR"
	ErrCodeOutputWrite    Code = "OUTPUT_WRITE_ERROR"

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

// IsConfiguration reports whether err is a caller configuration error
// (as opposed to a consistency violation or a collaborator I/O failure).
func IsConfiguration(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidRecipe, ErrCodeInvalidPath, ErrCodeInvalidFormat,
		ErrCodeInvalidMapping, ErrCodeUnsupportedColorFormat,
		ErrCodeUnknownColorName, ErrCodeMalformedColorSpec:
		return true
	}
	return false
}
