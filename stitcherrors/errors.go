// Package stitcherrors provides structured error types for stitcher.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ParseError: YAML/JSON parsing failures and unsupported document shapes
//   - FetchError: unreachable or non-success document retrieval
//   - EncodingError: document bytes that are not valid UTF-8 text
//   - CircularReferenceError: a $ref chain that closed back on itself
//   - ReferenceNotFoundError: a JSON Pointer path absent from its target
//   - ResourceLimitError: resource exhaustion (depth, size limits)
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.Is
//
//	result, err := stitch.StitchWithOptions(stitch.WithFilePath("api.yaml"))
//	if err != nil {
//	    if errors.Is(err, stitcherrors.ErrCircularReference) {
//	        // Handle circular references specifically
//	    }
//	}
package stitcherrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrFetch indicates a document could not be retrieved.
	ErrFetch = errors.New("fetch error")

	// ErrEncoding indicates a document payload was not valid UTF-8 text.
	ErrEncoding = errors.New("encoding error")

	// ErrCircularReference indicates a circular $ref was detected.
	ErrCircularReference = errors.New("circular reference")

	// ErrReferenceNotFound indicates a JSON Pointer path did not exist.
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse a source document.
// This includes YAML/JSON deserialization errors and node shapes the
// document model does not admit (anchors resolving to unknown kinds, etc).
type ParseError struct {
	// Location is the source path or URL being parsed, if known
	Location string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Location != "" {
		msg += " in " + e.Location
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// FetchError represents a failure to retrieve a document from its location.
// This includes missing files, unreachable hosts, and non-2xx HTTP responses.
type FetchError struct {
	// Location is the file path or URL that could not be fetched
	Location string
	// StatusCode is the HTTP status code for URL fetches (0 for files)
	StatusCode int
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *FetchError) Error() string {
	msg := "fetch error"
	if e.Location != "" {
		msg += ": " + e.Location
	}
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// EncodingError represents a document whose bytes are not valid UTF-8 text
// after BOM handling.
type EncodingError struct {
	// Location is the source of the offending payload
	Location string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *EncodingError) Error() string {
	msg := "encoding error"
	if e.Location != "" {
		msg += ": " + e.Location
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *EncodingError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *EncodingError) Is(target error) bool {
	return target == ErrEncoding
}

// CircularReferenceError represents a $ref whose resolution would re-enter
// a document that is still being resolved on the current recursion stack.
type CircularReferenceError struct {
	// Ref is the reference string that closed the cycle
	Ref string
	// Location is the canonical location the cycle converged on
	Location string
}

// Error returns a human-readable error message.
func (e *CircularReferenceError) Error() string {
	msg := "circular reference"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Location != "" {
		msg += " (resolving " + e.Location + ")"
	}
	return msg
}

// Unwrap returns nil as CircularReferenceError has no underlying cause.
func (e *CircularReferenceError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *CircularReferenceError) Is(target error) bool {
	return target == ErrCircularReference
}

// ReferenceNotFoundError represents a JSON Pointer path that does not exist
// in its target document.
type ReferenceNotFoundError struct {
	// Pointer is the pointer string that failed to resolve
	Pointer string
	// Location is the document the pointer was evaluated against, if known
	Location string
	// Message describes which token failed and why
	Message string
}

// Error returns a human-readable error message.
func (e *ReferenceNotFoundError) Error() string {
	msg := "reference not found"
	if e.Pointer != "" {
		msg += ": " + e.Pointer
	}
	if e.Location != "" {
		msg += " in " + e.Location
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ReferenceNotFoundError has no underlying cause.
func (e *ReferenceNotFoundError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ReferenceNotFoundError) Is(target error) bool {
	return target == ErrReferenceNotFound
}

// ResourceLimitError represents a resource exhaustion condition.
// This occurs when resolution exceeds configured limits.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "ref_depth", "document_size"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ResourceLimitError has no underlying cause.
func (e *ResourceLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
