// Package oaserrors provides structured error types for oaslimbs.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between a selector that names
// nothing, a reference that cannot be resolved, and an invalid output request.
//
// # Error Categories
//
//   - UnknownLimbError: a selector matches no operation, path or tag
//   - UnknownPathError: path expansion requested for a path absent from paths
//   - NoOperationForTagError: tag expansion requested for a tag with no operation
//   - ReferenceError: $ref resolution failures, dangling pointers, unreachable sources
//   - ParseError: YAML/JSON parsing failures and structural issues
//   - InvalidAnchorError: an anchor name that cannot address the parent document
//   - UnsupportedFormatError: an output format other than json or yaml
//   - ResourceLimitError: resource exhaustion (depth, size, count limits)
//   - ConfigError: invalid configuration or input options
//
// Tag partitioning reports strict-mode failures with partition.MultitagsOperationsError
// and partition.NotagOperationsError, which match ErrMultitagsOperations and
// ErrNotagOperations respectively.
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrUnknownLimb indicates a selector matched no operation, path or tag.
	ErrUnknownLimb = errors.New("unknown limb")

	// ErrUnknownPath indicates a path is not present in the document.
	ErrUnknownPath = errors.New("unknown path")

	// ErrNoOperationForTag indicates no operation carries the requested tag.
	ErrNoOperationForTag = errors.New("no operation for tag")

	// ErrMultitagsOperations indicates operations with more than one tag were found in strict mode.
	ErrMultitagsOperations = errors.New("multitags operations")

	// ErrNotagOperations indicates operations without tags were found in strict mode.
	ErrNotagOperations = errors.New("notag operations")

	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a circular $ref was detected where it cannot be tolerated.
	ErrCircularReference = errors.New("circular reference")

	// ErrPathTraversal indicates a path traversal attempt was blocked.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrInvalidAnchor indicates an anchor name cannot be used to address a document.
	ErrInvalidAnchor = errors.New("invalid anchor")

	// ErrUnsupportedFormat indicates an unknown output format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// UnknownLimbError is returned when a selector is neither an operation,
// a path nor a tag of the document it is classified against.
type UnknownLimbError struct {
	// Limb is the selector that could not be classified
	Limb string
}

// Error returns a human-readable error message.
func (e *UnknownLimbError) Error() string {
	return fmt.Sprintf("no operation, path or tag matches limb %q", e.Limb)
}

// Is reports whether target matches this error type.
func (e *UnknownLimbError) Is(target error) bool {
	return target == ErrUnknownLimb
}

// UnknownPathError is returned when operations are requested for a path
// that does not exist in the document.
type UnknownPathError struct {
	Path string
}

// Error returns a human-readable error message.
func (e *UnknownPathError) Error() string {
	return fmt.Sprintf("unknown path %q", e.Path)
}

// Is reports whether target matches this error type.
func (e *UnknownPathError) Is(target error) bool {
	return target == ErrUnknownPath
}

// NoOperationForTagError is returned when a tag is expanded but no
// operation carries it.
type NoOperationForTagError struct {
	Tag string
}

// Error returns a human-readable error message.
func (e *NoOperationForTagError) Error() string {
	return fmt.Sprintf("no operation for tag %q", e.Tag)
}

// Is reports whether target matches this error type.
func (e *NoOperationForTagError) Is(target error) bool {
	return target == ErrNoOperationForTag
}

// ParseError represents a failure to parse an OpenAPI document.
// This includes YAML/JSON deserialization errors and structural issues.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
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
	if e.Path != "" {
		msg += " in " + e.Path
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

// ReferenceError represents a failure to resolve a $ref.
// This is the resolution error of the extraction pipeline: malformed
// documents, dangling pointers and unreachable sources all surface as it.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// File is the logical document name the reference points into ("" for the root)
	File string
	// IsCircular is true if this error is due to a circular reference
	IsCircular bool
	// IsPathTraversal is true if this error is due to a path traversal attempt
	IsPathTraversal bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsCircular {
		msg = "circular reference"
	} else if e.IsPathTraversal {
		msg = "path traversal detected"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
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
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrCircularReference or ErrPathTraversal
// when appropriate flags are set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	if target == ErrCircularReference && e.IsCircular {
		return true
	}
	if target == ErrPathTraversal && e.IsPathTraversal {
		return true
	}
	return false
}

// InvalidAnchorError is returned when the anchor name under which the parent
// document is published cannot be used as an addressable location.
type InvalidAnchorError struct {
	Anchor  string
	Message string
}

// Error returns a human-readable error message.
func (e *InvalidAnchorError) Error() string {
	msg := fmt.Sprintf("invalid anchor %q", e.Anchor)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *InvalidAnchorError) Is(target error) bool {
	return target == ErrInvalidAnchor
}

// UnsupportedFormatError is returned when a document is to be serialized
// in a format other than JSON or YAML.
type UnsupportedFormatError struct {
	Format string
}

// Error returns a human-readable error message.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q (expected json or yaml)", e.Format)
}

// Is reports whether target matches this error type.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// ResourceLimitError represents a resource exhaustion condition.
// This occurs when loading or resolving exceeds configured limits.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "ref_depth", "cached_documents", "file_size"
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

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
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
