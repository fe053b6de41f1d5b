// Package errors defines custom error types for better error handling and debugging.
// StreamError provides context-aware error reporting with type classification.
package errors

import (
	"errors"
	"fmt"
)

// StreamError represents errors that occur during stream processing
type StreamError struct {
	Type    string
	Message string
	Cause   error
}

func (e *StreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *StreamError) Unwrap() error {
	return e.Cause
}

// Error type constants
const (
	ErrorTypeConfigurationInvalid = "CONFIGURATION_INVALID"
	ErrorTypeUpstreamFailed       = "UPSTREAM_FAILED"
	ErrorTypeTimeout              = "TIMEOUT"
	ErrorTypeDecodeFailed         = "DECODE_FAILED"
	ErrorTypeInvalidID            = "INVALID_ID"
)

// NewStreamError creates a new StreamError
func NewStreamError(errorType, message string, cause error) *StreamError {
	return &StreamError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigurationError creates a configuration-related error
func NewConfigurationError(message string, cause error) *StreamError {
	return NewStreamError(ErrorTypeConfigurationInvalid, message, cause)
}

// NewUpstreamError creates an error for a failed or non-success upstream query
func NewUpstreamError(instance string, cause error) *StreamError {
	return NewStreamError(ErrorTypeUpstreamFailed, fmt.Sprintf("upstream query failed for %s", instance), cause)
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(operation string, cause error) *StreamError {
	return NewStreamError(ErrorTypeTimeout, fmt.Sprintf("operation timeout: %s", operation), cause)
}

// NewDecodeError creates an error for an unreadable upstream payload
func NewDecodeError(instance string, cause error) *StreamError {
	return NewStreamError(ErrorTypeDecodeFailed, fmt.Sprintf("invalid response from %s", instance), cause)
}

// NewInvalidIDError creates an invalid ID error
func NewInvalidIDError(id string) *StreamError {
	return NewStreamError(ErrorTypeInvalidID, fmt.Sprintf("invalid ID format: %s", id), nil)
}

// IsType reports whether err wraps a StreamError of the given type.
func IsType(err error, errorType string) bool {
	var se *StreamError
	if errors.As(err, &se) {
		return se.Type == errorType
	}
	return false
}
