package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for Sarthi errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// Plan pipeline error codes
const (
	PLAN_GENERATION_FAILED ErrorCode = "PLAN_GENERATION_FAILED"
	PLAN_PARSE_FAILED      ErrorCode = "PLAN_PARSE_FAILED"
	PLAN_INVALID           ErrorCode = "PLAN_INVALID"
	PLAN_SCHEDULING_FAILED ErrorCode = "PLAN_SCHEDULING_FAILED"
)

// SarthiError represents a structured error with error code, message,
// and optional cause. It supports error wrapping and retryability hints
// for error handling logic.
type SarthiError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *SarthiError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *SarthiError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
func (e *SarthiError) Is(target error) bool {
	var sarthiErr *SarthiError
	if errors.As(target, &sarthiErr) {
		return e.Code == sarthiErr.Code
	}
	return false
}

// NewError creates a new non-retryable SarthiError with the given code and message.
func NewError(code ErrorCode, message string) *SarthiError {
	return &SarthiError{
		Code:    code,
		Message: message,
	}
}

// NewRetryableError creates a new retryable SarthiError with the given code and message.
// Use this for transient errors that may succeed on retry.
func NewRetryableError(code ErrorCode, message string) *SarthiError {
	return &SarthiError{
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// WrapError creates a new non-retryable SarthiError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *SarthiError {
	return &SarthiError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
