package planner

import (
	"errors"
	"fmt"
)

// ErrorType represents specific plan generation error types.
type ErrorType string

const (
	// ErrorTypeGeneration indicates the model call itself failed.
	ErrorTypeGeneration ErrorType = "generation_failed"

	// ErrorTypeParse indicates the model output could not be decoded.
	ErrorTypeParse ErrorType = "parse_failed"

	// ErrorTypeValidation indicates the decoded plan was structurally invalid.
	ErrorTypeValidation ErrorType = "validation_failed"

	// ErrorTypeScheduling indicates task placement onto the calendar failed.
	ErrorTypeScheduling ErrorType = "scheduling_failed"

	// ErrorTypeInvalidParameter indicates an invalid parameter was provided.
	ErrorTypeInvalidParameter ErrorType = "invalid_parameter"
)

// PlannerError represents a generation-specific error with type and context.
// It implements the error interface and supports error wrapping with errors.Is/As.
type PlannerError struct {
	// Type identifies the specific error type.
	Type ErrorType

	// Message is a human-readable error message.
	Message string

	// Cause is the underlying error that caused this error (optional).
	Cause error

	// Context provides additional contextual information about the error.
	Context map[string]any
}

// Error implements the error interface.
func (e *PlannerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain traversal.
func (e *PlannerError) Unwrap() error {
	return e.Cause
}

// Is implements the errors.Is interface for error comparison.
// Two PlannerErrors are equal if they have the same error type.
func (e *PlannerError) Is(target error) bool {
	var plannerErr *PlannerError
	if errors.As(target, &plannerErr) {
		return e.Type == plannerErr.Type
	}
	return false
}

// WithContext adds contextual information to the error.
func (e *PlannerError) WithContext(key string, value any) *PlannerError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// NewPlannerError creates a new PlannerError with the given type and message.
func NewPlannerError(errType ErrorType, message string) *PlannerError {
	return &PlannerError{
		Type:    errType,
		Message: message,
		Context: make(map[string]any),
	}
}

// WrapPlannerError wraps an existing error with generation error context.
func WrapPlannerError(errType ErrorType, message string, cause error) *PlannerError {
	return &PlannerError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// NewInvalidParameterError creates a new error for invalid parameters.
func NewInvalidParameterError(message string) *PlannerError {
	return NewPlannerError(ErrorTypeInvalidParameter, message)
}
