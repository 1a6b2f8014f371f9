package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Akash114/SarthiAI/internal/types"
)

// LLM error codes follow the Sarthi error pattern
const (
	// Provider errors
	ErrProviderNotFound     types.ErrorCode = "LLM_PROVIDER_NOT_FOUND"
	ErrProviderUnavailable  types.ErrorCode = "LLM_PROVIDER_UNAVAILABLE"
	ErrProviderUnauthorized types.ErrorCode = "LLM_PROVIDER_UNAUTHORIZED"
	ErrProviderRateLimited  types.ErrorCode = "LLM_PROVIDER_RATE_LIMITED"
	ErrNoCredentials        types.ErrorCode = "LLM_NO_CREDENTIALS"

	// Request errors
	ErrInvalidRequest types.ErrorCode = "LLM_INVALID_REQUEST"

	// Completion errors
	ErrCompletionFailed    types.ErrorCode = "LLM_COMPLETION_FAILED"
	ErrResponseParseFailed types.ErrorCode = "LLM_RESPONSE_PARSE_FAILED"
	ErrTimeoutExceeded     types.ErrorCode = "LLM_TIMEOUT_EXCEEDED"

	// Network errors
	ErrNetworkFailed types.ErrorCode = "LLM_NETWORK_FAILED"
)

// IsRetryable determines if an error is transient and may succeed on retry.
func IsRetryable(err error) bool {
	var sarthiErr *types.SarthiError
	if !errors.As(err, &sarthiErr) {
		return false
	}

	if sarthiErr.Retryable {
		return true
	}

	switch sarthiErr.Code {
	case ErrNetworkFailed, ErrProviderRateLimited, ErrProviderUnavailable, ErrTimeoutExceeded:
		return true
	default:
		return false
	}
}

// IsUnavailable reports whether the error means no provider can serve
// requests at all, as opposed to a single failed completion. The
// pipeline routes unavailable providers straight to deterministic
// fallbacks instead of retrying.
func IsUnavailable(err error) bool {
	var sarthiErr *types.SarthiError
	if !errors.As(err, &sarthiErr) {
		return false
	}
	return sarthiErr.Code == ErrNoCredentials || sarthiErr.Code == ErrProviderNotFound
}

// NewNoCredentialsError creates an error for a provider with no API key configured
func NewNoCredentialsError(providerName string) *types.SarthiError {
	return types.NewError(ErrNoCredentials, "no credentials configured for provider: "+providerName)
}

// NewProviderNotFoundError creates an error for when a provider is not found
func NewProviderNotFoundError(providerName string) *types.SarthiError {
	return types.NewError(ErrProviderNotFound, "provider not found: "+providerName)
}

// NewProviderUnavailableError creates a retryable error for when a provider is temporarily unavailable
func NewProviderUnavailableError(providerName string, cause error) *types.SarthiError {
	return &types.SarthiError{
		Code:      ErrProviderUnavailable,
		Message:   "provider temporarily unavailable: " + providerName,
		Retryable: true,
		Cause:     cause,
	}
}

// NewRateLimitError creates a retryable error for rate limiting
func NewRateLimitError(providerName string) *types.SarthiError {
	return &types.SarthiError{
		Code:      ErrProviderRateLimited,
		Message:   "rate limit exceeded for provider: " + providerName,
		Retryable: true,
	}
}

// NewInvalidRequestError creates an error for invalid requests
func NewInvalidRequestError(message string) *types.SarthiError {
	return types.NewError(ErrInvalidRequest, message)
}

// NewCompletionError creates an error for completion failures
func NewCompletionError(message string, cause error) *types.SarthiError {
	return types.WrapError(ErrCompletionFailed, message, cause)
}

// NewParseError creates an error for unparseable completion output
func NewParseError(message string, cause error) *types.SarthiError {
	return types.WrapError(ErrResponseParseFailed, message, cause)
}

// NewNetworkError creates a retryable error for network failures
func NewNetworkError(message string, cause error) *types.SarthiError {
	return &types.SarthiError{
		Code:      ErrNetworkFailed,
		Message:   message,
		Retryable: true,
		Cause:     cause,
	}
}

// NewTimeoutError creates a retryable error for timeout failures
func NewTimeoutError(message string) *types.SarthiError {
	return &types.SarthiError{
		Code:      ErrTimeoutExceeded,
		Message:   message,
		Retryable: true,
	}
}

// NewProviderUnauthorizedError creates an unauthorized provider error
func NewProviderUnauthorizedError(providerName string, cause error) *types.SarthiError {
	return &types.SarthiError{
		Code:    ErrProviderUnauthorized,
		Message: fmt.Sprintf("provider '%s' authentication failed", providerName),
		Cause:   cause,
	}
}

// TranslateError translates generic errors into Sarthi errors based on
// error message content.
func TranslateError(provider string, err error) error {
	if err == nil {
		return nil
	}

	var sarthiErr *types.SarthiError
	if errors.As(err, &sarthiErr) {
		return err
	}

	lowerMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lowerMsg, "unauthorized") || strings.Contains(lowerMsg, "authentication") || strings.Contains(lowerMsg, "api key"):
		return NewProviderUnauthorizedError(provider, err)
	case strings.Contains(lowerMsg, "rate limit") || strings.Contains(lowerMsg, "too many requests"):
		return NewRateLimitError(provider)
	case strings.Contains(lowerMsg, "timeout") || strings.Contains(lowerMsg, "deadline"):
		return NewTimeoutError(err.Error())
	case strings.Contains(lowerMsg, "network") || strings.Contains(lowerMsg, "connection"):
		return NewNetworkError(err.Error(), err)
	default:
		return NewProviderUnavailableError(provider, err)
	}
}
