package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Akash114/SarthiAI/internal/llm"
)

// Validator validates configuration values.
type Validator interface {
	Validate(cfg *Config) error
}

// validatorImpl implements Validator using go-playground/validator.
type validatorImpl struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator instance.
func NewValidator() Validator {
	return &validatorImpl{
		validate: validator.New(),
	}
}

// Validate validates the configuration and returns detailed error messages.
func (v *validatorImpl) Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	err := v.validate.Struct(cfg)
	if err != nil {
		validationErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("validation error: %w", err)
		}

		var errorMessages []string
		for _, e := range validationErrs {
			errorMessages = append(errorMessages, formatValidationError(e))
		}

		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errorMessages, "\n  - "))
	}

	if cfg.Scheduler.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Scheduler.Timezone); err != nil {
			return fmt.Errorf("configuration validation failed:\n  - scheduler.timezone is not a valid IANA zone (got: %s)", cfg.Scheduler.Timezone)
		}
	}

	if cfg.Notifications.Enabled && cfg.Notifications.PushURL == "" {
		return fmt.Errorf("configuration validation failed:\n  - notifications.push_url must be set when notifications are enabled")
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		return fmt.Errorf("configuration validation failed:\n  - tracing.endpoint must be set when tracing is enabled")
	}

	if cfg.LLM.DefaultProvider != "" {
		pc, ok := cfg.LLM.Providers[cfg.LLM.DefaultProvider]
		if !ok {
			return fmt.Errorf("configuration validation failed:\n  - llm.default_provider %q has no entry under llm.providers", cfg.LLM.DefaultProvider)
		}
		if pc.Type != "" && !knownProviderType(pc.Type) {
			return fmt.Errorf("configuration validation failed:\n  - llm.providers.%s.type %q is not a known provider", cfg.LLM.DefaultProvider, pc.Type)
		}
	}

	return nil
}

func knownProviderType(t llm.ProviderType) bool {
	switch t {
	case llm.ProviderOpenAI, llm.ProviderAnthropic, llm.ProviderOllama, llm.ProviderMock:
		return true
	}
	return false
}

// formatValidationError formats a single validation error with field path and details.
func formatValidationError(e validator.FieldError) string {
	fieldPath := formatFieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldPath)
	case "min":
		return fmt.Sprintf("%s must be at least %s (got: %v)", fieldPath, e.Param(), e.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s (got: %v)", fieldPath, e.Param(), e.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got: %v)", fieldPath, e.Param(), e.Value())
	default:
		return fmt.Sprintf("%s failed validation '%s' (got: %v)", fieldPath, e.Tag(), e.Value())
	}
}

// formatFieldPath converts validator namespace to a more readable field path.
// Example: "Config.Scheduler.ReminderIntervalMinutes" -> "scheduler.reminder_interval_minutes"
func formatFieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) <= 1 {
		return namespace
	}

	result := make([]string, 0, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		result = append(result, camelToSnake(parts[i]))
	}

	return strings.Join(result, ".")
}

// camelToSnake converts CamelCase to snake_case.
func camelToSnake(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
