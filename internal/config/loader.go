package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles loading configuration from files.
type Loader interface {
	Load(path string) (*Config, error)
	LoadWithDefaults(path string) (*Config, error)
}

// viperLoader implements Loader using Viper.
type viperLoader struct {
	validator Validator
}

// NewLoader creates a new Loader instance.
func NewLoader(validator Validator) Loader {
	return &viperLoader{
		validator: validator,
	}
}

// Load loads configuration from the specified file path. Returns an
// error if the file doesn't exist or cannot be parsed.
func (l *viperLoader) Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	setViperDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyInterpolation(&cfg)

	if err := l.validator.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration.
func (l *viperLoader) LoadWithDefaults(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := l.validator.Validate(cfg); err != nil {
			return nil, fmt.Errorf("default configuration validation failed: %w", err)
		}
		return cfg, nil
	}

	return l.Load(path)
}

// setViperDefaults seeds viper with DefaultConfig so partial files
// inherit the rest.
func setViperDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("scheduler.enabled", defaults.Scheduler.Enabled)
	v.SetDefault("scheduler.timezone", defaults.Scheduler.Timezone)
	v.SetDefault("scheduler.run_on_startup", defaults.Scheduler.RunOnStartup)
	v.SetDefault("scheduler.weekly_job.day", defaults.Scheduler.WeeklyJob.Day)
	v.SetDefault("scheduler.weekly_job.hour", defaults.Scheduler.WeeklyJob.Hour)
	v.SetDefault("scheduler.weekly_job.minute", defaults.Scheduler.WeeklyJob.Minute)
	v.SetDefault("scheduler.reminder_interval_minutes", defaults.Scheduler.ReminderIntervalMinutes)
	v.SetDefault("scheduler.reminder_lookahead_minutes", defaults.Scheduler.ReminderLookaheadMinutes)
	v.SetDefault("notifications.enabled", defaults.Notifications.Enabled)
	v.SetDefault("notifications.provider", defaults.Notifications.Provider)
	v.SetDefault("notifications.push_url", defaults.Notifications.PushURL)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
}

// applyInterpolation expands ${VAR} references in the string fields
// that may carry secrets or deployment-specific values.
func applyInterpolation(cfg *Config) {
	cfg.Scheduler.Timezone = interpolateString(cfg.Scheduler.Timezone)
	cfg.Notifications.PushURL = interpolateString(cfg.Notifications.PushURL)
	cfg.Tracing.Endpoint = interpolateString(cfg.Tracing.Endpoint)

	for name, pc := range cfg.LLM.Providers {
		pc.APIKey = interpolateString(pc.APIKey)
		pc.BaseURL = interpolateString(pc.BaseURL)
		cfg.LLM.Providers[name] = pc
	}
}

// interpolateString replaces ${VAR_NAME} with environment variable values.
func interpolateString(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")

		if envValue := os.Getenv(varName); envValue != "" {
			return envValue
		}

		// If not found, return original match
		return match
	})
}
