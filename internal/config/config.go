// Package config loads and validates the worker configuration from
// YAML, with ${VAR} environment interpolation for secrets.
package config

import (
	"github.com/Akash114/SarthiAI/internal/llm"
)

// Config is the root configuration for the Sarthi worker.
type Config struct {
	Scheduler     SchedulerConfig     `mapstructure:"scheduler" yaml:"scheduler" validate:"required"`
	Notifications NotificationsConfig `mapstructure:"notifications" yaml:"notifications"`
	LLM           LLMConfig           `mapstructure:"llm" yaml:"llm"`
	Logging       LoggingConfig       `mapstructure:"logging" yaml:"logging"`
	Tracing       TracingConfig       `mapstructure:"tracing" yaml:"tracing"`
}

// SchedulerConfig controls the background worker's job timing.
type SchedulerConfig struct {
	// Enabled gates all background jobs. A worker started with this
	// false logs a warning and idles.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Timezone is the IANA zone job times are interpreted in.
	Timezone string `mapstructure:"timezone" yaml:"timezone"`

	// RunOnStartup runs every job once when the worker starts.
	RunOnStartup bool `mapstructure:"run_on_startup" yaml:"run_on_startup"`

	// WeeklyJob is when the weekly planning job fires.
	WeeklyJob JobTime `mapstructure:"weekly_job" yaml:"weekly_job"`

	// ReminderIntervalMinutes is how often the reminder job runs.
	ReminderIntervalMinutes int `mapstructure:"reminder_interval_minutes" yaml:"reminder_interval_minutes" validate:"min=1"`

	// ReminderLookaheadMinutes is how far ahead the reminder job looks
	// for due tasks.
	ReminderLookaheadMinutes int `mapstructure:"reminder_lookahead_minutes" yaml:"reminder_lookahead_minutes" validate:"min=1"`
}

// JobTime is a weekly cron-style slot: day of week (0=Monday) plus a
// clock time.
type JobTime struct {
	Day    int `mapstructure:"day" yaml:"day" validate:"min=0,max=6"`
	Hour   int `mapstructure:"hour" yaml:"hour" validate:"min=0,max=23"`
	Minute int `mapstructure:"minute" yaml:"minute" validate:"min=0,max=59"`
}

// NotificationsConfig controls reminder dispatch.
type NotificationsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Provider names the push transport, e.g. "expo".
	Provider string `mapstructure:"provider" yaml:"provider"`

	// PushURL is the transport endpoint. Supports ${VAR} interpolation.
	PushURL string `mapstructure:"push_url" yaml:"push_url"`
}

// LLMConfig selects and configures model providers.
type LLMConfig struct {
	// DefaultProvider names the entry in Providers used for planning.
	// Empty means run without a model, on fallback plans only.
	DefaultProvider string `mapstructure:"default_provider" yaml:"default_provider"`

	// Providers maps provider name to its settings. API keys support
	// ${VAR} interpolation.
	Providers map[string]llm.ProviderConfig `mapstructure:"providers" yaml:"providers"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// TracingConfig contains distributed tracing configuration. Spans
// export over OTLP gRPC when enabled.
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled" yaml:"enabled"`
	Endpoint    string  `mapstructure:"endpoint" yaml:"endpoint"`
	ServiceName string  `mapstructure:"service_name" yaml:"service_name"`
	SampleRate  float64 `mapstructure:"sample_rate" yaml:"sample_rate" validate:"min=0,max=1"`
	Insecure    bool    `mapstructure:"insecure" yaml:"insecure"`
}

// DefaultProviderConfig returns the configured default provider, or
// false when none is set.
func (c *Config) DefaultProviderConfig() (llm.ProviderConfig, bool) {
	if c.LLM.DefaultProvider == "" {
		return llm.ProviderConfig{}, false
	}
	pc, ok := c.LLM.Providers[c.LLM.DefaultProvider]
	if !ok {
		return llm.ProviderConfig{}, false
	}
	if pc.Type == "" {
		pc.Type = llm.ProviderType(c.LLM.DefaultProvider)
	}
	return pc, true
}
