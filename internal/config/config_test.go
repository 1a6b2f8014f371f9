package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akash114/SarthiAI/internal/llm"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sarthi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, NewValidator().Validate(cfg))

	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "UTC", cfg.Scheduler.Timezone)
	assert.Equal(t, 15, cfg.Scheduler.ReminderIntervalMinutes)
	assert.Equal(t, 30, cfg.Scheduler.ReminderLookaheadMinutes)
	assert.False(t, cfg.Notifications.Enabled)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
scheduler:
  enabled: true
  timezone: America/New_York
  run_on_startup: true
  weekly_job:
    day: 0
    hour: 6
    minute: 30
  reminder_interval_minutes: 5
  reminder_lookahead_minutes: 20
notifications:
  enabled: true
  provider: expo
  push_url: https://exp.host/--/api/v2/push/send
llm:
  default_provider: openai
  providers:
    openai:
      type: openai
      api_key: sk-test
      default_model: gpt-4o
logging:
  level: debug
  format: text
`)

	cfg, err := NewLoader(NewValidator()).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "America/New_York", cfg.Scheduler.Timezone)
	assert.True(t, cfg.Scheduler.RunOnStartup)
	assert.Equal(t, 0, cfg.Scheduler.WeeklyJob.Day)
	assert.Equal(t, 6, cfg.Scheduler.WeeklyJob.Hour)
	assert.Equal(t, 5, cfg.Scheduler.ReminderIntervalMinutes)
	assert.Equal(t, "debug", cfg.Logging.Level)

	pc, ok := cfg.DefaultProviderConfig()
	require.True(t, ok)
	assert.Equal(t, llm.ProviderOpenAI, pc.Type)
	assert.Equal(t, "sk-test", pc.APIKey)
	assert.Equal(t, "gpt-4o", pc.DefaultModel)
}

func TestLoadAppliesDefaultsToPartialFile(t *testing.T) {
	path := writeConfig(t, `
scheduler:
  enabled: false
`)

	cfg, err := NewLoader(NewValidator()).Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "UTC", cfg.Scheduler.Timezone)
	assert.Equal(t, 15, cfg.Scheduler.ReminderIntervalMinutes)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadInterpolatesEnvVars(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-from-env")

	path := writeConfig(t, `
llm:
  default_provider: openai
  providers:
    openai:
      type: openai
      api_key: ${TEST_OPENAI_KEY}
`)

	cfg, err := NewLoader(NewValidator()).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.LLM.Providers["openai"].APIKey)
}

func TestLoadLeavesUnsetEnvVarsAlone(t *testing.T) {
	path := writeConfig(t, `
llm:
  default_provider: openai
  providers:
    openai:
      type: openai
      api_key: ${SARTHI_MISSING_VAR}
`)

	cfg, err := NewLoader(NewValidator()).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "${SARTHI_MISSING_VAR}", cfg.LLM.Providers["openai"].APIKey)
}

func TestLoadWithDefaultsMissingFile(t *testing.T) {
	cfg, err := NewLoader(NewValidator()).LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidateRejectsBadJobTime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scheduler.WeeklyJob.Day = 9

	err := NewValidator().Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduler.weekly_job.day")
}

func TestValidateRejectsBadTimezone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scheduler.Timezone = "Mars/Olympus_Mons"

	err := NewValidator().Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduler.timezone")
}

func TestValidateRejectsUnknownDefaultProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.DefaultProvider = "openai"

	err := NewValidator().Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.default_provider")
}

func TestValidateRejectsNotificationsWithoutURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Notifications.Enabled = true
	cfg.Notifications.PushURL = ""

	err := NewValidator().Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notifications.push_url")
}

func TestValidateRejectsZeroReminderInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scheduler.ReminderIntervalMinutes = 0

	err := NewValidator().Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reminder_interval_minutes")
}

func TestDefaultProviderConfigUnset(t *testing.T) {
	cfg := DefaultConfig()
	_, ok := cfg.DefaultProviderConfig()
	assert.False(t, ok)
}
