package config

// DefaultConfig returns a Config with sensible default values: jobs
// enabled, weekly planning Sunday 18:00 UTC, reminders every 15
// minutes with a 30 minute lookahead, no model provider configured.
func DefaultConfig() *Config {
	return &Config{
		Scheduler: SchedulerConfig{
			Enabled:      true,
			Timezone:     "UTC",
			RunOnStartup: false,
			WeeklyJob: JobTime{
				Day:    6,
				Hour:   18,
				Minute: 0,
			},
			ReminderIntervalMinutes:  15,
			ReminderLookaheadMinutes: 30,
		},
		Notifications: NotificationsConfig{
			Enabled:  false,
			Provider: "expo",
			PushURL:  "https://exp.host/--/api/v2/push/send",
		},
		LLM: LLMConfig{
			DefaultProvider: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Tracing: TracingConfig{
			Enabled:     false,
			Endpoint:    "",
			ServiceName: "sarthi",
			SampleRate:  1.0,
		},
	}
}
