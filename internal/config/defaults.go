package config

const (
	defaultTimeoutSeconds = 30
	defaultBaseURL        = "https://www.youtube.com"
	defaultFormat         = "text"
	defaultLogFormat      = "console"
	defaultLogLevel       = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		HTTP: HTTP{
			TimeoutSeconds: defaultTimeoutSeconds,
			BaseURL:        defaultBaseURL,
		},
		Transcripts: Transcripts{
			Languages: []string{"en"},
			Format:    defaultFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
