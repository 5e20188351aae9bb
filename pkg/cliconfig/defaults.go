package cliconfig

import "time"

// DefaultAPIURL is the default store API base URL.
const DefaultAPIURL = "http://localhost:8080"

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 30 * time.Second

// MaxTimeout is the largest accepted per-request timeout.
const MaxTimeout = 10 * time.Minute

// DefaultOutput is the default output format.
const DefaultOutput = OutputTable

// DefaultLogLevel is the default log level. Logs go to stderr.
const DefaultLogLevel = "warn"

// DefaultLogFormat is the default log format.
const DefaultLogFormat = "text"

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		APIURL:    DefaultAPIURL,
		Timeout:   DefaultTimeout,
		Output:    DefaultOutput,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Sources:   make(map[string]string),
	}

	// Mark all as default source
	for _, k := range Keys {
		cfg.Sources[k] = SourceDefault
	}

	return cfg
}
