package cliconfig

import (
	"fmt"
	"os"
	"time"
)

// Environment variable names
const (
	EnvAPIURL    = "STOREADMIN_API_URL"
	EnvTimeout   = "STOREADMIN_TIMEOUT"
	EnvOutput    = "STOREADMIN_OUTPUT"
	EnvLogLevel  = "STOREADMIN_LOG_LEVEL"
	EnvLogFormat = "STOREADMIN_LOG_FORMAT"
	EnvTokenFile = "STOREADMIN_TOKEN_FILE"
	EnvConfig    = "STOREADMIN_CONFIG"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvConfig(cfg *CLIConfig) error {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	// STOREADMIN_API_URL
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
		cfg.Sources[KeyAPIURL] = SourceEnv
	}

	// STOREADMIN_TIMEOUT
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
		cfg.Sources[KeyTimeout] = SourceEnv
	}

	// STOREADMIN_OUTPUT
	if v := os.Getenv(EnvOutput); v != "" {
		cfg.Output = v
		cfg.Sources[KeyOutput] = SourceEnv
	}

	// STOREADMIN_LOG_LEVEL
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources[KeyLogLevel] = SourceEnv
	}

	// STOREADMIN_LOG_FORMAT
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.Sources[KeyLogFormat] = SourceEnv
	}

	// STOREADMIN_TOKEN_FILE
	if v := os.Getenv(EnvTokenFile); v != "" {
		cfg.TokenFile = v
		cfg.Sources[KeyTokenFile] = SourceEnv
	}

	return nil
}
