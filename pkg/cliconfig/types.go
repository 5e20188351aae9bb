// Package cliconfig provides configuration types and loading for the storeadmin CLI.
package cliconfig

import "time"

// CLIConfig represents the complete configuration for the storeadmin CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.storeadminrc.yaml in current directory) or --config file
// 4. Global config file (~/.config/storeadmin/config.yaml)
// 5. Default values (lowest priority)
type CLIConfig struct {
	// API settings
	APIURL  string        `yaml:"apiUrl" json:"apiUrl"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// Output settings: "table" or "json"
	Output string `yaml:"output" json:"output"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`

	// Credentials
	TokenFile string `yaml:"tokenFile,omitempty" json:"tokenFile,omitempty"`

	// ConfigFile is the explicitly requested config file, if any.
	ConfigFile string `yaml:"-" json:"configFile,omitempty"`

	// Source tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFile    = "file"
	SourceFlag    = "flag"
)

// Config keys, as used in YAML files and the Sources map.
const (
	KeyAPIURL    = "apiUrl"
	KeyTimeout   = "timeout"
	KeyOutput    = "output"
	KeyLogLevel  = "logLevel"
	KeyLogFormat = "logFormat"
	KeyTokenFile = "tokenFile"
)

// Keys lists every config key in display order.
var Keys = []string{KeyAPIURL, KeyTimeout, KeyOutput, KeyLogLevel, KeyLogFormat, KeyTokenFile}

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Entry is one resolved config value with its origin.
type Entry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Value returns the string form of the value stored under key.
func (c *CLIConfig) Value(key string) string {
	switch key {
	case KeyAPIURL:
		return c.APIURL
	case KeyTimeout:
		return c.Timeout.String()
	case KeyOutput:
		return c.Output
	case KeyLogLevel:
		return c.LogLevel
	case KeyLogFormat:
		return c.LogFormat
	case KeyTokenFile:
		return c.TokenFile
	}
	return ""
}

// Entries returns every key with its value and source.
func (c *CLIConfig) Entries() []Entry {
	entries := make([]Entry, 0, len(Keys))
	for _, k := range Keys {
		src := c.Sources[k]
		if src == "" {
			src = SourceDefault
		}
		entries = append(entries, Entry{Key: k, Value: c.Value(k), Source: src})
	}
	return entries
}
