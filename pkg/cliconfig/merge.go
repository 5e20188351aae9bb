package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.APIURL != "" {
		target.APIURL = source.APIURL
		target.Sources[KeyAPIURL] = sourceType
	}
	if source.Timeout != 0 {
		target.Timeout = source.Timeout
		target.Sources[KeyTimeout] = sourceType
	}
	if source.Output != "" {
		target.Output = source.Output
		target.Sources[KeyOutput] = sourceType
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources[KeyLogLevel] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources[KeyLogFormat] = sourceType
	}
	if source.TokenFile != "" {
		target.TokenFile = source.TokenFile
		target.Sources[KeyTokenFile] = sourceType
	}
}

// ApplyFlags merges explicitly set command-line flags over cfg.
func ApplyFlags(cfg, flags *CLIConfig) {
	MergeConfig(cfg, flags, SourceFlag)
}
