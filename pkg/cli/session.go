package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/storeadmin/pkg/apiclient"
	"github.com/getmockd/storeadmin/pkg/cliconfig"
	"github.com/getmockd/storeadmin/pkg/credentials"
	"github.com/getmockd/storeadmin/pkg/logging"
	"github.com/getmockd/storeadmin/pkg/storeapi"
)

// settings is the resolved configuration for the running command.
var settings *cliconfig.CLIConfig

// loadSettings resolves configuration from all sources, with explicitly set
// flags taking precedence.
func loadSettings(cmd *cobra.Command) error {
	cfg, err := cliconfig.LoadAll(configPath)
	if err != nil {
		return err
	}

	flagCfg := &cliconfig.CLIConfig{}
	pf := cmd.Flags()
	if pf.Changed("api-url") {
		flagCfg.APIURL = apiURL
	}
	if pf.Changed("timeout") {
		flagCfg.Timeout = timeoutFlag
	}
	if pf.Changed("json") {
		flagCfg.Output = cliconfig.OutputTable
		if jsonOutput {
			flagCfg.Output = cliconfig.OutputJSON
		}
	}
	if pf.Changed("log-level") {
		flagCfg.LogLevel = logLevel
	}
	if pf.Changed("log-format") {
		flagCfg.LogFormat = logFormat
	}
	cliconfig.ApplyFlags(cfg, flagCfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	jsonOutput = cfg.Output == cliconfig.OutputJSON
	settings = cfg
	return nil
}

// currentSettings returns the resolved settings, or defaults when a command
// runs without the root pre-run hook (as in unit tests).
func currentSettings() *cliconfig.CLIConfig {
	if settings == nil {
		return cliconfig.NewDefault()
	}
	return settings
}

// session bundles what a command needs to talk to the backend.
type session struct {
	cfg    *cliconfig.CLIConfig
	logger *slog.Logger
	creds  *credentials.Store
	client *apiclient.Client
	api    *storeapi.API
}

// newSession builds the API client from the resolved settings. The bearer
// token is read from the credentials store on every request.
func newSession() *session {
	cfg := currentSettings()
	logger := logging.New(logging.ConfigFrom(cfg.LogLevel, cfg.LogFormat, os.Stderr))
	creds := credentials.NewStore(cfg.TokenFile)

	client := apiclient.New(cfg.APIURL,
		apiclient.WithTimeout(cfg.Timeout),
		apiclient.WithTokenSource(creds.TokenSource()),
		apiclient.WithUserAgent("storeadmin/"+Version),
		apiclient.WithLogger(logger),
	)

	return &session{
		cfg:    cfg,
		logger: logger,
		creds:  creds,
		client: client,
		api:    storeapi.New(client),
	}
}

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
