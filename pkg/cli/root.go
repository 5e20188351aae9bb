package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmockd/storeadmin/pkg/cliconfig"
)

var (
	// Persistent flags available to all subcommands
	apiURL      string
	jsonOutput  bool
	quiet       bool
	timeoutFlag time.Duration
	logLevel    string
	logFormat   string
	configPath  string

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "storeadmin",
	Short: "storeadmin manages products, users and orders of a store backend",
	Long: `storeadmin is an admin client for a store REST backend.
It lists, creates, edits and deletes products and users, and changes order status.

Configuration can be provided via flags, environment variables (STOREADMIN_*),
a local .storeadminrc.yaml, or ~/.config/storeadmin/config.yaml.
Log in once with 'storeadmin login'; the token is attached to every request.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings(cmd)
	},
	// No Run function here means 'storeadmin' with no args will print help text by default.
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Run()
}

// Run executes the root command and returns the process exit code.
func Run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(Run())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&apiURL, "api-url", "", "Store API base URL (default: "+cliconfig.DefaultAPIURL+")")
	pf.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Do not print the refreshed list after a change")
	pf.DurationVar(&timeoutFlag, "timeout", 0, "Per-request timeout (default: 30s)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: warn)")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text, json (default: text)")
	pf.StringVar(&configPath, "config", "", "Config file (default: .storeadminrc.yaml, then global config)")
}
