package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/storeadmin/pkg/cli/internal/output"
	"github.com/getmockd/storeadmin/pkg/cliconfig"
)

// configOutput is the JSON shape of the config command.
type configOutput struct {
	ConfigFile  string            `json:"configFile,omitempty"`
	LocalFile   string            `json:"localFile,omitempty"`
	GlobalFiles []string          `json:"globalSearchPaths"`
	Entries     []cliconfig.Entry `json:"entries"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration and where each value came from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := currentSettings()
		out := configOutput{
			ConfigFile:  cfg.ConfigFile,
			GlobalFiles: cliconfig.GetGlobalConfigSearchPaths(),
			Entries:     cfg.Entries(),
		}
		if out.ConfigFile == "" {
			out.LocalFile, _ = cliconfig.FindLocalConfig()
		}
		if out.GlobalFiles == nil {
			out.GlobalFiles = []string{}
		}

		w := cmd.OutOrStdout()
		return printResult(w, out, func() error {
			tw := output.Table(w)
			_, _ = fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
			for _, e := range out.Entries {
				v := e.Value
				if v == "" {
					v = "-"
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Key, v, e.Source)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(w)
			switch {
			case out.ConfigFile != "":
				_, _ = fmt.Fprintf(w, "Config file: %s\n", out.ConfigFile)
			case out.LocalFile != "":
				_, _ = fmt.Fprintf(w, "Local config: %s\n", out.LocalFile)
			default:
				_, _ = fmt.Fprintln(w, "Local config: none")
			}
			for _, p := range out.GlobalFiles {
				_, _ = fmt.Fprintf(w, "Global config search path: %s\n", p)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
