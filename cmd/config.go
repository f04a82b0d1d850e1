package cmd

import (
	"fmt"

	"github.com/inovacc/trendr/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPathOnly bool
	configShow     bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration after defaults are applied. Secrets such as the
GitHub token and the Postgres DSN are masked.

Examples:
  trendr config
  trendr config --path`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := cfgFile
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}

		if configPathOnly {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		}

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), cfg.Redacted())
		}

		out, err := cfg.YAML()
		if err != nil {
			return fmt.Errorf("render config: %w", err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, out)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolVar(&configShow, "show", true, "Print the effective config (the default)")
	configCmd.Flags().BoolVar(&configPathOnly, "path", false, "Only print the config file path")
	configCmd.MarkFlagsMutuallyExclusive("show", "path")
}
