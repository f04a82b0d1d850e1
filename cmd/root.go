package cmd

import (
	"os"

	"github.com/inovacc/trendr/internal/application"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	flagToken  string
	logLevel   string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Browse trending GitHub repositories and keep a starred list",
	Long: `Trendr lists the repositories created on GitHub during the last week,
most starred first. Search, filter by language and sort the list, and star the
ones worth keeping; the starred set is stored locally.

Run 'trendr browse' for the interactive browser or 'trendr serve' for the
JSON API.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: <user config dir>/trendr/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "GitHub token, only used to raise API rate limits")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of a table")
}
