package cmd

import (
	"github.com/spf13/cobra"
)

var starredCmd = &cobra.Command{
	Use:   "starred",
	Short: "List starred repositories",
	Long: `Print the starred repositories kept in the local store. No network
access is needed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		return printRepos(cmd.OutOrStdout(), a.stars.GetAll())
	},
}

func init() {
	rootCmd.AddCommand(starredCmd)
}
