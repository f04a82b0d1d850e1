package cmd

import (
	"errors"
	"fmt"

	"github.com/inovacc/trendr/internal/core"
	"github.com/spf13/cobra"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages of the trending repositories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		rec, err := a.reconciler()
		if err != nil {
			return err
		}

		if err := rec.Load(cmd.Context()); err != nil {
			return errors.New(core.LoadErrorMessage)
		}

		langs := rec.Languages()
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), langs)
		}

		for _, l := range langs {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), l)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
