package cmd

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/trendr/internal/cli"
	"github.com/inovacc/trendr/internal/store"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive repository browser",
	Long: `Open a full-screen browser over the trending and starred lists.

Keys:
  tab      switch between trending and starred
  /        search by name, description or owner
  l        cycle the language filter
  o        toggle sort between stars and language
  s, space star or unstar the selected repository
  r        refresh the trending list
  t        switch theme
  q        quit

The sort key, language filter and theme are remembered between sessions.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		rec, err := a.reconciler()
		if err != nil {
			return err
		}

		prefs := store.LoadPreferences(a.medium, a.logger)
		m := cli.NewBrowser(cmd.Context(), rec, prefs)

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

		finalModel, err := p.Run()
		if err != nil {
			return fmt.Errorf("run browser: %w", err)
		}

		browser, ok := finalModel.(cli.BrowserModel)
		if !ok {
			return nil
		}

		if err := store.SavePreferences(a.medium, browser.Preferences()); err != nil {
			a.logger.Warn("failed to save preferences", slog.String("error", err.Error()))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
