package cmd

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/inovacc/trendr/internal/core"
	"github.com/inovacc/trendr/internal/model"
	"github.com/spf13/cobra"
)

var starCmd = &cobra.Command{
	Use:   "star <id>",
	Short: "Star or unstar a repository",
	Long: `Toggle the star on a repository from the trending or starred list.
Starring stores a snapshot of the repository; running the command again
removes it.

Examples:
  trendr star 123456789`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid repository id %q", args[0])
		}

		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		rec, err := a.reconciler()
		if err != nil {
			return err
		}

		// a failed fetch still leaves the starred list usable for unstarring
		if err := rec.Load(cmd.Context()); err != nil {
			a.logger.Warn("trending list unavailable", slog.String("error", err.Error()))
		}

		repo, ok := rec.Find(id)
		if !ok {
			return fmt.Errorf("repository %d is neither trending nor starred: %w", id, core.ErrNotFound)
		}

		starred, err := rec.ToggleStar(cmd.Context(), repo)
		if err != nil {
			return err
		}

		isStarred := slices.ContainsFunc(starred, func(r model.Repository) bool { return r.ID == id })

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"id":        id,
				"full_name": repo.FullName,
				"isStarred": isStarred,
			})
		}

		verb := "Unstarred"
		if isStarred {
			verb = "Starred"
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d starred)\n", verb, repo.FullName, len(starred))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(starCmd)
}
