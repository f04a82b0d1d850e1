package cmd

import (
	"errors"

	"github.com/inovacc/trendr/internal/core"
	"github.com/spf13/cobra"
)

var (
	trendingSearch   string
	trendingLanguage string
	trendingSort     = newSortFlag()
	trendingStarred  bool
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List repositories trending this week",
	Long: `Fetch the repositories created during the trending window (one week by
default), mark the ones you starred, then filter and sort them.

Examples:
  trendr trending
  trendr trending --language go --search cli
  trendr trending --sort language
  trendr trending --starred --json`,
	Args: cobra.NoArgs,
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

		view := rec.State()

		list := view.AllRepositories
		if trendingStarred {
			list = view.StarredRepositories
		}

		filtered := core.Filter(list, core.FilterOptions{
			SearchTerm: trendingSearch,
			Language:   trendingLanguage,
		})

		return printRepos(cmd.OutOrStdout(), core.Sort(filtered, trendingSort.key))
	},
}

func init() {
	rootCmd.AddCommand(trendingCmd)

	trendingCmd.Flags().StringVarP(&trendingSearch, "search", "s", "", "Keep repositories whose name, description or owner contains this text")
	trendingCmd.Flags().StringVarP(&trendingLanguage, "language", "l", core.AllLanguages, "Keep repositories written in this language")
	trendingCmd.Flags().Var(trendingSort, "sort", sortUsage())
	trendingCmd.Flags().BoolVar(&trendingStarred, "starred", false, "Show the starred list instead of the trending list")
}
