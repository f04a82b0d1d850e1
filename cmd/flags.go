package cmd

import (
	"fmt"

	"github.com/inovacc/trendr/internal/core"
	"github.com/spf13/pflag"
)

// sortFlag is a --sort value checked while flags are parsed.
type sortFlag struct {
	key core.SortKey
}

var _ pflag.Value = (*sortFlag)(nil)

func newSortFlag() *sortFlag {
	return &sortFlag{key: core.SortByStars}
}

func (f *sortFlag) String() string {
	return string(f.key)
}

func (f *sortFlag) Set(s string) error {
	key, err := core.ParseSortKey(s)
	if err != nil {
		return err
	}

	f.key = key

	return nil
}

func (f *sortFlag) Type() string {
	return "sortKey"
}

func sortUsage() string {
	return fmt.Sprintf("Sort key: %s (or stars) or %s", core.SortByStars, core.SortByLanguage)
}
