package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/dustin/go-humanize"
	"github.com/inovacc/trendr/internal/core"
	"github.com/inovacc/trendr/internal/model"
)

const descriptionWidth = 80

type repoItem struct {
	repo model.Repository
}

func (i repoItem) Title() string {
	star := "☆ "
	if i.repo.IsStarred {
		star = "★ "
	}

	return fmt.Sprintf("%s%s", star, i.repo.FullName)
}

func (i repoItem) Description() string {
	parts := []string{"★ " + core.FormatStarCount(i.repo.StarCount)}

	if lang := i.repo.LanguageName(); lang != "" {
		parts = append(parts, lang)
	}

	if !i.repo.CreatedAt.IsZero() {
		parts = append(parts, "created "+humanize.Time(i.repo.CreatedAt))
	}

	if desc := i.repo.DescriptionText(); desc != "" {
		parts = append(parts, core.TruncateText(desc, descriptionWidth))
	}

	return strings.Join(parts, " | ")
}

func (i repoItem) FilterValue() string {
	return i.repo.FullName
}

func newRepoList() list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("repository", "repositories")
	// search runs through core.Filter, not the list's fuzzy filter
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

func toItems(repos []model.Repository) []list.Item {
	items := make([]list.Item, len(repos))
	for i, repo := range repos {
		items[i] = repoItem{repo: repo}
	}

	return items
}
