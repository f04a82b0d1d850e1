package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/inovacc/trendr/internal/core"
	"github.com/inovacc/trendr/internal/encoding"
	"github.com/inovacc/trendr/internal/model"
)

const (
	maxNameWidth = 40
	descWidth    = 50
)

// printRepos writes repos as JSON with --json, otherwise as a table.
func printRepos(w io.Writer, repos []model.Repository) error {
	if jsonOutput {
		return encoding.WriteIndent(w, repos)
	}

	if len(repos) == 0 {
		_, _ = fmt.Fprintln(w, "No repositories found.")
		return nil
	}

	printReposTable(w, repos)

	return nil
}

func printReposTable(w io.Writer, repos []model.Repository) {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	starStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	maxID := 2
	maxName := 4

	for _, r := range repos {
		maxID = max(maxID, len(strconv.FormatInt(r.ID, 10)))
		maxName = max(maxName, min(len(r.FullName), maxNameWidth))
	}

	_, _ = fmt.Fprintf(w, "%s %s  %s  %s  %s  %s  %s\n",
		headerStyle.Render(" "),
		headerStyle.Render(padRight("ID", maxID)),
		headerStyle.Render(padRight("NAME", maxName)),
		headerStyle.Render(padRight("STARS", 6)),
		headerStyle.Render(padRight("LANGUAGE", 12)),
		headerStyle.Render(padRight("CREATED", 14)),
		headerStyle.Render("DESCRIPTION"),
	)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", maxID+maxName+descWidth+48))

	for _, r := range repos {
		star := " "
		if r.IsStarred {
			star = starStyle.Render("★")
		}

		lang := r.LanguageName()
		if lang == "" {
			lang = "-"
		}

		created := "-"
		if !r.CreatedAt.IsZero() {
			created = humanize.Time(r.CreatedAt)
		}

		_, _ = fmt.Fprintf(w, "%s %s  %s  %s  %s  %s  %s\n",
			star,
			padRight(strconv.FormatInt(r.ID, 10), maxID),
			padRight(core.TruncateText(r.FullName, maxNameWidth-3), maxName),
			padRight(core.FormatStarCount(r.StarCount), 6),
			padRight(lang, 12),
			dimStyle.Render(padRight(created, 14)),
			core.TruncateText(r.DescriptionText(), descWidth),
		)
	}

	_, _ = fmt.Fprintf(w, "\n%d repositories\n", len(repos))
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	return encoding.WriteIndent(w, v)
}

func padRight(s string, length int) string {
	if n := len([]rune(s)); n < length {
		return s + strings.Repeat(" ", length-n)
	}

	return s
}
