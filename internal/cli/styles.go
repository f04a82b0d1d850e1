package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/trendr/internal/store"
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

// palette holds the styles of one theme.
type palette struct {
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	status      lipgloss.Style
	errorText   lipgloss.Style
	help        lipgloss.Style
}

func paletteFor(theme string) palette {
	if theme == store.ThemeLight {
		return palette{
			activeTab:   lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("25")).Foreground(lipgloss.Color("231")).Padding(0, 1),
			inactiveTab: lipgloss.NewStyle().Background(lipgloss.Color("252")).Foreground(lipgloss.Color("236")).Padding(0, 1),
			label:       lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
			value:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("25")),
			status:      lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
			errorText:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160")),
			help:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		}
	}

	return palette{
		activeTab:   lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("205")).Foreground(lipgloss.Color("0")).Padding(0, 1),
		inactiveTab: lipgloss.NewStyle().Background(lipgloss.Color("240")).Foreground(lipgloss.Color("255")).Padding(0, 1),
		label:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		value:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		status:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		errorText:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
