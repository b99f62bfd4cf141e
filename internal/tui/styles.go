package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("212")).
			Bold(true).
			Padding(0, 1)

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226"))

	containerStyle = lipgloss.NewStyle().
			Padding(1, 2)
)
