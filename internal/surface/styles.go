package surface

import "github.com/charmbracelet/lipgloss"

var (
	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	dotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	doneDotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("212")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("212"))

	messageStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("51")).
			Foreground(lipgloss.Color("231")).
			Padding(0, 2)

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)
