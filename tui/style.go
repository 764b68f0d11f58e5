package tui

import "github.com/charmbracelet/lipgloss"

const (
	rowTextFGColor         = "#c0c0c0"
	rowSelectedTextFGColor = "#e0e0e0"
	rowSelectedBGColor     = "#3a3a3a"
	sortIndicatorFGColor   = "#f5c542"
)

var (
	// Styles
	appStyle = lipgloss.NewStyle().Margin(1, 2)

	headerStyle = lipgloss.NewStyle().Bold(true)

	headerSelectedStyle = lipgloss.NewStyle().Bold(true).
				Background(lipgloss.Color(rowSelectedBGColor))

	sortIndicatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(sortIndicatorFGColor))

	rowTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(rowTextFGColor))

	rowSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(rowSelectedTextFGColor)).
				Background(lipgloss.Color(rowSelectedBGColor))

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	inputStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(0, 1)

	tableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	filterBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)
