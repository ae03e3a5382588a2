package tui

import "github.com/charmbracelet/lipgloss"

var (
	docStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	activeDotStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	inactiveDotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	doneStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)
