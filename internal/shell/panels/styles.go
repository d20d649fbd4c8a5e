package panels

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	accent  = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}
	danger  = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	success = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	muted   = lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"}
	subtle  = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	tabStyle = lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1)

	activeTabStyle = tabStyle.
			Bold(true).
			Foreground(accent).
			Underline(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(muted)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(danger)

	okStyle = lipgloss.NewStyle().
		Foreground(success)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(0, 1).
			Width(22)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)
)

// header renders a panel title over its mode tabs
func header(title string, m modes) string {
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), m.tabs(), "")
}

func cursorLine(selected bool, s string) string {
	if selected {
		return selectedStyle.Render("> " + s)
	}
	return "  " + s
}
