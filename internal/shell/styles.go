package shell

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	accent = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}
	danger = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	warn   = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
	ok     = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	muted  = lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"}
	subtle = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
)

// Layout styles
var (
	sidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(0, 1).
			Width(20)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(danger).
			Padding(0, 1)

	diagStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(warn).
			Padding(0, 1)

	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2).
			Width(44)

	loginStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(accent).
			Padding(1, 4)
)

// Text styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	mutedStyle = lipgloss.NewStyle().
			Foreground(muted)

	okStyle = lipgloss.NewStyle().
		Foreground(ok)

	warnStyle = lipgloss.NewStyle().
			Foreground(warn)
)
