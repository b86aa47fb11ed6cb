package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	overlayFg = lipgloss.Color("#F59E0B")
	labelFg   = lipgloss.Color("#38BDF8")
	hoverFg   = lipgloss.Color("#FFA500")
	borderCol = lipgloss.Color("#243141")

	appStyle     = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(baseDimFg)
	focusStyle   = lipgloss.NewStyle().Foreground(accentFg)
	overlayStyle = lipgloss.NewStyle().Foreground(overlayFg)
	labelStyle   = lipgloss.NewStyle().Foreground(labelFg)
	hoverStyle   = lipgloss.NewStyle().Foreground(hoverFg)
)
