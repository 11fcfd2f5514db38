package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	regionFg  = lipgloss.Color("#22C55E")
	captureFg = lipgloss.Color("#FFA500")
	errorFg   = lipgloss.Color("#EF4444")
	borderCol = lipgloss.Color("#243141")

	appStyle     = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	modalStyle   = boxStyle.BorderForeground(accentFg).Padding(1, 2)
	titleStyle   = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(baseDimFg)
	missionStyle = lipgloss.NewStyle().Foreground(accentFg)
	regionStyle  = lipgloss.NewStyle().Foreground(regionFg)
	captureStyle = lipgloss.NewStyle().Foreground(captureFg).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(errorFg)
	buttonStyle  = lipgloss.NewStyle().Foreground(baseFg).Background(accentFg).Padding(0, 1)
)
