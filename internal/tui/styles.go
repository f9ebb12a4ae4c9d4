package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorBlue   = lipgloss.Color("#3B82F6")
	ColorGreen  = lipgloss.Color("#10B981")
	ColorRed    = lipgloss.Color("#EF4444")
	ColorOrange = lipgloss.Color("#F59E0B")
	ColorGray   = lipgloss.Color("#6B7280")
	ColorWhite  = lipgloss.Color("#F9FAFB")
	ColorNight  = lipgloss.Color("#6366F1")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorBlue).
			Padding(0, 2)

	tabStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBlue).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	bigValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGreen)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBlue).
			Padding(1, 3).
			Width(64)
)
