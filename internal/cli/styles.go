package cli

import "github.com/charmbracelet/lipgloss"

// Colors used for terminal output.
var (
	colorPrimary = lipgloss.Color("#6C5CE7") // Purple
	colorMuted   = lipgloss.Color("#636E72") // Gray
	colorSuccess = lipgloss.Color("#00B894") // Green
	colorWarning = lipgloss.Color("#FDCB6E") // Yellow
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)
