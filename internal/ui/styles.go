package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/tasktrack/models"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")  // Cyan for in-progress work
	ColorBlue      = lipgloss.Color("75")  // Blue for dates

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)
	StyleDate    = lipgloss.NewStyle().Foreground(ColorBlue)

	// Components
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true)

	// Status styles
	StyleStatusTodo       = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleStatusInProgress = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	StyleStatusCompleted  = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleOverdue          = lipgloss.NewStyle().Foreground(ColorError).Bold(true)

	// Semantic Prefix Styles
	StylePrefixDone  = lipgloss.NewStyle().Foreground(ColorSuccess)          // Green for done
	StylePrefixWarn  = lipgloss.NewStyle().Foreground(ColorWarning)          // Orange for warnings
	StylePrefixError = lipgloss.NewStyle().Foreground(ColorError).Bold(true) // Red for errors
)

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}

// StatusStyle returns the style used for a task status.
func StatusStyle(status models.TaskStatus) lipgloss.Style {
	switch status {
	case models.StatusInProgress:
		return StyleStatusInProgress
	case models.StatusCompleted:
		return StyleStatusCompleted
	default:
		return StyleStatusTodo
	}
}

// StatusIcon returns the glyph shown next to a task of the given status.
func StatusIcon(status models.TaskStatus) string {
	switch status {
	case models.StatusInProgress:
		return "◐"
	case models.StatusCompleted:
		return "●"
	default:
		return "○"
	}
}
