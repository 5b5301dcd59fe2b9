package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/dayplan/models"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")  // Cyan for breaks
	ColorBlue      = lipgloss.Color("75")  // Blue for in-progress

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	// Timer box around the pomodoro countdown
	StyleTimerBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2)

	StyleBreakBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorCyan).
			Padding(0, 2)

	// Components
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true)

	StyleLabel = lipgloss.NewStyle().Foreground(ColorSecondary).Width(16)
)

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}

// StatusIcon returns the list marker for a task status.
func StatusIcon(s models.TaskStatus) string {
	switch s {
	case models.StatusCompleted:
		return Icon("✓", StyleSuccess)
	case models.StatusInProgress:
		return Icon("▶", lipgloss.NewStyle().Foreground(ColorBlue))
	case models.StatusSkipped:
		return Icon("⤼", StyleSubtle)
	default:
		return Icon("○", StyleText)
	}
}

// PriorityStyle colors a priority label.
func PriorityStyle(p models.TaskPriority) lipgloss.Style {
	switch p {
	case models.PriorityUrgent:
		return StyleError.Bold(true)
	case models.PriorityHigh:
		return StyleWarning
	case models.PriorityLow:
		return StyleSubtle
	default:
		return StyleText
	}
}

// ScoreStyle colors a 0-100 score: green from 80, orange from 50, red below.
func ScoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return StyleSuccess
	case score >= 50:
		return StyleWarning
	default:
		return StyleError
	}
}
