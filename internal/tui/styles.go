// Package tui holds the shared terminal styles for the picker and prompts.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#7D56F4")
	muted  = lipgloss.Color("#888888")

	// Highlighted picker row
	SelectedStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	// Search prompt
	FocusedStyle = lipgloss.NewStyle().
			Foreground(accent)

	// Status and key help line
	HelpStyle = lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1)

	// Scores and empty-result hints
	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	// Project subtitle (version and path)
	DescStyle = lipgloss.NewStyle().
			Foreground(muted).
			Italic(true)

	// Reload and launch warnings
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB000")).
			Bold(true)
)
