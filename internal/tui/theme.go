package tui

import "github.com/charmbracelet/huh"

// NewHuhTheme returns the purple accent theme used by interactive prompts.
func NewHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(accent).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accent)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(accent)
	t.Blurred.Title = t.Blurred.Title.Foreground(muted)

	return t
}
