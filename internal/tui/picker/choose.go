package picker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LeLocTai/unityhub-launcher/internal/plugin"
	"github.com/LeLocTai/unityhub-launcher/internal/tui"
	"github.com/charmbracelet/huh"
)

// Choose asks the user to pick one of several equally ranked entries.
// It returns false when the user aborts.
func Choose(entries []plugin.Entry) (plugin.Entry, bool, error) {
	if len(entries) == 0 {
		return plugin.Entry{}, false, nil
	}

	selected := 0
	opts := make([]huh.Option[int], len(entries))
	for i, e := range entries {
		opts[i] = huh.NewOption(OptionLabel(e), i)
	}

	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Submit.SetKeys("enter")
	keyMap.Select.Submit.SetHelp("enter", "open")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Options(opts...).
				Value(&selected),
		).
			Title("Several projects match").
			Description("Pick the project to open."),
	).
		WithTheme(tui.NewHuhTheme()).
		WithShowHelp(true).
		WithKeyMap(keyMap)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return plugin.Entry{}, false, nil
		}
		return plugin.Entry{}, false, fmt.Errorf("failed to run project prompt: %w", err)
	}

	return entries[selected], true, nil
}

// OptionLabel renders an entry on one line.
func OptionLabel(e plugin.Entry) string {
	return fmt.Sprintf("%s  %s", e.Title, strings.TrimSpace(strings.ReplaceAll(e.SubTitle, "\t", "  ")))
}
