package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/LeLocTai/unityhub-launcher/internal/notify"
	"github.com/LeLocTai/unityhub-launcher/internal/plugin"
	"github.com/LeLocTai/unityhub-launcher/internal/tui/picker"
	"github.com/LeLocTai/unityhub-launcher/internal/watch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// PickCommand handles the pick command
type PickCommand struct {
	app *app
}

// NewPickCommand creates a new pick command
func NewPickCommand(a *app) *cobra.Command {
	cmd := &PickCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "pick [query...]",
		Short: "Interactively search and open a project",
		Long: `Opens an interactive picker. Results are re-ranked on every keystroke,
enter opens the highlighted project, esc quits.

The index is reloaded in the background whenever Unity Hub's data, an
editor install root or the projects directory changes.`,
		RunE: cmd.Run,
	}

	return cobraCmd
}

// Run executes the pick command
func (c *PickCommand) Run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// warnings are held until the picker exits
	collected := notify.NewCollector()
	p := c.app.newPlugin(collected, slog.New(slog.DiscardHandler))
	defer func() {
		warner := c.app.defaultWarner(cmd.ErrOrStderr())
		for _, msg := range collected.Messages() {
			warner.Warn(msg)
		}
	}()

	snap := p.Reload(ctx)

	model := picker.NewModel(func(query string) []plugin.Entry {
		return p.Query(ctx, query)
	}, strings.Join(args, " "))

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()))

	if w, err := watch.New(c.app.fs, watchDirs(c.app.cfg.Hub.DataDir, snap), watch.WithLogger(c.app.logger)); err == nil {
		go func() {
			_ = w.Run(ctx, func(ctx context.Context, paths []string) {
				next := p.Reload(ctx)
				program.Send(picker.ReloadedMsg{Projects: len(next.Projects)})
			})
		}()
	} else {
		c.app.logger.Debug("auto-reload disabled", "error", err)
	}

	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run picker: %w", err)
	}

	m, ok := final.(picker.Model)
	if !ok {
		return nil
	}
	entry, ok := m.Chosen()
	if !ok {
		return nil
	}

	p.Activate(entry.Ref)
	return nil
}

// watchDirs lists the directories whose changes invalidate snap.
func watchDirs(hubDataDir string, snap *plugin.Snapshot) []string {
	dirs := []string{hubDataDir}
	if snap != nil {
		dirs = append(dirs, snap.EditorRoots...)
		dirs = append(dirs, snap.ProjectsRoot)
	}

	var out []string
	seen := make(map[string]bool)
	for _, dir := range dirs {
		if dir == "" || seen[dir] {
			continue
		}
		seen[dir] = true
		out = append(out, dir)
	}
	return out
}
