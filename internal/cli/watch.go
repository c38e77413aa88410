package cli

import (
	"context"
	"fmt"

	"github.com/LeLocTai/unityhub-launcher/internal/watch"
	"github.com/spf13/cobra"
)

// WatchCommand handles the watch command
type WatchCommand struct {
	app *app
}

// NewWatchCommand creates a new watch command
func NewWatchCommand(a *app) *cobra.Command {
	cmd := &WatchCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload the index whenever Unity Hub data changes",
		Long: `Builds the index, then watches the Unity Hub data directory, the editor
install roots and the projects directory. Every burst of changes triggers a
full reload, and a summary line is printed. Runs until interrupted.`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().Duration("window", watch.DefaultWindow, "Quiet period before a burst of changes triggers a reload")

	return cobraCmd
}

// Run executes the watch command
func (c *WatchCommand) Run(cmd *cobra.Command, args []string) error {
	window, _ := cmd.Flags().GetDuration("window")

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	snap := c.app.plugin.Reload(ctx)
	fmt.Fprintf(out, "Indexed %d editors, %d projects\n", snap.Registry.Len(), len(snap.Projects))

	w, err := watch.New(c.app.fs, watchDirs(c.app.cfg.Hub.DataDir, snap),
		watch.WithWindow(window),
		watch.WithLogger(c.app.logger))
	if err != nil {
		return fmt.Errorf("failed to watch: %w", err)
	}
	c.app.logger.Info("watching", "paths", w.Watched())

	return w.Run(ctx, func(ctx context.Context, paths []string) {
		c.app.logger.Debug("change detected", "paths", paths)
		next := c.app.plugin.Reload(ctx)
		fmt.Fprintf(out, "Reloaded: %d editors, %d projects, %d warnings\n",
			next.Registry.Len(), len(next.Projects), len(next.Warnings))
	})
}
