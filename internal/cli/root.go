package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/LeLocTai/unityhub-launcher/internal/filesystem"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, options ...Option) *cobra.Command {
	a := newApp(fs, options...)

	rootCmd := &cobra.Command{
		Use:   "unityproj",
		Short: "Find and open Unity projects",
		Long: `A launcher for Unity projects.

unityproj indexes the projects known to Unity Hub (the projects directory,
favorites and recently opened projects), ranks them against a query, and
opens the chosen one with the editor version it was saved with.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to `unityproj pick` when no subcommand is provided.
			return (&PickCommand{app: a}).Run(cmd, args)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default <user config dir>/unityproj/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(NewSearchCommand(a))
	rootCmd.AddCommand(NewOpenCommand(a))
	rootCmd.AddCommand(NewEditorsCommand(a))
	rootCmd.AddCommand(NewPickCommand(a))
	rootCmd.AddCommand(NewWatchCommand(a))
	rootCmd.AddCommand(NewConfigCommand(a))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := NewRootCommand(filesystem.NewOSFileSystem())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
