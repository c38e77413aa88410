package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/LeLocTai/unityhub-launcher/internal/config"
	"github.com/LeLocTai/unityhub-launcher/internal/filesystem"
	"github.com/LeLocTai/unityhub-launcher/internal/launcher"
	"github.com/LeLocTai/unityhub-launcher/internal/logging"
	"github.com/LeLocTai/unityhub-launcher/internal/notify"
	"github.com/LeLocTai/unityhub-launcher/internal/platform"
	"github.com/LeLocTai/unityhub-launcher/internal/plugin"
	"github.com/LeLocTai/unityhub-launcher/internal/tui/picker"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// ChooseFunc asks the user to pick one of several entries.
type ChooseFunc func(entries []plugin.Entry) (plugin.Entry, bool, error)

// app carries the collaborators shared by every command. Config, logger
// and plugin are filled in by setup before a command runs.
type app struct {
	fs          filesystem.FileSystem
	launcher    launcher.Launcher
	warner      notify.Warner
	recent      platform.RecentSource
	getenv      func(string) string
	interactive func() bool
	choose      ChooseFunc
	now         func() time.Time

	configPath string
	cfg        *config.Config
	logger     *slog.Logger
	store      platform.Store
	plugin     *plugin.Plugin
}

// Option replaces an OS collaborator of the command tree.
type Option func(*app)

func WithLauncher(l launcher.Launcher) Option {
	return func(a *app) { a.launcher = l }
}

// WithWarner sends warnings to w in addition to the log.
func WithWarner(w notify.Warner) Option {
	return func(a *app) { a.warner = w }
}

func WithRecentSource(src platform.RecentSource) Option {
	return func(a *app) { a.recent = src }
}

// WithGetenv replaces os.Getenv for configuration overrides.
func WithGetenv(getenv func(string) string) Option {
	return func(a *app) { a.getenv = getenv }
}

// WithInteractive overrides terminal detection on stdin.
func WithInteractive(interactive func() bool) Option {
	return func(a *app) { a.interactive = interactive }
}

func WithChooser(choose ChooseFunc) Option {
	return func(a *app) { a.choose = choose }
}

func WithClock(now func() time.Time) Option {
	return func(a *app) { a.now = now }
}

func newApp(fs filesystem.FileSystem, options ...Option) *app {
	a := &app{fs: fs}
	for _, option := range options {
		option(a)
	}

	if a.getenv == nil {
		a.getenv = os.Getenv
	}
	if a.interactive == nil {
		a.interactive = func() bool { return isTerminal(os.Stdin) }
	}
	if a.choose == nil {
		a.choose = picker.Choose
	}
	return a
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// setup loads configuration, applies flag overrides and builds the plugin.
func (a *app) setup(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(a.fs, platform.DetectLocations(),
		config.WithPath(configPath),
		config.WithEnv(a.getenv))
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format, _ = cmd.Flags().GetString("log-format")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	a.configPath = configPath
	if a.configPath == "" {
		a.configPath = config.DefaultPath()
	}
	a.cfg = cfg
	a.logger = logger
	a.store = platform.NewHubStore(a.fs, cfg.Locations(), platform.WithRecentSource(a.recent))
	a.plugin = a.newPlugin(a.defaultWarner(cmd.ErrOrStderr()), logger)

	return nil
}

// defaultWarner logs every warning at WARN and also sends it to an injected
// sink. Without one, a terminal gets styled warnings instead of log lines.
func (a *app) defaultWarner(stderr io.Writer) notify.Warner {
	logWarner := notify.NewLogWarner(a.logger)
	switch {
	case a.warner != nil:
		return notify.Multi{a.warner, logWarner}
	case isTerminalWriter(stderr):
		return notify.NewConsoleWarner(stderr)
	default:
		return logWarner
	}
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func (a *app) newPlugin(warner notify.Warner, logger *slog.Logger) *plugin.Plugin {
	options := []plugin.Option{
		plugin.WithFileSystem(a.fs),
		plugin.WithStore(a.store),
		plugin.WithWarner(warner),
		plugin.WithLogger(logger),
		plugin.WithSettings(plugin.SettingsFromConfig(a.cfg)),
	}
	if a.launcher != nil {
		options = append(options, plugin.WithLauncher(a.launcher))
	}
	if a.now != nil {
		options = append(options, plugin.WithClock(a.now))
	}
	return plugin.New(options...)
}
