// Package watch triggers reloads when the Hub metadata, the projects root
// or an editor install root changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LeLocTai/unityhub-launcher/internal/filesystem"
	"github.com/fsnotify/fsnotify"
)

// DefaultWindow is the quiet period before a burst of changes is reported.
const DefaultWindow = 300 * time.Millisecond

// ErrNothingToWatch is returned when none of the paths exist.
var ErrNothingToWatch = errors.New("no watchable paths")

// Watcher reports changed paths under a fixed set of directories.
type Watcher struct {
	fsw     *fsnotify.Watcher
	window  time.Duration
	logger  *slog.Logger
	watched []string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithWindow sets the debounce window.
func WithWindow(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.window = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New watches every existing directory in dirs (non-recursively). Missing
// and duplicate entries are skipped.
func New(fs filesystem.FileSystem, dirs []string, options ...Option) (*Watcher, error) {
	w := &Watcher{
		window: DefaultWindow,
		logger: slog.Default(),
	}
	for _, option := range options {
		option(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	seen := make(map[string]bool)
	for _, dir := range dirs {
		if dir == "" || seen[dir] {
			continue
		}
		seen[dir] = true

		if !fs.IsDir(dir) {
			w.logger.Debug("not watching missing directory", "path", dir)
			continue
		}
		if err := fsw.Add(dir); err != nil {
			w.logger.Warn("failed to watch directory", "path", dir, "error", err)
			continue
		}
		w.watched = append(w.watched, dir)
	}

	if len(w.watched) == 0 {
		_ = fsw.Close()
		return nil, ErrNothingToWatch
	}

	w.fsw = fsw
	return w, nil
}

// Watched returns the directories being watched.
func (w *Watcher) Watched() []string {
	return append([]string(nil), w.watched...)
}

// Run calls onChange with each debounced batch of changed paths until ctx
// is done. onChange runs on the Run goroutine; batches arriving meanwhile
// are coalesced.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, paths []string)) error {
	defer w.fsw.Close()

	debouncer := NewDebouncer(w.window, w.logger)
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			w.logger.Debug("filesystem event", "path", event.Name, "op", event.Op.String())
			debouncer.Add(event.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		case paths := <-debouncer.Output():
			onChange(ctx, paths)
		}
	}
}
