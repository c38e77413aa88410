// Package plugin is the host-facing surface: Reload rebuilds the editor
// registry and project index into a new Snapshot, Query ranks it, and
// Activate launches a result.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/LeLocTai/unityhub-launcher/internal/editors"
	"github.com/LeLocTai/unityhub-launcher/internal/filesystem"
	"github.com/LeLocTai/unityhub-launcher/internal/launcher"
	"github.com/LeLocTai/unityhub-launcher/internal/models"
	"github.com/LeLocTai/unityhub-launcher/internal/notify"
	"github.com/LeLocTai/unityhub-launcher/internal/platform"
	"github.com/LeLocTai/unityhub-launcher/internal/projects"
	"github.com/LeLocTai/unityhub-launcher/internal/query"
)

// Plugin owns the published snapshot.
type Plugin struct {
	fs       filesystem.FileSystem
	store    platform.Store
	launcher launcher.Launcher
	warner   notify.Warner
	logger   *slog.Logger
	matcher  query.Matcher
	now      func() time.Time
	settings Settings
	cache    *query.Cache

	hasSettings bool

	reloadMu sync.Mutex
	current  atomic.Pointer[Snapshot]
}

// Option configures a Plugin.
type Option func(*Plugin)

func WithFileSystem(fs filesystem.FileSystem) Option {
	return func(p *Plugin) { p.fs = fs }
}

func WithStore(store platform.Store) Option {
	return func(p *Plugin) { p.store = store }
}

func WithLauncher(l launcher.Launcher) Option {
	return func(p *Plugin) { p.launcher = l }
}

func WithWarner(w notify.Warner) Option {
	return func(p *Plugin) { p.warner = w }
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) { p.logger = logger }
}

func WithMatcher(m query.Matcher) Option {
	return func(p *Plugin) { p.matcher = m }
}

// WithClock sets the time source for recency ranking.
func WithClock(now func() time.Time) Option {
	return func(p *Plugin) { p.now = now }
}

func WithSettings(s Settings) Option {
	return func(p *Plugin) {
		p.settings = s
		p.hasSettings = true
	}
}

// New creates a Plugin. Unset collaborators default to the real OS ones
// at the detected platform locations. No snapshot exists until Reload.
func New(options ...Option) *Plugin {
	p := &Plugin{}
	for _, option := range options {
		option(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.fs == nil {
		p.fs = filesystem.NewOSFileSystem()
	}
	if p.store == nil || !p.hasSettings {
		loc := platform.DetectLocations()
		if p.store == nil {
			p.store = platform.NewHubStore(p.fs, loc)
		}
		if !p.hasSettings {
			p.settings = DefaultSettings(loc)
		}
	}
	if p.launcher == nil {
		p.launcher = launcher.NewOSLauncher(p.logger)
	}
	if p.warner == nil {
		p.warner = notify.NewLogWarner(p.logger)
	}
	if p.matcher == nil {
		p.matcher = query.FuzzyMatcher{}
	}
	if p.now == nil {
		p.now = time.Now
	}
	p.cache = query.NewCache(p.settings.CacheSize)

	return p
}

// Snapshot returns the published snapshot, or nil before the first Reload.
func (p *Plugin) Snapshot() *Snapshot {
	return p.current.Load()
}

// Reload rebuilds the index from scratch and publishes it. It never fails:
// every problem becomes a warning on the returned snapshot and is sent to
// the warning channel. A cancelled reload keeps the previous snapshot.
func (p *Plugin) Reload(ctx context.Context) *Snapshot {
	p.reloadMu.Lock()
	defer p.reloadMu.Unlock()

	start := time.Now()
	var warnings []error

	hubExe := p.hubExecutable(&warnings)

	roots := p.editorRoots(&warnings)
	reg, errs := editors.Scan(p.fs, roots, p.settings.EditorExecutable)
	warnings = append(warnings, errs...)
	if reg.Len() == 0 {
		warnings = append(warnings, models.NewWarning(models.ErrConfigurationMissing, "Unity editors",
			errors.New("no Unity editor installation found")))
	}

	src := projects.Sources{
		ProjectsRoot: p.projectsRoot(&warnings),
		Favorites:    p.readList(platform.ListFavorites, &warnings),
		Recent:       p.readList(platform.ListRecent, &warnings),
	}

	ix := projects.NewIndexer(p.fs,
		projects.WithWorkers(p.settings.Workers),
		projects.WithCandidateTimeout(p.settings.CandidateTimeout),
		projects.WithCaseInsensitivePaths(p.settings.CaseInsensitive),
		projects.WithExclude(p.settings.Exclude),
		projects.WithLogger(p.logger))
	list, errs := ix.Build(ctx, src, reg)
	warnings = append(warnings, errs...)

	if ctx.Err() != nil {
		if prev := p.current.Load(); prev != nil {
			p.warner.Warn(fmt.Sprintf("reload interrupted, keeping previous index: %v", ctx.Err()))
			return prev
		}
	}

	id, err := newSnapshotID()
	if err != nil {
		// only the cache key depends on it
		p.logger.Debug("falling back to timestamp snapshot id", "error", err)
		id = fmt.Sprintf("t%d", start.UnixNano())
	}

	snap := &Snapshot{
		ID:              id,
		BuiltAt:         start,
		Registry:        reg,
		Projects:        list,
		HubExecutable:   hubExe,
		Warnings:        warnings,
		EditorRoots:     roots,
		ProjectsRoot:    src.ProjectsRoot,
		caseInsensitive: p.settings.CaseInsensitive,
		byKey:           make(map[string]*models.Project, len(list)),
	}
	for _, proj := range list {
		snap.byKey[projects.PathKey(proj.Path, p.settings.CaseInsensitive)] = proj
	}
	snap.engine = query.NewEngine(list,
		query.WithMatcher(p.matcher),
		query.WithClock(p.now),
		query.WithCache(p.cache, id))

	p.current.Store(snap)

	for _, w := range warnings {
		p.warner.Warn(w.Error())
	}

	p.logger.Info("reloaded",
		"snapshot", id,
		"editors", reg.Len(),
		"projects", len(list),
		"warnings", len(warnings),
		"duration", time.Since(start))

	return snap
}

func (p *Plugin) hubExecutable(warnings *[]error) string {
	dir, ok := p.store.InstallRoot(platform.ProductHub)
	if !ok || p.settings.HubExecutableName == "" {
		*warnings = append(*warnings, models.NewWarning(models.ErrConfigurationMissing, "Unity Hub",
			errors.New("Unity Hub not found")))
		return ""
	}
	return filepath.Join(dir, p.settings.HubExecutableName)
}

// editorRoots returns the primary root, then the Hub secondary install
// path, then configured extras.
func (p *Plugin) editorRoots(warnings *[]error) []string {
	primary := p.settings.EditorsRoot
	if primary == "" {
		primary, _ = p.store.InstallRoot(platform.ProductEditors)
	}

	roots := []string{primary}
	roots = append(roots, p.readList(platform.ListSecondaryInstall, warnings)...)
	roots = append(roots, p.settings.ExtraEditorRoots...)
	return roots
}

func (p *Plugin) projectsRoot(warnings *[]error) string {
	if p.settings.ProjectsRoot != "" {
		return p.settings.ProjectsRoot
	}
	dirs := p.readList(platform.ListProjectsDir, warnings)
	if len(dirs) == 0 {
		return ""
	}
	return dirs[0]
}

func (p *Plugin) readList(storeID string, warnings *[]error) []string {
	list, err := p.store.ReadList(storeID)
	if err != nil {
		*warnings = append(*warnings, err)
	}
	return list
}

// Query ranks the current snapshot against text. It never fails; a
// cancelled or pre-reload query yields no entries.
func (p *Plugin) Query(ctx context.Context, text string) []Entry {
	snap := p.current.Load()
	if snap == nil {
		return nil
	}

	results, err := snap.Search(ctx, text)
	if err != nil {
		p.logger.Debug("query abandoned", "query", text, "error", err)
		return nil
	}

	if limit := p.settings.Limit; limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	entries := make([]Entry, len(results))
	for i, r := range results {
		entries[i] = newEntry(snap.ID, r)
	}
	return entries
}

// Activate launches the project behind ref. It always reports the
// activation as handled; problems go to the warning channel.
func (p *Plugin) Activate(ref Ref) bool {
	snap := p.current.Load()
	if snap == nil {
		p.warner.Warn("No projects indexed yet")
		return true
	}

	project, ok := snap.Lookup(ref.Path)
	if !ok {
		p.warner.Warn(fmt.Sprintf("Project %s is no longer available", ref.Path))
		return true
	}
	if ref.SnapshotID != snap.ID {
		p.logger.Debug("activating stale reference", "ref", ref.SnapshotID, "current", snap.ID)
	}

	target, err := query.ResolveTarget(project, snap.Registry, snap.HubExecutable)
	if err != nil {
		p.warner.Warn(fmt.Sprintf("Unity version %s and Unity Hub not found", project.RequiredVersion))
		return true
	}
	if target.UsedFallback {
		p.warner.Warn(fmt.Sprintf("Unity version %s not found", project.RequiredVersion))
	}

	if err := p.launcher.StartDetached(target.Executable, target.Args); err != nil {
		var w *models.Warning
		if errors.As(err, &w) && w.Err != nil {
			err = w.Err
		}
		p.warner.Warn(fmt.Sprintf("Could not start %s: %v", target.Executable, err))
	}

	return true
}
