// Package projects gathers candidate Unity project directories from several
// sources and resolves each one against the editor registry.
package projects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/LeLocTai/unityhub-launcher/internal/editors"
	"github.com/LeLocTai/unityhub-launcher/internal/filesystem"
	"github.com/LeLocTai/unityhub-launcher/internal/models"
	gitignore "github.com/denormal/go-gitignore"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultCandidateTimeout bounds the filesystem reads for one candidate.
	DefaultCandidateTimeout = 2 * time.Second

	maxWorkers = 16
)

// Sources are the inputs a candidate path set is built from.
type Sources struct {
	// ProjectsRoot is the Hub's default projects directory; its immediate
	// subdirectories are candidates.
	ProjectsRoot string

	// Favorites are project paths the user starred in the Hub.
	Favorites []string

	// Recent are project paths from the editor's recently-used history.
	Recent []string
}

// Candidate is one deduplicated path awaiting resolution.
type Candidate struct {
	Path    string
	Key     string
	Sources models.ProjectSource
}

// Indexer builds the project list.
type Indexer struct {
	fs               filesystem.FileSystem
	versionFile      *VersionFile
	workers          int
	candidateTimeout time.Duration
	caseInsensitive  bool
	exclude          []string
	logger           *slog.Logger
}

// Option configures indexer behavior.
type Option func(*Indexer)

// WithWorkers sets the number of candidates resolved concurrently.
func WithWorkers(n int) Option {
	return func(ix *Indexer) {
		if n > 0 {
			ix.workers = n
		}
	}
}

// WithCandidateTimeout bounds the time spent resolving one candidate.
func WithCandidateTimeout(d time.Duration) Option {
	return func(ix *Indexer) {
		if d > 0 {
			ix.candidateTimeout = d
		}
	}
}

// WithCaseInsensitivePaths controls whether paths differing only in case are
// the same candidate.
func WithCaseInsensitivePaths(enabled bool) Option {
	return func(ix *Indexer) {
		ix.caseInsensitive = enabled
	}
}

// WithExclude sets gitignore-style patterns matched against the children of
// the projects root. Favorites and recent entries are never excluded.
func WithExclude(patterns []string) Option {
	return func(ix *Indexer) {
		ix.exclude = patterns
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) {
		if logger != nil {
			ix.logger = logger
		}
	}
}

// NewIndexer creates a new Indexer.
func NewIndexer(fs filesystem.FileSystem, options ...Option) *Indexer {
	workers := runtime.NumCPU() * 2 // IO-bound
	if workers > maxWorkers {
		workers = maxWorkers
	}

	ix := &Indexer{
		fs:               fs,
		versionFile:      NewVersionFile(fs),
		workers:          workers,
		candidateTimeout: DefaultCandidateTimeout,
		caseInsensitive:  DefaultCaseInsensitive(),
		logger:           slog.Default(),
	}

	for _, option := range options {
		option(ix)
	}

	return ix
}

// Build gathers candidates from src and resolves them against reg.
// Per-candidate failures are returned as warnings and never abort the
// build. The returned projects are sorted by path.
func (ix *Indexer) Build(ctx context.Context, src Sources, reg *editors.Registry) ([]*models.Project, []error) {
	candidates, warnings := ix.Gather(src)

	favorites := make(map[string]struct{}, len(src.Favorites))
	for _, fav := range src.Favorites {
		if cleaned := CleanPath(fav); cleaned != "" {
			favorites[PathKey(cleaned, ix.caseInsensitive)] = struct{}{}
		}
	}

	start := time.Now()
	resolved := make([]*models.Project, len(candidates))
	errs := make([]error, len(candidates))

	g := new(errgroup.Group)
	g.SetLimit(ix.workers)

	for i, c := range candidates {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			resolved[i], errs[i] = ix.resolveWithTimeout(ctx, c, favorites, reg)
			return nil
		})
	}
	_ = g.Wait()

	var projects []*models.Project
	for i := range candidates {
		if resolved[i] != nil {
			projects = append(projects, resolved[i])
		}
		if errs[i] != nil {
			warnings = append(warnings, errs[i])
		}
	}

	if err := ctx.Err(); err != nil {
		warnings = append(warnings, fmt.Errorf("project indexing interrupted: %w", err))
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Path < projects[j].Path
	})

	ix.logger.Debug("indexed projects",
		"candidates", len(candidates),
		"projects", len(projects),
		"duration", time.Since(start))

	return projects, warnings
}

// Gather builds the deduplicated candidate set: children of the projects
// root, then favorites, then recent entries. The first spelling of a path
// is kept; later duplicates only add their source.
func (ix *Indexer) Gather(src Sources) ([]Candidate, []error) {
	var warnings []error
	var candidates []Candidate
	byKey := make(map[string]int)

	add := func(path string, source models.ProjectSource) {
		cleaned := CleanPath(path)
		if cleaned == "" {
			return
		}
		if !filepath.IsAbs(cleaned) {
			warnings = append(warnings, models.NewWarning(models.ErrMalformedRecord, path,
				errors.New("project path is not absolute")))
			return
		}

		key := PathKey(cleaned, ix.caseInsensitive)
		if idx, ok := byKey[key]; ok {
			candidates[idx].Sources |= source
			return
		}
		byKey[key] = len(candidates)
		candidates = append(candidates, Candidate{Path: cleaned, Key: key, Sources: source})
	}

	if src.ProjectsRoot != "" {
		children, err := ix.rootChildren(src.ProjectsRoot)
		if err != nil {
			warnings = append(warnings, err)
		}
		for _, child := range children {
			add(child, models.SourceProjectsRoot)
		}
	}
	for _, fav := range src.Favorites {
		add(fav, models.SourceFavorites)
	}
	for _, recent := range src.Recent {
		add(recent, models.SourceRecent)
	}

	return candidates, warnings
}

func (ix *Indexer) rootChildren(root string) ([]string, error) {
	root = CleanPath(root)
	entries, err := ix.fs.ReadDir(root)
	if err != nil {
		return nil, models.NewWarning(models.ErrSourceUnavailable, root,
			fmt.Errorf("failed to read projects root: %w", err))
	}

	var ignore gitignore.GitIgnore
	if len(ix.exclude) > 0 {
		ignore = gitignore.New(strings.NewReader(strings.Join(ix.exclude, "\n")), root, nil)
	}

	var children []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if ignore != nil {
			if match := ignore.Relative(entry.Name(), true); match != nil && match.Ignore() {
				ix.logger.Debug("excluded project directory", "path", filepath.Join(root, entry.Name()))
				continue
			}
		}
		children = append(children, filepath.Join(root, entry.Name()))
	}

	return children, nil
}

type outcome struct {
	project *models.Project
	err     error
}

// resolveWithTimeout runs resolve on its own goroutine so a hung read only
// costs this candidate. The goroutine is abandoned, not killed, on timeout.
func (ix *Indexer) resolveWithTimeout(ctx context.Context, c Candidate, favorites map[string]struct{}, reg *editors.Registry) (*models.Project, error) {
	cctx, cancel := context.WithTimeout(ctx, ix.candidateTimeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		p, err := ix.resolve(c, favorites, reg)
		done <- outcome{project: p, err: err}
	}()

	select {
	case o := <-done:
		return o.project, o.err
	case <-cctx.Done():
		if ctx.Err() != nil {
			// reported once by Build
			return nil, nil
		}
		return nil, models.NewWarning(models.ErrSourceUnavailable, c.Path,
			fmt.Errorf("timed out after %s", ix.candidateTimeout))
	}
}

// resolve turns a candidate into a Project. A nil project with a nil error
// means the directory is not a Unity project.
func (ix *Indexer) resolve(c Candidate, favorites map[string]struct{}, reg *editors.Registry) (*models.Project, error) {
	info, err := ix.versionFile.Read(c.Path)
	if err != nil {
		if errors.Is(err, ErrNotAProject) {
			return nil, nil
		}
		return nil, models.NewWarning(models.ErrMalformedRecord, c.Path, err)
	}

	stat, err := ix.fs.Stat(c.Path)
	if err != nil {
		return nil, models.NewWarning(models.ErrSourceUnavailable, c.Path,
			fmt.Errorf("failed to stat project directory: %w", err))
	}

	_, favorite := favorites[c.Key]

	return &models.Project{
		Name:               filepath.Base(c.Path),
		Path:               c.Path,
		RequiredVersion:    info.Version,
		RequiredRevision:   info.Revision,
		IsFavorite:         favorite,
		IsVersionInstalled: reg.Has(info.Version),
		LastModified:       stat.ModTime(),
		Sources:            c.Sources,
	}, nil
}
