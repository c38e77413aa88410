package plugin

import (
	"path/filepath"
	"time"

	"github.com/LeLocTai/unityhub-launcher/internal/config"
	"github.com/LeLocTai/unityhub-launcher/internal/platform"
	"github.com/LeLocTai/unityhub-launcher/internal/projects"
)

// Settings are the knobs Reload and Query honor.
type Settings struct {
	// HubExecutableName is joined to the Hub install root to find the
	// fallback launcher.
	HubExecutableName string

	// EditorsRoot is scanned first. When empty the store's editors root is used.
	EditorsRoot string

	// ExtraEditorRoots are scanned after the Hub secondary install path.
	ExtraEditorRoots []string

	// EditorExecutable is the editor binary relative to <root>/<version>.
	EditorExecutable string

	// ProjectsRoot overrides the Hub's projects directory.
	ProjectsRoot string

	Exclude          []string
	Workers          int
	CandidateTimeout time.Duration
	CaseInsensitive  bool

	// Limit caps query results; 0 means unlimited.
	Limit int

	CacheSize int
}

// DefaultSettings returns settings for loc.
func DefaultSettings(loc platform.Locations) Settings {
	return Settings{
		HubExecutableName: loc.HubExecutableName,
		EditorsRoot:       loc.EditorsRoot,
		EditorExecutable:  loc.EditorExecutable,
		CandidateTimeout:  projects.DefaultCandidateTimeout,
		CaseInsensitive:   projects.DefaultCaseInsensitive(),
	}
}

// SettingsFromConfig maps a loaded configuration onto Settings.
func SettingsFromConfig(cfg *config.Config) Settings {
	s := Settings{
		EditorsRoot:      cfg.Editors.Root,
		ExtraEditorRoots: cfg.Editors.ExtraRoots,
		EditorExecutable: cfg.Editors.Executable,
		ProjectsRoot:     cfg.Projects.Root,
		Exclude:          cfg.Projects.Exclude,
		Workers:          cfg.Projects.Workers,
		CandidateTimeout: cfg.Projects.CandidateTimeout,
		CaseInsensitive:  cfg.CaseInsensitivePaths(),
		Limit:            cfg.Search.Limit,
		CacheSize:        cfg.Search.CacheSize,
	}
	if cfg.Hub.Executable != "" {
		s.HubExecutableName = filepath.Base(cfg.Hub.Executable)
	}
	return s
}
