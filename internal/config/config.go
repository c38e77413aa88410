// Package config loads unityproj settings. Values are applied in order of
// increasing precedence:
//  1. Platform defaults (platform.Locations)
//  2. The YAML config file (<UserConfigDir>/unityproj/config.yaml)
//  3. Environment variables (UNITYPROJ_*)
//
// Command-line flags are applied by the caller after Load.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/LeLocTai/unityhub-launcher/internal/filesystem"
	"github.com/LeLocTai/unityhub-launcher/internal/logging"
	"github.com/LeLocTai/unityhub-launcher/internal/platform"
	"github.com/LeLocTai/unityhub-launcher/internal/projects"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "UNITYPROJ_"

const maxWorkers = 256

// Config is the effective configuration.
type Config struct {
	Hub      HubConfig      `yaml:"hub"`
	Editors  EditorsConfig  `yaml:"editors"`
	Projects ProjectsConfig `yaml:"projects"`
	Search   SearchConfig   `yaml:"search"`
	Log      LogConfig      `yaml:"log"`
}

// HubConfig locates Unity Hub.
type HubConfig struct {
	// DataDir holds the Hub's JSON files.
	DataDir string `yaml:"data_dir"`

	// Executable is the Hub binary used when a project's editor is missing.
	Executable string `yaml:"executable"`
}

// EditorsConfig locates installed editors.
type EditorsConfig struct {
	// Root is the primary install root, scanned first.
	Root string `yaml:"root"`

	// ExtraRoots are scanned after the Hub secondary install path.
	ExtraRoots []string `yaml:"extra_roots,omitempty"`

	// Executable is the editor binary relative to <root>/<version>.
	Executable string `yaml:"executable"`

	// PrefsFile is the editor preferences file holding recent projects (linux).
	PrefsFile string `yaml:"prefs_file,omitempty"`
}

// ProjectsConfig controls project indexing.
type ProjectsConfig struct {
	// Root overrides the Hub's projectDir.json.
	Root string `yaml:"root,omitempty"`

	// Exclude holds gitignore-style patterns for children of Root.
	Exclude []string `yaml:"exclude,omitempty"`

	Workers          int           `yaml:"workers"`
	CandidateTimeout time.Duration `yaml:"candidate_timeout"`

	// CaseInsensitive overrides the platform default for path dedup.
	CaseInsensitive *bool `yaml:"case_insensitive,omitempty"`
}

// SearchConfig controls query output.
type SearchConfig struct {
	// Limit caps the number of results; 0 means unlimited.
	Limit     int `yaml:"limit"`
	CacheSize int `yaml:"cache_size"`
}

// LogConfig controls slog output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration derived from loc.
func Default(loc platform.Locations) *Config {
	return &Config{
		Hub: HubConfig{
			DataDir:    loc.HubDataDir,
			Executable: loc.HubExecutable(),
		},
		Editors: EditorsConfig{
			Root:       loc.EditorsRoot,
			Executable: loc.EditorExecutable,
			PrefsFile:  loc.PrefsFile,
		},
		Projects: ProjectsConfig{
			CandidateTimeout: projects.DefaultCandidateTimeout,
		},
		Search: SearchConfig{
			CacheSize: 256,
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
	}
}

// DefaultPath returns <UserConfigDir>/unityproj/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "unityproj", "config.yaml")
}

type loader struct {
	path     string
	explicit bool
	getenv   func(string) string
}

// LoadOption configures Load.
type LoadOption func(*loader)

// WithPath loads path instead of DefaultPath. The file must exist.
func WithPath(path string) LoadOption {
	return func(l *loader) {
		if path != "" {
			l.path = path
			l.explicit = true
		}
	}
}

// WithEnv replaces os.Getenv for overrides.
func WithEnv(getenv func(string) string) LoadOption {
	return func(l *loader) {
		if getenv != nil {
			l.getenv = getenv
		}
	}
}

// Load builds the effective configuration and validates it.
func Load(fsys filesystem.FileSystem, loc platform.Locations, options ...LoadOption) (*Config, error) {
	l := &loader{
		path:   DefaultPath(),
		getenv: os.Getenv,
	}
	for _, option := range options {
		option(l)
	}

	cfg := Default(loc)

	data, err := fsys.ReadFile(l.path)
	switch {
	case err == nil:
		// fields absent from the file keep their defaults
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", l.path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !l.explicit:
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", l.path, err)
	}

	if err := cfg.applyEnv(l.getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	strs := map[string]*string{
		"HUB_DATA_DIR":       &c.Hub.DataDir,
		"HUB_EXECUTABLE":     &c.Hub.Executable,
		"EDITORS_ROOT":       &c.Editors.Root,
		"EDITORS_EXECUTABLE": &c.Editors.Executable,
		"PROJECTS_ROOT":      &c.Projects.Root,
		"LOG_LEVEL":          &c.Log.Level,
		"LOG_FORMAT":         &c.Log.Format,
	}
	for name, dst := range strs {
		if v := getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}

	if v := getenv(EnvPrefix + "EDITORS_EXTRA_ROOTS"); v != "" {
		c.Editors.ExtraRoots = filepath.SplitList(v)
	}

	if v := getenv(EnvPrefix + "WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sWORKERS: %w", EnvPrefix, err)
		}
		c.Projects.Workers = n
	}

	if v := getenv(EnvPrefix + "CANDIDATE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sCANDIDATE_TIMEOUT: %w", EnvPrefix, err)
		}
		c.Projects.CandidateTimeout = d
	}

	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Editors.Executable == "" {
		return fmt.Errorf("editors.executable must not be empty")
	}
	if filepath.IsAbs(c.Editors.Executable) {
		return fmt.Errorf("editors.executable must be relative to the version directory, got %s", c.Editors.Executable)
	}
	if c.Projects.Workers < 0 || c.Projects.Workers > maxWorkers {
		return fmt.Errorf("projects.workers must be between 0 and %d, got %d", maxWorkers, c.Projects.Workers)
	}
	if c.Projects.CandidateTimeout < 0 {
		return fmt.Errorf("projects.candidate_timeout must be non-negative, got %s", c.Projects.CandidateTimeout)
	}
	for _, pattern := range c.Projects.Exclude {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("projects.exclude must not contain empty patterns")
		}
	}
	if c.Search.Limit < 0 {
		return fmt.Errorf("search.limit must be non-negative, got %d", c.Search.Limit)
	}
	if c.Search.CacheSize < 0 {
		return fmt.Errorf("search.cache_size must be non-negative, got %d", c.Search.CacheSize)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("log.format must be 'text' or 'json', got %s", c.Log.Format)
	}
	return nil
}

// Locations returns the platform locations after overrides.
func (c *Config) Locations() platform.Locations {
	loc := platform.Locations{
		HubDataDir:       c.Hub.DataDir,
		EditorsRoot:      c.Editors.Root,
		EditorExecutable: c.Editors.Executable,
		PrefsFile:        c.Editors.PrefsFile,
	}
	if c.Hub.Executable != "" {
		loc.HubInstallDir = filepath.Dir(c.Hub.Executable)
		loc.HubExecutableName = filepath.Base(c.Hub.Executable)
	}
	return loc
}

// CaseInsensitivePaths returns the effective path comparison mode.
func (c *Config) CaseInsensitivePaths() bool {
	if c.Projects.CaseInsensitive != nil {
		return *c.Projects.CaseInsensitive
	}
	return projects.DefaultCaseInsensitive()
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
