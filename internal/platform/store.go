package platform

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/LeLocTai/unityhub-launcher/internal/filesystem"
	"github.com/LeLocTai/unityhub-launcher/internal/models"
)

// Product keys accepted by Store.InstallRoot.
const (
	ProductHub     = "hub"
	ProductEditors = "editors"
)

// List IDs accepted by Store.ReadList.
const (
	ListFavorites        = "favorites"
	ListRecent           = "recent"
	ListSecondaryInstall = "secondary-install"
	ListProjectsDir      = "projects-dir"
)

// Hub data files.
const (
	FavoritesFile        = "favoriteProjects.json"
	SecondaryInstallFile = "secondaryInstallPath.json"
	ProjectDirFile       = "projectDir.json"
	ProjectsV1File       = "projects-v1.json"
)

// Store is read-only access to platform metadata.
type Store interface {
	// InstallRoot returns the install directory of a product, if present.
	InstallRoot(productKey string) (string, bool)

	// ReadList returns the entries of a list store. A non-nil error means
	// the store (or part of it) could not be read; any entries returned
	// alongside it are still usable.
	ReadList(storeID string) ([]string, error)
}

// HubStore reads the Unity Hub data directory.
type HubStore struct {
	fs     filesystem.FileSystem
	loc    Locations
	recent RecentSource
}

// HubOption configures a HubStore.
type HubOption func(*HubStore)

// WithRecentSource replaces the per-OS recently-used projects reader.
func WithRecentSource(src RecentSource) HubOption {
	return func(s *HubStore) {
		if src != nil {
			s.recent = src
		}
	}
}

// NewHubStore creates a HubStore over loc.
func NewHubStore(fs filesystem.FileSystem, loc Locations, options ...HubOption) *HubStore {
	s := &HubStore{
		fs:  fs,
		loc: loc,
	}
	for _, option := range options {
		option(s)
	}
	if s.recent == nil {
		s.recent = NewRecentSource(fs, loc)
	}
	return s
}

// Locations returns the paths this store reads from.
func (s *HubStore) Locations() Locations {
	return s.loc
}

func (s *HubStore) InstallRoot(productKey string) (string, bool) {
	switch productKey {
	case ProductHub:
		if exe := s.loc.HubExecutable(); exe != "" && s.fs.IsFile(exe) {
			return s.loc.HubInstallDir, true
		}
	case ProductEditors:
		if s.loc.EditorsRoot != "" && s.fs.IsDir(s.loc.EditorsRoot) {
			return s.loc.EditorsRoot, true
		}
	}
	return "", false
}

func (s *HubStore) ReadList(storeID string) ([]string, error) {
	switch storeID {
	case ListFavorites:
		return s.favorites()
	case ListRecent:
		return s.recentProjects()
	case ListSecondaryInstall:
		return s.secondaryInstall()
	case ListProjectsDir:
		return s.projectsDir()
	default:
		return nil, fmt.Errorf("unknown list store %q", storeID)
	}
}

func (s *HubStore) hubFile(name string) string {
	return filepath.Join(s.loc.HubDataDir, name)
}

func (s *HubStore) read(name string) ([]byte, error) {
	path := s.hubFile(name)
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, models.NewWarning(models.ErrSourceUnavailable, path, fmt.Errorf("failed to read: %w", err))
	}
	return data, nil
}

func (s *HubStore) favorites() ([]string, error) {
	var errs []error
	var paths []string

	data, err := s.read(FavoritesFile)
	if err != nil {
		errs = append(errs, err)
	} else if list, err := ParseFavorites(data); err != nil {
		errs = append(errs, models.NewWarning(models.ErrMalformedRecord, s.hubFile(FavoritesFile), err))
	} else {
		paths = append(paths, list...)
	}

	entries, err := s.projectsV1()
	if err != nil {
		errs = append(errs, err)
	}
	for _, e := range entries {
		if e.IsFavorite {
			paths = append(paths, e.Path)
		}
	}

	return paths, errors.Join(errs...)
}

func (s *HubStore) recentProjects() ([]string, error) {
	var errs []error

	paths, err := s.recent.Recent()
	var warning *models.Warning
	switch {
	case err == nil:
	case errors.As(err, &warning):
		// per-record failures, the rest of paths is usable
		errs = append(errs, err)
	default:
		errs = append(errs, models.NewWarning(models.ErrSourceUnavailable, "recent projects", err))
	}

	entries, err := s.projectsV1()
	if err != nil {
		errs = append(errs, err)
	}
	for _, e := range entries {
		paths = append(paths, e.Path)
	}

	return paths, errors.Join(errs...)
}

func (s *HubStore) secondaryInstall() ([]string, error) {
	data, err := s.fs.ReadFile(s.hubFile(SecondaryInstallFile))
	if err != nil {
		// the Hub only writes this file once a secondary location is set
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, models.NewWarning(models.ErrSourceUnavailable, s.hubFile(SecondaryInstallFile),
			fmt.Errorf("failed to read: %w", err))
	}

	path := ParseSecondaryInstall(data)
	if path == "" {
		return nil, nil
	}
	return []string{path}, nil
}

type projectDir struct {
	DirectoryPath string `json:"directoryPath"`
}

func (s *HubStore) projectsDir() ([]string, error) {
	data, err := s.read(ProjectDirFile)
	if err != nil {
		return nil, err
	}

	var dir projectDir
	if err := json.Unmarshal(data, &dir); err != nil {
		return nil, models.NewWarning(models.ErrMalformedRecord, s.hubFile(ProjectDirFile),
			fmt.Errorf("failed to parse: %w", err))
	}
	if strings.TrimSpace(dir.DirectoryPath) == "" {
		return nil, nil
	}
	return []string{dir.DirectoryPath}, nil
}

// ProjectsV1Entry is one project record from projects-v1.json.
type ProjectsV1Entry struct {
	Path       string `json:"path"`
	IsFavorite bool   `json:"isFavorite"`
}

type projectsV1 struct {
	Data map[string]ProjectsV1Entry `json:"data"`
}

// projectsV1 reads the newer Hub project list. The file is optional.
func (s *HubStore) projectsV1() ([]ProjectsV1Entry, error) {
	path := s.hubFile(ProjectsV1File)
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, models.NewWarning(models.ErrSourceUnavailable, path, fmt.Errorf("failed to read: %w", err))
	}

	entries, err := ParseProjectsV1(data)
	if err != nil {
		return nil, models.NewWarning(models.ErrMalformedRecord, path, err)
	}
	return entries, nil
}

// ParseProjectsV1 decodes projects-v1.json. Entries are ordered by path.
func ParseProjectsV1(data []byte) ([]ProjectsV1Entry, error) {
	var doc projectsV1
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse projects list: %w", err)
	}

	entries := make([]ProjectsV1Entry, 0, len(doc.Data))
	for key, e := range doc.Data {
		if e.Path == "" {
			e.Path = key
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}
