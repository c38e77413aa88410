package platform

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/LeLocTai/unityhub-launcher/internal/filesystem"
)

// HubBuilder helps create test Unity Hub installations
type HubBuilder struct {
	fs        *filesystem.MockFileSystem
	loc       Locations
	favorites []string
	v1        map[string]ProjectsV1Entry
}

// NewHubBuilder creates a Hub install, its data directory and an empty
// editors root at loc.
func NewHubBuilder(loc Locations) *HubBuilder {
	fs := filesystem.NewMockFileSystem()
	if exe := loc.HubExecutable(); exe != "" {
		fs.AddFile(exe, []byte("bin"))
	}
	if loc.HubDataDir != "" {
		fs.AddDir(loc.HubDataDir)
	}
	if loc.EditorsRoot != "" {
		fs.AddDir(loc.EditorsRoot)
	}

	return &HubBuilder{
		fs:  fs,
		loc: loc,
		v1:  make(map[string]ProjectsV1Entry),
	}
}

// AddEditor installs version under the primary editors root
func (hb *HubBuilder) AddEditor(version string) *HubBuilder {
	return hb.AddEditorAt(hb.loc.EditorsRoot, version)
}

// AddEditorAt installs version under root
func (hb *HubBuilder) AddEditorAt(root, version string) *HubBuilder {
	hb.fs.AddFile(filepath.Join(root, version, hb.loc.EditorExecutable), []byte("bin"))
	return hb
}

// AddProject creates a Unity project saved with version
func (hb *HubBuilder) AddProject(path, version string, modified time.Time) *HubBuilder {
	content := fmt.Sprintf("m_EditorVersion: %s\nm_EditorVersionWithRevision: %s (0123456789ab)\n", version, version)
	hb.fs.AddFile(filepath.Join(path, "ProjectSettings", "ProjectVersion.txt"), []byte(content))
	hb.fs.SetModTime(path, modified)
	return hb
}

// AddFavorite stars path in favoriteProjects.json
func (hb *HubBuilder) AddFavorite(path string) *HubBuilder {
	hb.favorites = append(hb.favorites, path)
	return hb
}

// AddHubProject records an entry in projects-v1.json
func (hb *HubBuilder) AddHubProject(entry ProjectsV1Entry) *HubBuilder {
	hb.v1[entry.Path] = entry
	return hb
}

// SetProjectsDir writes projectDir.json
func (hb *HubBuilder) SetProjectsDir(path string) *HubBuilder {
	hb.fs.AddDir(path)
	data, _ := json.Marshal(projectDir{DirectoryPath: path})
	hb.fs.AddFile(filepath.Join(hb.loc.HubDataDir, ProjectDirFile), data)
	return hb
}

// SetSecondaryInstall writes secondaryInstallPath.json
func (hb *HubBuilder) SetSecondaryInstall(path string) *HubBuilder {
	data, _ := json.Marshal(path)
	hb.fs.AddFile(filepath.Join(hb.loc.HubDataDir, SecondaryInstallFile), data)
	return hb
}

// Build writes the Hub list files and returns the filesystem
func (hb *HubBuilder) Build() *filesystem.MockFileSystem {
	// the Hub stores favorites as a JSON string holding a JSON array
	favorites := hb.favorites
	if favorites == nil {
		favorites = []string{}
	}
	inner, _ := json.Marshal(favorites)
	outer, _ := json.Marshal(string(inner))
	hb.fs.AddFile(filepath.Join(hb.loc.HubDataDir, FavoritesFile), outer)

	if len(hb.v1) > 0 {
		data, _ := json.Marshal(projectsV1{Data: hb.v1})
		hb.fs.AddFile(filepath.Join(hb.loc.HubDataDir, ProjectsV1File), data)
	}

	return hb.fs
}

// Locations returns the layout the builder writes to
func (hb *HubBuilder) Locations() Locations {
	return hb.loc
}
