// Package platform reads the per-user metadata Unity Hub and the Unity
// editor leave behind: Hub JSON files, the editor's recent-projects
// preferences, and install locations.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// Locations are the well-known paths for one operating system.
type Locations struct {
	// HubDataDir holds favoriteProjects.json, projectDir.json, etc.
	HubDataDir string

	// HubInstallDir is the directory containing the Hub executable.
	HubInstallDir string

	// HubExecutableName is the file name of the Hub executable.
	HubExecutableName string

	// EditorsRoot is the Hub's primary editor install root.
	EditorsRoot string

	// EditorExecutable is the executable path relative to an editor version directory.
	EditorExecutable string

	// PrefsFile is the editor preferences file (linux only).
	PrefsFile string
}

// HubExecutable returns the full path of the Hub executable, or "" when the
// install dir is unknown.
func (l Locations) HubExecutable() string {
	if l.HubInstallDir == "" {
		return ""
	}
	return filepath.Join(l.HubInstallDir, l.HubExecutableName)
}

// DefaultLocations returns the standard Unity paths for goos.
func DefaultLocations(goos, home, appData string) Locations {
	switch goos {
	case "windows":
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return Locations{
			HubDataDir:        filepath.Join(appData, "UnityHub"),
			HubInstallDir:     `C:\Program Files\Unity Hub`,
			HubExecutableName: "Unity Hub.exe",
			EditorsRoot:       `C:\Program Files\Unity\Hub\Editor`,
			EditorExecutable:  filepath.Join("Editor", "Unity.exe"),
		}
	case "darwin":
		return Locations{
			HubDataDir:        filepath.Join(home, "Library", "Application Support", "UnityHub"),
			HubInstallDir:     "/Applications/Unity Hub.app/Contents/MacOS",
			HubExecutableName: "Unity Hub",
			EditorsRoot:       "/Applications/Unity/Hub/Editor",
			EditorExecutable:  filepath.Join("Unity.app", "Contents", "MacOS", "Unity"),
		}
	default:
		return Locations{
			HubDataDir:        filepath.Join(home, ".config", "UnityHub"),
			HubInstallDir:     "/opt/unityhub",
			HubExecutableName: "unityhub",
			EditorsRoot:       filepath.Join(home, "Unity", "Hub", "Editor"),
			EditorExecutable:  filepath.Join("Editor", "Unity"),
			PrefsFile:         filepath.Join(home, ".local", "share", "unity3d", "prefs"),
		}
	}
}

// DetectLocations returns the locations for the running system. On windows
// the Hub install dir comes from the registry when available.
func DetectLocations() Locations {
	home, _ := os.UserHomeDir()
	loc := DefaultLocations(runtime.GOOS, home, os.Getenv("APPDATA"))

	if dir, ok := hubInstallLocation(); ok {
		loc.HubInstallDir = dir
	}

	return loc
}
