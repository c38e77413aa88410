package projects

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/LeLocTai/unityhub-launcher/internal/filesystem"
)

// VersionFilePath is the marker every Unity project carries, relative to its root.
var VersionFilePath = filepath.Join("ProjectSettings", "ProjectVersion.txt")

// ErrNotAProject is returned when a directory has no version marker.
var ErrNotAProject = errors.New("not a unity project")

const (
	editorVersionKey             = "m_EditorVersion"
	editorVersionWithRevisionKey = "m_EditorVersionWithRevision"
)

// VersionInfo is the parsed content of ProjectVersion.txt.
type VersionInfo struct {
	Version  string
	Revision string
}

// VersionFile reads ProjectSettings/ProjectVersion.txt files
type VersionFile struct {
	fs filesystem.FileSystem
}

// NewVersionFile creates a new VersionFile instance
func NewVersionFile(fs filesystem.FileSystem) *VersionFile {
	return &VersionFile{fs: fs}
}

// Read reads the required editor version of the project at projectRoot.
// A missing marker yields ErrNotAProject.
func (vf *VersionFile) Read(projectRoot string) (*VersionInfo, error) {
	versionPath := filepath.Join(projectRoot, VersionFilePath)

	data, err := vf.fs.ReadFile(versionPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotAProject
		}
		return nil, fmt.Errorf("failed to read %s: %w", versionPath, err)
	}

	info, err := ParseVersionFile(data)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", versionPath, err)
	}

	return info, nil
}

// ParseVersionFile parses "key: value" lines. m_EditorVersion is required;
// the revision is taken from m_EditorVersionWithRevision when present,
// e.g. "2021.3.5f1 (40eb3a945986)".
func ParseVersionFile(data []byte) (*VersionInfo, error) {
	info := &VersionInfo{}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(strings.TrimRight(line, "\r"), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case editorVersionKey:
			info.Version = value
		case editorVersionWithRevisionKey:
			if open := strings.Index(value, "("); open >= 0 {
				if end := strings.Index(value[open:], ")"); end > 0 {
					info.Revision = strings.TrimSpace(value[open+1 : open+end])
				}
			}
		}
	}

	if info.Version == "" {
		return nil, fmt.Errorf("%s not found", editorVersionKey)
	}
	if strings.ContainsAny(info.Version, " \t") {
		return nil, fmt.Errorf("invalid %s: %q", editorVersionKey, info.Version)
	}

	return info, nil
}
