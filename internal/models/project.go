package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ProjectSource records which discovery source(s) produced a project.
type ProjectSource uint8

const (
	SourceProjectsRoot ProjectSource = 1 << iota
	SourceFavorites
	SourceRecent
)

var sourceNames = []struct {
	source ProjectSource
	name   string
}{
	{SourceProjectsRoot, "root"},
	{SourceFavorites, "favorites"},
	{SourceRecent, "recent"},
}

// Has reports whether s includes other.
func (s ProjectSource) Has(other ProjectSource) bool {
	return s&other != 0
}

// Names lists the sources in s, e.g. ["root", "recent"].
func (s ProjectSource) Names() []string {
	names := []string{}
	for _, sn := range sourceNames {
		if s.Has(sn.source) {
			names = append(names, sn.name)
		}
	}
	return names
}

// String returns a comma separated list, e.g. "root,recent".
func (s ProjectSource) String() string {
	return strings.Join(s.Names(), ",")
}

func (s ProjectSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

func (s *ProjectSource) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}

	*s = 0
next:
	for _, name := range names {
		for _, sn := range sourceNames {
			if sn.name == name {
				*s |= sn.source
				continue next
			}
		}
		return fmt.Errorf("unknown project source: %q", name)
	}
	return nil
}

// Project represents a Unity project discovered on disk.
// Values are built once per reload and never mutated afterwards.
type Project struct {
	// Name is the last path segment of Path
	Name string `json:"name"`

	// Path is the absolute path to the project root
	Path string `json:"path"`

	// RequiredVersion is m_EditorVersion from ProjectSettings/ProjectVersion.txt
	RequiredVersion string `json:"requiredVersion"`

	// RequiredRevision is the changeset hash from m_EditorVersionWithRevision, if present
	RequiredRevision string `json:"requiredRevision,omitempty"`

	// IsFavorite is true when Path is in the Hub favorites list
	IsFavorite bool `json:"isFavorite"`

	// IsVersionInstalled is true when RequiredVersion was in the editor
	// registry the index was built against
	IsVersionInstalled bool `json:"isVersionInstalled"`

	// LastModified is the modification time of the project directory
	LastModified time.Time `json:"lastModified"`

	// Sources records where the candidate path came from
	Sources ProjectSource `json:"sources"`
}
