// Package editors discovers installed Unity editors under one or more
// install roots and exposes them as an immutable version -> executable map.
package editors

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/LeLocTai/unityhub-launcher/internal/filesystem"
	"github.com/LeLocTai/unityhub-launcher/internal/models"
)

// Registry maps editor version strings to installed editors.
type Registry struct {
	byVersion map[string]models.Editor
	versions  []string
}

// NewRegistry builds a registry from editors in priority order. The first
// editor seen for a version wins.
func NewRegistry(editors ...models.Editor) *Registry {
	r := &Registry{byVersion: make(map[string]models.Editor, len(editors))}
	for _, e := range editors {
		if _, exists := r.byVersion[e.Version]; exists {
			continue
		}
		r.byVersion[e.Version] = e
		r.versions = append(r.versions, e.Version)
	}

	sort.Slice(r.versions, func(i, j int) bool {
		return models.CompareVersionStrings(r.versions[i], r.versions[j]) < 0
	})

	return r
}

// Scan enumerates every root in order. Each immediate subdirectory is a
// candidate version; it is accepted only when exeSubpath exists beneath it.
// Unreadable roots are reported as warnings and skipped.
func Scan(fs filesystem.FileSystem, roots []string, exeSubpath string) (*Registry, []error) {
	var found []models.Editor
	var warnings []error

	for _, root := range roots {
		if root == "" {
			continue
		}

		entries, err := fs.ReadDir(root)
		if err != nil {
			warnings = append(warnings, models.NewWarning(models.ErrSourceUnavailable,
				root, fmt.Errorf("failed to read editor install root: %w", err)))
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			exePath := filepath.Join(root, entry.Name(), exeSubpath)
			if !fs.IsFile(exePath) {
				continue
			}

			found = append(found, models.Editor{
				Version: entry.Name(),
				Path:    exePath,
				Root:    root,
			})
		}
	}

	return NewRegistry(found...), warnings
}

// Lookup returns the editor for an exact version string.
func (r *Registry) Lookup(version string) (models.Editor, bool) {
	if r == nil {
		return models.Editor{}, false
	}
	e, ok := r.byVersion[version]
	return e, ok
}

// Has reports whether version is installed.
func (r *Registry) Has(version string) bool {
	_, ok := r.Lookup(version)
	return ok
}

// Len returns the number of installed editors.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.versions)
}

// Versions returns installed versions, oldest first.
func (r *Registry) Versions() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.versions...)
}

// Editors returns installed editors in Versions order.
func (r *Registry) Editors() []models.Editor {
	if r == nil {
		return nil
	}
	out := make([]models.Editor, 0, len(r.versions))
	for _, v := range r.versions {
		out = append(out, r.byVersion[v])
	}
	return out
}
