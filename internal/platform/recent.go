package platform

import (
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/LeLocTai/unityhub-launcher/internal/filesystem"
	"github.com/LeLocTai/unityhub-launcher/internal/models"
)

const recentPrefix = "RecentlyUsedProjectPaths-"

// RecentSource reads the editor's recently-used project history.
type RecentSource interface {
	Recent() ([]string, error)
}

// StaticRecentSource returns a fixed list.
type StaticRecentSource []string

func (s StaticRecentSource) Recent() ([]string, error) {
	return append([]string(nil), s...), nil
}

type unsupportedRecentSource struct {
	reason string
}

func (u unsupportedRecentSource) Recent() ([]string, error) {
	return nil, errors.New(u.reason)
}

// PrefsFileSource reads the editor's XML preferences file used on linux.
type PrefsFileSource struct {
	fs   filesystem.FileSystem
	path string
}

// NewPrefsFileSource creates a PrefsFileSource for path.
func NewPrefsFileSource(fs filesystem.FileSystem, path string) *PrefsFileSource {
	return &PrefsFileSource{fs: fs, path: path}
}

func (p *PrefsFileSource) Recent() ([]string, error) {
	data, err := p.fs.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p.path, err)
	}
	return ParsePrefs(data)
}

type unityPrefs struct {
	Prefs []unityPref `xml:"pref"`
}

type unityPref struct {
	Name  string `xml:"name,attr"`
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

// ParsePrefs extracts RecentlyUsedProjectPaths-N values from an editor
// prefs document, ordered by N. String values are base64 encoded; values
// that do not decode are used as-is.
func ParsePrefs(data []byte) ([]string, error) {
	var doc unityPrefs
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse editor prefs: %w", err)
	}

	type indexed struct {
		n    int
		path string
	}
	var found []indexed

	for _, pref := range doc.Prefs {
		suffix, ok := strings.CutPrefix(pref.Name, recentPrefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			n = -1
		}

		value := strings.TrimSpace(pref.Value)
		if decoded, err := base64.StdEncoding.DecodeString(value); err == nil {
			value = string(decoded)
		}
		value = strings.TrimRight(value, "\x00")
		if value == "" {
			continue
		}
		found = append(found, indexed{n: n, path: value})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].n < found[j].n
	})

	paths := make([]string, len(found))
	for i, f := range found {
		paths[i] = f.path
	}
	return paths, nil
}

// readRecentValues reads every RecentlyUsedProjectPaths-* value in names,
// in name order. Values are NUL-terminated paths. A value that cannot be
// read is skipped and reported as a malformed record under key.
func readRecentValues(key string, names []string, read func(name string) ([]byte, error)) ([]string, error) {
	names = append([]string(nil), names...)
	sort.Strings(names)

	var paths []string
	var errs []error
	for _, name := range names {
		if !strings.HasPrefix(name, recentPrefix) {
			continue
		}
		data, err := read(name)
		if err != nil {
			errs = append(errs, models.NewWarning(models.ErrMalformedRecord, key+`\`+name, err))
			continue
		}
		if path := strings.TrimRight(string(data), "\x00"); path != "" {
			paths = append(paths, path)
		}
	}

	return paths, errors.Join(errs...)
}
