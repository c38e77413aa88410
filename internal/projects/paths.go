package projects

import (
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultCaseInsensitive reports whether the host filesystem usually
// compares paths case-insensitively.
func DefaultCaseInsensitive() bool {
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}

// CleanPath converts both separator styles to the host separator and cleans
// the result. Hub and registry sources mix '/' and '\'.
func CleanPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	path = strings.ReplaceAll(path, `\`, "/")
	return filepath.Clean(filepath.FromSlash(path))
}

// PathKey returns the deduplication key for a cleaned path.
func PathKey(cleaned string, caseInsensitive bool) string {
	if caseInsensitive {
		return strings.ToLower(cleaned)
	}
	return cleaned
}
