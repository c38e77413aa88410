//go:build !windows

package platform

import (
	"fmt"
	"runtime"

	"github.com/LeLocTai/unityhub-launcher/internal/filesystem"
)

// hubInstallLocation has no system lookup outside windows; the defaults
// from DefaultLocations are used.
func hubInstallLocation() (string, bool) {
	return "", false
}

// NewRecentSource returns the recently-used projects reader for this OS.
func NewRecentSource(fs filesystem.FileSystem, loc Locations) RecentSource {
	if runtime.GOOS == "darwin" || loc.PrefsFile == "" {
		return unsupportedRecentSource{reason: fmt.Sprintf("reading editor preferences is not supported on %s", runtime.GOOS)}
	}
	return NewPrefsFileSource(fs, loc.PrefsFile)
}
