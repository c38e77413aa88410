//go:build windows

package platform

import (
	"fmt"
	"strings"

	"github.com/LeLocTai/unityhub-launcher/internal/filesystem"
	"golang.org/x/sys/windows/registry"
)

const (
	hubRegistryKey    = `SOFTWARE\Unity Technologies\Hub`
	editorRegistryKey = `SOFTWARE\Unity Technologies\Unity Editor 5.x`
)

func hubInstallLocation() (string, bool) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, hubRegistryKey, registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer k.Close()

	dir, _, err := k.GetStringValue("InstallLocation")
	if err != nil || strings.TrimSpace(dir) == "" {
		return "", false
	}
	return dir, true
}

// NewRecentSource returns the recently-used projects reader for this OS.
func NewRecentSource(_ filesystem.FileSystem, _ Locations) RecentSource {
	return registryRecentSource{}
}

// registryRecentSource reads RecentlyUsedProjectPaths-* values, which the
// editor stores as NUL-terminated UTF-8 REG_BINARY blobs.
type registryRecentSource struct{}

func (registryRecentSource) Recent() ([]string, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, editorRegistryKey, registry.QUERY_VALUE)
	if err != nil {
		return nil, fmt.Errorf(`failed to open HKCU\%s: %w`, editorRegistryKey, err)
	}
	defer k.Close()

	names, err := k.ReadValueNames(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list registry values: %w", err)
	}

	paths, err := readRecentValues(`HKCU\`+editorRegistryKey, names, func(name string) ([]byte, error) {
		data, _, err := k.GetBinaryValue(name)
		return data, err
	})
	for i, path := range paths {
		paths[i] = strings.ReplaceAll(path, "/", `\`)
	}
	return paths, err
}
