package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ReleaseStream is the letter between the patch and build numbers of a
// Unity version (2021.3.5f1 -> 'f').
type ReleaseStream byte

const (
	StreamAlpha ReleaseStream = 'a'
	StreamBeta  ReleaseStream = 'b'
	StreamFinal ReleaseStream = 'f'
	StreamPatch ReleaseStream = 'p'
)

// rank orders streams alpha < beta < final < patch. 'c' (China builds)
// sorts with final.
func (s ReleaseStream) rank() int {
	switch s {
	case StreamAlpha:
		return 0
	case StreamBeta:
		return 1
	case StreamFinal, 'c':
		return 2
	case StreamPatch:
		return 3
	default:
		return -1
	}
}

// EditorVersion represents a Unity editor version
type EditorVersion struct {
	Major  int
	Minor  int
	Patch  int
	Stream ReleaseStream
	Build  int
}

// ParseEditorVersion parses a version string (e.g., "2021.3.5f1", "6000.0.23f1", "2023.1.0b12")
func ParseEditorVersion(s string) (*EditorVersion, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty editor version")
	}

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid editor version format: %s (expected year.minor.patch<stream><build>)", s)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid major version: %s", parts[0])
	}

	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid minor version: %s", parts[1])
	}

	// Split "5f1" into patch 5, stream f, build 1
	tail := parts[2]
	idx := strings.IndexFunc(tail, func(r rune) bool { return r < '0' || r > '9' })
	if idx <= 0 || idx == len(tail)-1 {
		return nil, fmt.Errorf("invalid patch version: %s", tail)
	}

	patch, err := strconv.Atoi(tail[:idx])
	if err != nil {
		return nil, fmt.Errorf("invalid patch version: %s", tail)
	}

	stream := ReleaseStream(tail[idx])
	if stream.rank() < 0 {
		return nil, fmt.Errorf("unknown release stream %q in %s", tail[idx], s)
	}

	build, err := strconv.Atoi(tail[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("invalid build number: %s", tail[idx+1:])
	}

	return &EditorVersion{
		Major:  major,
		Minor:  minor,
		Patch:  patch,
		Stream: stream,
		Build:  build,
	}, nil
}

// String returns the version in Unity's notation
func (v *EditorVersion) String() string {
	return fmt.Sprintf("%d.%d.%d%c%d", v.Major, v.Minor, v.Patch, v.Stream, v.Build)
}

// Compare compares two versions
// Returns -1 if v < other, 0 if v == other, 1 if v > other
func (v *EditorVersion) Compare(other *EditorVersion) int {
	pairs := [][2]int{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
		{v.Stream.rank(), other.Stream.rank()},
		{v.Build, other.Build},
	}
	for _, p := range pairs {
		if p[0] < p[1] {
			return -1
		}
		if p[0] > p[1] {
			return 1
		}
	}
	return 0
}

// CompareVersionStrings orders raw version strings. Parseable versions sort
// before unparseable ones; two unparseable strings compare lexicographically.
func CompareVersionStrings(a, b string) int {
	va, errA := ParseEditorVersion(a)
	vb, errB := ParseEditorVersion(b)

	switch {
	case errA == nil && errB == nil:
		return va.Compare(vb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
