package filesystem

import (
	"io/fs"
)

// FileSystem is the read-only view of the disk used by discovery.
// Editors, projects and Hub metadata are all read through it so tests
// can run against MockFileSystem.
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)

	// Directory operations
	ReadDir(path string) ([]fs.DirEntry, error)

	// Path operations
	Stat(path string) (fs.FileInfo, error)
	IsDir(path string) bool
	IsFile(path string) bool
}
