package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MockFileSystem provides in-memory filesystem for testing.
// It is safe for concurrent use; the project indexer reads from many
// goroutines at once.
type MockFileSystem struct {
	mu         sync.RWMutex
	files      map[string]*MockFile
	readErrors map[string]error
	blocked    map[string]chan struct{}
}

// MockFile represents a file in the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// mockDirEntry implements fs.DirEntry
type mockDirEntry struct {
	info fs.FileInfo
}

func (m *mockDirEntry) Name() string               { return m.info.Name() }
func (m *mockDirEntry) IsDir() bool                { return m.info.IsDir() }
func (m *mockDirEntry) Type() fs.FileMode          { return m.info.Mode().Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) { return m.info, nil }

// NewMockFileSystem creates a new MockFileSystem
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:      make(map[string]*MockFile),
		readErrors: make(map[string]error),
		blocked:    make(map[string]chan struct{}),
	}
}

// AddFile adds a file to the mock filesystem, creating parent directories.
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    0644,
		ModTime: time.Now(),
	}
	mfs.addParents(cleanPath)
}

// AddDir adds a directory to the mock filesystem
func (mfs *MockFileSystem) AddDir(path string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.addDir(filepath.Clean(path))
}

// SetModTime overrides the modification time of an existing entry.
func (mfs *MockFileSystem) SetModTime(path string, t time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if f, ok := mfs.files[filepath.Clean(path)]; ok {
		f.ModTime = t
	}
}

// FailRead makes every ReadFile and ReadDir of path return err.
func (mfs *MockFileSystem) FailRead(path string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.readErrors[filepath.Clean(path)] = err
}

// Block makes ReadFile of path hang until the returned release func is called.
func (mfs *MockFileSystem) Block(path string) (release func()) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	ch := make(chan struct{})
	mfs.blocked[filepath.Clean(path)] = ch

	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

func (mfs *MockFileSystem) addDir(cleanPath string) {
	if _, exists := mfs.files[cleanPath]; !exists {
		mfs.files[cleanPath] = &MockFile{
			Mode:    0755 | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}
	mfs.addParents(cleanPath)
}

func (mfs *MockFileSystem) addParents(cleanPath string) {
	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != cleanPath {
		if _, exists := mfs.files[dir]; !exists {
			mfs.files[dir] = &MockFile{
				Mode:    0755 | fs.ModeDir,
				ModTime: time.Now(),
				IsDir:   true,
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	cleanPath := filepath.Clean(path)

	mfs.mu.RLock()
	ch := mfs.blocked[cleanPath]
	mfs.mu.RUnlock()
	if ch != nil {
		<-ch
	}

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	if err, ok := mfs.readErrors[cleanPath]; ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDir {
		return nil, errors.New("is a directory")
	}
	return append([]byte(nil), file.Content...), nil
}

func (mfs *MockFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	cleanPath := filepath.Clean(path)

	if err, ok := mfs.readErrors[cleanPath]; ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if !file.IsDir {
		return nil, fmt.Errorf("%s: not a directory", path)
	}

	var entries []fs.DirEntry
	for p, f := range mfs.files {
		if p == cleanPath || filepath.Dir(p) != cleanPath {
			continue
		}
		entries = append(entries, &mockDirEntry{info: infoFor(p, f)})
	}

	// Sort entries by name for consistent ordering
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}

	return infoFor(path, file), nil
}

func (mfs *MockFileSystem) IsDir(path string) bool {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	f, exists := mfs.files[filepath.Clean(path)]
	return exists && f.IsDir
}

func (mfs *MockFileSystem) IsFile(path string) bool {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	f, exists := mfs.files[filepath.Clean(path)]
	return exists && !f.IsDir
}

func infoFor(path string, f *MockFile) *mockFileInfo {
	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(f.Content)),
		mode:    f.Mode,
		modTime: f.ModTime,
		isDir:   f.IsDir,
	}
}
