package testutil

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"psb-go/internal/psb"
)

// MockFilesystem is an in-memory destination filesystem for testing.
// Directories are tracked explicitly: AddFile does not create parents, so
// tests can stage a file whose folder is "missing" as far as DirExists is
// concerned.
type MockFilesystem struct {
	files  map[string]int64 // path -> size
	dirs   map[string]bool
	mtimes map[string]time.Time

	// CopiedPaths records every destination written by CopyIfChanged,
	// in order.
	CopiedPaths []string

	// FailCopies marks destination paths whose copy should fail.
	FailCopies map[string]bool
}

// NewMockFilesystem creates an empty mock filesystem.
func NewMockFilesystem() *MockFilesystem {
	return &MockFilesystem{
		files:      make(map[string]int64),
		dirs:       make(map[string]bool),
		mtimes:     make(map[string]time.Time),
		FailCopies: make(map[string]bool),
	}
}

// AddFile registers a file with the given size. Parent directories are not
// created implicitly.
func (m *MockFilesystem) AddFile(path string, size int64) {
	m.files[path] = size
}

// AddDir registers a directory.
func (m *MockFilesystem) AddDir(path string) {
	m.dirs[path] = true
}

// ModTime returns the mtime recorded by Chtimes for path.
func (m *MockFilesystem) ModTime(path string) time.Time {
	return m.mtimes[path]
}

func (m *MockFilesystem) DirExists(path string) bool {
	return m.dirs[path]
}

func (m *MockFilesystem) FileExists(path string) bool {
	_, ok := m.files[path]
	return ok
}

func (m *MockFilesystem) Glob(pattern string) ([]string, error) {
	var matches []string
	for path := range m.files {
		ok, err := filepath.Match(pattern, path)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, path)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

func (m *MockFilesystem) MkdirAll(path string) error {
	m.dirs[path] = true
	return nil
}

func (m *MockFilesystem) CopyIfChanged(src, dst string) (bool, error) {
	if m.FailCopies[dst] {
		return false, fmt.Errorf("copy to %s failed", dst)
	}
	srcSize, ok := m.files[src]
	if !ok {
		return false, fmt.Errorf("source %s does not exist", src)
	}
	if dstSize, ok := m.files[dst]; ok && dstSize == srcSize {
		return false, nil
	}
	m.files[dst] = srcSize
	m.CopiedPaths = append(m.CopiedPaths, dst)
	return true, nil
}

func (m *MockFilesystem) Chtimes(path string, mtime time.Time) error {
	if _, ok := m.files[path]; !ok {
		return fmt.Errorf("file %s does not exist", path)
	}
	m.mtimes[path] = mtime
	return nil
}

func (m *MockFilesystem) CountFiles(dir string) (int, error) {
	count := 0
	for path := range m.files {
		if filepath.Dir(path) == dir {
			count++
		}
	}
	return count, nil
}

// Compile-time check that MockFilesystem implements psb.Filesystem
var _ psb.Filesystem = (*MockFilesystem)(nil)
