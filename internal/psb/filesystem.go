package psb

import "time"

// Filesystem abstracts destination-side filesystem operations so the
// resolver and executor can be tested without touching the real filesystem.
type Filesystem interface {
	// DirExists reports whether path exists and is a directory.
	DirExists(path string) bool

	// FileExists reports whether path exists and is a regular file.
	FileExists(path string) bool

	// Glob returns the paths matching the shell-style pattern.
	Glob(pattern string) ([]string, error)

	// MkdirAll creates the directory and any missing parents.
	MkdirAll(path string) error

	// CopyIfChanged copies src to dst when dst is absent or its size
	// differs. Returns true when bytes were actually written; an unchanged
	// destination is a no-op, not an error.
	CopyIfChanged(src, dst string) (bool, error)

	// Chtimes sets the file's modification time.
	Chtimes(path string, mtime time.Time) error

	// CountFiles returns the number of regular files directly under dir.
	// A missing directory counts as zero.
	CountFiles(dir string) (int, error)
}
