package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"psb-go/internal/psb"
)

// OSFilesystem is the real-filesystem implementation of psb.Filesystem.
type OSFilesystem struct{}

// NewOSFilesystem creates a filesystem that operates on the real filesystem.
func NewOSFilesystem() *OSFilesystem {
	return &OSFilesystem{}
}

func (*OSFilesystem) DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (*OSFilesystem) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (*OSFilesystem) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

func (*OSFilesystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func (*OSFilesystem) Chtimes(path string, mtime time.Time) error {
	return os.Chtimes(path, mtime, mtime)
}

// CopyIfChanged copies src to dst when dst is absent or its size differs.
// Writes go through a temp file in the destination directory followed by a
// rename, so a failed copy never leaves a truncated destination behind.
func (*OSFilesystem) CopyIfChanged(src, dst string) (bool, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, fmt.Errorf("stat source: %w", err)
	}

	if dstInfo, err := os.Stat(dst); err == nil && dstInfo.Size() == srcInfo.Size() {
		return false, nil // unchanged
	}

	in, err := os.Open(src)
	if err != nil {
		return false, fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".psb-*")
	if err != nil {
		return false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmp, in)
	if err != nil {
		tmp.Close()
		return false, fmt.Errorf("copying data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("closing temp file: %w", err)
	}
	if written != srcInfo.Size() {
		return false, fmt.Errorf("size mismatch copying %s: expected %d bytes, wrote %d", src, srcInfo.Size(), written)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		return false, fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return true, nil
}

// CountFiles returns the number of regular files directly under dir.
// A missing directory counts as zero.
func (*OSFilesystem) CountFiles(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading %s: %w", dir, err)
	}

	count := 0
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			count++
		}
	}
	return count, nil
}

// Compile-time check that OSFilesystem implements psb.Filesystem
var _ psb.Filesystem = (*OSFilesystem)(nil)
