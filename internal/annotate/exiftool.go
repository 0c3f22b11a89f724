package annotate

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"psb-go/internal/psb"

	"github.com/gabriel-vasile/mimetype"
)

// ExifTool reads and writes metadata tags by invoking the exiftool binary
// with an argument vector; no shell is ever involved. Format detection is
// done in-process from file content, so extension correction works even
// where exiftool is not installed.
type ExifTool struct {
	binary string
	run    runner
}

// runner executes the tag editor and returns its stdout. Replaced in tests.
type runner func(binary string, args []string) (string, error)

// NewExifTool creates an annotator using the given exiftool binary.
// An empty binary falls back to "exiftool" on PATH.
func NewExifTool(binary string) *ExifTool {
	if binary == "" {
		binary = "exiftool"
	}
	return &ExifTool{binary: binary, run: runCommand}
}

func runCommand(binary string, args []string) (string, error) {
	cmd := exec.Command(binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("exiftool: %s: %w", msg, err)
		}
		return "", fmt.Errorf("exiftool: %w", err)
	}
	return stdout.String(), nil
}

// DetectedExtension returns the canonical extension for the file's embedded
// format, sniffed from content rather than trusted from the filename.
func (e *ExifTool) DetectedExtension(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detecting format of %s: %w", path, err)
	}
	ext := strings.ToLower(mtype.Extension())
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	return ext, nil
}

// ReadTag returns the current value of a tag, or "" when unset.
func (e *ExifTool) ReadTag(path, tag string) (string, error) {
	out, err := e.run(e.binary, []string{"-s3", "-" + tag, path})
	if err != nil {
		return "", fmt.Errorf("reading %s tag: %w", tag, err)
	}
	return strings.TrimSpace(out), nil
}

// WriteTag sets a tag to the given value, overwriting in place.
func (e *ExifTool) WriteTag(path, tag, value string) error {
	if _, err := e.run(e.binary, []string{"-overwrite_original", "-" + tag + "=" + value, path}); err != nil {
		return fmt.Errorf("writing %s tag: %w", tag, err)
	}
	return nil
}

// Compile-time check that ExifTool implements psb.Annotator
var _ psb.Annotator = (*ExifTool)(nil)
