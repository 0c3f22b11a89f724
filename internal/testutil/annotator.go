package testutil

import (
	"path/filepath"
	"strings"

	"psb-go/internal/psb"
)

// MockAnnotator is an in-memory tag store for testing. Unless an explicit
// entry exists in Extensions, detection agrees with the filename extension so
// no correction happens.
type MockAnnotator struct {
	// Extensions maps a path to its detected extension, overriding the
	// filename-derived default.
	Extensions map[string]string

	// Tags holds the written tag values, keyed by path then tag name.
	Tags map[string]map[string]string

	// WriteErr, when set, is returned by every WriteTag call.
	WriteErr error
}

// NewMockAnnotator creates an empty mock annotator.
func NewMockAnnotator() *MockAnnotator {
	return &MockAnnotator{
		Extensions: make(map[string]string),
		Tags:       make(map[string]map[string]string),
	}
}

func (m *MockAnnotator) DetectedExtension(path string) (string, error) {
	if ext, ok := m.Extensions[path]; ok {
		return ext, nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	return ext, nil
}

func (m *MockAnnotator) ReadTag(path, tag string) (string, error) {
	return m.Tags[path][tag], nil
}

func (m *MockAnnotator) WriteTag(path, tag, value string) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if m.Tags[path] == nil {
		m.Tags[path] = make(map[string]string)
	}
	m.Tags[path][tag] = value
	return nil
}

// Compile-time check that MockAnnotator implements psb.Annotator
var _ psb.Annotator = (*MockAnnotator)(nil)
