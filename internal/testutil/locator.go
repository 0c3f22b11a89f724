package testutil

import (
	"fmt"

	"psb-go/internal/psb"
)

// MockLocator maps (albumID, assetID) pairs to source file paths.
type MockLocator struct {
	// Sources maps "albumID/assetID" to the asset's source files.
	Sources map[string][]string

	// Fail marks "albumID/assetID" keys whose lookup should error.
	Fail map[string]bool
}

// NewMockLocator creates an empty mock locator.
func NewMockLocator() *MockLocator {
	return &MockLocator{
		Sources: make(map[string][]string),
		Fail:    make(map[string]bool),
	}
}

// AddSource registers a source file for the given asset.
func (m *MockLocator) AddSource(albumID, assetID, path string) {
	key := albumID + "/" + assetID
	m.Sources[key] = append(m.Sources[key], path)
}

func (m *MockLocator) LocateSourceFiles(albumID, assetID string) ([]string, error) {
	key := albumID + "/" + assetID
	if m.Fail[key] {
		return nil, fmt.Errorf("locating asset %s failed", assetID)
	}
	return m.Sources[key], nil
}

// Compile-time check that MockLocator implements psb.SourceLocator
var _ psb.SourceLocator = (*MockLocator)(nil)
