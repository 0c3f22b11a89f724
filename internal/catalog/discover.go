package catalog

import (
	"fmt"
	"os"
	"path/filepath"
)

// indexFileName is the structured index the photo-sharing agent maintains.
const indexFileName = "Model.sqlite"

// DiscoverIndexPath locates the shared-stream index under cacheRoot. The
// cache keeps its database inside a single opaque per-account subdirectory
// of <cacheRoot>/database; exactly one subdirectory is expected.
func DiscoverIndexPath(cacheRoot string) (string, error) {
	dbDir := filepath.Join(cacheRoot, "database")
	entries, err := os.ReadDir(dbDir)
	if err != nil {
		return "", fmt.Errorf("reading catalog directory: %w", err)
	}

	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, entry.Name())
		}
	}
	if len(subdirs) != 1 {
		return "", fmt.Errorf("expected exactly one catalog subdirectory in %s, found %d", dbDir, len(subdirs))
	}

	return filepath.Join(dbDir, subdirs[0], indexFileName), nil
}
