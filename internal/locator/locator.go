package locator

import (
	"fmt"
	"path/filepath"
	"strings"

	"psb-go/internal/psb"
)

// videoThumbnailSuffix marks the auxiliary still the cache keeps alongside a
// live-photo motion clip. It is an artifact of the pairing, not an asset
// file to back up.
const videoThumbnailSuffix = ".5.jpg"

// AssetLocator finds the on-disk source files for catalog assets under the
// cache's assets tree, keyed by album and asset identifier.
type AssetLocator struct {
	cacheRoot string
	fs        psb.Filesystem
}

// NewAssetLocator creates a locator rooted at the photo-sharing cache.
func NewAssetLocator(cacheRoot string, fs psb.Filesystem) *AssetLocator {
	return &AssetLocator{cacheRoot: cacheRoot, fs: fs}
}

// LocateSourceFiles returns the asset's files under
// <cacheRoot>/assets/<albumID>/<assetID>/, excluding directories, anything
// with "thumbnail" in its path, and live-photo video thumbnails.
func (l *AssetLocator) LocateSourceFiles(albumID, assetID string) ([]string, error) {
	pattern := filepath.Join(l.cacheRoot, "assets", albumID, assetID, "*")
	matches, err := l.fs.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing asset files: %w", err)
	}

	var files []string
	for _, match := range matches {
		if l.fs.DirExists(match) {
			continue
		}
		if strings.Contains(match, "thumbnail") {
			continue
		}
		if strings.HasSuffix(strings.ToLower(match), videoThumbnailSuffix) {
			continue
		}
		files = append(files, match)
	}
	return files, nil
}

// Compile-time check that AssetLocator implements psb.SourceLocator
var _ psb.SourceLocator = (*AssetLocator)(nil)
