package psb

// Catalog provides read-only queries over the shared-stream index.
// Implementations open the underlying storage lazily and cache the handle
// for the life of the process; nothing here ever writes to the index.
type Catalog interface {
	// ListAlbums returns album names in the catalog's native order.
	ListAlbums() ([]string, error)

	// ResolveAlbumID returns the opaque identifier for an exact album name.
	// Returns an error wrapping ErrAlbumNotFound when no album matches.
	ResolveAlbumID(name string) (string, error)

	// ListAssets returns the asset records belonging to the named album,
	// in the catalog's native order.
	ListAssets(name string) ([]Asset, error)

	// Close releases the catalog handle.
	Close() error
}

// SourceLocator resolves the on-disk source files belonging to one asset.
type SourceLocator interface {
	// LocateSourceFiles returns the absolute paths of the asset's files,
	// excluding thumbnails and live-photo video thumbnail artifacts.
	// An empty result is not an error; the caller counts it.
	LocateSourceFiles(albumID, assetID string) ([]string, error)
}
