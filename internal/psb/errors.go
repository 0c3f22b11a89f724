package psb

import "errors"

var (
	// ErrAlbumNotFound indicates the catalog has no album with the requested
	// name. In multi-album runs this is fatal only for that album.
	ErrAlbumNotFound = errors.New("album not found")

	// ErrNoDestination indicates no primary destination root was configured.
	ErrNoDestination = errors.New("no destination configured")
)
