package psb

// Annotator is a black-box key/value accessor for metadata tags on a file,
// plus content-based format detection for extension correction.
type Annotator interface {
	// DetectedExtension returns the canonical extension (with leading dot,
	// lowercase, e.g. ".jpg") for the file's embedded format, determined
	// from content rather than the filename.
	DetectedExtension(path string) (string, error)

	// ReadTag returns the current value of a tag, or "" when unset.
	ReadTag(path, tag string) (string, error)

	// WriteTag sets a tag to the given value.
	WriteTag(path, tag, value string) error
}
