package psb

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FolderPrefix is the fixed destination folder naming convention: one folder
// per stream, prefixed so backed-up streams sort together.
const FolderPrefix = "_photostream "

const timestampLayout = "20060102_150405"

// Action is the resolver's verdict for one (asset, source file) pair.
type Action int

const (
	// ActionCopy means the file must be copied to Decision.Path.
	ActionCopy Action = iota
	// ActionSkipExact means the file already exists at the exact
	// destination path.
	ActionSkipExact
	// ActionSkipFuzzy means a file for the same asset and base name was
	// found in the secondary archive under a drifted name.
	ActionSkipFuzzy
)

// Decision is the resolver's output for one source file.
type Decision struct {
	Action Action
	// Path is the final destination path (set for every action so skips
	// can be logged with the path they matched).
	Path string
	// Folder is the destination collection folder containing Path.
	Folder string
	// Base is the final canonical basename, after lowercasing, .jpeg
	// canonicalization and any extension correction.
	Base string
	// Corrected reports that the extension was rewritten to match the
	// file's embedded format.
	Corrected bool
	// Duplicate reports that another pair already resolved to the same
	// final path within this run. The caller must flag it, not overwrite.
	Duplicate bool
}

// Resolver decides, for one (asset, source file) pair, whether the file is
// already backed up or must be copied, and computes the final destination
// path. Decisions are deterministic for fixed inputs: re-running against the
// same roots and catalog computes the same paths.
type Resolver struct {
	primaryRoot string
	altRoot     string // empty disables the fuzzy archive check
	fs          Filesystem
	annotator   Annotator
	produced    map[string]bool // final copy paths produced this run
}

// NewResolver creates a resolver for one run. altRoot may be empty, which
// disables the fuzzy-match step rather than selecting a separate code path.
func NewResolver(primaryRoot, altRoot string, fs Filesystem, annotator Annotator) *Resolver {
	return &Resolver{
		primaryRoot: primaryRoot,
		altRoot:     altRoot,
		fs:          fs,
		annotator:   annotator,
		produced:    make(map[string]bool),
	}
}

// NormalizeAssetID strips hyphens from a catalog GUID and lowercases it.
func NormalizeAssetID(id string) string {
	return strings.ToLower(strings.ReplaceAll(id, "-", ""))
}

// CanonicalBaseName lowercases the file's name and canonicalizes a .jpeg
// extension to .jpg, so the same logical extension never produces two
// destination variants.
func CanonicalBaseName(path string) string {
	base := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(base, ".jpeg") {
		base = strings.TrimSuffix(base, ".jpeg") + ".jpg"
	}
	return base
}

// AlbumFolder returns the collection folder name for an album.
func AlbumFolder(albumName string) string {
	return FolderPrefix + albumName
}

// Resolve decides skip-or-copy for one source file of an asset.
func (r *Resolver) Resolve(albumName string, asset Asset, sourcePath string) (Decision, error) {
	timestamp := asset.CaptureTime().Format(timestampLayout)
	id := NormalizeAssetID(asset.ID)
	base := CanonicalBaseName(sourcePath)

	folder := filepath.Join(r.primaryRoot, AlbumFolder(albumName))
	candidate := filepath.Join(folder, timestamp+"-"+id+"-"+base)

	if r.exactMatch(folder, candidate) {
		return Decision{Action: ActionSkipExact, Path: candidate, Folder: folder, Base: base}, nil
	}

	if r.altRoot != "" {
		found, err := r.fuzzyMatch(albumName, id, base)
		if err != nil {
			return Decision{}, err
		}
		if found {
			return Decision{Action: ActionSkipFuzzy, Path: candidate, Folder: folder, Base: base}, nil
		}
	}

	// Files occasionally carry an extension that does not match their
	// embedded format. Correct it from content before committing to a
	// path. A failed detection leaves the filename extension in place.
	corrected := false
	if detected, err := r.annotator.DetectedExtension(sourcePath); err == nil && detected != "" {
		if ext := filepath.Ext(base); detected != ext {
			base = strings.TrimSuffix(base, ext) + detected
			candidate = filepath.Join(folder, timestamp+"-"+id+"-"+base)
			corrected = true
			if r.exactMatch(folder, candidate) {
				return Decision{Action: ActionSkipExact, Path: candidate, Folder: folder, Base: base, Corrected: true}, nil
			}
		}
	}

	d := Decision{Action: ActionCopy, Path: candidate, Folder: folder, Base: base, Corrected: corrected}
	if r.produced[candidate] {
		d.Duplicate = true
	}
	r.produced[candidate] = true
	return d, nil
}

// exactMatch reports whether the candidate can be skipped without copying.
// The per-file stat only runs while the collection folder has not been
// created. Once the folder exists, CopyIfChanged handles dedup instead, so
// re-runs report unchanged files rather than exact skips.
func (r *Resolver) exactMatch(folder, candidate string) bool {
	return !r.fs.DirExists(folder) && r.fs.FileExists(candidate)
}

// fuzzyMatch scans the secondary archive for any file carrying the asset id
// and base name, regardless of timestamp or extension. Downstream archival
// tools rename files, so only the "-<id>-<stem>" core is matched.
func (r *Resolver) fuzzyMatch(albumName, id, base string) (bool, error) {
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	pattern := filepath.Join(r.altRoot, AlbumFolder(albumName), "*-"+id+"-"+stem+"*")
	matches, err := r.fs.Glob(pattern)
	if err != nil {
		return false, fmt.Errorf("scanning archive for asset %s: %w", id, err)
	}
	return len(matches) > 0, nil
}
