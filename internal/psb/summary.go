package psb

import "time"

// ReconcileLevel classifies the post-collection consistency check. It is a
// best-effort diagnostic, not a transactional guarantee.
type ReconcileLevel int

const (
	// ReconcileComplete means every count lines up: one file on disk per
	// processed file, one processed file per catalog asset, no errors.
	ReconcileComplete ReconcileLevel = iota
	// ReconcileWarning means the counts differ but the on-disk total still
	// accounts for everything processed (live-photo pairs, stray files, or
	// a processed-vs-found mismatch).
	ReconcileWarning
	// ReconcileError means the on-disk total does not reconcile at all:
	// fewer files on disk than this run processed and can explain.
	ReconcileError
)

func (l ReconcileLevel) String() string {
	switch l {
	case ReconcileComplete:
		return "complete"
	case ReconcileWarning:
		return "warning"
	case ReconcileError:
		return "error"
	}
	return "unknown"
}

// AlbumSummary aggregates the per-collection counters of one run.
type AlbumSummary struct {
	Album       string
	AssetsFound int // asset records listed by the catalog
	Processed   int // source files handled (an asset may have two)

	Copied       int // files actually written
	Unchanged    int // copy primitive found the destination unchanged
	SkippedExact int // exact-path matches
	SkippedFuzzy int // secondary-archive matches

	MissingAssets    int // assets with no source files on disk
	CopyFailures     int
	AnnotateFailures int

	OnDiskPrimary   int // files in the primary collection folder after the run
	OnDiskSecondary int // files in the secondary collection folder, if configured

	Level ReconcileLevel
}

// Reconcile classifies how well the on-disk state matches what this run
// processed and what the catalog says exists.
func (s *AlbumSummary) Reconcile() ReconcileLevel {
	onDisk := s.OnDiskPrimary + s.OnDiskSecondary
	switch {
	case onDisk == s.Processed && s.Processed == s.AssetsFound &&
		s.MissingAssets == 0 && s.CopyFailures == 0:
		return ReconcileComplete
	case onDisk >= s.Processed-s.CopyFailures:
		return ReconcileWarning
	default:
		return ReconcileError
	}
}

// RunSummary aggregates one executor run across all selected albums.
type RunSummary struct {
	Albums         []AlbumSummary
	AlbumsNotFound []string
	Elapsed        time.Duration
}
