package psb

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Tags written on each backed-up file. PreservedFileName carries the asset's
// original identity; Album groups the file back into its stream.
const (
	attributionTag = "PreservedFileName"
	albumTag       = "Album"
)

// BackupService orchestrates the per-album, per-asset backup loop.
// Execution is sequential; all state lives in per-run summaries.
type BackupService struct {
	catalog   Catalog
	locator   SourceLocator
	fs        Filesystem
	annotator Annotator
	logger    Logger
	clock     Clock
}

// NewBackupService creates a BackupService with the provided dependencies.
func NewBackupService(catalog Catalog, locator SourceLocator, fs Filesystem, annotator Annotator, logger Logger, clock Clock) *BackupService {
	return &BackupService{
		catalog:   catalog,
		locator:   locator,
		fs:        fs,
		annotator: annotator,
		logger:    logger,
		clock:     clock,
	}
}

// RunOptions selects the destination roots for one run.
type RunOptions struct {
	PrimaryRoot string
	// AltRoot is the optional secondary archive. When set, files already
	// archived there under a drifted name are not copied again.
	AltRoot string
}

// Run backs up the named albums. An unknown album name is fatal only for
// that album; per-asset and per-file failures are counted in the summary and
// never unwind the loop.
func (s *BackupService) Run(albums []string, opts RunOptions) (*RunSummary, error) {
	if opts.PrimaryRoot == "" {
		return nil, ErrNoDestination
	}

	start := s.clock.Now()
	resolver := NewResolver(opts.PrimaryRoot, opts.AltRoot, s.fs, s.annotator)
	summary := &RunSummary{}

	for _, name := range albums {
		albumSummary, err := s.backupAlbum(resolver, name, opts)
		if err != nil {
			if errors.Is(err, ErrAlbumNotFound) {
				s.logger.Error("album not found in catalog", "album", name)
				summary.AlbumsNotFound = append(summary.AlbumsNotFound, name)
				continue
			}
			return nil, err
		}
		summary.Albums = append(summary.Albums, *albumSummary)
	}

	summary.Elapsed = s.clock.Now().Sub(start)
	return summary, nil
}

func (s *BackupService) backupAlbum(resolver *Resolver, name string, opts RunOptions) (*AlbumSummary, error) {
	albumID, err := s.catalog.ResolveAlbumID(name)
	if err != nil {
		return nil, fmt.Errorf("resolving album %q: %w", name, err)
	}

	assets, err := s.catalog.ListAssets(name)
	if err != nil {
		return nil, fmt.Errorf("listing assets for %q: %w", name, err)
	}

	summary := &AlbumSummary{Album: name, AssetsFound: len(assets)}

	for _, asset := range assets {
		files, err := s.locator.LocateSourceFiles(albumID, asset.ID)
		if err != nil {
			summary.MissingAssets++
			s.logger.Warn("locating source files", "album", name, "asset", asset.ID, "error", err)
			continue
		}
		if len(files) == 0 {
			summary.MissingAssets++
			s.logger.Warn("no source files for asset", "album", name, "asset", asset.ID)
			continue
		}
		for _, file := range files {
			s.backupFile(resolver, summary, name, asset, file)
		}
	}

	s.finishAlbum(summary, name, opts)
	return summary, nil
}

// backupFile runs one source file through the resolver and, on a copy
// decision, performs the copy, annotation and timestamp steps. Failures are
// counted and logged; the loop always proceeds to the next file.
func (s *BackupService) backupFile(resolver *Resolver, summary *AlbumSummary, album string, asset Asset, src string) {
	summary.Processed++

	decision, err := resolver.Resolve(album, asset, src)
	if err != nil {
		summary.CopyFailures++
		s.logger.Error("resolving destination", "album", album, "file", src, "error", err)
		return
	}

	switch decision.Action {
	case ActionSkipExact:
		summary.SkippedExact++
		s.logger.Debug("skip: already at destination", "path", decision.Path)
		return
	case ActionSkipFuzzy:
		summary.SkippedFuzzy++
		s.logger.Debug("skip: found in archive", "asset", asset.ID, "file", filepath.Base(src))
		return
	}

	if decision.Duplicate {
		s.logger.Warn("duplicate destination path, keeping existing file", "path", decision.Path)
	}
	if decision.Corrected {
		s.logger.Debug("corrected extension from embedded format", "file", src, "base", decision.Base)
	}

	// The collection folder is created on the first real copy, not eagerly
	// per album.
	if err := s.fs.MkdirAll(decision.Folder); err != nil {
		summary.CopyFailures++
		s.logger.Error("creating destination folder", "folder", decision.Folder, "error", err)
		return
	}

	copied, err := s.fs.CopyIfChanged(src, decision.Path)
	if err != nil {
		summary.CopyFailures++
		s.logger.Error("copy failed", "src", src, "dst", decision.Path, "error", err)
		return
	}
	if copied {
		summary.Copied++
		s.logger.Debug("copied", "src", src, "dst", decision.Path)
	} else {
		summary.Unchanged++
		s.logger.Debug("destination unchanged", "dst", decision.Path)
	}

	s.annotate(summary, album, asset, decision)

	if err := s.fs.Chtimes(decision.Path, asset.CaptureTime()); err != nil {
		s.logger.Warn("setting capture time", "path", decision.Path, "error", err)
	}
}

// annotate writes the attribution tag and, when it differs from the current
// value, the album tag. Annotation failures are diagnostic only.
func (s *BackupService) annotate(summary *AlbumSummary, album string, asset Asset, decision Decision) {
	attribution := NormalizeAssetID(asset.ID) + "-" + decision.Base
	if err := s.annotator.WriteTag(decision.Path, attributionTag, attribution); err != nil {
		summary.AnnotateFailures++
		s.logger.Warn("writing attribution tag", "path", decision.Path, "error", err)
		return
	}

	folder := AlbumFolder(album)
	current, err := s.annotator.ReadTag(decision.Path, albumTag)
	if err != nil {
		summary.AnnotateFailures++
		s.logger.Warn("reading album tag", "path", decision.Path, "error", err)
		return
	}
	if current == folder {
		return // avoid a redundant write
	}
	if err := s.annotator.WriteTag(decision.Path, albumTag, folder); err != nil {
		summary.AnnotateFailures++
		s.logger.Warn("writing album tag", "path", decision.Path, "error", err)
	}
}

// finishAlbum recomputes on-disk counts, classifies the reconciliation tier
// and emits the album's summary line at the matching level.
func (s *BackupService) finishAlbum(summary *AlbumSummary, name string, opts RunOptions) {
	folder := AlbumFolder(name)

	count, err := s.fs.CountFiles(filepath.Join(opts.PrimaryRoot, folder))
	if err != nil {
		s.logger.Warn("counting destination files", "album", name, "error", err)
	}
	summary.OnDiskPrimary = count

	if opts.AltRoot != "" {
		count, err := s.fs.CountFiles(filepath.Join(opts.AltRoot, folder))
		if err != nil {
			s.logger.Warn("counting archive files", "album", name, "error", err)
		}
		summary.OnDiskSecondary = count
	}

	summary.Level = summary.Reconcile()
	args := []any{
		"album", name,
		"assets", summary.AssetsFound,
		"processed", summary.Processed,
		"copied", summary.Copied,
		"unchanged", summary.Unchanged,
		"skipped_exact", summary.SkippedExact,
		"skipped_fuzzy", summary.SkippedFuzzy,
		"missing", summary.MissingAssets,
		"copy_failures", summary.CopyFailures,
		"on_disk", summary.OnDiskPrimary + summary.OnDiskSecondary,
	}
	switch summary.Level {
	case ReconcileComplete:
		s.logger.Info("album backup complete", args...)
	case ReconcileWarning:
		s.logger.Warn("album counts do not fully reconcile", args...)
	case ReconcileError:
		s.logger.Error("album on-disk count mismatch", args...)
	}
}
