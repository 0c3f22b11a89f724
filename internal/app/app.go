package app

import (
	"fmt"
	"os"

	"psb-go/internal/annotate"
	"psb-go/internal/catalog"
	"psb-go/internal/config"
	"psb-go/internal/fs"
	"psb-go/internal/locator"
	"psb-go/internal/psb"

	"github.com/google/uuid"
)

// PSBApp is the application layer between the CLI and BackupService.
// It constructs all dependencies from config, exposes the high-level
// operations, and manages the catalog and log file lifecycle on Close.
type PSBApp struct {
	cfg     *config.Config
	catalog psb.Catalog
	service *psb.BackupService
	logFile *os.File
}

// NewPSBApp creates a fully wired PSBApp from the given config.
// The caller must call Close when done.
func NewPSBApp(cfg *config.Config, verbose bool) (*PSBApp, error) {
	indexPath, err := catalog.DiscoverIndexPath(cfg.CacheRoot)
	if err != nil {
		return nil, fmt.Errorf("locating catalog: %w", err)
	}

	cat := catalog.NewSQLiteCatalog(indexPath)
	fsys := fs.NewOSFilesystem()
	loc := locator.NewAssetLocator(cfg.CacheRoot, fsys)
	annotator := annotate.NewExifTool(cfg.ExifTool)

	runID := uuid.New().String()
	logger, logFile, err := newLogger(cfg.LogDir, runID, verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	svc := psb.NewBackupService(cat, loc, fsys, annotator, &slogAdapter{l: logger}, psb.RealClock{})

	return &PSBApp{
		cfg:     cfg,
		catalog: cat,
		service: svc,
		logFile: logFile,
	}, nil
}

// ListAlbums returns the album names tracked by the cache.
func (a *PSBApp) ListAlbums() ([]string, error) {
	return a.catalog.ListAlbums()
}

// Backup runs the backup for the named albums, or for every album when all
// is set. Returns the run summary.
func (a *PSBApp) Backup(albums []string, all bool, primaryRoot, altRoot string) (*psb.RunSummary, error) {
	if all {
		var err error
		albums, err = a.catalog.ListAlbums()
		if err != nil {
			return nil, fmt.Errorf("listing albums: %w", err)
		}
	}
	return a.service.Run(albums, psb.RunOptions{PrimaryRoot: primaryRoot, AltRoot: altRoot})
}

// Close closes the catalog and the log file.
func (a *PSBApp) Close() error {
	var firstErr error

	if err := a.catalog.Close(); err != nil {
		firstErr = fmt.Errorf("closing catalog: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
