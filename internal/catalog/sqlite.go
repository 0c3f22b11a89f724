package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	"psb-go/internal/psb"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteCatalog implements psb.Catalog over the shared-stream Model.sqlite
// index. The connection is opened lazily on first query and cached for the
// life of the process. All queries are parameterized and read-only.
type SQLiteCatalog struct {
	path string
	db   *sql.DB
}

// NewSQLiteCatalog creates a catalog for the index file at path. The file is
// not opened until the first query.
func NewSQLiteCatalog(path string) *SQLiteCatalog {
	return &SQLiteCatalog{path: path}
}

// NewSQLiteCatalogFromDB wraps an existing database connection.
// The caller is responsible for the connection's configuration.
func NewSQLiteCatalogFromDB(db *sql.DB) *SQLiteCatalog {
	return &SQLiteCatalog{db: db}
}

// OpenConnection opens a SQLite connection configured for catalog access.
// The index belongs to the photo-sharing agent, so the connection is forced
// read-only.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	if _, err := db.Exec("PRAGMA query_only = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set query_only: %w", err)
	}

	return db, nil
}

// conn returns the cached connection, opening it on first use.
func (c *SQLiteCatalog) conn() (*sql.DB, error) {
	if c.db != nil {
		return c.db, nil
	}
	db, err := OpenConnection(c.path)
	if err != nil {
		return nil, err
	}
	c.db = db
	return db, nil
}

func (c *SQLiteCatalog) ListAlbums() ([]string, error) {
	db, err := c.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT name FROM Albums")
	if err != nil {
		return nil, fmt.Errorf("listing albums: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning album row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading album rows: %w", err)
	}
	return names, nil
}

func (c *SQLiteCatalog) ResolveAlbumID(name string) (string, error) {
	db, err := c.conn()
	if err != nil {
		return "", err
	}

	var id string
	err = db.QueryRow("SELECT GUID FROM Albums WHERE name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%q: %w", name, psb.ErrAlbumNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("resolving album id: %w", err)
	}
	return id, nil
}

func (c *SQLiteCatalog) ListAssets(name string) ([]psb.Asset, error) {
	db, err := c.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT ac.GUID, ac.photoDate
		FROM AssetCollections ac
		JOIN Albums a ON a.GUID = ac.albumGUID
		WHERE a.name = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	defer rows.Close()

	var assets []psb.Asset
	for rows.Next() {
		var id string
		var offset sql.NullInt64 // NULL when the capture time is unknown
		if err := rows.Scan(&id, &offset); err != nil {
			return nil, fmt.Errorf("scanning asset row: %w", err)
		}
		assets = append(assets, psb.Asset{ID: id, CaptureOffset: offset.Int64})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading asset rows: %w", err)
	}
	return assets, nil
}

// Close closes the catalog connection, if one was ever opened.
func (c *SQLiteCatalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteCatalog implements psb.Catalog
var _ psb.Catalog = (*SQLiteCatalog)(nil)
