package testutil

import (
	"database/sql"
	"testing"

	"psb-go/internal/catalog"
)

// Schema mirrors the parts of the shared-stream index that psb queries.
const Schema = `
CREATE TABLE Albums (
	GUID TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE AssetCollections (
	GUID TEXT PRIMARY KEY,
	albumGUID TEXT NOT NULL REFERENCES Albums(GUID),
	photoDate INTEGER
);
`

// TestCatalog wraps an in-memory catalog with seed helpers.
type TestCatalog struct {
	*catalog.SQLiteCatalog
	db *sql.DB
	t  *testing.T
}

// NewTestCatalog creates an in-memory SQLite catalog with schema applied.
// The catalog is automatically closed when the test completes.
func NewTestCatalog(t *testing.T) *TestCatalog {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	c := catalog.NewSQLiteCatalogFromDB(db)
	t.Cleanup(func() {
		c.Close()
	})

	return &TestCatalog{SQLiteCatalog: c, db: db, t: t}
}

// DB exposes the underlying connection for tests that need raw SQL.
func (c *TestCatalog) DB() *sql.DB {
	return c.db
}

// AddAlbum inserts an album row.
func (c *TestCatalog) AddAlbum(id, name string) {
	c.t.Helper()
	if _, err := c.db.Exec("INSERT INTO Albums (GUID, name) VALUES (?, ?)", id, name); err != nil {
		c.t.Fatalf("failed to insert album: %v", err)
	}
}

// AddAsset inserts an asset row for the given album.
func (c *TestCatalog) AddAsset(albumID, assetID string, captureOffset int64) {
	c.t.Helper()
	if _, err := c.db.Exec(
		"INSERT INTO AssetCollections (GUID, albumGUID, photoDate) VALUES (?, ?, ?)",
		assetID, albumID, captureOffset); err != nil {
		c.t.Fatalf("failed to insert asset: %v", err)
	}
}
