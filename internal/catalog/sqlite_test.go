package catalog_test

import (
	"errors"
	"testing"

	"psb-go/internal/psb"
	"psb-go/internal/testutil"
)

func TestSQLiteCatalog_ListAlbums(t *testing.T) {
	t.Run("returns every album name", func(t *testing.T) {
		c := testutil.NewTestCatalog(t)
		c.AddAlbum("ALB-1", "Trip")
		c.AddAlbum("ALB-2", "Family")

		names, err := c.ListAlbums()
		if err != nil {
			t.Fatalf("ListAlbums() error = %v", err)
		}
		if len(names) != 2 {
			t.Fatalf("ListAlbums() = %v, want 2 names", names)
		}
	})

	t.Run("empty catalog yields no names", func(t *testing.T) {
		c := testutil.NewTestCatalog(t)

		names, err := c.ListAlbums()
		if err != nil {
			t.Fatalf("ListAlbums() error = %v", err)
		}
		if len(names) != 0 {
			t.Errorf("ListAlbums() = %v, want empty", names)
		}
	})
}

func TestSQLiteCatalog_ResolveAlbumID(t *testing.T) {
	t.Run("resolves an exact name to its GUID", func(t *testing.T) {
		c := testutil.NewTestCatalog(t)
		c.AddAlbum("ALB-1", "Trip")

		id, err := c.ResolveAlbumID("Trip")
		if err != nil {
			t.Fatalf("ResolveAlbumID() error = %v", err)
		}
		if id != "ALB-1" {
			t.Errorf("ResolveAlbumID() = %q, want %q", id, "ALB-1")
		}
	})

	t.Run("unknown name wraps ErrAlbumNotFound", func(t *testing.T) {
		c := testutil.NewTestCatalog(t)
		c.AddAlbum("ALB-1", "Trip")

		_, err := c.ResolveAlbumID("Nope")
		if !errors.Is(err, psb.ErrAlbumNotFound) {
			t.Errorf("ResolveAlbumID() error = %v, want ErrAlbumNotFound", err)
		}
	})

	t.Run("name match is case sensitive", func(t *testing.T) {
		c := testutil.NewTestCatalog(t)
		c.AddAlbum("ALB-1", "Trip")

		_, err := c.ResolveAlbumID("trip")
		if !errors.Is(err, psb.ErrAlbumNotFound) {
			t.Errorf("ResolveAlbumID() error = %v, want ErrAlbumNotFound", err)
		}
	})
}

func TestSQLiteCatalog_ListAssets(t *testing.T) {
	t.Run("returns assets for the named album only", func(t *testing.T) {
		c := testutil.NewTestCatalog(t)
		c.AddAlbum("ALB-1", "Trip")
		c.AddAlbum("ALB-2", "Family")
		c.AddAsset("ALB-1", "AAAA-0001", 100)
		c.AddAsset("ALB-1", "AAAA-0002", 200)
		c.AddAsset("ALB-2", "BBBB-0001", 300)

		assets, err := c.ListAssets("Trip")
		if err != nil {
			t.Fatalf("ListAssets() error = %v", err)
		}
		if len(assets) != 2 {
			t.Fatalf("ListAssets() = %v, want 2 assets", assets)
		}
		for _, a := range assets {
			if a.ID != "AAAA-0001" && a.ID != "AAAA-0002" {
				t.Errorf("unexpected asset %q", a.ID)
			}
		}
	})

	t.Run("null capture time scans as zero offset", func(t *testing.T) {
		c := testutil.NewTestCatalog(t)
		c.AddAlbum("ALB-1", "Trip")
		if _, err := c.DB().Exec(
			"INSERT INTO AssetCollections (GUID, albumGUID, photoDate) VALUES (?, ?, NULL)",
			"AAAA-0001", "ALB-1"); err != nil {
			t.Fatalf("insert: %v", err)
		}

		assets, err := c.ListAssets("Trip")
		if err != nil {
			t.Fatalf("ListAssets() error = %v", err)
		}
		if len(assets) != 1 {
			t.Fatalf("ListAssets() = %v, want 1 asset", assets)
		}
		if assets[0].CaptureOffset != 0 {
			t.Errorf("CaptureOffset = %d, want 0", assets[0].CaptureOffset)
		}
		if !assets[0].CaptureTime().Equal(psb.EpochBase) {
			t.Errorf("CaptureTime() = %v, want epoch base", assets[0].CaptureTime())
		}
	})
}
