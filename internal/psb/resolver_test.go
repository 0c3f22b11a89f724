package psb_test

import (
	"math/rand"
	"path/filepath"
	"testing"

	"psb-go/internal/psb"
	"psb-go/internal/testutil"
)

func TestNormalizeAssetID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"ABCDEF-1234", "abcdef1234"},
		{"a1b2c3", "a1b2c3"},
		{"AA-BB-CC-DD", "aabbccdd"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := psb.NormalizeAssetID(tt.id); got != tt.want {
			t.Errorf("NormalizeAssetID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestCanonicalBaseName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/cache/a/Photo.JPEG", "photo.jpg"},
		{"/cache/a/IMG_0001.HEIC", "img_0001.heic"},
		{"/cache/a/clip.MOV", "clip.mov"},
		{"/cache/a/already.jpg", "already.jpg"},
	}
	for _, tt := range tests {
		if got := psb.CanonicalBaseName(tt.path); got != tt.want {
			t.Errorf("CanonicalBaseName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestResolver_Resolve(t *testing.T) {
	t.Run("computes destination path from capture time, id and base name", func(t *testing.T) {
		fs := testutil.NewMockFilesystem()
		annotator := testutil.NewMockAnnotator()
		r := psb.NewResolver("/backup", "", fs, annotator)

		src := "/cache/assets/ALB-1/ABCDEF-1234/Photo.JPEG"
		fs.AddFile(src, 100)

		d, err := r.Resolve("Trip", psb.Asset{ID: "ABCDEF-1234", CaptureOffset: 0}, src)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if d.Action != psb.ActionCopy {
			t.Errorf("Resolve() action = %v, want ActionCopy", d.Action)
		}
		want := filepath.Join("/backup", "_photostream Trip", "20010101_000000-abcdef1234-photo.jpg")
		if d.Path != want {
			t.Errorf("Resolve() path = %q, want %q", d.Path, want)
		}
	})

	t.Run("is deterministic across resolver instances", func(t *testing.T) {
		rnd := rand.New(rand.NewSource(42))
		for i := 0; i < 20; i++ {
			asset := psb.Asset{
				ID:            "ASSET-" + string(rune('A'+rnd.Intn(26))),
				CaptureOffset: rnd.Int63n(1_000_000_000),
			}
			src := "/cache/a/IMG_" + string(rune('0'+rnd.Intn(10))) + ".HEIC"

			first, err := psb.NewResolver("/backup", "", testutil.NewMockFilesystem(), testutil.NewMockAnnotator()).
				Resolve("Trip", asset, src)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			second, err := psb.NewResolver("/backup", "", testutil.NewMockFilesystem(), testutil.NewMockAnnotator()).
				Resolve("Trip", asset, src)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if first.Path != second.Path {
				t.Fatalf("Resolve() not deterministic: %q != %q", first.Path, second.Path)
			}
		}
	})

	t.Run("skips exact match only while folder is absent", func(t *testing.T) {
		folder := filepath.Join("/backup", "_photostream Trip")
		candidate := filepath.Join(folder, "20010101_000000-abcdef1234-photo.jpg")
		asset := psb.Asset{ID: "ABCDEF-1234", CaptureOffset: 0}
		src := "/cache/a/photo.jpg"

		fs := testutil.NewMockFilesystem()
		fs.AddFile(candidate, 100)
		r := psb.NewResolver("/backup", "", fs, testutil.NewMockAnnotator())

		d, err := r.Resolve("Trip", asset, src)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if d.Action != psb.ActionSkipExact {
			t.Errorf("Resolve() action = %v, want ActionSkipExact", d.Action)
		}

		// Once the folder exists the per-file check is off and the copy
		// primitive handles dedup instead.
		fs2 := testutil.NewMockFilesystem()
		fs2.AddDir(folder)
		fs2.AddFile(candidate, 100)
		r2 := psb.NewResolver("/backup", "", fs2, testutil.NewMockAnnotator())

		d2, err := r2.Resolve("Trip", asset, src)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if d2.Action != psb.ActionCopy {
			t.Errorf("Resolve() action with folder present = %v, want ActionCopy", d2.Action)
		}
	})

	t.Run("skips when asset is already archived under a drifted name", func(t *testing.T) {
		fs := testutil.NewMockFilesystem()
		// Archive copy renamed by a downstream tool: different timestamp,
		// different extension, same id and stem.
		fs.AddFile(filepath.Join("/alt", "_photostream Trip", "20200101_000000-abcdef1234-img.png"), 100)

		r := psb.NewResolver("/backup", "/alt", fs, testutil.NewMockAnnotator())
		d, err := r.Resolve("Trip", psb.Asset{ID: "ABCDEF-1234", CaptureOffset: 0}, "/cache/a/img.heic")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if d.Action != psb.ActionSkipFuzzy {
			t.Errorf("Resolve() action = %v, want ActionSkipFuzzy", d.Action)
		}
	})

	t.Run("archive check is disabled without a secondary root", func(t *testing.T) {
		fs := testutil.NewMockFilesystem()
		fs.AddFile(filepath.Join("/alt", "_photostream Trip", "20200101_000000-abcdef1234-img.png"), 100)

		r := psb.NewResolver("/backup", "", fs, testutil.NewMockAnnotator())
		d, err := r.Resolve("Trip", psb.Asset{ID: "ABCDEF-1234", CaptureOffset: 0}, "/cache/a/img.heic")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if d.Action != psb.ActionCopy {
			t.Errorf("Resolve() action = %v, want ActionCopy", d.Action)
		}
	})

	t.Run("corrects the extension from the embedded format", func(t *testing.T) {
		fs := testutil.NewMockFilesystem()
		annotator := testutil.NewMockAnnotator()
		src := "/cache/a/img.heic"
		annotator.Extensions[src] = ".jpg"

		r := psb.NewResolver("/backup", "", fs, annotator)
		d, err := r.Resolve("Trip", psb.Asset{ID: "ABCDEF-1234", CaptureOffset: 0}, src)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if !d.Corrected {
			t.Error("Resolve() corrected = false, want true")
		}
		if d.Base != "img.jpg" {
			t.Errorf("Resolve() base = %q, want %q", d.Base, "img.jpg")
		}
		want := filepath.Join("/backup", "_photostream Trip", "20010101_000000-abcdef1234-img.jpg")
		if d.Path != want {
			t.Errorf("Resolve() path = %q, want %q", d.Path, want)
		}
	})

	t.Run("re-checks the destination after extension correction", func(t *testing.T) {
		fs := testutil.NewMockFilesystem()
		annotator := testutil.NewMockAnnotator()
		src := "/cache/a/img.heic"
		annotator.Extensions[src] = ".jpg"

		corrected := filepath.Join("/backup", "_photostream Trip", "20010101_000000-abcdef1234-img.jpg")
		fs.AddFile(corrected, 100)

		r := psb.NewResolver("/backup", "", fs, annotator)
		d, err := r.Resolve("Trip", psb.Asset{ID: "ABCDEF-1234", CaptureOffset: 0}, src)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if d.Action != psb.ActionSkipExact {
			t.Errorf("Resolve() action = %v, want ActionSkipExact", d.Action)
		}
		if !d.Corrected {
			t.Error("Resolve() corrected = false, want true")
		}
	})

	t.Run("flags a second file resolving to the same path", func(t *testing.T) {
		fs := testutil.NewMockFilesystem()
		r := psb.NewResolver("/backup", "", fs, testutil.NewMockAnnotator())
		asset := psb.Asset{ID: "ABCDEF-1234", CaptureOffset: 0}

		first, err := r.Resolve("Trip", asset, "/cache/a/img.jpg")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if first.Duplicate {
			t.Error("first Resolve() duplicate = true, want false")
		}

		second, err := r.Resolve("Trip", asset, "/cache/b/img.jpg")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if !second.Duplicate {
			t.Error("second Resolve() duplicate = false, want true")
		}
		if second.Path != first.Path {
			t.Errorf("paths differ: %q != %q", second.Path, first.Path)
		}
	})
}
