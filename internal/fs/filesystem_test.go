package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"psb-go/internal/fs"
)

func TestOSFilesystem_CopyIfChanged(t *testing.T) {
	fsys := fs.NewOSFilesystem()

	t.Run("copies a new file", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.jpg")
		dst := filepath.Join(dir, "dst.jpg")
		if err := os.WriteFile(src, []byte("image bytes"), 0644); err != nil {
			t.Fatal(err)
		}

		copied, err := fsys.CopyIfChanged(src, dst)
		if err != nil {
			t.Fatalf("CopyIfChanged() error = %v", err)
		}
		if !copied {
			t.Error("CopyIfChanged() = false, want true")
		}

		data, err := os.ReadFile(dst)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "image bytes" {
			t.Errorf("destination content = %q, want %q", data, "image bytes")
		}
	})

	t.Run("same size destination is a no-op", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.jpg")
		dst := filepath.Join(dir, "dst.jpg")
		if err := os.WriteFile(src, []byte("image bytes"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(dst, []byte("other  same"), 0644); err != nil {
			t.Fatal(err)
		}

		copied, err := fsys.CopyIfChanged(src, dst)
		if err != nil {
			t.Fatalf("CopyIfChanged() error = %v", err)
		}
		if copied {
			t.Error("CopyIfChanged() = true, want false")
		}
	})

	t.Run("size change triggers a re-copy", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.jpg")
		dst := filepath.Join(dir, "dst.jpg")
		if err := os.WriteFile(src, []byte("a longer source file"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(dst, []byte("short"), 0644); err != nil {
			t.Fatal(err)
		}

		copied, err := fsys.CopyIfChanged(src, dst)
		if err != nil {
			t.Fatalf("CopyIfChanged() error = %v", err)
		}
		if !copied {
			t.Error("CopyIfChanged() = false, want true")
		}
	})

	t.Run("missing source is an error", func(t *testing.T) {
		dir := t.TempDir()
		if _, err := fsys.CopyIfChanged(filepath.Join(dir, "gone"), filepath.Join(dir, "dst")); err == nil {
			t.Error("CopyIfChanged() error = nil, want error")
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.jpg")
		dst := filepath.Join(dir, "dst.jpg")
		if err := os.WriteFile(src, []byte("image bytes"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := fsys.CopyIfChanged(src, dst); err != nil {
			t.Fatal(err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 2 {
			t.Errorf("directory has %d entries, want 2", len(entries))
		}
	})
}

func TestOSFilesystem_CountFiles(t *testing.T) {
	fsys := fs.NewOSFilesystem()

	t.Run("counts regular files only", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"a.jpg", "b.jpg"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
				t.Fatal(err)
			}
		}
		if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
			t.Fatal(err)
		}

		count, err := fsys.CountFiles(dir)
		if err != nil {
			t.Fatalf("CountFiles() error = %v", err)
		}
		if count != 2 {
			t.Errorf("CountFiles() = %d, want 2", count)
		}
	})

	t.Run("missing directory counts as zero", func(t *testing.T) {
		count, err := fsys.CountFiles(filepath.Join(t.TempDir(), "missing"))
		if err != nil {
			t.Fatalf("CountFiles() error = %v", err)
		}
		if count != 0 {
			t.Errorf("CountFiles() = %d, want 0", count)
		}
	})
}

func TestOSFilesystem_Chtimes(t *testing.T) {
	fsys := fs.NewOSFilesystem()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.jpg")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	want := time.Date(2001, 1, 1, 0, 1, 40, 0, time.UTC)
	if err := fsys.Chtimes(path, want); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(want) {
		t.Errorf("mtime = %v, want %v", info.ModTime(), want)
	}
}
