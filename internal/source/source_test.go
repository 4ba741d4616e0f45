// ABOUTME: Unit tests for the card image enumerator
// ABOUTME: Covers extension filtering, id decoding, and missing-directory errors
package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("creating %s: %v", name, err)
	}
}

func TestScan_FiltersAndDecodes(t *testing.T) {
	dir := t.TempDir()

	touch(t, dir, "base1-4.jpg")
	touch(t, dir, "swsh12_colon_5.PNG")
	touch(t, dir, "photo.webp")
	touch(t, dir, "notes.txt")
	touch(t, dir, "archive.zip")
	if err := os.Mkdir(filepath.Join(dir, "nested.jpg"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	images, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(images) != 3 {
		t.Fatalf("Scan() returned %d entries, want 3", len(images))
	}

	byID := make(map[string]string)
	for _, img := range images {
		byID[img.ID] = img.Path
	}

	if _, ok := byID["base1-4"]; !ok {
		t.Error("missing base1-4")
	}
	if _, ok := byID["swsh12:5"]; !ok {
		t.Errorf("colon token not decoded; got ids %v", byID)
	}
	if path, ok := byID["photo"]; !ok || filepath.Base(path) != "photo.webp" {
		t.Errorf("webp entry missing or wrong path: %q", path)
	}
}

func TestScan_MissingDirectory(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("Scan() error = %v, want ErrSourceNotFound", err)
	}
}

func TestScan_EmptyDirectory(t *testing.T) {
	images, err := Scan(t.TempDir())
	if err != nil {
		t.Fatalf("Scan() on empty dir error = %v", err)
	}
	if len(images) != 0 {
		t.Errorf("Scan() on empty dir = %d entries, want 0", len(images))
	}
}
