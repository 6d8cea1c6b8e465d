package sortengine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsPhoto(t *testing.T) {
	cases := map[string]bool{
		"foo.jpg":   true,
		"FOO.JPEG":  true,
		"bar.CR2":   true,
		"note.txt":  false,
		"noext":     false,
		"scan.tiff": true,
	}
	for name, want := range cases {
		if got := IsPhoto(name); got != want {
			t.Errorf("IsPhoto(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestWalkSourceSkipsThumbnails(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".thumbnails"), 0o755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(dir, ".thumbnails", "ghost.jpg"), "x")
	mustWrite(t, filepath.Join(dir, "a.jpg"), "aaa")
	mustWrite(t, filepath.Join(dir, "notes.txt"), "ignored")

	result, err := WalkSource(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Photos) != 1 {
		t.Fatalf("expected 1 photo, got %d: %v", len(result.Photos), result.Photos)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
