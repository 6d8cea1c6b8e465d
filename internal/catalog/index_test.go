package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildIndex(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "2020"), 0o755)
	os.MkdirAll(filepath.Join(dir, "not-a-year"), 0o755)
	os.WriteFile(filepath.Join(dir, "2020", "b.jpg"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, "2020", "a.jpg"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, "not-a-year", "c.jpg"), []byte("x"), 0o644)

	idx, err := BuildIndex(dir)
	if err != nil {
		t.Fatal(err)
	}
	if idx.TotalPhotos() != 2 {
		t.Fatalf("expected 2 photos, got %d", idx.TotalPhotos())
	}
	files := idx.ByYear["2020"]
	if len(files) != 2 || files[0] != "2020/a.jpg" || files[1] != "2020/b.jpg" {
		t.Fatalf("expected sorted [a.jpg b.jpg], got %v", files)
	}
}

func TestIndexMoveAndRemove(t *testing.T) {
	idx := Index{ByYear: map[string][]string{
		"2020": {"2020/a.jpg", "2020/c.jpg"},
		"2021": {"2021/z.jpg"},
	}}

	idx.Move("2020/a.jpg", "2021/a.jpg")
	if got := idx.ByYear["2020"]; len(got) != 1 || got[0] != "2020/c.jpg" {
		t.Fatalf("unexpected 2020 after move: %v", got)
	}
	if got := idx.ByYear["2021"]; len(got) != 2 || got[0] != "2021/a.jpg" || got[1] != "2021/z.jpg" {
		t.Fatalf("unexpected 2021 after move: %v", got)
	}

	idx.Remove("2021/z.jpg")
	if got := idx.ByYear["2021"]; len(got) != 1 || got[0] != "2021/a.jpg" {
		t.Fatalf("unexpected 2021 after remove: %v", got)
	}
}
