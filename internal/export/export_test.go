package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yrbane/photosort/internal/catalog"
)

func intPtr(i int) *int { return &i }

func TestFilterFiles(t *testing.T) {
	m := catalog.NewMetadata()
	m.AddTag("2020/a.jpg", "beach")
	m.SetRating("2020/a.jpg", intPtr(3))
	m.SetRating("2020/b.jpg", intPtr(5))

	all := []string{"2020/a.jpg", "2020/b.jpg", "2020/c.jpg"}

	byTag := FilterFiles(m, all, Filter{Tag: "beach"})
	if len(byTag) != 1 || byTag[0] != "2020/a.jpg" {
		t.Fatalf("unexpected tag filter result: %v", byTag)
	}

	byRating := FilterFiles(m, all, Filter{MinRating: intPtr(4)})
	if len(byRating) != 1 || byRating[0] != "2020/b.jpg" {
		t.Fatalf("unexpected rating filter result: %v", byRating)
	}
}

func TestRunRequiresAFilter(t *testing.T) {
	root := t.TempDir()
	dest := t.TempDir()
	_, err := Run(root, dest, Filter{}, nil, catalog.NewMetadata())
	if err == nil {
		t.Fatal("expected an error when no filter criterion is set")
	}
}

func TestRunCopiesMatchingFiles(t *testing.T) {
	root := t.TempDir()
	dest := t.TempDir()
	os.MkdirAll(filepath.Join(root, "2020"), 0o755)
	os.WriteFile(filepath.Join(root, "2020", "a.jpg"), []byte("hello"), 0o644)

	m := catalog.NewMetadata()
	m.SetRating("2020/a.jpg", intPtr(5))

	n, err := Run(root, dest, Filter{MinRating: intPtr(3)}, []string{"2020/a.jpg"}, m)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 file copied, got %d", n)
	}
	if _, err := os.Stat(filepath.Join(dest, "a.jpg")); err != nil {
		t.Fatalf("expected exported file to exist: %v", err)
	}
}

func TestUniqueDestPath(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("x"), 0o644)

	got := uniqueDestPath(dir, "a.jpg")
	want := filepath.Join(dir, "a_1.jpg")
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
