package dupe

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
)

func writeSolidJPEG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatal(err)
	}
}

func TestScanYearFindsNearDuplicates(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.jpg")
	b := filepath.Join(dir, "b.jpg")
	c := filepath.Join(dir, "c.jpg")

	writeSolidJPEG(t, a, color.RGBA{200, 10, 10, 255})
	writeSolidJPEG(t, b, color.RGBA{205, 12, 10, 255})
	writeSolidJPEG(t, c, color.RGBA{5, 200, 5, 255})

	pairs := ScanYear([]string{a, b, c})
	found := false
	for _, p := range pairs {
		if (p.A == a && p.B == b) || (p.A == b && p.B == a) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a/b to be reported as near-duplicates, got %v", pairs)
	}
}

func TestGroupByYear(t *testing.T) {
	groups := GroupByYear([]string{
		"/archive/2020/a.jpg",
		"/archive/2020/b.jpg",
		"/archive/2021/c.jpg",
	})
	if len(groups["2020"]) != 2 || len(groups["2021"]) != 1 {
		t.Fatalf("unexpected grouping: %v", groups)
	}
}
