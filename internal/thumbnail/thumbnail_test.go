package thumbnail

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCachePath(t *testing.T) {
	got := CachePath("/archive", "2020/a.jpg")
	want := filepath.Join("/archive", CacheDirName, "2020/a.jpg")
	want = want[:len(want)-len(filepath.Ext(want))] + ".jpg"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestCanGenerate(t *testing.T) {
	if !CanGenerate("a.JPG") {
		t.Error("expected jpg to be supported")
	}
	if CanGenerate("a.cr2") {
		t.Error("expected cr2 (RAW) to be unsupported")
	}
}

func writeTestJPEG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 10), uint8(y * 10), 100, 255})
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

func TestGetOrCreateGeneratesAndReuses(t *testing.T) {
	root := t.TempDir()
	rel := "2020/a.jpg"
	os.MkdirAll(filepath.Join(root, "2020"), 0o755)
	writeTestJPEG(t, filepath.Join(root, rel))

	cachePath, err := GetOrCreate(root, rel)
	if err != nil {
		t.Fatal(err)
	}
	if cachePath == "" {
		t.Fatal("expected a cache path")
	}
	firstModTime := mustModTime(t, cachePath)

	cachePath2, err := GetOrCreate(root, rel)
	if err != nil {
		t.Fatal(err)
	}
	if mustModTime(t, cachePath2) != firstModTime {
		t.Fatal("expected cached thumbnail to be reused, not regenerated")
	}
}

func TestGetOrCreateUnsupportedExtension(t *testing.T) {
	root := t.TempDir()
	cachePath, err := GetOrCreate(root, "2020/a.cr2")
	if err != nil {
		t.Fatal(err)
	}
	if cachePath != "" {
		t.Fatalf("expected empty cache path for unsupported format, got %s", cachePath)
	}
}

func TestInvalidate(t *testing.T) {
	root := t.TempDir()
	rel := "2020/a.jpg"
	os.MkdirAll(filepath.Join(root, "2020"), 0o755)
	writeTestJPEG(t, filepath.Join(root, rel))

	cachePath, err := GetOrCreate(root, rel)
	if err != nil {
		t.Fatal(err)
	}
	Invalidate(root, rel)
	if _, err := os.Stat(cachePath); !os.IsNotExist(err) {
		t.Fatal("expected thumbnail to be removed")
	}
}

func mustModTime(t *testing.T, path string) time.Time {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	return info.ModTime()
}
