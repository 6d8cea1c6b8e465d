// Package thumbnail maintains a disk-backed cache of small JPEG
// previews for a photo archive, generated lazily and kept fresh against
// their source files' modification times.
package thumbnail

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/nfnt/resize"

	_ "golang.org/x/image/tiff"
)

// CacheDirName is the thumbnail cache's directory name, relative to the
// archive root.
const CacheDirName = ".photo_sort_thumbs"

// MaxSize is the longest edge, in pixels, a generated thumbnail may have.
const MaxSize = 300

// Quality is the JPEG encode quality used for generated thumbnails.
const Quality = 80

// SupportedExtensions are the source formats the cache can decode and
// thumbnail. RAW formats are excluded; see DESIGN.md.
var SupportedExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "tiff": true, "tif": true,
}

// CachePath returns rel's cache location under root: the same relative
// path, inside the cache directory, with a .jpg extension.
func CachePath(root, rel string) string {
	ext := filepath.Ext(rel)
	withoutExt := strings.TrimSuffix(rel, ext)
	return filepath.Join(root, CacheDirName, withoutExt+".jpg")
}

// IsFresh reports whether the thumbnail at cachePath is at least as new
// as its source.
func IsFresh(cachePath, sourcePath string) bool {
	cacheInfo, err := os.Stat(cachePath)
	if err != nil {
		return false
	}
	sourceInfo, err := os.Stat(sourcePath)
	if err != nil {
		return false
	}
	return !cacheInfo.ModTime().Before(sourceInfo.ModTime())
}

// CanGenerate reports whether rel's extension is one the cache knows how
// to decode.
func CanGenerate(rel string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(rel)), ".")
	return SupportedExtensions[ext]
}

// Generate decodes sourcePath, resizes it to fit within MaxSize on its
// longest edge, and writes a JPEG to cachePath, creating parent
// directories as needed.
func Generate(sourcePath, cachePath string) error {
	f, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", sourcePath, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", sourcePath, err)
	}

	thumb := resize.Thumbnail(MaxSize, MaxSize, img, resize.Lanczos3)

	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", cachePath, err)
	}

	out, err := os.Create(cachePath)
	if err != nil {
		return fmt.Errorf("create %s: %w", cachePath, err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, thumb, &jpeg.Options{Quality: Quality}); err != nil {
		return fmt.Errorf("encode %s: %w", cachePath, err)
	}
	return out.Close()
}

// GetOrCreate returns the cache path for rel under root, generating or
// regenerating it first if it is missing or stale. An unsupported source
// format is never generated and yields ("", nil): callers should treat
// this as "no thumbnail available", not an error.
func GetOrCreate(root, rel string) (string, error) {
	if !CanGenerate(rel) {
		return "", nil
	}
	sourcePath := filepath.Join(root, rel)
	cachePath := CachePath(root, rel)

	if IsFresh(cachePath, sourcePath) {
		return cachePath, nil
	}
	if err := Generate(sourcePath, cachePath); err != nil {
		return "", err
	}
	return cachePath, nil
}

// Invalidate silently removes rel's cached thumbnail, if any.
func Invalidate(root, rel string) {
	_ = os.Remove(CachePath(root, rel))
}

// Prewarm generates every missing or stale thumbnail under root for the
// given relative photo paths, using up to 8 workers.
func Prewarm(root string, rels []string) {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	if workers < 1 {
		workers = 1
	}

	var pending []string
	for _, rel := range rels {
		if !CanGenerate(rel) {
			continue
		}
		cachePath := CachePath(root, rel)
		sourcePath := filepath.Join(root, rel)
		if !IsFresh(cachePath, sourcePath) {
			pending = append(pending, rel)
		}
	}
	if len(pending) == 0 {
		return
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rel := range jobs {
				sourcePath := filepath.Join(root, rel)
				cachePath := CachePath(root, rel)
				_ = Generate(sourcePath, cachePath)
			}
		}()
	}
	for _, rel := range pending {
		jobs <- rel
	}
	close(jobs)
	wg.Wait()
}
