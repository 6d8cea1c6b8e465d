// Package export copies a filtered subset of an archive's photographs
// (by tag and/or minimum rating) into a destination directory.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yrbane/photosort/internal/catalog"
)

// Filter selects which archived photos (relative paths) to export. A
// zero value for Tag or nil MinRating means that criterion is not
// applied; at least one must be set.
type Filter struct {
	Tag       string
	MinRating *int
}

// FilterFiles returns every relative path in allFiles that satisfies
// every criterion set on f.
func FilterFiles(metadata catalog.Metadata, allFiles []string, f Filter) []string {
	var out []string
	for _, rel := range allFiles {
		info := metadata.Files[rel]
		if f.Tag != "" && !containsString(info.Tags, f.Tag) {
			continue
		}
		if f.MinRating != nil {
			if info.Rating == nil || *info.Rating < *f.MinRating {
				continue
			}
		}
		out = append(out, rel)
	}
	return out
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// Run copies every photo in root matching f into dest, using the same
// "_N" collision-suffix naming scheme the sort engine's destination
// namer uses. It requires at least one filter criterion.
func Run(root, dest string, f Filter, allFiles []string, metadata catalog.Metadata) (int, error) {
	if f.Tag == "" && f.MinRating == nil {
		return 0, fmt.Errorf("export requires a tag or a minimum rating filter")
	}

	matched := FilterFiles(metadata, allFiles, f)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return 0, fmt.Errorf("create export destination %s: %w", dest, err)
	}

	copied := 0
	for _, rel := range matched {
		src := filepath.Join(root, rel)
		target := uniqueDestPath(dest, filepath.Base(rel))
		if err := copyFile(src, target); err != nil {
			return copied, fmt.Errorf("export %s: %w", rel, err)
		}
		copied++
	}
	return copied, nil
}

// uniqueDestPath returns dir/name, or dir/name_N for the smallest N
// that does not already exist.
func uniqueDestPath(dir, name string) string {
	candidate := filepath.Join(dir, name)
	if !exists(candidate) {
		return candidate
	}

	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]
	for counter := 1; ; counter++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, counter, ext))
		if !exists(candidate) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
