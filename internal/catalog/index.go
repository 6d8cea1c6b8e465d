package catalog

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/yrbane/photosort/internal/sortengine"
)

// yearDirRe matches a four-digit year used as a top-level archive
// partition.
var yearDirRe = regexp.MustCompile(`^(19|20)\d{2}$`)

// Index groups a library's photographs by capture year, each year's
// files held in sorted order. Paths are relative to the archive root.
type Index struct {
	ByYear map[string][]string
}

// BuildIndex scans root's immediate year subdirectories for
// photographs, building a sorted per-year index.
func BuildIndex(root string) (Index, error) {
	idx := Index{ByYear: make(map[string][]string)}

	entries, err := os.ReadDir(root)
	if err != nil {
		return idx, err
	}

	for _, entry := range entries {
		if !entry.IsDir() || !yearDirRe.MatchString(entry.Name()) {
			continue
		}
		year := entry.Name()
		walkResult, err := sortengine.WalkSource(filepath.Join(root, year))
		if err != nil {
			return idx, err
		}
		rels := make([]string, 0, len(walkResult.Photos))
		for _, abs := range walkResult.Photos {
			rel, err := filepath.Rel(root, abs)
			if err != nil {
				continue
			}
			rels = append(rels, filepath.ToSlash(rel))
		}
		sort.Strings(rels)
		idx.ByYear[year] = rels
	}

	return idx, nil
}

// Clone returns a deep copy: a distinct ByYear map with each year's
// slice copied, so the clone shares no backing array with idx. Callers
// that take a snapshot of live server state must clone it before
// mutating it.
func (idx Index) Clone() Index {
	out := Index{ByYear: make(map[string][]string, len(idx.ByYear))}
	for year, files := range idx.ByYear {
		out.ByYear[year] = append([]string(nil), files...)
	}
	return out
}

// Years returns the index's years in ascending order.
func (idx Index) Years() []string {
	years := make([]string, 0, len(idx.ByYear))
	for y := range idx.ByYear {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

// Remove deletes rel from its year bucket, a no-op if absent.
func (idx Index) Remove(rel string) {
	year := filepath.ToSlash(rel)[:4]
	files := idx.ByYear[year]
	for i, f := range files {
		if f == rel {
			idx.ByYear[year] = append(files[:i], files[i+1:]...)
			return
		}
	}
}

// Move relocates rel to newRel, preserving sorted order within each
// affected year bucket.
func (idx Index) Move(rel, newRel string) {
	idx.Remove(rel)
	newYear := filepath.ToSlash(newRel)[:4]
	files := idx.ByYear[newYear]
	i := sort.SearchStrings(files, newRel)
	files = append(files, "")
	copy(files[i+1:], files[i:])
	files[i] = newRel
	idx.ByYear[newYear] = files
}

// TotalPhotos returns the count of photographs across every year.
func (idx Index) TotalPhotos() int {
	total := 0
	for _, files := range idx.ByYear {
		total += len(files)
	}
	return total
}
