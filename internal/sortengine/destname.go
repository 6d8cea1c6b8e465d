package sortengine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BuildDestPath produces a collision-free output path for a photograph
// taken at t with the given (lowercased) extension. The base candidate is
// {output}/{YYYY}/{YYYY-MM-DD_hh-mm-ss}.{ext}; on collision, suffixes
// _1, _2, ... are tried in order until one does not already exist on
// disk. Concurrent callers racing on the same output are not supported
// (see SPEC_FULL.md §9).
func BuildDestPath(output string, t time.Time, ext string) string {
	year := t.Format("2006")
	baseName := t.Format("2006-01-02_15-04-05")
	yearDir := filepath.Join(output, year)

	candidate := filepath.Join(yearDir, fmt.Sprintf("%s.%s", baseName, ext))
	if !exists(candidate) {
		return candidate
	}

	for counter := 1; ; counter++ {
		candidate := filepath.Join(yearDir, fmt.Sprintf("%s_%d.%s", baseName, counter, ext))
		if !exists(candidate) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
