// Package dupe provides an advisory, non-authoritative near-duplicate
// scan over a single sort run's newly copied photographs. It never
// affects the sort engine's own content-hash dedup decisions.
package dupe

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/corona10/goimagehash"
)

// Threshold is the maximum Hamming distance between two average hashes
// for them to be reported as possible near-duplicates.
const Threshold = 5

// Pair is one reported possible near-duplicate, with the Hamming
// distance between the two photos' average hashes.
type Pair struct {
	A, B     string
	Distance int
}

// ScanYear compares every photo in paths pairwise (intended to be the
// set copied into a single year during one sort run) and reports pairs
// whose average hash differs by at most Threshold bits. Files that
// fail to decode are silently skipped — this scan is advisory only.
func ScanYear(paths []string) []Pair {
	type hashed struct {
		path string
		hash *goimagehash.ImageHash
	}

	var hashes []hashed
	for _, p := range paths {
		h, err := averageHash(p)
		if err != nil {
			continue
		}
		hashes = append(hashes, hashed{path: p, hash: h})
	}

	var pairs []Pair
	for i := 0; i < len(hashes); i++ {
		for j := i + 1; j < len(hashes); j++ {
			dist, err := hashes[i].hash.Distance(hashes[j].hash)
			if err != nil {
				continue
			}
			if dist <= Threshold {
				pairs = append(pairs, Pair{
					A:        hashes[i].path,
					B:        hashes[j].path,
					Distance: dist,
				})
			}
		}
	}
	return pairs
}

func averageHash(path string) (*goimagehash.ImageHash, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return goimagehash.AverageHash(img)
}

// GroupByYear buckets absolute paths by their immediate parent
// directory name, the shape a sort run's per-year output takes.
func GroupByYear(paths []string) map[string][]string {
	out := make(map[string][]string)
	for _, p := range paths {
		year := filepath.Base(filepath.Dir(p))
		out[year] = append(out[year], p)
	}
	return out
}
