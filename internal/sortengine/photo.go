// Package sortengine implements the resumable, deduplicating photo import
// pipeline: it walks a source tree, derives a capture timestamp for each
// photograph, hashes its content, names it into a year-partitioned output
// layout, and persists incremental progress after every file so an
// interrupted run can be resumed exactly where it left off.
package sortengine

import (
	"os"
	"path/filepath"
	"strings"
)

// PhotoExtensions are the recognized photograph extensions, lowercased,
// without the leading dot.
var PhotoExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"heic": true,
	"heif": true,
	"cr2":  true,
	"cr3":  true,
	"nef":  true,
	"arw":  true,
	"dng":  true,
	"orf":  true,
	"rw2":  true,
	"raf":  true,
	"tiff": true,
	"tif":  true,
}

// canonicalize resolves path to an absolute, symlink-free form, so the
// same source directory always records the same ProcessedEntry.Source
// value regardless of the working directory or symlinks a caller used
// to reach it.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return resolved, nil
}

// IsPhoto reports whether path has a recognized photograph extension.
func IsPhoto(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return PhotoExtensions[ext]
}

// WalkResult is the outcome of scanning a source directory for photographs.
type WalkResult struct {
	Photos    []string // paths joined onto source (absolute when source is), in walk order
	TotalSize int64
	DirCount  int
}

// WalkSource walks source recursively, skipping any directory named
// ".thumbnails", and collects every file whose extension is a recognized
// photo extension. The skip predicate is applied at directory-entry time
// so large thumbnail trees are never descended into.
func WalkSource(source string) (WalkResult, error) {
	var result WalkResult
	seenDirs := make(map[string]bool)

	err := filepath.WalkDir(source, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".thumbnails" && path != source {
				return filepath.SkipDir
			}
			seenDirs[path] = true
			return nil
		}
		if !IsPhoto(path) {
			return nil
		}
		info, err := d.Info()
		if err == nil {
			result.TotalSize += info.Size()
		}
		result.Photos = append(result.Photos, path)
		return nil
	})
	if err != nil {
		return result, err
	}
	result.DirCount = len(seenDirs)
	return result, nil
}
