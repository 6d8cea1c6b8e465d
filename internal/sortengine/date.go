package sortengine

import (
	"os"
	"regexp"
	"strconv"
	"time"

	exif "github.com/dsoprea/go-exif/v3"
)

// DateSource records which probe produced a photograph's capture timestamp.
type DateSource string

const (
	DateSourceExif       DateSource = "exif"
	DateSourceDirname    DateSource = "dirname"
	DateSourceFilesystem DateSource = "filesystem"
)

var dirYearRe = regexp.MustCompile(`(19|20)\d{2}`)

const exifDateLayout = "2006:01:02 15:04:05"

// exifDateTags is the fixed, ordered probe list: the first tag present
// whose value parses as a date wins.
var exifDateTags = []string{"DateTimeOriginal", "DateTimeDigitized", "DateTime"}

// DetectDate derives a capture timestamp for path, trying EXIF, then a
// year token in the path, then filesystem timestamps, then a hard
// fallback of 1970-01-01. Every probe swallows its own errors; none is
// fatal to the caller.
func DetectDate(path string) (time.Time, DateSource) {
	if t, ok := dateFromExif(path); ok {
		return t, DateSourceExif
	}
	if t, ok := dateFromDirname(path); ok {
		return t, DateSourceDirname
	}
	if t, ok := dateFromFilesystem(path); ok {
		return t, DateSourceFilesystem
	}
	fallback, _ := time.ParseInLocation("2006-01-02 15:04:05", "1970-01-01 00:00:00", time.Local)
	return fallback, DateSourceFilesystem
}

func dateFromExif(path string) (time.Time, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return time.Time{}, false
	}

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return time.Time{}, false
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return time.Time{}, false
	}

	values := make(map[string]string)
	for _, entry := range entries {
		if entry.Value == nil {
			continue
		}
		if s, ok := entry.Value.(string); ok {
			if _, already := values[entry.TagName]; !already {
				values[entry.TagName] = s
			}
		}
	}

	for _, tag := range exifDateTags {
		raw, ok := values[tag]
		if !ok {
			continue
		}
		if t, err := time.ParseInLocation(exifDateLayout, trimExifString(raw), time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// trimExifString strips the NUL padding EXIF ASCII fields are commonly
// written with.
func trimExifString(s string) string {
	for len(s) > 0 && (s[len(s)-1] == 0 || s[len(s)-1] == ' ') {
		s = s[:len(s)-1]
	}
	return s
}

// dateFromDirname scans path for 4-digit year tokens in 1900-2099 and
// takes the last (most specific) match.
func dateFromDirname(path string) (time.Time, bool) {
	matches := dirYearRe.FindAllString(path, -1)
	if len(matches) == 0 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(matches[len(matches)-1])
	if err != nil {
		return time.Time{}, false
	}
	t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	return t, true
}

func dateFromFilesystem(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	if bt, ok := birthTime(info); ok {
		return bt.Local(), true
	}
	return info.ModTime().Local(), true
}
