// Package catalog holds the durable, user-editable facts about an
// archived photo library: per-photo tags and ratings, and the
// year-partitioned index used to render and browse it.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// MetadataFileName is the metadata store's file name, relative to the
// archive root.
const MetadataFileName = ".photo_sort_metadata.json"

// FileInfo holds the user-editable facts about a single photograph,
// keyed by its path relative to the archive root.
type FileInfo struct {
	Tags   []string `json:"tags,omitempty"`
	Rating *int     `json:"rating,omitempty"`
}

// Metadata is the full per-archive metadata store.
type Metadata struct {
	Files map[string]FileInfo `json:"files"`
}

// NewMetadata returns an empty, ready-to-use store.
func NewMetadata() Metadata {
	return Metadata{Files: make(map[string]FileInfo)}
}

// Clone returns a deep copy: a distinct Files map, with each entry's
// tag slice copied and rating pointer re-allocated, so the clone shares
// no mutable state with m. Callers that take a snapshot of live server
// state must clone it before mutating or persisting it.
func (m Metadata) Clone() Metadata {
	out := Metadata{Files: make(map[string]FileInfo, len(m.Files))}
	for rel, info := range m.Files {
		clone := FileInfo{}
		if info.Tags != nil {
			clone.Tags = append([]string(nil), info.Tags...)
		}
		if info.Rating != nil {
			rating := *info.Rating
			clone.Rating = &rating
		}
		out.Files[rel] = clone
	}
	return out
}

// LoadMetadata reads the store at path, returning an empty store if the
// file does not exist.
func LoadMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewMetadata(), nil
		}
		return Metadata{}, fmt.Errorf("read metadata: %w", err)
	}

	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("invalid metadata file: %w", err)
	}
	if m.Files == nil {
		m.Files = make(map[string]FileInfo)
	}
	return m, nil
}

// Save writes the store as pretty-printed JSON.
func (m Metadata) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save metadata: %w", err)
	}
	return nil
}

// AddTag attaches tag to rel, a no-op if it is already present.
func (m Metadata) AddTag(rel, tag string) {
	info := m.Files[rel]
	for _, existing := range info.Tags {
		if existing == tag {
			return
		}
	}
	info.Tags = append(info.Tags, tag)
	m.Files[rel] = info
}

// RemoveTag detaches tag from rel, a no-op if it was never present.
func (m Metadata) RemoveTag(rel, tag string) {
	info, ok := m.Files[rel]
	if !ok {
		return
	}
	out := info.Tags[:0]
	for _, existing := range info.Tags {
		if existing != tag {
			out = append(out, existing)
		}
	}
	info.Tags = out
	m.Files[rel] = info
}

// SetRating sets rel's rating. A nil rating clears it.
func (m Metadata) SetRating(rel string, rating *int) {
	info := m.Files[rel]
	info.Rating = rating
	m.Files[rel] = info
}

// GetTags returns rel's tags, or an empty slice if unknown.
func (m Metadata) GetTags(rel string) []string {
	return m.Files[rel].Tags
}

// GetRating returns rel's rating, or nil if unknown or unset.
func (m Metadata) GetRating(rel string) *int {
	return m.Files[rel].Rating
}

// FilesWithTag returns every relative path tagged with tag.
func (m Metadata) FilesWithTag(tag string) []string {
	var out []string
	for rel, info := range m.Files {
		for _, t := range info.Tags {
			if t == tag {
				out = append(out, rel)
				break
			}
		}
	}
	return out
}

// FilesWithMinRating returns every relative path whose rating is set
// and at least min.
func (m Metadata) FilesWithMinRating(min int) []string {
	var out []string
	for rel, info := range m.Files {
		if info.Rating != nil && *info.Rating >= min {
			out = append(out, rel)
		}
	}
	return out
}
