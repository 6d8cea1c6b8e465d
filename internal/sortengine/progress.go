package sortengine

import (
	"encoding/json"
	"fmt"
	"os"
)

// ProgressFileName is the journal file name, relative to the output
// directory.
const ProgressFileName = ".photo_sort_progress.json"

// ProcessedEntry is one journal record: a photograph this run (or a
// prior one) has already copied.
type ProcessedEntry struct {
	Source     string `json:"source"`
	Dest       string `json:"dest"`
	Size       uint64 `json:"size"`
	Hash       string `json:"hash"`
	DateSource string `json:"date_source"`
}

// Progress is the full journal: an ordered, append-only sequence of
// processed entries.
type Progress struct {
	Processed []ProcessedEntry `json:"processed"`
}

// LoadProgress reads the journal at path, returning an empty journal if
// the file does not exist.
func LoadProgress(path string) (Progress, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Progress{}, nil
		}
		return Progress{}, fmt.Errorf("read progress file: %w", err)
	}

	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return Progress{}, fmt.Errorf("invalid progress file: %w", err)
	}
	return p, nil
}

// SaveProgress writes the journal as pretty-printed JSON. No fsync or
// atomic rename is performed — see SPEC_FULL.md §9's journal-durability
// note.
func SaveProgress(path string, p Progress) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save progress file: %w", err)
	}
	return nil
}

// ProcessedIndex maps an absolute source path to the size it had when
// last processed, for resume-skip decisions.
type ProcessedIndex map[string]uint64

// KnownHashes is the set of content hashes already copied into the
// archive, for content-level dedup.
type KnownHashes map[string]bool

// BuildIndexes derives the processed-index and known-hashes views the
// sort engine needs from a loaded journal.
func BuildIndexes(p Progress) (ProcessedIndex, KnownHashes) {
	idx := make(ProcessedIndex, len(p.Processed))
	hashes := make(KnownHashes, len(p.Processed))
	for _, e := range p.Processed {
		idx[e.Source] = e.Size
		hashes[e.Hash] = true
	}
	return idx, hashes
}
