package sortengine

import (
	"path/filepath"
	"testing"
)

func TestProgressRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProgressFileName)

	empty, err := LoadProgress(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty.Processed) != 0 {
		t.Fatalf("expected empty journal, got %d entries", len(empty.Processed))
	}

	p := Progress{Processed: []ProcessedEntry{
		{Source: "/a.jpg", Dest: "/out/2020/x.jpg", Size: 10, Hash: "abc", DateSource: "exif"},
	}}
	if err := SaveProgress(path, p); err != nil {
		t.Fatal(err)
	}

	reloaded, err := LoadProgress(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.Processed) != 1 || reloaded.Processed[0].Hash != "abc" {
		t.Fatalf("unexpected reloaded journal: %+v", reloaded)
	}

	idx, hashes := BuildIndexes(reloaded)
	if idx["/a.jpg"] != 10 {
		t.Errorf("expected size 10 indexed, got %d", idx["/a.jpg"])
	}
	if !hashes["abc"] {
		t.Errorf("expected hash abc to be known")
	}
}
