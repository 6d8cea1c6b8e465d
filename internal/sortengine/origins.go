package sortengine

import (
	"fmt"
	"os"
	"path/filepath"
)

// originsFileName records, per year directory, where each archived file
// originally came from: one "{new_name} <- {original_path}" line per entry.
const originsFileName = ".photo_sort_origins"

// appendOrigin records dest's provenance in its year directory's origins
// log. Failures here are logged but never fatal to a sort run.
func appendOrigin(dest, source string) error {
	yearDir := filepath.Dir(dest)
	f, err := os.OpenFile(filepath.Join(yearDir, originsFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open origins log: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s <- %s\n", filepath.Base(dest), source)
	return err
}
