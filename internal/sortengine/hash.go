package sortengine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// hashBufSize matches the 64 KiB streaming chunk size spec.md §4.2 calls
// for.
const hashBufSize = 64 * 1024

// HashFile computes a deterministic 256-bit content hash of path,
// returned as 64 lowercase hex characters. Identical bytes always
// produce identical output.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, hashBufSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
