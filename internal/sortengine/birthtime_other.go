//go:build !darwin

package sortengine

import (
	"os"
	"time"
)

// birthTime reports a file's creation time. Linux's traditional stat(2)
// does not expose one (statx's btime would, but is not worth the extra
// syscall plumbing here), so this always falls through to mtime as
// spec.md §4.1 allows.
func birthTime(_ os.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
