package server

import (
	"path/filepath"
	"strings"
)

// safePath resolves relative against base, rejecting any path that
// escapes base. relative is normalized to forward slashes first; a
// leading slash, or any occurrence of "..", is rejected outright.
func safePath(base, relative string) (string, bool) {
	relative = strings.ReplaceAll(relative, "\\", "/")
	if strings.HasPrefix(relative, "/") {
		return "", false
	}
	if strings.Contains(relative, "..") {
		return "", false
	}

	joined := filepath.Join(base, filepath.FromSlash(relative))
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", false
	}
	absJoined, err := filepath.Abs(joined)
	if err != nil {
		return "", false
	}
	if absJoined != absBase && !strings.HasPrefix(absJoined, absBase+string(filepath.Separator)) {
		return "", false
	}
	return absJoined, true
}
