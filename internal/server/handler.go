package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/yrbane/photosort/internal/catalog"
	"github.com/yrbane/photosort/internal/thumbnail"
)

// Handler dispatches every request for a single archive.
type Handler struct {
	state *State
}

// NewHandler builds a request handler bound to state.
func NewHandler(state *State) *Handler {
	return &Handler{state: state}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/":
		h.handleGallery(w, r)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/thumb/"):
		h.handleThumbnail(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/api/metadata":
		h.handleSaveMetadata(w, r)
	case r.Method == http.MethodDelete && r.URL.Path == "/api/photo":
		h.handleDeletePhoto(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/api/move":
		h.handleMovePhoto(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/api/rotate":
		h.handleRotatePhoto(w, r)
	case r.Method == http.MethodGet:
		h.handleStatic(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		writeJSONError(w, "method not allowed")
	}
}

func (h *Handler) handleGallery(w http.ResponseWriter, r *http.Request) {
	html, err := h.state.GetCachedHTML()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		writeJSONError(w, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, html)
}

func (h *Handler) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, "/thumb/")
	abs, ok := safePath(h.state.Root, rel)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		writeJSONError(w, "invalid path")
		return
	}
	relClean, err := filepath.Rel(h.state.Root, abs)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		writeJSONError(w, "invalid path")
		return
	}
	relClean = filepath.ToSlash(relClean)

	cachePath, err := thumbnail.GetOrCreate(h.state.Root, relClean)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		writeJSONError(w, "no thumbnail available")
		return
	}
	if cachePath == "" {
		// Unsupported format for thumbnailing: fall back to the original.
		info, statErr := os.Stat(abs)
		if statErr != nil || info.IsDir() {
			w.WriteHeader(http.StatusNotFound)
			writeJSONError(w, "no thumbnail available")
			return
		}
		http.ServeFile(w, r, abs)
		return
	}
	http.ServeFile(w, r, cachePath)
}

func (h *Handler) handleStatic(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, "/")
	abs, ok := safePath(h.state.Root, rel)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		writeJSONError(w, "invalid path")
		return
	}
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		w.WriteHeader(http.StatusNotFound)
		writeJSONError(w, "not found")
		return
	}
	w.Header().Set("Content-Type", mimeType(abs))
	http.ServeFile(w, r, abs)
}

func mimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".tiff", ".tif":
		return "image/tiff"
	case ".html":
		return "text/html; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

func (h *Handler) handleSaveMetadata(w http.ResponseWriter, r *http.Request) {
	var incoming catalog.Metadata
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		writeJSONError(w, "invalid metadata body")
		return
	}
	if incoming.Files == nil {
		incoming.Files = make(map[string]catalog.FileInfo)
	}

	if err := h.state.ReplaceMetadata(incoming); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		writeJSONError(w, err.Error())
		return
	}
	h.state.InvalidateCache()
	writeJSONOK(w, "saved")
}

func (h *Handler) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	params := parseQuery(r.URL.RawQuery)
	rel := params["path"]
	abs, ok := safePath(h.state.Root, rel)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		writeJSONError(w, "invalid path")
		return
	}

	if err := os.Remove(abs); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		writeJSONError(w, err.Error())
		return
	}
	thumbnail.Invalidate(h.state.Root, rel)

	m := h.state.Metadata()
	delete(m.Files, rel)
	if err := h.state.ReplaceMetadata(m); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		writeJSONError(w, err.Error())
		return
	}

	h.state.MutateIndex(func(idx catalog.Index) { idx.Remove(rel) })
	h.state.InvalidateCache()
	writeJSONOK(w, "deleted")
}

type moveRequest struct {
	Src     string `json:"src"`
	DestDir string `json:"dest_dir"`
}

func (h *Handler) handleMovePhoto(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		writeJSONError(w, "invalid move body")
		return
	}

	absSrc, ok := safePath(h.state.Root, req.Src)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		writeJSONError(w, "invalid source path")
		return
	}
	absDestDir, ok := safePath(h.state.Root, req.DestDir)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		writeJSONError(w, "invalid destination directory")
		return
	}

	if err := os.MkdirAll(absDestDir, 0o755); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		writeJSONError(w, err.Error())
		return
	}

	newRel := filepath.ToSlash(filepath.Join(req.DestDir, filepath.Base(req.Src)))
	absDest := filepath.Join(absDestDir, filepath.Base(req.Src))

	if err := os.Rename(absSrc, absDest); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		writeJSONError(w, err.Error())
		return
	}
	thumbnail.Invalidate(h.state.Root, req.Src)

	m := h.state.Metadata()
	info := m.Files[req.Src]
	delete(m.Files, req.Src)
	m.Files[newRel] = info
	if err := h.state.ReplaceMetadata(m); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		writeJSONError(w, err.Error())
		return
	}

	h.state.MutateIndex(func(idx catalog.Index) { idx.Move(req.Src, newRel) })
	h.state.InvalidateCache()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"ok": "moved", "new_path": newRel})
}

type rotateRequest struct {
	Path  string `json:"path"`
	Angle int    `json:"angle"`
}

func (h *Handler) handleRotatePhoto(w http.ResponseWriter, r *http.Request) {
	var req rotateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		writeJSONError(w, "invalid rotate body")
		return
	}
	if req.Angle != 90 && req.Angle != 180 && req.Angle != 270 {
		w.WriteHeader(http.StatusBadRequest)
		writeJSONError(w, "angle must be 90, 180, or 270")
		return
	}

	abs, ok := safePath(h.state.Root, req.Path)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		writeJSONError(w, "invalid path")
		return
	}

	if err := rotateImageInPlace(abs, req.Angle); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		writeJSONError(w, err.Error())
		return
	}
	// Thumb only: the gallery HTML cache is left alone because the
	// client cache-busts the <img> URL itself after a rotate.
	thumbnail.Invalidate(h.state.Root, req.Path)
	writeJSONOK(w, "rotated")
}

func writeJSONError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"error":%q}`, msg)
}

func writeJSONOK(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"ok":%q}`, msg)
}
