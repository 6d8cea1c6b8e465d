package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/yrbane/photosort/internal/catalog"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "2020"), 0o755)
	os.WriteFile(filepath.Join(root, "2020", "a.jpg"), []byte("fake jpeg bytes"), 0o644)

	state, err := NewState(root)
	if err != nil {
		t.Fatal(err)
	}
	return state
}

func TestHandleDeletePhoto(t *testing.T) {
	state := newTestState(t)
	h := NewHandler(state)

	req := httptest.NewRequest(http.MethodDelete, "/api/photo?path=2020/a.jpg", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if _, err := os.Stat(filepath.Join(state.Root, "2020", "a.jpg")); !os.IsNotExist(err) {
		t.Fatal("expected file to be removed")
	}
}

func TestHandleDeletePhotoRejectsEscape(t *testing.T) {
	state := newTestState(t)
	h := NewHandler(state)

	req := httptest.NewRequest(http.MethodDelete, "/api/photo?path=../outside.jpg", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleSaveMetadata(t *testing.T) {
	state := newTestState(t)
	h := NewHandler(state)

	body := strings.NewReader(`{"files":{"2020/a.jpg":{"tags":["beach"],"rating":4}}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/metadata", body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	tags := state.Metadata().GetTags("2020/a.jpg")
	if len(tags) != 1 || tags[0] != "beach" {
		t.Fatalf("expected persisted tags, got %v", tags)
	}
}

func TestHandleGalleryServesHTML(t *testing.T) {
	state := newTestState(t)
	h := NewHandler(state)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "2020/a.jpg") {
		t.Fatal("expected gallery HTML to reference the archived photo")
	}
}

func writeTestJPEG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 10), uint8(y * 10), 100, 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatal(err)
	}
}

func TestHandleMovePhoto(t *testing.T) {
	state := newTestState(t)
	h := NewHandler(state)

	m := state.Metadata()
	m.Files["2020/a.jpg"] = catalog.FileInfo{Tags: []string{"beach"}}
	if err := state.ReplaceMetadata(m); err != nil {
		t.Fatal(err)
	}

	body := strings.NewReader(`{"src":"2020/a.jpg","dest_dir":"2021"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/move", body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["new_path"] != "2021/a.jpg" {
		t.Fatalf("expected new_path 2021/a.jpg, got %s", resp["new_path"])
	}

	if _, err := os.Stat(filepath.Join(state.Root, "2020", "a.jpg")); !os.IsNotExist(err) {
		t.Fatal("expected source file to be gone")
	}
	if _, err := os.Stat(filepath.Join(state.Root, "2021", "a.jpg")); err != nil {
		t.Fatalf("expected file at new location: %v", err)
	}

	moved := state.Metadata()
	if _, ok := moved.Files["2020/a.jpg"]; ok {
		t.Fatal("expected old metadata key to be removed")
	}
	tags := moved.Files["2021/a.jpg"].Tags
	if len(tags) != 1 || tags[0] != "beach" {
		t.Fatalf("expected tags to follow the move, got %v", tags)
	}
}

func TestHandleRotatePhoto(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "2020"), 0o755)
	writeTestJPEG(t, filepath.Join(root, "2020", "a.jpg"))

	state, err := NewState(root)
	if err != nil {
		t.Fatal(err)
	}
	h := NewHandler(state)

	body := strings.NewReader(`{"path":"2020/a.jpg","angle":90}`)
	req := httptest.NewRequest(http.MethodPost, "/api/rotate", body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	f, err := os.Open(filepath.Join(root, "2020", "a.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("expected rotated file to still decode as an image: %v", err)
	}
	if cfg.Width != 20 || cfg.Height != 20 {
		t.Fatalf("expected dimensions swapped by a 90deg rotation of a square image, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestHandleRotatePhotoRejectsBadAngle(t *testing.T) {
	state := newTestState(t)
	h := NewHandler(state)

	body := strings.NewReader(`{"path":"2020/a.jpg","angle":45}`)
	req := httptest.NewRequest(http.MethodPost, "/api/rotate", body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

// TestConcurrentMetadataAndRender exercises the exact race the maintainer
// flagged: one set of goroutines mutating the metadata/index via the
// Metadata/ReplaceMetadata/MutateIndex accessors while another renders the
// gallery through GetCachedHTML. Metadata/Index must hand back isolated
// clones, or this trips "concurrent map read and map write".
func TestConcurrentMetadataAndRender(t *testing.T) {
	state := newTestState(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func(n int) {
			defer wg.Done()
			m := state.Metadata()
			m.Files["2020/a.jpg"] = catalog.FileInfo{Rating: nil}
			_ = state.ReplaceMetadata(m)
		}(i)
		go func() {
			defer wg.Done()
			state.MutateIndex(func(idx catalog.Index) {
				_ = idx.Years()
			})
		}()
		go func() {
			defer wg.Done()
			if _, err := state.GetCachedHTML(); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
}

func TestMethodNotAllowed(t *testing.T) {
	state := newTestState(t)
	h := NewHandler(state)

	req := httptest.NewRequest(http.MethodPut, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}
