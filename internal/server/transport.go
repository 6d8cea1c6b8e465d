package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/yrbane/photosort/internal/thumbnail"
)

// Serve starts an HTTP server over the archive at root, blocking until
// the listener fails. Go's net/http already runs each accepted
// connection on its own goroutine, the idiomatic stand-in for a fresh
// worker thread per request.
func Serve(root string, port int) error {
	state, err := NewState(root)
	if err != nil {
		return fmt.Errorf("load archive state: %w", err)
	}

	go prewarmAll(state)

	handler := NewHandler(state)
	addr := fmt.Sprintf("0.0.0.0:%d", port)
	log.Printf("[serve] listening on http://%s", addr)
	return http.ListenAndServe(addr, handler)
}

func prewarmAll(state *State) {
	idx := state.Index()
	var rels []string
	for _, year := range idx.Years() {
		rels = append(rels, idx.ByYear[year]...)
	}
	thumbnail.Prewarm(state.Root, rels)
}
