// Package server exposes a running photo archive over HTTP: a cached
// gallery page, per-photo thumbnails, static file serving, and a small
// JSON API for editing tags, ratings, and photo placement.
package server

import (
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/yrbane/photosort/internal/catalog"
	"github.com/yrbane/photosort/internal/gallery"
)

// State holds a single archive's live, mutable server-side view: its
// metadata store, its photo index, and a generation-fenced cache of the
// rendered gallery HTML. Mutations always touch these in the fixed
// order filesystem -> thumbnail cache -> metadata -> index -> HTML
// cache, and never hold more than one of the three mutexes below at
// once.
type State struct {
	Root string

	metadataMu sync.Mutex
	metadata   catalog.Metadata

	indexMu sync.Mutex
	index   catalog.Index

	htmlMu  sync.Mutex
	html    string
	htmlGen uint64

	generation atomic.Uint64
}

// NewState loads root's metadata and builds its photo index.
func NewState(root string) (*State, error) {
	metadata, err := catalog.LoadMetadata(metadataPath(root))
	if err != nil {
		return nil, err
	}
	index, err := catalog.BuildIndex(root)
	if err != nil {
		return nil, err
	}
	return &State{Root: root, metadata: metadata, index: index}, nil
}

func metadataPath(root string) string {
	return filepath.Join(root, catalog.MetadataFileName)
}

// Metadata returns a cloned snapshot of the current metadata store,
// safe for the caller to mutate or render from without holding any
// lock: take the lock, clone, release, per spec §4.10.
func (s *State) Metadata() catalog.Metadata {
	s.metadataMu.Lock()
	defer s.metadataMu.Unlock()
	return s.metadata.Clone()
}

// ReplaceMetadata overwrites the in-memory metadata store and persists
// it to disk.
func (s *State) ReplaceMetadata(m catalog.Metadata) error {
	s.metadataMu.Lock()
	s.metadata = m
	err := m.Save(metadataPath(s.Root))
	s.metadataMu.Unlock()
	return err
}

// Index returns a cloned snapshot of the current photo index, safe for
// the caller to mutate or render from without holding any lock: take
// the lock, clone, release, per spec §4.10.
func (s *State) Index() catalog.Index {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	return s.index.Clone()
}

// MutateIndex applies fn to the index under lock.
func (s *State) MutateIndex(fn func(catalog.Index)) {
	s.indexMu.Lock()
	fn(s.index)
	s.indexMu.Unlock()
}

// InvalidateCache bumps the generation counter and clears the cached
// HTML, forcing the next GetCachedHTML call to re-render.
func (s *State) InvalidateCache() {
	s.generation.Add(1)
	s.htmlMu.Lock()
	s.html = ""
	s.htmlMu.Unlock()
}

// GetCachedHTML returns the current generation's rendered gallery page,
// rendering and caching it first if the generation has moved on since
// the last render.
func (s *State) GetCachedHTML() (string, error) {
	gen := s.generation.Load()

	s.htmlMu.Lock()
	if s.html != "" && s.htmlGen == gen {
		html := s.html
		s.htmlMu.Unlock()
		return html, nil
	}
	s.htmlMu.Unlock()

	html, err := gallery.GenerateHTML(s.Index(), s.Metadata())
	if err != nil {
		return "", err
	}

	s.htmlMu.Lock()
	if gen == s.generation.Load() {
		s.html = html
		s.htmlGen = gen
	}
	s.htmlMu.Unlock()

	return html, nil
}
