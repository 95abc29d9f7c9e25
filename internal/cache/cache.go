// Copyright Whalen Digital Projects, 2026. All rights reserved.

// Package cache persists fetched Linked Art documents in a single JSON
// file keyed by URI. The contract is whole-map read-modify-write: load
// the file, check membership, mutate in memory, save the file back. No
// cross-process transaction guarantee is required.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mwhalen/artcat/internal/linked"
)

// Entry holds everything cached for one object URI: the object document
// and the IIIF manifest discovered alongside it.
type Entry struct {
	Object   linked.Document `json:"objectData"`
	Manifest linked.Document `json:"iiifManifestData,omitempty"`
}

// Store is an in-memory view of the cache file.
type Store struct {
	path    string
	entries map[string]Entry
}

// Load reads the cache file at path. A missing file yields an empty
// store; any other read or parse error is returned.
func Load(path string) (*Store, error) {
	s := &Store{path: path, entries: map[string]Entry{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading cache %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("parsing cache %s: %w", path, err)
	}
	return s, nil
}

// Get returns the cached entry for uri.
func (s *Store) Get(uri string) (Entry, bool) {
	e, ok := s.entries[uri]
	return e, ok
}

// Put stores an entry for uri in memory; call Save to persist.
func (s *Store) Put(uri string, e Entry) {
	s.entries[uri] = e
}

// Save writes the whole map back to the cache file, creating parent
// directories as needed.
func (s *Store) Save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating cache directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Fetcher layers the store over a network fetcher. Cache hits skip the
// network unless Force is set; fetched documents are recorded in the
// store (the caller saves).
type Fetcher struct {
	Next  linked.Fetcher
	Store *Store

	// Force bypasses cache reads, refetching even cached URIs.
	Force bool
}

// Fetch returns the cached object document for uri when present,
// otherwise delegates to the network fetcher and caches the result.
func (f *Fetcher) Fetch(ctx context.Context, uri string) (linked.Document, error) {
	if !f.Force {
		if e, ok := f.Store.Get(uri); ok && e.Object != nil {
			return e.Object, nil
		}
	}
	doc, err := f.Next.Fetch(ctx, uri)
	if err != nil {
		return nil, err
	}
	entry := f.Store.entries[uri]
	entry.Object = doc
	f.Store.Put(uri, entry)
	return doc, nil
}
