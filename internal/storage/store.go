// Package storage persists the key-value mapping.
//
// A Store loads its whole mapping into memory when opened and writes the
// whole mapping back exactly once when closed. The on-disk format is chosen
// by the Backend.
package storage

import (
	"errors"
	"fmt"

	"github.com/matsen/blast/internal/logger"
)

// ErrKeyNotFound is returned when a key is not in the store.
var ErrKeyNotFound = errors.New("key not found")

// ErrClosed is returned by operations on a store that has been closed.
var ErrClosed = errors.New("store is closed")

// Backend reads and writes a whole mapping.
type Backend interface {
	// Load returns the persisted mapping. A missing file yields an empty
	// mapping and no error.
	Load() (map[string]string, error)
	// Save replaces the persisted mapping with entries.
	Save(entries map[string]string) error
	// Path is the location of the backing file.
	Path() string
}

// Store is an in-memory mapping flushed to a Backend on Close.
type Store struct {
	backend Backend
	entries map[string]string
	closed  bool
}

// Open loads the store at path, picking the backend from the file extension.
func Open(path string) (*Store, error) {
	return OpenBackend(BackendFor(path))
}

// OpenBackend loads the store from the given backend.
func OpenBackend(b Backend) (*Store, error) {
	entries, err := b.Load()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", b.Path(), err)
	}
	if entries == nil {
		entries = make(map[string]string)
	}
	logger.Log.WithField("path", b.Path()).Debugf("opened store with %d entries", len(entries))
	return &Store{backend: b, entries: entries}, nil
}

// With opens the store at path, calls fn, and closes the store on every
// exit path. If fn panics the store is flushed before the panic continues.
func With(path string, fn func(*Store) error) (err error) {
	s, err := Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return fn(s)
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.backend.Path()
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, error) {
	if s.closed {
		return "", ErrClosed
	}
	v, ok := s.entries[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

// Set inserts or overwrites key.
func (s *Store) Set(key, value string) error {
	if s.closed {
		return ErrClosed
	}
	s.entries[key] = value
	return nil
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	if s.closed {
		return ErrClosed
	}
	if _, ok := s.entries[key]; !ok {
		return ErrKeyNotFound
	}
	delete(s.entries, key)
	return nil
}

// Contains reports whether key is present. A closed store contains nothing.
func (s *Store) Contains(key string) bool {
	if s.closed {
		return false
	}
	_, ok := s.entries[key]
	return ok
}

// Keys returns all keys in no particular order.
func (s *Store) Keys() []string {
	if s.closed {
		return nil
	}
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}

// Count returns the number of entries.
func (s *Store) Count() int {
	if s.closed {
		return 0
	}
	return len(s.entries)
}

// Clear removes every entry.
func (s *Store) Clear() error {
	if s.closed {
		return ErrClosed
	}
	s.entries = make(map[string]string)
	return nil
}

// Close flushes the mapping to the backend. Only the first call writes;
// later calls return nil.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	entries := s.entries
	s.entries = nil
	if err := s.backend.Save(entries); err != nil {
		return fmt.Errorf("flushing %s: %w", s.backend.Path(), err)
	}
	logger.Log.WithField("path", s.backend.Path()).Debugf("flushed %d entries", len(entries))
	return nil
}
