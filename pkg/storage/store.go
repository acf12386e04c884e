package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists a single value of type T as a JSON file.
//
// A missing or corrupt file is not an error: Load falls back to the default
// value so a damaged file never takes the application down.
type Store[T any] struct {
	path     string
	defaults func() T
	mu       sync.Mutex
}

// NewStore creates a store backed by the given file path. The defaults
// function produces the value returned when the file is absent or unreadable.
func NewStore[T any](path string, defaults func() T) *Store[T] {
	return &Store[T]{path: path, defaults: defaults}
}

// Path returns the backing file path.
func (s *Store[T]) Path() string {
	return s.path
}

// Load reads the stored value, returning the default when the file does not
// exist or cannot be decoded.
func (s *Store[T]) Load() T {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s.defaults()
	}

	v := s.defaults()
	if err := json.Unmarshal(data, &v); err != nil {
		return s.defaults()
	}
	return v
}

// Save writes the value to disk, creating parent directories as needed.
// The write goes through a temp file and rename so readers never observe a
// partial file.
func (s *Store[T]) Save(v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(s.path), err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", filepath.Base(s.path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Exists reports whether the backing file exists.
func (s *Store[T]) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Delete removes the backing file. Returns true when a file was removed.
func (s *Store[T]) Delete() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", s.path, err)
	}
	return true, nil
}
