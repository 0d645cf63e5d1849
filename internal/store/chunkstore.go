package store

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ChunkStore persists an ordered sequence of chunks as a single gob blob.
// Write replaces the blob wholesale; there is no in-place patching.
type ChunkStore struct {
	path string
}

// NewChunkStore creates a store backed by the file at path.
func NewChunkStore(path string) *ChunkStore {
	return &ChunkStore{path: path}
}

// Path returns the backing file path.
func (s *ChunkStore) Path() string {
	return s.path
}

// Write replaces the persisted chunk sequence. The blob is written to a
// temporary file and renamed into place so a crash mid-write cannot leave a
// torn store behind.
func (s *ChunkStore) Write(chunks []Chunk) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".chunks-*")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(chunks); err != nil {
		tmp.Close()
		return fmt.Errorf("encode chunks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp store: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// Read loads the full persisted chunk sequence. A missing file yields
// ErrStoreNotFound.
func (s *ChunkStore) Read() ([]Chunk, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, s.path)
		}
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	var chunks []Chunk
	if err := gob.NewDecoder(f).Decode(&chunks); err != nil {
		return nil, fmt.Errorf("decode chunks: %w", err)
	}
	return chunks, nil
}

// Len returns the number of persisted chunks, zero when the store is absent.
func (s *ChunkStore) Len() (int, error) {
	chunks, err := s.Read()
	if err != nil {
		if errors.Is(err, ErrStoreNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return len(chunks), nil
}
