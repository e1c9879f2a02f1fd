// Package memory provides an in-memory persistence backend. It backs tests
// and the zero-setup dev mode, optionally bootstrapped from a local JSON
// file.
package memory

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"arbeitszeit/internal/core"
	"arbeitszeit/internal/store"
)

// Store keeps the serialized payloads in process memory, mirroring the
// key/value shape of the durable backends.
type Store struct {
	mu      sync.Mutex
	payload []byte
	cursor  string
	logger  *slog.Logger
}

func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{logger: logger}
}

// NewFromFile bootstraps the store from a JSON dataset file, when present
// and well formed. Anything else starts empty.
func NewFromFile(path string, logger *slog.Logger) *Store {
	s := New(logger)
	if path == "" {
		return s
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if _, err := store.DecodeDataset(b); err != nil {
		s.logger.Warn("ignoring malformed dataset file", "path", path, "error", err)
		return s
	}
	s.payload = b
	return s
}

// LoadDataset implements store.DatasetLoader.
func (s *Store) LoadDataset(_ context.Context) (*core.Dataset, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payload == nil {
		return nil, false, nil
	}
	ds, err := store.DecodeDataset(s.payload)
	if err != nil {
		s.logger.Warn("stored dataset malformed, treating as absent", "error", err)
		return nil, false, nil
	}
	return ds, true, nil
}

// SaveDataset implements store.DatasetSaver.
func (s *Store) SaveDataset(_ context.Context, ds *core.Dataset) error {
	b, err := store.EncodeDataset(ds)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = b
	return nil
}

// LoadCursor implements store.CursorStore.
func (s *Store) LoadCursor(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return store.ParseCursor(s.cursor)
}

// SaveCursor implements store.CursorStore.
func (s *Store) SaveCursor(_ context.Context, monthIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = store.FormatCursor(monthIndex)
	return nil
}

// Payload returns a copy of the raw stored dataset bytes, for tests.
func (s *Store) Payload() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.payload...)
}

// Corrupt overwrites the stored payload with arbitrary bytes, for tests that
// exercise the malformed-state recovery path.
func (s *Store) Corrupt(b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = append([]byte(nil), b...)
}

var _ store.Backend = (*Store)(nil)
