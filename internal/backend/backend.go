// Package backend selects and wires the persistence gateway implementation.
package backend

import (
	"context"

	"arbeitszeit/internal/store"
)

// Type names a persistence backend.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds configuration for backend creation
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Memory specific: optional dataset file to bootstrap from
	SeedFile string
}

// Result contains the backend instance and optional cleanup function
type Result struct {
	Store   store.Backend
	Cleanup store.CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}
