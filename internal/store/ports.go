package store

import (
	"context"

	"arbeitszeit/internal/core"
)

// Ports for the persistence gateway.
type (
	// DatasetLoader reads the durable dataset. ok is false when nothing
	// usable is stored; a malformed payload is downgraded to absent by the
	// backend, never surfaced as a failure.
	DatasetLoader interface {
		LoadDataset(ctx context.Context) (ds *core.Dataset, ok bool, err error)
	}

	// DatasetSaver writes the whole dataset as one atomic payload,
	// overwriting any prior value.
	DatasetSaver interface {
		SaveDataset(ctx context.Context, ds *core.Dataset) error
	}

	// CursorStore persists the selected month independently of the dataset.
	// LoadCursor falls back to month 0 on absent or invalid state.
	CursorStore interface {
		LoadCursor(ctx context.Context) int
		SaveCursor(ctx context.Context, monthIndex int) error
	}

	// Backend is the complete gateway a tracker session runs against.
	Backend interface {
		DatasetLoader
		DatasetSaver
		CursorStore
	}
)

// CleanupFunc releases backend resources.
type CleanupFunc func() error
