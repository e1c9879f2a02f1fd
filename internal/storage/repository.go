// Package storage implements the durable SQLite backend of the persistence
// gateway. The whole dataset lives as one serialized payload under a single
// key of a kv table; the selected-month cursor sits under its own key.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"arbeitszeit/internal/core"
	"arbeitszeit/internal/store"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLiteRepository(dbPath string, logger *slog.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// One logical writer, one connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, logger: logger}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadDataset implements store.DatasetLoader. Absent and malformed payloads
// both report ok=false; only real database failures surface as errors.
func (r *SQLiteRepository) LoadDataset(ctx context.Context) (*core.Dataset, bool, error) {
	value, found, err := r.getValue(ctx, store.DatasetKey)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	ds, err := store.DecodeDataset([]byte(value))
	if err != nil {
		r.logger.Warn("stored dataset malformed, treating as absent", "key", store.DatasetKey, "error", err)
		return nil, false, nil
	}
	return ds, true, nil
}

// SaveDataset implements store.DatasetSaver.
func (r *SQLiteRepository) SaveDataset(ctx context.Context, ds *core.Dataset) error {
	b, err := store.EncodeDataset(ds)
	if err != nil {
		return err
	}
	return r.setValue(ctx, store.DatasetKey, string(b))
}

// LoadCursor implements store.CursorStore. Any failure degrades to month 0.
func (r *SQLiteRepository) LoadCursor(ctx context.Context) int {
	value, found, err := r.getValue(ctx, store.CursorKey)
	if err != nil {
		r.logger.Warn("read cursor failed, defaulting to month 0", "error", err)
		return 0
	}
	if !found {
		return 0
	}
	return store.ParseCursor(value)
}

// SaveCursor implements store.CursorStore.
func (r *SQLiteRepository) SaveCursor(ctx context.Context, monthIndex int) error {
	return r.setValue(ctx, store.CursorKey, store.FormatCursor(monthIndex))
}

func (r *SQLiteRepository) getValue(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (r *SQLiteRepository) setValue(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   value = excluded.value,
		   updated_at = strftime('%Y-%m-%dT%H:%M:%SZ','now')`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

var _ store.Backend = (*SQLiteRepository)(nil)
