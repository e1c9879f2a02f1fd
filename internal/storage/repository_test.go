package storage

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"arbeitszeit/internal/core"
	"arbeitszeit/internal/store"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "arbeitszeit.db"), nil)
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestLoadDatasetAbsent(t *testing.T) {
	repo := newTestRepo(t)
	ds, ok, err := repo.LoadDataset(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok || ds != nil {
		t.Fatalf("expected absent on fresh database")
	}
}

func TestDatasetRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	ds := core.NewDataset()
	ds.Set(0, "06.01.2025", 8, "montag")
	ds.Set(11, "24.12.2025", 4, "")
	ds.RecomputeYearTotal()

	if err := repo.SaveDataset(ctx, ds); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, ok, err := repo.LoadDataset(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if loaded.YearTotalHours != 12 {
		t.Fatalf("year total = %v, want 12", loaded.YearTotalHours)
	}
	if rec := loaded.Get(0, "06.01.2025"); rec.Hours != 8 || rec.Notes != "montag" {
		t.Fatalf("record lost: %+v", rec)
	}

	// save(load()) keeps the stored payload byte-identical.
	before, _, err := repo.getValue(ctx, store.DatasetKey)
	if err != nil {
		t.Fatalf("read raw payload: %v", err)
	}
	if err := repo.SaveDataset(ctx, loaded); err != nil {
		t.Fatalf("re-save: %v", err)
	}
	after, _, err := repo.getValue(ctx, store.DatasetKey)
	if err != nil {
		t.Fatalf("read raw payload: %v", err)
	}
	if !bytes.Equal([]byte(before), []byte(after)) {
		t.Fatalf("payload not stable:\n%s\n%s", before, after)
	}
}

func TestSaveOverwritesAtomically(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	first := core.NewDataset()
	first.Set(0, "01.01.2025", 8, "")
	if err := repo.SaveDataset(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := core.NewDataset()
	second.Set(1, "01.02.2025", 2, "")
	if err := repo.SaveDataset(ctx, second); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	loaded, ok, err := repo.LoadDataset(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if !loaded.Get(0, "01.01.2025").IsZero() {
		t.Fatalf("old payload leaked into new one")
	}
	if loaded.Get(1, "01.02.2025").Hours != 2 {
		t.Fatalf("new payload missing")
	}
}

func TestMalformedPayloadTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if err := repo.setValue(ctx, store.DatasetKey, "{broken"); err != nil {
		t.Fatalf("plant corrupt payload: %v", err)
	}
	ds, ok, err := repo.LoadDataset(ctx)
	if err != nil {
		t.Fatalf("malformed payload must not fail the caller: %v", err)
	}
	if ok || ds != nil {
		t.Fatalf("expected absent for malformed payload")
	}
}

func TestCursorPersistsIndependently(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if got := repo.LoadCursor(ctx); got != 0 {
		t.Fatalf("default cursor = %d, want 0", got)
	}
	if err := repo.SaveCursor(ctx, 7); err != nil {
		t.Fatalf("save cursor: %v", err)
	}
	if got := repo.LoadCursor(ctx); got != 7 {
		t.Fatalf("cursor = %d, want 7", got)
	}

	// Corrupt cursor text degrades to 0.
	if err := repo.setValue(ctx, store.CursorKey, "vierzehn"); err != nil {
		t.Fatalf("plant corrupt cursor: %v", err)
	}
	if got := repo.LoadCursor(ctx); got != 0 {
		t.Fatalf("corrupt cursor read as %d, want 0", got)
	}

	// The dataset key is untouched by cursor writes.
	if _, ok, _ := repo.LoadDataset(ctx); ok {
		t.Fatalf("cursor writes must not create a dataset")
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "arbeitszeit.db")

	repo, err := NewSQLiteRepository(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ds := core.NewDataset()
	ds.Set(4, "01.05.2025", 6, "maifeiertag")
	if err := repo.SaveDataset(ctx, ds); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewSQLiteRepository(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	loaded, ok, err := reopened.LoadDataset(ctx)
	if err != nil || !ok {
		t.Fatalf("load after reopen: ok=%v err=%v", ok, err)
	}
	if loaded.Get(4, "01.05.2025").Hours != 6 {
		t.Fatalf("data lost across reopen")
	}
}
