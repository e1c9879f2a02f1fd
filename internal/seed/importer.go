// Package seed implements the one-time import of a starter dataset. When no
// durable data exists yet, the tracker fetches an optional external payload
// once per process and adopts it; every failure mode leaves the system
// running with an empty dataset.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"arbeitszeit/internal/core"
	"arbeitszeit/internal/store"
)

// Status is the explicit outcome of an import attempt. Failure is a variant
// the caller logs, not a swallowed exception.
type Status int

const (
	// Imported means the seed was adopted and persisted.
	Imported Status = iota
	// SkippedNonEmpty means durable data already exists; the seed source was
	// never contacted. The ratchet only ever turns seed -> durable store.
	SkippedNonEmpty
	// SkippedAlreadyRan means the single per-process attempt was spent.
	SkippedAlreadyRan
	// Unavailable means the source was missing, unreachable, or malformed;
	// the accompanying error says why.
	Unavailable
)

func (s Status) String() string {
	switch s {
	case Imported:
		return "imported"
	case SkippedNonEmpty:
		return "skipped_non_empty"
	case SkippedAlreadyRan:
		return "skipped_already_ran"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Maximum accepted seed payload. A full year of records is a few tens of
// kilobytes; anything much larger is not a seed file.
const maxSeedBytes = 4 << 20

type Importer struct {
	url    string
	client *http.Client
	done   bool
}

// New builds an importer for the given seed URL. A nil client falls back to
// a plain one: the fetch deliberately carries no timeout of its own, the
// startup sequence waits for whatever the transport decides.
func New(url string, client *http.Client) *Importer {
	if client == nil {
		client = &http.Client{}
	}
	return &Importer{url: url, client: client}
}

// Run fetches the seed and adopts it when ds is still empty, persisting the
// adopted months immediately through saver. It runs at most once per
// process and never overwrites non-empty data.
func (i *Importer) Run(ctx context.Context, ds *core.Dataset, saver store.DatasetSaver) (Status, error) {
	if !ds.Empty() {
		return SkippedNonEmpty, nil
	}
	if i.done {
		return SkippedAlreadyRan, nil
	}
	i.done = true

	if i.url == "" {
		return Unavailable, errors.New("no seed source configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.url, nil)
	if err != nil {
		return Unavailable, fmt.Errorf("build seed request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := i.client.Do(req)
	if err != nil {
		return Unavailable, fmt.Errorf("fetch seed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Unavailable, fmt.Errorf("fetch seed: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSeedBytes))
	if err != nil {
		return Unavailable, fmt.Errorf("read seed body: %w", err)
	}

	seeded, err := store.DecodeDataset(body)
	if err != nil {
		return Unavailable, err
	}

	ds.Months = seeded.Months
	// The seed's cached total is advisory; re-derive it so the dataset
	// invariant holds from the first render on.
	ds.RecomputeYearTotal()

	if err := saver.SaveDataset(ctx, ds); err != nil {
		// The seed is adopted in memory either way; the next successful edit
		// persists it.
		return Imported, fmt.Errorf("persist seed: %w", err)
	}
	return Imported, nil
}
