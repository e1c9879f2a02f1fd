// Package services orchestrates the tracker control flow: user edits go
// through the dataset, the year total is recomputed, and the whole dataset is
// persisted before the call returns.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"arbeitszeit/internal/core"
	applog "arbeitszeit/internal/log"
	"arbeitszeit/internal/seed"
	"arbeitszeit/internal/store"
)

// TrackerService owns the in-process dataset. All state transitions are
// synchronous; one mutex serializes the HTTP handlers, which are the only
// callers. The durable store keeps last-write-wins semantics.
type TrackerService struct {
	mu      sync.Mutex
	year    int
	targets core.Targets
	ds      *core.Dataset
	backend store.Backend
	seeder  *seed.Importer
	logger  *applog.Logger
}

func NewTrackerService(backend store.Backend, seeder *seed.Importer, targets core.Targets, year int, logger *applog.Logger) *TrackerService {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &TrackerService{
		year:    year,
		targets: targets,
		ds:      core.NewDataset(),
		backend: backend,
		seeder:  seeder,
		logger:  logger.WithComponent(applog.ComponentTracker),
	}
}

// Startup loads durable state or, when none exists, runs the one-time seed
// import. It completes before any edit is accepted, so a slow seed fetch can
// never race a user typing into an empty calendar.
func (s *TrackerService) Startup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, ok, err := s.backend.LoadDataset(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	if ok {
		s.ds = ds
		s.logger.Info("loaded durable dataset",
			applog.FieldYear, s.year,
			applog.FieldHours, s.ds.YearTotalHours)
	}

	if s.ds.Empty() && s.seeder != nil {
		status, err := s.seeder.Run(ctx, s.ds, s.backend)
		switch status {
		case seed.Imported:
			s.logger.Info("seed imported",
				applog.FieldSeedStatus, status.String(),
				applog.FieldHours, s.ds.YearTotalHours)
			if err != nil {
				// Adopted in memory but not yet durable; the next edit saves.
				s.logger.Warn("seed persisted lazily", applog.FieldError, err)
			}
		case seed.Unavailable:
			s.logger.Info("no seed available, starting empty",
				applog.FieldSeedStatus, status.String(),
				applog.FieldError, err)
		default:
			s.logger.Debug("seed skipped", applog.FieldSeedStatus, status.String())
		}
	}

	return nil
}

// SetDay records hours and notes for one day and persists the dataset. Hours
// arrive as raw text and are coerced permissively; the stored record is
// returned.
func (s *TrackerService) SetDay(ctx context.Context, monthIndex, day int, hoursText, notes string) (core.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := s.dayKey(monthIndex, day)
	if err != nil {
		return core.DayRecord{}, err
	}

	rec := s.ds.SetRaw(monthIndex, key, hoursText, notes)
	s.ds.RecomputeYearTotal()

	if err := s.backend.SaveDataset(ctx, s.ds); err != nil {
		return rec, fmt.Errorf("save dataset: %w", err)
	}
	s.logger.Debug("day recorded",
		applog.FieldDateKey, key,
		applog.FieldHours, rec.Hours)
	return rec, nil
}

// ClearDay removes a day's entry entirely and persists the dataset. Clearing
// an absent day is a no-op that still reports success.
func (s *TrackerService) ClearDay(ctx context.Context, monthIndex, day int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := s.dayKey(monthIndex, day)
	if err != nil {
		return err
	}

	s.ds.Delete(monthIndex, key)
	s.ds.RecomputeYearTotal()

	if err := s.backend.SaveDataset(ctx, s.ds); err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}
	s.logger.Debug("day cleared", applog.FieldDateKey, key)
	return nil
}

// Day returns the stored record for one day, defaulting to the zero record.
func (s *TrackerService) Day(monthIndex, day int) (core.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := s.dayKey(monthIndex, day)
	if err != nil {
		return core.DayRecord{}, err
	}
	return s.ds.Get(monthIndex, key), nil
}

// DayRow is one calendar line of a month view. WeekTotal carries the sum of
// the ISO week's in-month hours on the row that opens the week, so the view
// can render it as a per-week header.
type DayRow struct {
	Day       int     `json:"day"`
	DateKey   string  `json:"dateKey"`
	Weekday   string  `json:"weekday"`
	Week      int     `json:"week"`
	Hours     float64 `json:"hours"`
	Notes     string  `json:"notes"`
	WeekStart bool    `json:"weekStart"`
	WeekTotal float64 `json:"weekTotal"`
}

// MonthRows materializes and returns the full month. Days not yet stored are
// created as zero records, so a month that has been viewed once persists with
// its complete key set; the materialization is saved when it changes the
// dataset.
func (s *TrackerService) MonthRows(ctx context.Context, monthIndex int) ([]DayRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !core.ValidMonth(monthIndex) {
		return nil, core.ErrMonthIndex
	}

	dirty := s.ds.Months[monthIndex] == nil
	s.ds.EnsureMonth(monthIndex)

	days := core.Days(monthIndex)
	rows := make([]DayRow, 0, days)
	weekTotals := make(map[int]float64)

	for day := 1; day <= days; day++ {
		key := core.DateKey(s.year, monthIndex, day)
		if _, present := s.ds.Months[monthIndex][key]; !present {
			s.ds.Months[monthIndex][key] = core.DayRecord{}
			dirty = true
		}
		rec := s.ds.Months[monthIndex][key]

		date := core.Date(s.year, monthIndex, day)
		week := core.ISOWeek(date)
		weekTotals[week] += rec.Hours

		rows = append(rows, DayRow{
			Day:       day,
			DateKey:   key,
			Weekday:   core.WeekdayName(date),
			Week:      week,
			Hours:     rec.Hours,
			Notes:     rec.Notes,
			WeekStart: day == 1 || date.Weekday() == time.Monday,
		})
	}

	for i := range rows {
		if rows[i].WeekStart {
			rows[i].WeekTotal = weekTotals[rows[i].Week]
		}
	}

	if dirty {
		s.ds.RecomputeYearTotal()
		if err := s.backend.SaveDataset(ctx, s.ds); err != nil {
			return rows, fmt.Errorf("save dataset: %w", err)
		}
	}
	return rows, nil
}

// WeekTotals sums the month's hours per ISO week. The keys are week numbers;
// days of a week that fall outside the month do not contribute.
func (s *TrackerService) WeekTotals(monthIndex int) (map[int]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !core.ValidMonth(monthIndex) {
		return nil, core.ErrMonthIndex
	}

	totals := make(map[int]float64)
	for day := 1; day <= core.Days(monthIndex); day++ {
		key := core.DateKey(s.year, monthIndex, day)
		week := core.ISOWeek(core.Date(s.year, monthIndex, day))
		totals[week] += s.ds.Get(monthIndex, key).Hours
	}
	return totals, nil
}

// Summary computes the month's figures at full precision.
func (s *TrackerService) Summary(ctx context.Context, monthIndex int) (core.MonthSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !core.ValidMonth(monthIndex) {
		return core.MonthSummary{}, core.ErrMonthIndex
	}

	created := s.ds.Months[monthIndex] == nil
	s.ds.EnsureMonth(monthIndex)
	summary := s.targets.Summarize(s.ds, monthIndex)

	if created {
		if err := s.backend.SaveDataset(ctx, s.ds); err != nil {
			return summary, fmt.Errorf("save dataset: %w", err)
		}
	}
	return summary, nil
}

// SelectMonth persists the month cursor, independently of the dataset.
func (s *TrackerService) SelectMonth(ctx context.Context, monthIndex int) error {
	if !core.ValidMonth(monthIndex) {
		return core.ErrMonthIndex
	}
	if err := s.backend.SaveCursor(ctx, monthIndex); err != nil {
		return fmt.Errorf("save cursor: %w", err)
	}
	return nil
}

// SelectedMonth returns the persisted cursor, defaulting to 0.
func (s *TrackerService) SelectedMonth(ctx context.Context) int {
	return s.backend.LoadCursor(ctx)
}

// Year returns the tracked calendar year.
func (s *TrackerService) Year() int {
	return s.year
}

// Targets returns the configured aggregation constants.
func (s *TrackerService) Targets() core.Targets {
	return s.targets
}

func (s *TrackerService) dayKey(monthIndex, day int) (string, error) {
	if !core.ValidMonth(monthIndex) {
		return "", core.ErrMonthIndex
	}
	if day < 1 || day > core.Days(monthIndex) {
		return "", core.ErrDayRange
	}
	return core.DateKey(s.year, monthIndex, day), nil
}
