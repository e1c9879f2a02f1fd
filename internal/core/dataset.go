package core

import (
	"math"
	"strconv"
	"strings"
)

// DayRecord is what the tracker stores per calendar day. The zero value is
// the canonical "empty" day: absent and zero-valued records read the same.
type DayRecord struct {
	Hours float64 `json:"hours"`
	Notes string  `json:"notes"`
}

// IsZero reports whether the record carries no data.
func (r DayRecord) IsZero() bool {
	return r.Hours == 0 && r.Notes == ""
}

// MonthData maps the date keys of a single month to their records. Days are
// materialized lazily; missing keys read as zero records.
type MonthData map[string]DayRecord

// Dataset is the root aggregate: every recorded month plus the cached year
// total. YearTotalHours is derived state, refreshed via RecomputeYearTotal
// after each mutation; it is never an independent source of truth.
type Dataset struct {
	Months         map[int]MonthData `json:"months"`
	YearTotalHours float64           `json:"yearTotalHours"`
}

// NewDataset returns an empty dataset ready for use.
func NewDataset() *Dataset {
	return &Dataset{Months: make(map[int]MonthData)}
}

// Empty reports whether no month container has been materialized yet. A
// dataset that has been rendered once is not empty, even if every record in
// it is zero.
func (ds *Dataset) Empty() bool {
	return len(ds.Months) == 0
}

// EnsureMonth guarantees the container for monthIndex exists. Idempotent.
func (ds *Dataset) EnsureMonth(monthIndex int) {
	if ds.Months == nil {
		ds.Months = make(map[int]MonthData)
	}
	if ds.Months[monthIndex] == nil {
		ds.Months[monthIndex] = make(MonthData)
	}
}

// Get returns the record stored under key, or the zero record when absent.
// It never fails.
func (ds *Dataset) Get(monthIndex int, key string) DayRecord {
	return ds.Months[monthIndex][key]
}

// Set stores a record, creating the month container on demand. Hours clamp
// into [0, 24].
func (ds *Dataset) Set(monthIndex int, key string, hours float64, notes string) {
	ds.EnsureMonth(monthIndex)
	ds.Months[monthIndex][key] = DayRecord{Hours: clampHours(hours), Notes: notes}
}

// SetRaw stores a record from raw user input, coercing the hours text with
// ParseHours, and returns what was stored.
func (ds *Dataset) SetRaw(monthIndex int, key, hoursText, notes string) DayRecord {
	ds.Set(monthIndex, key, ParseHours(hoursText), notes)
	return ds.Months[monthIndex][key]
}

// Delete removes the entry under key entirely; a no-op when absent. For
// aggregation a deleted day reads the same as one set to zero, but deleting
// is the only way to drop its notes text from storage.
func (ds *Dataset) Delete(monthIndex int, key string) {
	delete(ds.Months[monthIndex], key)
}

// RecomputeYearTotal re-derives the cached year total by enumerating every
// stored record and writes it back. Full re-enumeration is deliberate: the
// dataset is bounded at 366 days. Idempotent.
func (ds *Dataset) RecomputeYearTotal() float64 {
	ds.YearTotalHours = YearSum(ds)
	return ds.YearTotalHours
}

// ParseHours coerces raw hours input to a usable value. Unparseable or
// negative input becomes 0; values beyond a full day clamp to 24. Input
// arrives from a free-text field, so junk must degrade quietly rather than
// reject the edit.
func ParseHours(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return clampHours(v)
}

func clampHours(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 24:
		return 24
	}
	return v
}
