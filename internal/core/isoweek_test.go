package core

import (
	"testing"
	"time"
)

func TestISOWeekReferenceDates(t *testing.T) {
	cases := []struct {
		y, m, d int
		want    int
	}{
		{2025, 1, 1, 1},   // Wednesday, week 1
		{2025, 1, 5, 1},   // Sunday closing week 1
		{2025, 1, 6, 2},   // Monday opening week 2
		{2024, 12, 30, 1}, // Monday belonging to week 1 of 2025
		{2024, 12, 29, 52},
		{2025, 12, 28, 52}, // last Sunday of 2025
		{2025, 12, 29, 1},  // Monday belonging to week 1 of 2026
		{2025, 12, 31, 1},
		{2026, 1, 1, 1},
		{2021, 1, 1, 53}, // Friday belonging to week 53 of 2020
		{2020, 12, 31, 53},
	}
	for i, tc := range cases {
		date := time.Date(tc.y, time.Month(tc.m), tc.d, 0, 0, 0, 0, time.UTC)
		if got := ISOWeek(date); got != tc.want {
			t.Fatalf("case %d: ISOWeek(%s) = %d, want %d", i, date.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestISOWeekMatchesStdlibAcrossYear(t *testing.T) {
	// Sweep a range wide enough to cross both year boundaries of the tracked
	// year, in a non-UTC zone to confirm normalization.
	loc := time.FixedZone("CET", 1*60*60)
	start := time.Date(2024, time.December, 1, 13, 45, 0, 0, loc)
	for d := 0; d < 430; d++ {
		date := start.AddDate(0, 0, d)
		_, want := date.ISOWeek()
		if got := ISOWeek(date); got != want {
			t.Fatalf("ISOWeek(%s) = %d, stdlib says %d", date.Format("2006-01-02"), got, want)
		}
	}
}

func TestISOWeekMonotonicWithinWeek(t *testing.T) {
	// Every day of one ISO week reports the same number.
	monday := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	want := ISOWeek(monday)
	for d := 1; d < 7; d++ {
		if got := ISOWeek(monday.AddDate(0, 0, d)); got != want {
			t.Fatalf("day %d of week reports %d, want %d", d, got, want)
		}
	}
}
