package core

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWeekSum(t *testing.T) {
	ds := NewDataset()
	ds.Set(0, "06.01.2025", 8, "")
	ds.Set(0, "07.01.2025", 4, "")
	// 08.01. left absent on purpose.

	keys := []string{"06.01.2025", "07.01.2025", "08.01.2025"}
	if got := WeekSum(ds, 0, keys); got != 12 {
		t.Fatalf("WeekSum = %v, want 12", got)
	}
	if got := WeekSum(ds, 0, nil); got != 0 {
		t.Fatalf("empty key set sums to %v", got)
	}
}

func TestMonthAndYearSum(t *testing.T) {
	ds := NewDataset()
	ds.Set(0, "01.01.2025", 8, "")
	ds.Set(0, "02.01.2025", 0, "leer") // zero record still enumerated
	ds.Set(5, "10.06.2025", 2.5, "")

	if got := MonthSum(ds, 0); got != 8 {
		t.Fatalf("MonthSum(0) = %v, want 8", got)
	}
	if got := MonthSum(ds, 3); got != 0 {
		t.Fatalf("MonthSum of untouched month = %v, want 0", got)
	}
	if got := YearSum(ds); got != 10.5 {
		t.Fatalf("YearSum = %v, want 10.5", got)
	}
}

func TestRemaining(t *testing.T) {
	targets := DefaultTargets()
	ds := NewDataset()
	ds.Set(0, "01.01.2025", 40, "") // clamped to 24
	ds.Set(0, "02.01.2025", 16, "")

	// 24 + 16 = 40 logged against a target of 32: overage of 8.
	if got := targets.Remaining(ds, 0); got != -8 {
		t.Fatalf("Remaining = %v, want -8", got)
	}
	if got := targets.Remaining(ds, 1); got != 32 {
		t.Fatalf("Remaining of empty month = %v, want 32", got)
	}
}

func TestEarnings(t *testing.T) {
	targets := DefaultTargets()
	ds := NewDataset()
	ds.Set(0, "01.01.2025", 16, "")
	ds.Set(0, "02.01.2025", 16, "")

	// Exactly the monthly target earns exactly the monthly salary.
	if got := targets.Earnings(ds, 0); !almostEqual(got, 444.30) {
		t.Fatalf("Earnings = %v, want 444.30", got)
	}
	if got := targets.Earnings(ds, 1); got != 0 {
		t.Fatalf("Earnings of empty month = %v, want 0", got)
	}
}

func TestProgressPercentClamps(t *testing.T) {
	targets := DefaultTargets()
	cases := []struct {
		hours []float64
		want  float64
	}{
		{nil, 0},
		{[]float64{16}, 50},
		{[]float64{16, 16}, 100},
		{[]float64{16, 16, 16, 16}, 100}, // 64h is still 100%, not 200%
	}
	for i, tc := range cases {
		ds := NewDataset()
		for d, h := range tc.hours {
			ds.Set(0, DateKey(DefaultYear, 0, d+1), h, "")
		}
		if got := targets.ProgressPercent(ds, 0); !almostEqual(got, tc.want) {
			t.Fatalf("case %d: progress = %v, want %v", i, got, tc.want)
		}
	}
}

func TestSummarizeRefreshesYearTotal(t *testing.T) {
	targets := DefaultTargets()
	ds := NewDataset()
	ds.Set(2, "03.03.2025", 8, "")
	ds.YearTotalHours = 999 // stale

	s := targets.Summarize(ds, 2)
	if s.Name != "März" || s.MonthIndex != 2 {
		t.Fatalf("unexpected identity: %+v", s)
	}
	if s.Hours != 8 || s.YearHours != 8 {
		t.Fatalf("unexpected sums: %+v", s)
	}
	if ds.YearTotalHours != 8 {
		t.Fatalf("cache not refreshed: %v", ds.YearTotalHours)
	}
	if s.Remaining != 24 {
		t.Fatalf("remaining = %v, want 24", s.Remaining)
	}
	if !almostEqual(s.Earnings, 8*targets.HourlyRate()) {
		t.Fatalf("earnings = %v", s.Earnings)
	}
	if s.ProgressPercent != 25 {
		t.Fatalf("progress = %v, want 25", s.ProgressPercent)
	}
}
