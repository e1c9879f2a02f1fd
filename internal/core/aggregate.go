package core

// Targets holds the two configured constants every earnings and progress
// figure derives from.
type Targets struct {
	MonthlyTargetHours float64
	MonthlySalary      float64
}

// DefaultTargets returns the stock contract: 32 target hours per month at a
// monthly salary of 444.30 EUR.
func DefaultTargets() Targets {
	return Targets{MonthlyTargetHours: 32, MonthlySalary: 444.30}
}

// HourlyRate is the effective hourly wage: the monthly salary spread over the
// monthly target hours.
func (t Targets) HourlyRate() float64 {
	return t.MonthlySalary / t.MonthlyTargetHours
}

// WeekSum adds the hours of the given keys (one ISO week) within a month.
// Absent keys count as zero.
func WeekSum(ds *Dataset, monthIndex int, keys []string) float64 {
	sum := 0.0
	for _, key := range keys {
		sum += ds.Get(monthIndex, key).Hours
	}
	return sum
}

// MonthSum adds the hours of every record materialized in the month.
func MonthSum(ds *Dataset, monthIndex int) float64 {
	sum := 0.0
	for _, rec := range ds.Months[monthIndex] {
		sum += rec.Hours
	}
	return sum
}

// YearSum adds the hours of every record in every month.
func YearSum(ds *Dataset) float64 {
	sum := 0.0
	for monthIndex := range ds.Months {
		sum += MonthSum(ds, monthIndex)
	}
	return sum
}

// Remaining returns how many target hours are left in the month. A negative
// value means overage; flagging it is the caller's concern.
func (t Targets) Remaining(ds *Dataset, monthIndex int) float64 {
	return t.MonthlyTargetHours - MonthSum(ds, monthIndex)
}

// Earnings estimates the month's pay from the logged hours and the effective
// hourly rate.
func (t Targets) Earnings(ds *Dataset, monthIndex int) float64 {
	return MonthSum(ds, monthIndex) * t.HourlyRate()
}

// ProgressPercent reports progress toward the monthly target, clamped to
// [0, 100].
func (t Targets) ProgressPercent(ds *Dataset, monthIndex int) float64 {
	p := MonthSum(ds, monthIndex) / t.MonthlyTargetHours * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// MonthSummary bundles the figures the view layer renders for one month.
// Values keep full precision; rounding happens only at the display boundary.
type MonthSummary struct {
	MonthIndex      int
	Name            string
	Hours           float64
	YearHours       float64
	Remaining       float64
	Earnings        float64
	ProgressPercent float64
}

// Summarize computes the complete overview for one month. The year total
// cache is refreshed as part of the pass, keeping it consistent with the
// figures returned.
func (t Targets) Summarize(ds *Dataset, monthIndex int) MonthSummary {
	return MonthSummary{
		MonthIndex:      monthIndex,
		Name:            MonthName(monthIndex),
		Hours:           MonthSum(ds, monthIndex),
		YearHours:       ds.RecomputeYearTotal(),
		Remaining:       t.Remaining(ds, monthIndex),
		Earnings:        t.Earnings(ds, monthIndex),
		ProgressPercent: t.ProgressPercent(ds, monthIndex),
	}
}
