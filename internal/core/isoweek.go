package core

import "time"

// ISOWeek returns the ISO-8601 week number of t.
//
// ISO weeks run Monday through Sunday, and a week belongs to the year that
// contains its Thursday. The computation normalizes t to UTC midnight, moves
// to the Thursday of its week, and counts whole weeks from the first Thursday
// of that Thursday's year. Late-December dates can therefore land in week 1
// of the following year, and early-January dates in week 52/53 of the
// previous one.
func ISOWeek(t time.Time) int {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	thursday := d.AddDate(0, 0, 3-mondayIndexed(d))

	// January 4th is always inside week 1.
	jan4 := time.Date(thursday.Year(), time.January, 4, 0, 0, 0, 0, time.UTC)
	firstThursday := jan4.AddDate(0, 0, 3-mondayIndexed(jan4))

	return 1 + int(thursday.Sub(firstThursday)/(7*24*time.Hour))
}

// mondayIndexed maps Monday..Sunday to 0..6.
func mondayIndexed(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
