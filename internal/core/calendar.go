package core

import (
	"errors"
	"fmt"
	"time"
)

// DefaultYear is the calendar year the tracker covers unless configured otherwise.
const DefaultYear = 2025

// Month describes one entry of the fixed-year calendar.
type Month struct {
	Name string `json:"name"`
	Days int    `json:"days"`
}

// Months lists the tracked year's months in order. February stays at 28 days:
// the tracker covers a single non-leap year and implements no leap-year
// handling.
var Months = [12]Month{
	{"Januar", 31},
	{"Februar", 28},
	{"März", 31},
	{"April", 30},
	{"Mai", 31},
	{"Juni", 30},
	{"Juli", 31},
	{"August", 31},
	{"September", 30},
	{"Oktober", 31},
	{"November", 30},
	{"Dezember", 31},
}

var (
	ErrMonthIndex = errors.New("month index out of range")
	ErrDayRange   = errors.New("day out of range for month")
)

// ValidMonth reports whether monthIndex addresses one of the twelve months.
func ValidMonth(monthIndex int) bool {
	return monthIndex >= 0 && monthIndex < 12
}

// Days returns the day count of the given month, or 0 for an invalid index.
func Days(monthIndex int) int {
	if !ValidMonth(monthIndex) {
		return 0
	}
	return Months[monthIndex].Days
}

// MonthName returns the month's display name, or "" for an invalid index.
func MonthName(monthIndex int) string {
	if !ValidMonth(monthIndex) {
		return ""
	}
	return Months[monthIndex].Name
}

// DateKey builds the canonical DD.MM.YYYY key for one day of the tracked
// year. Keys are zero padded so that, within a month, lexical order matches
// chronological order.
func DateKey(year, monthIndex, day int) string {
	return fmt.Sprintf("%02d.%02d.%d", day, monthIndex+1, year)
}

// Date returns the civil date at UTC midnight.
func Date(year, monthIndex, day int) time.Time {
	return time.Date(year, time.Month(monthIndex+1), day, 0, 0, 0, 0, time.UTC)
}

var weekdayNames = [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"}

// WeekdayName returns the German weekday name for t.
func WeekdayName(t time.Time) string {
	return weekdayNames[int(t.Weekday())]
}
