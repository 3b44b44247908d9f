// Package calendar holds the day-granular date arithmetic used by the
// timeline and by status derivation. Every value it returns is a calendar
// day at midnight UTC, so differences are always whole days.
package calendar

import (
	"strings"
	"time"
)

// ISOLayout is the storage format for task and subtask dates.
const ISOLayout = "2006-01-02"

// MaxDay stands in for a missing date when sorting; it sorts after any
// real date.
var MaxDay = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

const day = 24 * time.Hour

// Day strips the time of day from t, keeping the calendar date t has in
// its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar day of now.
func Today(now time.Time) time.Time {
	return Day(now)
}

// ParseISO parses a stored date. Full timestamps are accepted and cut to
// their date part. Empty or malformed input reports ok=false.
func ParseISO(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len(ISOLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(ISOLayout, s[:len(ISOLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatISO renders t as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return Day(t).Format(ISOLayout)
}

// DaysBetween returns the number of calendar days from a to b. It is
// negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / day)
}

// AddDays shifts t by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// DayRange returns every day from start to end inclusive. It returns nil
// when end is before start.
func DayRange(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return nil
	}
	days := make([]time.Time, 0, DaysBetween(start, end)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}

// IsWorkday reports whether t is neither a weekend day nor a holiday.
func IsWorkday(t time.Time) bool {
	return !IsWeekend(t) && !IsHoliday(t)
}

// CountWorkdays returns the number of workdays from start to end inclusive.
func CountWorkdays(start, end time.Time) int {
	n := 0
	for _, d := range DayRange(start, end) {
		if IsWorkday(d) {
			n++
		}
	}
	return n
}
