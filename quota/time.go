package quota

import (
	"time"
)

// =============================================================================
// DATE HELPERS - All engine dates are UTC midnights with day granularity
// =============================================================================

// NewDate builds a day-granularity date in UTC. The engine compares dates
// with time.Time.Before/After, so inputs from other sources should be
// normalized through Day first.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Sentinel bounds for open-ended parameter intervals.
var (
	DistantPast   = NewDate(1, time.January, 1)
	DistantFuture = NewDate(9999, time.December, 31)
)

func daysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}

// mondayOf returns the Monday of the ISO week containing d.
func mondayOf(d time.Time) time.Time {
	wd := int(d.Weekday())
	if wd == 0 { // Sunday closes the ISO week
		wd = 7
	}
	return Day(d).AddDate(0, 0, 1-wd)
}

// sundayOf returns the Sunday closing the ISO week containing d.
func sundayOf(d time.Time) time.Time {
	return mondayOf(d).AddDate(0, 0, 6)
}

func beforeDay(a, b time.Time) bool { return Day(a).Before(Day(b)) }
func afterDay(a, b time.Time) bool  { return Day(a).After(Day(b)) }
