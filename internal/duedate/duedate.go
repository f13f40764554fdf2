package duedate

import "time"

// Policy selects how deadline day counts are converted into dates.
// It is persisted with each assignment so later extension approvals
// reuse the same counting rule the original deadline was computed with.
type Policy string

const (
	PolicyBusinessDays Policy = "BUSINESS"
	PolicyCalendarDays Policy = "CALENDAR"
)

// Valid reports whether p is a known policy.
func (p Policy) Valid() bool {
	return p == PolicyBusinessDays || p == PolicyCalendarDays
}

// AddBusinessDays walks forward from start one calendar day at a time,
// counting only days whose weekday is not Saturday or Sunday, and returns
// the date reached once n qualifying days have been counted.
//
// If start itself falls on a weekend it does not count; counting begins
// with the next calendar day. Callers must ensure n >= 1.
func AddBusinessDays(start time.Time, n int) time.Time {
	result := start
	counted := 0
	for counted < n {
		result = result.AddDate(0, 0, 1)
		if wd := result.Weekday(); wd != time.Saturday && wd != time.Sunday {
			counted++
		}
	}
	return result
}

// AddCalendarDays returns start plus n days, weekends included.
func AddCalendarDays(start time.Time, n int) time.Time {
	return start.AddDate(0, 0, n)
}

// Add applies the calculator variant selected by p.
func Add(p Policy, start time.Time, n int) time.Time {
	if p == PolicyCalendarDays {
		return AddCalendarDays(start, n)
	}
	return AddBusinessDays(start, n)
}
