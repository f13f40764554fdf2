package duedate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2025-01-06 is a Monday.
var monday = time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)

func TestAddCalendarDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{"one day", monday, 1, monday.AddDate(0, 0, 1)},
		{"across weekend", monday, 7, monday.AddDate(0, 0, 7)},
		{"from saturday", time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), 2, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)},
		{"thirty days", monday, 30, monday.AddDate(0, 0, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddCalendarDays(tt.start, tt.n))
		})
	}
}

func TestAddBusinessDays(t *testing.T) {
	friday := time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)
	saturday := time.Date(2025, 1, 11, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{"monday plus one", monday, 1, time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC)},
		{"monday plus five skips weekend", monday, 5, time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC)},
		{"friday plus one lands on monday", friday, 1, time.Date(2025, 1, 13, 9, 30, 0, 0, time.UTC)},
		{"friday plus two", friday, 2, time.Date(2025, 1, 14, 9, 30, 0, 0, time.UTC)},
		{"saturday start does not count itself", saturday, 1, time.Date(2025, 1, 13, 9, 30, 0, 0, time.UTC)},
		{"ten business days is two weeks", monday, 10, time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddBusinessDays(tt.start, tt.n))
		})
	}
}

func TestAddBusinessDaysNeverLandsOnWeekend(t *testing.T) {
	for n := 1; n <= 40; n++ {
		got := AddBusinessDays(monday, n)
		wd := got.Weekday()
		assert.NotEqual(t, time.Saturday, wd, "n=%d", n)
		assert.NotEqual(t, time.Sunday, wd, "n=%d", n)
	}
}

func TestAddBusinessDaysCountsExactly(t *testing.T) {
	// Walk every day between start (exclusive) and the result (inclusive)
	// and verify exactly n weekdays were traversed.
	for n := 1; n <= 25; n++ {
		got := AddBusinessDays(monday, n)
		counted := 0
		for d := monday.AddDate(0, 0, 1); !d.After(got); d = d.AddDate(0, 0, 1) {
			if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
				counted++
			}
		}
		assert.Equal(t, n, counted, "n=%d", n)
	}
}

func TestAddBusinessDaysDoesNotMutateInput(t *testing.T) {
	start := monday
	AddBusinessDays(start, 9)
	assert.Equal(t, monday, start)
}

func TestAddSelectsPolicy(t *testing.T) {
	friday := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, AddBusinessDays(friday, 1), Add(PolicyBusinessDays, friday, 1))
	assert.Equal(t, AddCalendarDays(friday, 1), Add(PolicyCalendarDays, friday, 1))
	assert.NotEqual(t, Add(PolicyBusinessDays, friday, 1), Add(PolicyCalendarDays, friday, 1))
}

func TestPolicyValid(t *testing.T) {
	assert.True(t, PolicyBusinessDays.Valid())
	assert.True(t, PolicyCalendarDays.Valid())
	assert.False(t, Policy("WEEKLY").Valid())
	assert.False(t, Policy("").Valid())
}
