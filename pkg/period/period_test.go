package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekKey(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"late october", time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC), "2025-W44"},
		{"first days of january belong to previous iso year", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), "2026-W53"},
		{"december spilling into next iso year", time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), "2025-W01"},
		{"single digit week is zero padded", time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), "2025-W06"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WeekKey(tc.in))
		})
	}
}

func TestWeekKeyIgnoresTimezone(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	// 2025-11-03 06:00 WIB is 2025-11-02 23:00 UTC, still week 44
	local := time.Date(2025, 11, 3, 6, 0, 0, 0, jakarta)
	assert.Equal(t, "2025-W44", WeekKey(local))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-10", MonthKey(time.Date(2025, 10, 30, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01", MonthKey(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
}

func TestStartOfWeek(t *testing.T) {
	// Thursday 2025-10-30 -> Monday 2025-10-27
	got := StartOfWeek(time.Date(2025, 10, 30, 15, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC), got)

	// Sunday belongs to the week that started the previous Monday
	got = StartOfWeek(time.Date(2025, 11, 2, 1, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC), got)
}

func TestNextMonthWeekKey(t *testing.T) {
	// First of November 2025 is a Saturday, ISO week 44
	assert.Equal(t, "2025-W44", NextMonthWeekKey(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)))
	// First of December 2025 is a Monday, ISO week 49
	assert.Equal(t, "2025-W49", NextMonthWeekKey(time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)))
}

func TestSameISOWeekAndMonth(t *testing.T) {
	a := time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 11, 2, 23, 59, 0, 0, time.UTC)
	assert.True(t, SameISOWeek(a, b))
	assert.False(t, SameMonth(a, b))
}
