package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return ts
}

func TestWeekdaysInMonth(t *testing.T) {
	// January 2024 starts on a Monday and has 31 days.
	assert.Equal(t, 23, WeekdaysInMonth(1, 2024))
	// February 2024 is a leap February starting on a Thursday.
	assert.Equal(t, 21, WeekdaysInMonth(2, 2024))
	assert.Equal(t, 22, WeekdaysInMonth(4, 2024))
}

func TestSummarize(t *testing.T) {
	rows := []Attendance{
		{Status: StatusPresent, OvertimeHours: 1.5},
		{Status: StatusLate, OvertimeHours: 0},
		{Status: StatusPresent, OvertimeHours: 2},
		{Status: StatusLeave},
		{Status: StatusLeave},
		{Status: StatusAbsent},
	}

	s := Summarize(rows, 1, 2024)
	assert.Equal(t, 23, s.WorkingDays)
	assert.Equal(t, 3, s.PresentDays)
	assert.Equal(t, 20, s.AbsentDays)
	assert.Equal(t, 2, s.LeaveDays)
	assert.InDelta(t, 3.5, s.OvertimeHours, 1e-9)
}

func TestSummarize_EmptyMonth(t *testing.T) {
	s := Summarize(nil, 1, 2024)
	assert.Equal(t, 23, s.WorkingDays)
	assert.Equal(t, 0, s.PresentDays)
	assert.Equal(t, 23, s.AbsentDays)
	assert.Equal(t, 0, s.LeaveDays)
	assert.Zero(t, s.OvertimeHours)
}

// Weekend records can push presentDays past workingDays; the absent
// count goes negative rather than clamping.
func TestSummarize_AbsentDaysUnclamped(t *testing.T) {
	rows := make([]Attendance, 0, 25)
	for i := 0; i < 25; i++ {
		rows = append(rows, Attendance{Status: StatusPresent})
	}

	s := Summarize(rows, 1, 2024)
	assert.Equal(t, 25, s.PresentDays)
	assert.Equal(t, -2, s.AbsentDays)
}

func TestMonthDateRange(t *testing.T) {
	from, to := MonthDateRange(2, 2024)
	assert.Equal(t, "2024-02-01", from)
	assert.Equal(t, "2024-02-29", to)
}

func TestOvertimeHours(t *testing.T) {
	in := mustTime(t, "2024-01-08T09:00:00Z")

	// Under the standard day: no overtime.
	assert.Zero(t, overtimeHours(in, mustTime(t, "2024-01-08T16:00:00Z"), 8, 30))
	// Excess below the 30 minute threshold is dropped.
	assert.Zero(t, overtimeHours(in, mustTime(t, "2024-01-08T17:20:00Z"), 8, 30))
	// Past the threshold the full excess counts.
	assert.InDelta(t, 2, overtimeHours(in, mustTime(t, "2024-01-08T19:00:00Z"), 8, 30), 1e-9)
}
