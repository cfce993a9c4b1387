package attendance

import "time"

// WeekdaysInMonth counts Monday through Friday occurrences in the given
// calendar month. Public holidays are not modeled.
func WeekdaysInMonth(month, year int) int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	count := 0
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

// Summarize folds a month's attendance rows into the summary used by
// payroll. absentDays is plain subtraction and may be negative when
// weekend or backfilled records push presentDays past workingDays.
func Summarize(rows []Attendance, month, year int) MonthlySummary {
	s := MonthlySummary{WorkingDays: WeekdaysInMonth(month, year)}
	for _, row := range rows {
		switch row.Status {
		case StatusPresent, StatusLate:
			s.PresentDays++
		case StatusLeave:
			s.LeaveDays++
		}
		s.OvertimeHours += row.OvertimeHours
	}
	s.AbsentDays = s.WorkingDays - s.PresentDays
	return s
}

// MonthDateRange returns the first and last day of a month as the
// YYYY-MM-DD strings the attendance table is keyed by.
func MonthDateRange(month, year int) (string, string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}
