package service

import "time"

// Reporting period types.
const (
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// Period is the inclusive date range statistics are computed over. It is
// always passed explicitly; the engine never reads the process clock.
type Period struct {
	Type  string
	Start time.Time
	End   time.Time
}

// MonthPeriod covers one calendar month.
func MonthPeriod(year int, month time.Month) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Type:  PeriodMonth,
		Start: start,
		End:   start.AddDate(0, 1, -1),
	}
}

// YearPeriod covers one calendar year.
func YearPeriod(year int) Period {
	return Period{
		Type:  PeriodYear,
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Contains reports whether the date falls inside the period.
func (p Period) Contains(t time.Time) bool {
	key := dateKey(t)
	return key >= dateKey(p.Start) && key <= dateKey(p.End)
}

// dateKey reduces a timestamp to its calendar date. All engine date
// comparisons go through it so time-of-day and zone offsets on loaded
// rows cannot skew grouping or overdue judgments.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
