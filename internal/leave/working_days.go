package leave

import "time"

// DateSet is a set of calendar dates keyed by YYYY-MM-DD. Duplicate holiday
// rows for the same date collapse into one entry, so a date is never
// excluded twice.
type DateSet map[string]struct{}

func NewDateSet(dates ...time.Time) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

func (s DateSet) Add(t time.Time) {
	s[normalizeDate(t).Format("2006-01-02")] = struct{}{}
}

func (s DateSet) Contains(t time.Time) bool {
	_, ok := s[normalizeDate(t).Format("2006-01-02")]
	return ok
}

// normalizeDate strips time-of-day so comparisons work on calendar days.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CountWorkingDays counts the dates in [start, end] inclusive that are
// neither weekend days nor holidays. It is a pure function; start after end
// yields zero.
func CountWorkingDays(start, end time.Time, holidays DateSet) int {
	start = normalizeDate(start)
	end = normalizeDate(end)

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if holidays.Contains(d) {
			continue
		}
		count++
	}
	return count
}
