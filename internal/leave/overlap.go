package leave

import "time"

// RangesOverlap reports whether two inclusive date ranges share at least one
// calendar day. A range ending the same day another starts counts as a
// conflict.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	aStart = normalizeDate(aStart)
	aEnd = normalizeDate(aEnd)
	bStart = normalizeDate(bStart)
	bEnd = normalizeDate(bEnd)

	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// firstConflict scans the employee's blocking requests and returns the first
// one sharing a day with the candidate range, or nil.
func firstConflict(start, end time.Time, existing []Leave) *Leave {
	for i := range existing {
		if RangesOverlap(start, end, existing[i].StartDate, existing[i].EndDate) {
			return &existing[i]
		}
	}
	return nil
}
