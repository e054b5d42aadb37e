package models

import "time"

// DateRange is an inclusive span of instants with Start <= End.
//
// Two flavors appear in the system: the persisted range (min/max timestamp of
// the stored commit set, recomputed after every merge) and the reporting
// range driving aggregation, which defaults to the persisted range but may be
// overridden by the caller.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Normalized returns the range with Start floored to local midnight and End
// ceiled to local 23:59:59.999, the convention for caller-supplied reporting
// ranges.
func (r DateRange) Normalized() DateRange {
	s := r.Start.Local()
	e := r.End.Local()
	return DateRange{
		Start: time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, s.Location()),
		End:   time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, int(999*time.Millisecond), e.Location()),
	}
}

// Contains reports whether t falls inside the range, inclusive on both ends.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// LastDays returns the reporting range covering the n calendar days ending at
// now, before normalization.
func LastDays(n int, now time.Time) DateRange {
	return DateRange{Start: now.AddDate(0, 0, -(n - 1)), End: now}
}
