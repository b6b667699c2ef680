package assignment

import (
	"time"

	"github.com/frahmantamala/workforce-timekeeping/internal/core/calendar"
)

// Interval is a candidate assignment range. End == nil means open-ended.
type Interval struct {
	Start time.Time
	End   *time.Time
}

// FindOverlap returns the first assignment in existing that conflicts with candidate,
// or nil. existing must already be restricted to one (employee, site) pair.
//
// An open-ended existing assignment conflicts when the candidate is open-ended too or
// when the candidate starts on or before now. A candidate with a dated range starting
// strictly after now therefore does not conflict with an open-ended assignment.
// Closed assignments use inclusive bounds on both ends.
func FindOverlap(existing []*Assignment, candidate Interval, excludeID string, now time.Time) *Assignment {
	start := calendar.Day(candidate.Start)
	// today as seen in now's own zone, so the comparison is day against day
	today := calendar.Day(now)
	var end *time.Time
	if candidate.End != nil {
		e := calendar.Day(*candidate.End)
		end = &e
	}

	for _, a := range existing {
		if a == nil || (excludeID != "" && a.ID == excludeID) {
			continue
		}
		if a.StartDate.IsZero() {
			continue
		}
		if conflicts(a, start, end, today) {
			return a
		}
	}
	return nil
}

func conflicts(a *Assignment, start time.Time, end *time.Time, today time.Time) bool {
	if a.EndDate == nil {
		return end == nil || !start.After(today)
	}

	existingStart := calendar.Day(a.StartDate)
	existingEnd := calendar.Day(*a.EndDate)

	if within(start, existingStart, existingEnd) {
		return true
	}
	if end != nil && within(*end, existingStart, existingEnd) {
		return true
	}
	// candidate swallows the existing range
	return !start.After(existingStart) && (end == nil || !end.Before(existingEnd))
}

func within(t, lo, hi time.Time) bool {
	return !t.Before(lo) && !t.After(hi)
}
