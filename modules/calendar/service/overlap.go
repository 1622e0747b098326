package service

import "time"

// Overlaps reports whether a candidate time range intersects a fixed one.
// All four values are time-of-day instants on the same reference date.
//
// Ranges are treated as closed intervals: a candidate that starts exactly
// when the fixed range ends still counts as an overlap, so back-to-back
// slots are rejected.
func Overlaps(fixedStart, fixedEnd, newStart, newEnd time.Time) bool {
	within := func(t time.Time) bool {
		return !t.Before(fixedStart) && !t.After(fixedEnd)
	}
	if within(newStart) || within(newEnd) {
		return true
	}
	// Candidate fully contains the fixed range.
	return !newStart.After(fixedStart) && !newEnd.Before(fixedEnd)
}
