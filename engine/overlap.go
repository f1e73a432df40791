package engine

import "time"

// =============================================================================
// OVERLAP DETECTOR - Conflict predicate over same-day entries
// =============================================================================

// ExistingEntry is the slice of an already-recorded time entry the conflict
// predicate needs. The persistence layer supplies these, filtered to the
// candidate's start date.
type ExistingEntry struct {
	ID      string
	TimeIn  time.Time
	TimeOut time.Time
}

// HasConflict reports whether the candidate [timeIn, timeOut) collides with
// any of the supplied entries. Two intervals conflict when:
//
//	(a) the candidate starts inside an existing entry  [start, end)
//	(b) the candidate ends inside an existing entry    (start, end]
//	(c) the candidate fully contains an existing entry
//
// excludeID skips one entry, so an update can check against everything but
// itself. Pass "" to check all entries.
//
// The comparison set is same-start-date only: the caller fetches entries
// whose entry date equals the candidate's TimeIn date. A conflict that only
// occupies the following day's early hours is therefore not visible to this
// predicate; widening the fetched window is the integrator's call.
func HasConflict(timeIn, timeOut time.Time, existing []ExistingEntry, excludeID string) bool {
	for _, e := range existing {
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		startsInside := !e.TimeIn.After(timeIn) && e.TimeOut.After(timeIn)
		endsInside := e.TimeIn.Before(timeOut) && !e.TimeOut.Before(timeOut)
		contains := !timeIn.After(e.TimeIn) && !timeOut.Before(e.TimeOut)
		if startsInside || endsInside || contains {
			return true
		}
	}
	return false
}

// FirstConflict returns the first colliding entry, if any. It exists so
// callers can report which entry blocked an insert.
func FirstConflict(timeIn, timeOut time.Time, existing []ExistingEntry, excludeID string) (ExistingEntry, bool) {
	for _, e := range existing {
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if HasConflict(timeIn, timeOut, []ExistingEntry{e}, "") {
			return e, true
		}
	}
	return ExistingEntry{}, false
}
