package engine

import "time"

// =============================================================================
// DAY SPLITTER - Midnight decomposition
// =============================================================================

// Split decomposes an interval into one classified Segment per calendar day
// it touches. Same-day intervals yield a single segment; an interval that
// crosses midnight yields one segment ending at 23:59:59.999 and a next one
// starting one millisecond later, so concatenating the segments in order
// reconstructs the original interval exactly.
//
// Each segment's Date is the date of its own TimeIn, and each segment is
// classified independently against the same BoundaryConfig. Calendar
// boundaries are computed in the interval's own wall clock (tenant-local
// time); no zone conversion happens here.
//
// Split is pure and restartable. It returns ErrInvalidInterval when
// TimeOut is not strictly after TimeIn; nothing is partially processed.
func Split(iv Interval, cfg BoundaryConfig) ([]Segment, error) {
	if !iv.TimeOut.After(iv.TimeIn) {
		return nil, &InvalidIntervalError{TimeIn: iv.TimeIn, TimeOut: iv.TimeOut}
	}

	var segments []Segment
	cursor := iv.TimeIn

	for cursor.Before(iv.TimeOut) {
		dayEnd := endOfDay(cursor)

		segmentEnd := iv.TimeOut
		if dayEnd.Before(iv.TimeOut) {
			segmentEnd = dayEnd
		}

		segments = append(segments, Segment{
			Date:    DateOf(cursor),
			TimeIn:  cursor,
			TimeOut: segmentEnd,
			Hours:   Classify(cursor, segmentEnd, cfg),
		})

		if segmentEnd.Equal(dayEnd) && iv.TimeOut.After(dayEnd) {
			// One millisecond past 23:59:59.999 is midnight of the next day.
			cursor = dayEnd.Add(time.Millisecond)
			continue
		}
		break
	}

	return segments, nil
}

// NeedsSplitting reports whether an interval crosses midnight.
func NeedsSplitting(timeIn, timeOut time.Time) bool {
	return DateOf(timeIn) != DateOf(timeOut)
}

// endOfDay returns 23:59:59.999 on t's calendar day, in t's wall clock.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999*int(time.Millisecond), t.Location())
}
