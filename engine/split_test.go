package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/timeclock/engine"
)

func interval(timeIn, timeOut time.Time) engine.Interval {
	return engine.Interval{
		EmployeeID: "emp-1",
		CompanyID:  "com-1",
		TimeIn:     timeIn,
		TimeOut:    timeOut,
	}
}

func TestSplit_SameDayYieldsSingleSegment(t *testing.T) {
	segments, err := engine.Split(interval(at(9, 0), at(17, 30)), engine.DefaultBoundaries())
	require.NoError(t, err)
	require.Len(t, segments, 1)

	seg := segments[0]
	assert.Equal(t, "2025-01-15", seg.Date)
	assert.True(t, seg.TimeIn.Equal(at(9, 0)))
	assert.True(t, seg.TimeOut.Equal(at(17, 30)))
	assertHours(t, "8.5", seg.Hours.Day, "day")
}

func TestSplit_OvernightShift(t *testing.T) {
	// GIVEN: a shift from 20:00 to 04:00 the next morning
	// WHEN: splitting at midnight
	// THEN: two segments, each dated by its own clock-in, the first ending
	//       at 23:59:59.999 and the second starting at next midnight

	timeOut := time.Date(2025, time.January, 16, 4, 0, 0, 0, time.UTC)
	segments, err := engine.Split(interval(at(20, 0), timeOut), engine.DefaultBoundaries())
	require.NoError(t, err)
	require.Len(t, segments, 2)

	first, second := segments[0], segments[1]

	assert.Equal(t, "2025-01-15", first.Date)
	assert.True(t, first.TimeIn.Equal(at(20, 0)))
	wantEnd := time.Date(2025, time.January, 15, 23, 59, 59, 999*int(time.Millisecond), time.UTC)
	assert.True(t, first.TimeOut.Equal(wantEnd))
	assertHours(t, "4", first.Hours.Total, "total")
	assertHours(t, "2", first.Hours.Evening, "evening")
	assertHours(t, "2", first.Hours.Night, "night")

	assert.Equal(t, "2025-01-16", second.Date)
	assert.True(t, second.TimeIn.Equal(time.Date(2025, time.January, 16, 0, 0, 0, 0, time.UTC)))
	assert.True(t, second.TimeOut.Equal(timeOut))
	assertHours(t, "4", second.Hours.Total, "total")
	assertHours(t, "4", second.Hours.Night, "night")
}

func TestSplit_NightShiftIntoMorning(t *testing.T) {
	// 22:00 -> 07:00 next day: 2h night before midnight, then 6h night
	// and 1h day after it.
	timeOut := time.Date(2025, time.January, 16, 7, 0, 0, 0, time.UTC)
	segments, err := engine.Split(interval(at(22, 0), timeOut), engine.DefaultBoundaries())
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assertHours(t, "2", segments[0].Hours.Night, "night")
	assertHours(t, "2", segments[0].Hours.Total, "total")

	assertHours(t, "6", segments[1].Hours.Night, "night")
	assertHours(t, "1", segments[1].Hours.Day, "day")
	assertHours(t, "7", segments[1].Hours.Total, "total")
}

func TestSplit_MultiDaySpan(t *testing.T) {
	// A span touching three calendar days yields three segments, one per day,
	// in chronological order.
	timeOut := time.Date(2025, time.January, 17, 10, 0, 0, 0, time.UTC)
	segments, err := engine.Split(interval(at(22, 0), timeOut), engine.DefaultBoundaries())
	require.NoError(t, err)
	require.Len(t, segments, 3)

	assert.Equal(t, "2025-01-15", segments[0].Date)
	assert.Equal(t, "2025-01-16", segments[1].Date)
	assert.Equal(t, "2025-01-17", segments[2].Date)
}

func TestSplit_SegmentsReconstructInterval(t *testing.T) {
	// Segment boundaries must tile the original interval: first clock-in and
	// last clock-out match the interval, and each segment starts exactly one
	// millisecond after its predecessor ends.
	timeOut := time.Date(2025, time.January, 18, 6, 45, 0, 0, time.UTC)
	iv := interval(at(13, 30), timeOut)

	segments, err := engine.Split(iv, engine.DefaultBoundaries())
	require.NoError(t, err)
	require.NotEmpty(t, segments)

	assert.True(t, segments[0].TimeIn.Equal(iv.TimeIn))
	assert.True(t, segments[len(segments)-1].TimeOut.Equal(iv.TimeOut))

	for i := 1; i < len(segments); i++ {
		gap := segments[i].TimeIn.Sub(segments[i-1].TimeOut)
		assert.Equal(t, time.Millisecond, gap, "segment %d does not abut its predecessor", i)
	}
}

func TestSplit_RejectsInvertedInterval(t *testing.T) {
	_, err := engine.Split(interval(at(17, 0), at(9, 0)), engine.DefaultBoundaries())
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidInterval)

	var detail *engine.InvalidIntervalError
	assert.ErrorAs(t, err, &detail)
}

func TestSplit_RejectsZeroLengthInterval(t *testing.T) {
	_, err := engine.Split(interval(at(9, 0), at(9, 0)), engine.DefaultBoundaries())
	assert.ErrorIs(t, err, engine.ErrInvalidInterval)
}

func TestNeedsSplitting(t *testing.T) {
	assert.False(t, engine.NeedsSplitting(at(9, 0), at(17, 0)))
	assert.True(t, engine.NeedsSplitting(at(20, 0),
		time.Date(2025, time.January, 16, 4, 0, 0, 0, time.UTC)))
	// Clock-out exactly at midnight belongs to the next calendar day.
	assert.True(t, engine.NeedsSplitting(at(20, 0),
		time.Date(2025, time.January, 16, 0, 0, 0, 0, time.UTC)))
}
