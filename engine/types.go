/*
Package engine implements the time accounting core.

PURPOSE:
  This package contains the pure logic that turns a raw clock-in/clock-out
  interval into persisted-ready rows: conflict checking against existing
  entries, decomposition into per-calendar-day segments, and classification
  of every minute into day/evening/night buckets.

KEY CONCEPTS IN THIS FILE (types.go):
  - BoundaryConfig: per-tenant clock windows for day/evening/night
  - Interval: a validated clock-in/clock-out pair
  - HourBreakdown: total/day/evening/night hour totals for one segment
  - Segment: one calendar-day-bounded piece of an interval

DESIGN PRINCIPLES:
  1. Purity: classification and splitting have no state and no side effects
  2. Precision: decimal.Decimal for hour totals, never float accumulation
  3. Wall clock: all calendar math reads the wall-clock fields of the
     time.Time values it is handed (tenant-local time); nothing converts
     between zones

SEE ALSO:
  - classify.go: minute-bucket classification
  - split.go: midnight decomposition
  - overlap.go: conflict predicate
  - errors.go: error taxonomy
*/
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CLOCK TIME - Minute offset from midnight
// =============================================================================

// ParseClockTime converts an "HH:MM" or "HH:MM:SS" string to a minute offset
// from midnight in [0, 1440). Seconds are accepted and discarded.
func ParseClockTime(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return hour*60 + minute, nil
}

// FormatClockTime renders a minute offset as "HH:MM:SS".
func FormatClockTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// minuteOfDay returns t's wall-clock minute offset from midnight.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// =============================================================================
// BOUNDARY CONFIG - Per-tenant day/evening/night windows
// =============================================================================

// BoundaryConfig partitions the 24-hour clock into day, evening and night
// windows. Each marker is a minute offset from midnight. A range whose start
// exceeds its end wraps across midnight.
//
// Night markers are descriptive metadata only: classification assigns a
// minute to day first, then evening, and treats everything else as night,
// so no minute can ever be left unassigned.
type BoundaryConfig struct {
	DayStart     int
	DayEnd       int
	EveningStart int
	EveningEnd   int
	NightStart   int
	NightEnd     int
}

// DefaultBoundaries returns the configuration used when a tenant has none:
// day 06:00-18:00, evening 18:00-22:00, night 22:00-06:00.
func DefaultBoundaries() BoundaryConfig {
	return BoundaryConfig{
		DayStart:     6 * 60,
		DayEnd:       18 * 60,
		EveningStart: 18 * 60,
		EveningEnd:   22 * 60,
		NightStart:   22 * 60,
		NightEnd:     6 * 60,
	}
}

// inRange reports whether minute m falls in [start, end), handling ranges
// that wrap across midnight (start > end).
func inRange(m, start, end int) bool {
	if start <= end {
		return m >= start && m < end
	}
	return m >= start || m < end
}

// =============================================================================
// INTERVAL AND SEGMENTS
// =============================================================================

// Interval is a raw clock-in/clock-out pair for one employee.
// Callers validate TimeOut > TimeIn and TimeIn not in the future before
// handing it to the engine; Split re-checks the ordering.
type Interval struct {
	EmployeeID string
	CompanyID  string
	TimeIn     time.Time
	TimeOut    time.Time
}

// HourBreakdown is the bucket totals for a single same-day range.
// Total always equals Day + Evening + Night to two-decimal rounding.
type HourBreakdown struct {
	Total   decimal.Decimal
	Day     decimal.Decimal
	Evening decimal.Decimal
	Night   decimal.Decimal
}

// Segment is one calendar-day-bounded piece of an interval, classified.
// Date is the calendar date of the segment's own TimeIn, formatted
// "2006-01-02" in the interval's wall clock.
type Segment struct {
	Date    string
	TimeIn  time.Time
	TimeOut time.Time
	Hours   HourBreakdown
}

// DateOf returns t's calendar date in "2006-01-02" form.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}
