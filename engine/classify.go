package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// HOUR CLASSIFIER - Minute-wise day/evening/night bucketing
// =============================================================================

var (
	minutesPerHour = decimal.NewFromInt(60)
	msPerHour      = decimal.NewFromInt(3600000)
)

// Classify buckets every minute of [timeIn, timeOut) into day, evening or
// night and returns the totals rounded to two decimal places (half away
// from zero). Both instants must fall on the same calendar day; Split
// guarantees that for its callers.
//
// The walk is deliberately minute-granular: a minute belongs to exactly one
// bucket, decided at the minute it starts, which keeps boundary minutes
// exact. Day is checked first, then evening; whatever neither claims is
// night, regardless of the configured night markers.
func Classify(timeIn, timeOut time.Time, cfg BoundaryConfig) HourBreakdown {
	var dayMinutes, eveningMinutes, nightMinutes int64

	for current := timeIn; current.Before(timeOut); current = current.Add(time.Minute) {
		m := minuteOfDay(current)
		switch {
		case inRange(m, cfg.DayStart, cfg.DayEnd):
			dayMinutes++
		case inRange(m, cfg.EveningStart, cfg.EveningEnd):
			eveningMinutes++
		default:
			nightMinutes++
		}
	}

	return HourBreakdown{
		Total:   hoursFromDuration(timeOut.Sub(timeIn)),
		Day:     hoursFromMinutes(dayMinutes),
		Evening: hoursFromMinutes(eveningMinutes),
		Night:   hoursFromMinutes(nightMinutes),
	}
}

// hoursFromDuration converts an elapsed duration to hours at two decimals.
func hoursFromDuration(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(d.Milliseconds()).Div(msPerHour).Round(2)
}

// hoursFromMinutes converts a minute count to hours at two decimals.
func hoursFromMinutes(n int64) decimal.Decimal {
	return decimal.NewFromInt(n).Div(minutesPerHour).Round(2)
}
