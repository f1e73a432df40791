/*
errors.go - Centralized error types for the time accounting core

PURPOSE:
  All error types in one place for consistency and discoverability.
  The surrounding layers wrap these errors with additional context.

ERROR CATEGORIES:
  1. Interval errors   - Invalid bounds, rejected before processing
  2. Conflict errors   - Overlap detector refused the candidate
  3. Allocation errors - Sequence counter could not be committed
  4. Lookup errors     - Referenced entity does not exist

USAGE:
  Callers branch with errors.Is():

    if errors.Is(err, engine.ErrOverlap) {
        // 409 to the client
    }
*/
package engine

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInterval is returned when an interval's clock-out is not
	// strictly after its clock-in, or its clock-in lies in the future.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrOverlap is returned when a candidate interval conflicts with an
	// already-recorded entry for the same employee and date.
	ErrOverlap = errors.New("interval overlaps existing entry")

	// ErrAllocationContention is returned when a sequence increment could
	// not be committed. The whole allocation is retryable from scratch.
	ErrAllocationContention = errors.New("code allocation contention")

	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrApprovedImmutable is returned when mutating an approved entry.
	ErrApprovedImmutable = errors.New("approved time entry is immutable")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidIntervalError details a rejected interval.
type InvalidIntervalError struct {
	TimeIn  time.Time
	TimeOut time.Time
	Reason  string
}

func (e *InvalidIntervalError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid interval [%s, %s]: %s",
			e.TimeIn.Format(time.RFC3339), e.TimeOut.Format(time.RFC3339), e.Reason)
	}
	return fmt.Sprintf("invalid interval: clock-out %s not after clock-in %s",
		e.TimeOut.Format(time.RFC3339), e.TimeIn.Format(time.RFC3339))
}

func (e *InvalidIntervalError) Unwrap() error { return ErrInvalidInterval }

// OverlapError identifies the entry that blocked an insert or update.
type OverlapError struct {
	EmployeeID string
	ExistingID string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("interval for employee %s overlaps entry %s", e.EmployeeID, e.ExistingID)
}

func (e *OverlapError) Unwrap() error { return ErrOverlap }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsRetryable returns true if the error might succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrAllocationContention)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrOverlap) ||
		errors.Is(err, ErrApprovedImmutable)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
