package timeentry

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/timeclock/engine"
	"github.com/warp/timeclock/store/sqlite"
)

// =============================================================================
// STUB STORE
// =============================================================================

// stubStore records calls and serves canned data; no database involved.
type stubStore struct {
	boundaries engine.BoundaryConfig
	sameDay    []engine.ExistingEntry
	entries    map[string]*sqlite.TimeEntry

	inserted []sqlite.TimeEntry
	audits   []sqlite.AuditRecord
	deleted  []string
	updated  []string
	approved []string
}

func newStubStore() *stubStore {
	return &stubStore{
		boundaries: engine.DefaultBoundaries(),
		entries:    make(map[string]*sqlite.TimeEntry),
	}
}

func (s *stubStore) BoundaryConfig(context.Context, string) (engine.BoundaryConfig, error) {
	return s.boundaries, nil
}

func (s *stubStore) SameDayEntries(context.Context, string, string) ([]engine.ExistingEntry, error) {
	return s.sameDay, nil
}

func (s *stubStore) InsertTimeEntries(_ context.Context, entries []sqlite.TimeEntry) error {
	s.inserted = append(s.inserted, entries...)
	return nil
}

func (s *stubStore) GetTimeEntry(_ context.Context, id string) (*sqlite.TimeEntry, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, engine.ErrNotFound
	}
	return e, nil
}

func (s *stubStore) UpdateTimeEntryDetails(_ context.Context, id, _, _, _ string) error {
	s.updated = append(s.updated, id)
	return nil
}

func (s *stubStore) ApproveTimeEntry(_ context.Context, _, id string, _ bool, _ string) error {
	s.approved = append(s.approved, id)
	return nil
}

func (s *stubStore) DeleteTimeEntry(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubStore) AppendAudit(_ context.Context, rec sqlite.AuditRecord) error {
	s.audits = append(s.audits, rec)
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

var frozenNow = time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)

func newTestService(store *stubStore) *Service {
	svc := NewService(store)
	svc.now = func() time.Time { return frozenNow }
	return svc
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.March, day, hour, minute, 0, 0, time.UTC)
}

func input(timeIn, timeOut time.Time) CreateInput {
	return CreateInput{
		CompanyID:   "com-1",
		EmployeeID:  "emp-1",
		ProjectID:   "pro-1",
		WorkplaceID: "loc-1",
		TimeIn:      timeIn,
		TimeOut:     timeOut,
	}
}

func boolPtr(b bool) *bool { return &b }

// =============================================================================
// CREATE
// =============================================================================

func TestService_CreateSameDayEntry(t *testing.T) {
	// GIVEN: a 09:00-17:30 interval with no existing entries
	// WHEN: creating it
	// THEN: one classified row is persisted and one "created" audit written

	store := newStubStore()
	svc := newTestService(store)

	entries, err := svc.Create(context.Background(), input(at(19, 9, 0), at(19, 17, 30)))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "2025-03-19", e.EntryDate)
	assert.True(t, e.DayHours.Equal(decimal.RequireFromString("8.5")))
	assert.Equal(t, store.inserted, entries)

	require.Len(t, store.audits, 1)
	assert.Equal(t, "created", store.audits[0].Action)
	assert.Equal(t, e.ID, store.audits[0].TimeEntryID)
}

func TestService_CreateSplitsAtMidnight(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store)

	entries, err := svc.Create(context.Background(), input(at(18, 20, 0), at(19, 4, 0)))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "2025-03-18", entries[0].EntryDate)
	assert.Equal(t, "2025-03-19", entries[1].EntryDate)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
	assert.Len(t, store.audits, 2, "one audit record per persisted row")
}

func TestService_CreateRejectsOverlap(t *testing.T) {
	// GIVEN: an existing 09:00-12:00 entry on the same day
	// WHEN: creating a 10:00-14:00 interval
	// THEN: the create fails with ErrOverlap naming the blocker; nothing persists

	store := newStubStore()
	store.sameDay = []engine.ExistingEntry{
		{ID: "existing-1", TimeIn: at(19, 9, 0), TimeOut: at(19, 12, 0)},
	}
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), input(at(19, 10, 0), at(19, 14, 0)))
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrOverlap)

	var overlap *engine.OverlapError
	require.ErrorAs(t, err, &overlap)
	assert.Equal(t, "existing-1", overlap.ExistingID)

	assert.Empty(t, store.inserted)
	assert.Empty(t, store.audits)
}

func TestService_CreateAllowsAdjacentIntervals(t *testing.T) {
	store := newStubStore()
	store.sameDay = []engine.ExistingEntry{
		{ID: "existing-1", TimeIn: at(19, 9, 0), TimeOut: at(19, 12, 0)},
	}
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), input(at(19, 12, 0), at(19, 14, 0)))
	assert.NoError(t, err)
}

func TestService_CreateRejectsInvertedInterval(t *testing.T) {
	svc := newTestService(newStubStore())

	_, err := svc.Create(context.Background(), input(at(19, 17, 0), at(19, 9, 0)))
	assert.ErrorIs(t, err, engine.ErrInvalidInterval)
}

func TestService_CreateRejectsFutureClockIn(t *testing.T) {
	svc := newTestService(newStubStore())

	// frozenNow is 2025-03-20 12:00; an afternoon clock-in is still ahead
	_, err := svc.Create(context.Background(), input(at(20, 14, 0), at(20, 16, 0)))
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidInterval)

	var detail *engine.InvalidIntervalError
	require.ErrorAs(t, err, &detail)
	assert.Contains(t, detail.Reason, "future")
}

func TestService_CreateUsesTenantBoundaries(t *testing.T) {
	// A tenant whose day ends at 15:00 books 15:00-17:00 as evening.
	store := newStubStore()
	store.boundaries = engine.BoundaryConfig{
		DayStart: 7 * 60, DayEnd: 15 * 60,
		EveningStart: 15 * 60, EveningEnd: 23 * 60,
		NightStart: 23 * 60, NightEnd: 7 * 60,
	}
	svc := newTestService(store)

	entries, err := svc.Create(context.Background(), input(at(19, 15, 0), at(19, 17, 0)))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].EveningHours.Equal(decimal.RequireFromString("2")))
	assert.True(t, entries[0].DayHours.IsZero())
}

// =============================================================================
// UPDATE / DELETE / APPROVE
// =============================================================================

func TestService_UpdateDetailsChecksOwnership(t *testing.T) {
	store := newStubStore()
	store.entries["te-1"] = &sqlite.TimeEntry{ID: "te-1", EmployeeID: "emp-other"}
	svc := newTestService(store)

	err := svc.UpdateDetails(context.Background(), "emp-1", "te-1", "pro-2", "loc-2", "")
	assert.ErrorIs(t, err, engine.ErrNotFound, "someone else's entry reads as missing")
	assert.Empty(t, store.updated)
}

func TestService_UpdateDetailsRefusesApprovedEntry(t *testing.T) {
	store := newStubStore()
	store.entries["te-1"] = &sqlite.TimeEntry{
		ID: "te-1", EmployeeID: "emp-1", IsApproved: boolPtr(true),
	}
	svc := newTestService(store)

	err := svc.UpdateDetails(context.Background(), "emp-1", "te-1", "pro-2", "loc-2", "")
	assert.ErrorIs(t, err, engine.ErrApprovedImmutable)
	assert.Empty(t, store.updated)
}

func TestService_UpdateDetailsAuditsOldAndNew(t *testing.T) {
	store := newStubStore()
	store.entries["te-1"] = &sqlite.TimeEntry{
		ID: "te-1", EmployeeID: "emp-1", ProjectID: "pro-1", WorkplaceID: "loc-1",
	}
	svc := newTestService(store)

	require.NoError(t, svc.UpdateDetails(context.Background(), "emp-1", "te-1", "pro-2", "loc-2", "moved"))
	assert.Equal(t, []string{"te-1"}, store.updated)

	require.Len(t, store.audits, 1)
	rec := store.audits[0]
	assert.Equal(t, "updated", rec.Action)
	assert.Equal(t, "pro-1", rec.OldValues["project_id"])
	assert.Equal(t, "pro-2", rec.NewValues["project_id"])
}

func TestService_DeleteRefusesApprovedEntry(t *testing.T) {
	store := newStubStore()
	store.entries["te-1"] = &sqlite.TimeEntry{
		ID: "te-1", EmployeeID: "emp-1", IsApproved: boolPtr(true),
	}
	svc := newTestService(store)

	err := svc.Delete(context.Background(), "emp-1", "te-1")
	assert.ErrorIs(t, err, engine.ErrApprovedImmutable)
	assert.Empty(t, store.deleted)
}

func TestService_DeleteAllowsRejectedEntry(t *testing.T) {
	// A rejected entry (is_approved = false) stays editable.
	store := newStubStore()
	store.entries["te-1"] = &sqlite.TimeEntry{
		ID: "te-1", EmployeeID: "emp-1", IsApproved: boolPtr(false),
	}
	svc := newTestService(store)

	require.NoError(t, svc.Delete(context.Background(), "emp-1", "te-1"))
	assert.Equal(t, []string{"te-1"}, store.deleted)
}

func TestService_ApproveAuditsDecision(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store)
	ctx := context.Background()

	require.NoError(t, svc.Approve(ctx, "com-1", "te-1", true, "admin-1"))
	require.NoError(t, svc.Approve(ctx, "com-1", "te-2", false, "admin-1"))

	assert.Equal(t, []string{"te-1", "te-2"}, store.approved)
	require.Len(t, store.audits, 2)
	assert.Equal(t, "approved", store.audits[0].Action)
	assert.Equal(t, "rejected", store.audits[1].Action)
	assert.Equal(t, "admin", store.audits[0].ActorType)
}
