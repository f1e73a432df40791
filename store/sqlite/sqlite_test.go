package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/timeclock/engine"
	"github.com/warp/timeclock/sequence"
	"github.com/warp/timeclock/store/sqlite"
)

// =============================================================================
// FIXTURES
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// seedTenant creates a company with one employee, project and workplace, so
// foreign keys on time entries hold.
func seedTenant(t *testing.T, store *sqlite.Store) (companyID, employeeID, projectID, workplaceID string) {
	t.Helper()
	ctx := context.Background()

	companyID, employeeID, projectID, workplaceID = "com-1", "emp-1", "pro-1", "loc-1"
	require.NoError(t, store.SaveCompany(ctx, sqlite.Company{
		ID: companyID, Code: "COM001", Name: "Acme", Email: "ops@acme.test",
	}))
	require.NoError(t, store.SaveEmployee(ctx, sqlite.Employee{
		ID: employeeID, CompanyID: companyID, Code: "EMP001",
		Email: "jo@acme.test", PasswordHash: "x",
		FirstName: "Jo", LastName: "Bloggs",
		HireDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		IsActive: true,
	}))
	require.NoError(t, store.SaveProject(ctx, sqlite.Project{
		ID: projectID, CompanyID: companyID, Code: "PRO001", Name: "Rollout", IsActive: true,
	}))
	require.NoError(t, store.SaveWorkplace(ctx, sqlite.Workplace{
		ID: workplaceID, CompanyID: companyID, Code: "LOC001", Name: "HQ", IsActive: true,
	}))
	return
}

func seedEntry(t *testing.T, store *sqlite.Store, id string, timeIn, timeOut time.Time) {
	t.Helper()
	b := engine.Classify(timeIn, timeOut, engine.DefaultBoundaries())
	require.NoError(t, store.InsertTimeEntries(context.Background(), []sqlite.TimeEntry{{
		ID: id, CompanyID: "com-1", EmployeeID: "emp-1",
		ProjectID: "pro-1", WorkplaceID: "loc-1",
		EntryDate: engine.DateOf(timeIn), TimeIn: timeIn, TimeOut: timeOut,
		TotalHours: b.Total, DayHours: b.Day, EveningHours: b.Evening, NightHours: b.Night,
	}}))
}

func on(day, hour, minute int) time.Time {
	return time.Date(2025, time.March, day, hour, minute, 0, 0, time.UTC)
}

// =============================================================================
// COMPANIES
// =============================================================================

func TestStore_CompanyLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCompany(ctx, sqlite.Company{
		ID: "com-1", Code: "COM001", Name: "Acme", Email: "ops@acme.test", Phone: "555-0100",
	}))

	got, err := store.GetCompany(ctx, "com-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, "555-0100", got.Phone)

	got.Name = "Acme Ltd"
	require.NoError(t, store.UpdateCompany(ctx, *got))
	got, err = store.GetCompany(ctx, "com-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", got.Name)

	require.NoError(t, store.DeleteCompany(ctx, "com-1"))
	_, err = store.GetCompany(ctx, "com-1")
	assert.ErrorIs(t, err, engine.ErrNotFound)

	// deleting twice is a not-found, soft delete already consumed the row
	assert.ErrorIs(t, store.DeleteCompany(ctx, "com-1"), engine.ErrNotFound)
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func TestStore_EmployeeSearchAndPagination(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	companyID, _, _, _ := seedTenant(t, store)

	names := []struct{ first, last string }{
		{"Ada", "Lovelace"}, {"Grace", "Hopper"}, {"Alan", "Kay"},
	}
	for i, n := range names {
		require.NoError(t, store.SaveEmployee(ctx, sqlite.Employee{
			ID: "emp-x" + string(rune('a'+i)), CompanyID: companyID,
			Code: "EMP10" + string(rune('0'+i)), Email: n.first + "@acme.test",
			PasswordHash: "x", FirstName: n.first, LastName: n.last,
			HireDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), IsActive: true,
		}))
	}

	all, total, err := store.ListEmployees(ctx, companyID, sqlite.Page{Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, 4, total) // 3 + the seeded fixture
	assert.Len(t, all, 4)

	page, total, err := store.ListEmployees(ctx, companyID, sqlite.Page{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Len(t, page, 2)

	found, _, err := store.ListEmployees(ctx, companyID, sqlite.Page{Limit: 10, Search: "Hopper"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Grace", found[0].FirstName)
}

// =============================================================================
// BOUNDARY CONFIGURATION
// =============================================================================

func TestStore_BoundaryConfigDefaultsWhenUnset(t *testing.T) {
	store := newTestStore(t)
	seedTenant(t, store)

	cfg, err := store.BoundaryConfig(context.Background(), "com-1")
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultBoundaries(), cfg)
}

func TestStore_BoundaryConfigRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedTenant(t, store)

	custom := engine.BoundaryConfig{
		DayStart: 7 * 60, DayEnd: 15 * 60,
		EveningStart: 15 * 60, EveningEnd: 23 * 60,
		NightStart: 23 * 60, NightEnd: 7 * 60,
	}
	require.NoError(t, store.SaveBoundaryConfig(ctx, "com-1", custom))

	got, err := store.BoundaryConfig(ctx, "com-1")
	require.NoError(t, err)
	assert.Equal(t, custom, got)

	// upsert replaces the previous markers
	custom.DayStart = 8 * 60
	require.NoError(t, store.SaveBoundaryConfig(ctx, "com-1", custom))
	got, err = store.BoundaryConfig(ctx, "com-1")
	require.NoError(t, err)
	assert.Equal(t, 8*60, got.DayStart)
}

// =============================================================================
// TIME ENTRIES
// =============================================================================

func TestStore_TimeEntryRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedTenant(t, store)

	seedEntry(t, store, "te-1", on(10, 9, 0), on(10, 17, 30))

	got, err := store.GetTimeEntry(ctx, "te-1")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", got.EntryDate)
	assert.True(t, got.TimeIn.Equal(on(10, 9, 0)))
	assert.True(t, got.TotalHours.Equal(decimal.RequireFromString("8.5")))
	assert.Nil(t, got.IsApproved)
}

func TestStore_SameDayEntriesExcludesDeleted(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedTenant(t, store)

	seedEntry(t, store, "te-1", on(10, 9, 0), on(10, 12, 0))
	seedEntry(t, store, "te-2", on(10, 13, 0), on(10, 17, 0))
	seedEntry(t, store, "te-3", on(11, 9, 0), on(11, 17, 0))

	same, err := store.SameDayEntries(ctx, "emp-1", "2025-03-10")
	require.NoError(t, err)
	assert.Len(t, same, 2)

	require.NoError(t, store.DeleteTimeEntry(ctx, "te-1"))
	same, err = store.SameDayEntries(ctx, "emp-1", "2025-03-10")
	require.NoError(t, err)
	require.Len(t, same, 1)
	assert.Equal(t, "te-2", same[0].ID)
}

func TestStore_ApproveTimeEntry(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedTenant(t, store)
	seedEntry(t, store, "te-1", on(10, 9, 0), on(10, 17, 0))

	require.NoError(t, store.ApproveTimeEntry(ctx, "com-1", "te-1", true, "admin-1"))

	got, err := store.GetTimeEntry(ctx, "te-1")
	require.NoError(t, err)
	require.NotNil(t, got.IsApproved)
	assert.True(t, *got.IsApproved)
	assert.Equal(t, "admin-1", got.ApprovedBy)
	assert.NotNil(t, got.ApprovedAt)

	// wrong tenant never matches
	err = store.ApproveTimeEntry(ctx, "com-other", "te-1", true, "admin-1")
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestStore_ListTimeEntriesFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedTenant(t, store)

	seedEntry(t, store, "te-1", on(10, 9, 0), on(10, 12, 0))
	seedEntry(t, store, "te-2", on(11, 9, 0), on(11, 12, 0))
	seedEntry(t, store, "te-3", on(12, 9, 0), on(12, 12, 0))

	entries, total, err := store.ListTimeEntries(ctx, sqlite.TimeEntryFilter{
		CompanyID: "com-1",
		FromDate:  "2025-03-11",
		ToDate:    "2025-03-11",
		Page:      sqlite.Page{Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, entries, 1)
	assert.Equal(t, "te-2", entries[0].ID)

	// newest entry date first
	entries, _, err = store.ListTimeEntries(ctx, sqlite.TimeEntryFilter{
		CompanyID: "com-1", Page: sqlite.Page{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "te-3", entries[0].ID)

	// approval filter: unreviewed rows count as unapproved
	require.NoError(t, store.ApproveTimeEntry(ctx, "com-1", "te-1", true, "admin-1"))
	approved := true
	entries, _, err = store.ListTimeEntries(ctx, sqlite.TimeEntryFilter{
		CompanyID: "com-1", Approved: &approved, Page: sqlite.Page{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "te-1", entries[0].ID)

	pending := false
	entries, _, err = store.ListTimeEntries(ctx, sqlite.TimeEntryFilter{
		CompanyID: "com-1", Approved: &pending, Page: sqlite.Page{Limit: 10},
	})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

// =============================================================================
// REPORTS
// =============================================================================

func TestStore_SummarizeHoursByEmployee(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedTenant(t, store)

	seedEntry(t, store, "te-1", on(10, 9, 0), on(10, 17, 30))  // 8.5 day
	seedEntry(t, store, "te-2", on(11, 16, 0), on(11, 23, 0))  // 2 day, 4 evening, 1 night

	summaries, err := store.SummarizeHours(ctx, sqlite.SummaryFilter{
		CompanyID: "com-1", GroupBy: "employee",
	})
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, "emp-1", s.GroupID)
	assert.True(t, s.TotalHours.Equal(decimal.RequireFromString("15.5")), "total %s", s.TotalHours)
	assert.True(t, s.DayHours.Equal(decimal.RequireFromString("10.5")), "day %s", s.DayHours)
	assert.True(t, s.EveningHours.Equal(decimal.RequireFromString("4")), "evening %s", s.EveningHours)
	assert.True(t, s.NightHours.Equal(decimal.RequireFromString("1")), "night %s", s.NightHours)
}

// =============================================================================
// SEQUENCE COUNTERS
// =============================================================================

func TestStore_CountersPersistAndScope(t *testing.T) {
	// GIVEN: counters bumped through the sqlite-backed CounterStore
	// WHEN: reopening the same database file
	// THEN: the sequence resumes where it left off, per scope

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "counters.db")

	store, err := sqlite.New(dbPath)
	require.NoError(t, err)

	alloc := sequence.NewAllocator(store)
	code, err := alloc.NextCompanyCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "COM001", code)

	code, err = alloc.NextEmployeeCode(ctx, "com-1")
	require.NoError(t, err)
	assert.Equal(t, "EMP001", code)
	code, err = alloc.NextEmployeeCode(ctx, "com-2")
	require.NoError(t, err)
	assert.Equal(t, "EMP001", code, "tenant scopes are independent")

	require.NoError(t, store.Close())

	reopened, err := sqlite.New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	alloc = sequence.NewAllocator(reopened)
	code, err = alloc.NextEmployeeCode(ctx, "com-1")
	require.NoError(t, err)
	assert.Equal(t, "EMP002", code)
	code, err = alloc.NextCompanyCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "COM002", code)
}

// =============================================================================
// AUDIT LOG
// =============================================================================

func TestStore_AuditTrail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendAudit(ctx, sqlite.AuditRecord{
		ID: "audit-1", TimeEntryID: "te-1", Action: "created",
		ActorID: "emp-1", ActorType: "employee",
		NewValues: map[string]any{"entry_date": "2025-03-10"},
	}))
	require.NoError(t, store.AppendAudit(ctx, sqlite.AuditRecord{
		ID: "audit-2", TimeEntryID: "te-1", Action: "approved",
		ActorID: "admin-1", ActorType: "admin",
		NewValues: map[string]any{"is_approved": true},
	}))
	require.NoError(t, store.AppendAudit(ctx, sqlite.AuditRecord{
		ID: "audit-x", TimeEntryID: "te-other", Action: "created",
		ActorID: "emp-2", ActorType: "employee",
	}))

	trail, err := store.AuditTrail(ctx, "te-1")
	require.NoError(t, err)
	require.Len(t, trail, 2)

	actions := []string{trail[0].Action, trail[1].Action}
	assert.Contains(t, actions, "created")
	assert.Contains(t, actions, "approved")
	for _, rec := range trail {
		if rec.Action == "created" {
			assert.Equal(t, "2025-03-10", rec.NewValues["entry_date"])
		}
	}
}
