/*
Package timeentry orchestrates the time accounting engine against storage.

PURPOSE:
  The engine is pure; this package is the one place where its pieces are
  sequenced against the database for a live request:

    validate interval -> overlap gate -> split -> persist rows -> audit

  It also owns the per-employee-per-date serialization that keeps two
  simultaneous creates for the same employee and day from landing
  conflicting rows side by side.

SEE ALSO:
  - engine: classification, splitting, conflict predicate
  - store/sqlite: the Store implementation
*/
package timeentry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/warp/timeclock/engine"
	"github.com/warp/timeclock/store/sqlite"
)

// Store is the persistence surface the service needs. *sqlite.Store
// implements it; tests may substitute a stub.
type Store interface {
	BoundaryConfig(ctx context.Context, companyID string) (engine.BoundaryConfig, error)
	SameDayEntries(ctx context.Context, employeeID, date string) ([]engine.ExistingEntry, error)
	InsertTimeEntries(ctx context.Context, entries []sqlite.TimeEntry) error
	GetTimeEntry(ctx context.Context, id string) (*sqlite.TimeEntry, error)
	UpdateTimeEntryDetails(ctx context.Context, id, projectID, workplaceID, notes string) error
	ApproveTimeEntry(ctx context.Context, companyID, id string, approve bool, actorID string) error
	DeleteTimeEntry(ctx context.Context, id string) error
	AppendAudit(ctx context.Context, rec sqlite.AuditRecord) error
}

var _ Store = (*sqlite.Store)(nil)

// CreateInput is a raw clock-in/clock-out submission.
type CreateInput struct {
	CompanyID   string
	EmployeeID  string
	ProjectID   string
	WorkplaceID string
	TimeIn      time.Time
	TimeOut     time.Time
	Notes       string
	IsFullDay   bool
}

// Service runs the record-a-new-interval flow.
type Service struct {
	store Store

	// now is swappable for tests.
	now func() time.Time

	// locks serializes check-then-insert per employee+date. Entries are
	// never evicted; the map grows one mutex per active employee-day.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a Service over the given store.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *Service) dayLock(employeeID, date string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := employeeID + "|" + date
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// Create validates the interval, refuses it on conflict, splits it into
// per-day classified rows, persists them atomically and audits the insert.
// It returns the persisted rows in calendar order.
func (s *Service) Create(ctx context.Context, in CreateInput) ([]sqlite.TimeEntry, error) {
	if !in.TimeOut.After(in.TimeIn) {
		return nil, &engine.InvalidIntervalError{TimeIn: in.TimeIn, TimeOut: in.TimeOut}
	}
	if in.TimeIn.After(s.now()) {
		return nil, &engine.InvalidIntervalError{
			TimeIn: in.TimeIn, TimeOut: in.TimeOut, Reason: "clock-in is in the future",
		}
	}

	date := engine.DateOf(in.TimeIn)
	lock := s.dayLock(in.EmployeeID, date)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.store.SameDayEntries(ctx, in.EmployeeID, date)
	if err != nil {
		return nil, err
	}
	if blocking, found := engine.FirstConflict(in.TimeIn, in.TimeOut, existing, ""); found {
		return nil, &engine.OverlapError{EmployeeID: in.EmployeeID, ExistingID: blocking.ID}
	}

	cfg, err := s.store.BoundaryConfig(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}

	segments, err := engine.Split(engine.Interval{
		EmployeeID: in.EmployeeID,
		CompanyID:  in.CompanyID,
		TimeIn:     in.TimeIn,
		TimeOut:    in.TimeOut,
	}, cfg)
	if err != nil {
		return nil, err
	}

	entries := make([]sqlite.TimeEntry, len(segments))
	for i, seg := range segments {
		entries[i] = sqlite.TimeEntry{
			ID:           uuid.NewString(),
			CompanyID:    in.CompanyID,
			EmployeeID:   in.EmployeeID,
			ProjectID:    in.ProjectID,
			WorkplaceID:  in.WorkplaceID,
			EntryDate:    seg.Date,
			TimeIn:       seg.TimeIn,
			TimeOut:      seg.TimeOut,
			TotalHours:   seg.Hours.Total,
			DayHours:     seg.Hours.Day,
			EveningHours: seg.Hours.Evening,
			NightHours:   seg.Hours.Night,
			Notes:        in.Notes,
			IsFullDay:    in.IsFullDay,
		}
	}

	if err := s.store.InsertTimeEntries(ctx, entries); err != nil {
		return nil, err
	}

	for _, e := range entries {
		s.audit(ctx, e.ID, "created", in.EmployeeID, "employee", nil, map[string]any{
			"entry_date": e.EntryDate,
			"time_in":    e.TimeIn.Format(time.RFC3339),
			"time_out":   e.TimeOut.Format(time.RFC3339),
			"total":      e.TotalHours.String(),
		})
	}
	return entries, nil
}

// UpdateDetails changes the editable fields of an employee's own entry.
// Approved entries are immutable.
func (s *Service) UpdateDetails(ctx context.Context, employeeID, entryID, projectID, workplaceID, notes string) error {
	existing, err := s.ownEntry(ctx, employeeID, entryID)
	if err != nil {
		return err
	}

	if err := s.store.UpdateTimeEntryDetails(ctx, entryID, projectID, workplaceID, notes); err != nil {
		return err
	}

	s.audit(ctx, entryID, "updated", employeeID, "employee",
		map[string]any{
			"project_id":   existing.ProjectID,
			"workplace_id": existing.WorkplaceID,
			"notes":        existing.Notes,
		},
		map[string]any{
			"project_id":   projectID,
			"workplace_id": workplaceID,
			"notes":        notes,
		})
	return nil
}

// Delete soft-deletes an employee's own entry. Approved entries are immutable.
func (s *Service) Delete(ctx context.Context, employeeID, entryID string) error {
	existing, err := s.ownEntry(ctx, employeeID, entryID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTimeEntry(ctx, entryID); err != nil {
		return err
	}

	s.audit(ctx, entryID, "deleted", employeeID, "employee", map[string]any{
		"entry_date": existing.EntryDate,
		"time_in":    existing.TimeIn.Format(time.RFC3339),
		"time_out":   existing.TimeOut.Format(time.RFC3339),
	}, nil)
	return nil
}

// Approve records an admin's approval decision and audits it.
func (s *Service) Approve(ctx context.Context, companyID, entryID string, approve bool, actorID string) error {
	if err := s.store.ApproveTimeEntry(ctx, companyID, entryID, approve, actorID); err != nil {
		return err
	}

	action := "approved"
	if !approve {
		action = "rejected"
	}
	s.audit(ctx, entryID, action, actorID, "admin", nil, map[string]any{"is_approved": approve})
	return nil
}

// ownEntry loads an entry and checks ownership and mutability.
func (s *Service) ownEntry(ctx context.Context, employeeID, entryID string) (*sqlite.TimeEntry, error) {
	existing, err := s.store.GetTimeEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if existing.EmployeeID != employeeID {
		return nil, fmt.Errorf("time entry %s: %w", entryID, engine.ErrNotFound)
	}
	if existing.IsApproved != nil && *existing.IsApproved {
		return nil, fmt.Errorf("time entry %s: %w", entryID, engine.ErrApprovedImmutable)
	}
	return existing, nil
}

// audit writes a trail record; audit failures do not fail the operation.
func (s *Service) audit(ctx context.Context, entryID, action, actorID, actorType string, oldV, newV map[string]any) {
	_ = s.store.AppendAudit(ctx, sqlite.AuditRecord{
		ID:          uuid.NewString(),
		TimeEntryID: entryID,
		Action:      action,
		ActorID:     actorID,
		ActorType:   actorType,
		OldValues:   oldV,
		NewValues:   newV,
	})
}
