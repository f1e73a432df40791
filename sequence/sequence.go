/*
Package sequence allocates human-readable sequential entity codes.

PURPOSE:
  Every tenant-scoped entity (employee, project, workplace) and every
  company gets a code like EMP007 or COM001. For a given scope the values
  form a gapless 1..N sequence even under concurrent callers: the counter's
  read-increment-write is a single atomic unit in the backing store, and an
  allocation either commits and returns a value or fails outright.

SCOPES:
  A scope is either Global (company codes) or a specific tenant. It is an
  explicit tagged value here, not an overloaded empty string; stores that
  persist counters map Global to their own sentinel at the row boundary.

CONTENTION:
  Stores signal an uncommittable increment with engine.ErrAllocationContention.
  The Allocator retries the whole allocation a bounded number of times and
  then surfaces the error. It never pads a failed increment with a guess.

SEE ALSO:
  - memory.go: in-memory CounterStore
  - store/sqlite: transactional CounterStore
*/
package sequence

import (
	"context"
	"fmt"

	"github.com/warp/timeclock/engine"
)

// =============================================================================
// SCOPE - Global or per-tenant allocation partition
// =============================================================================

// Kind is the entity kind half of a counter's scope key.
type Kind string

const (
	KindCompany   Kind = "company"
	KindEmployee  Kind = "employee"
	KindProject   Kind = "project"
	KindWorkplace Kind = "workplace"
)

// Code prefixes, matching the published code format.
const (
	PrefixCompany   = "COM"
	PrefixEmployee  = "EMP"
	PrefixProject   = "PRO"
	PrefixWorkplace = "LOC"
)

// Scope identifies whose counter an allocation belongs to.
// The zero value is not valid; use Global() or Tenant().
type Scope struct {
	tenantID string
	global   bool
}

// Global returns the platform-wide scope used for company codes.
func Global() Scope { return Scope{global: true} }

// Tenant returns the scope for one tenant's counters.
func Tenant(id string) Scope { return Scope{tenantID: id} }

func (s Scope) IsGlobal() bool { return s.global }

// TenantID returns the tenant identifier, or "" for the global scope.
func (s Scope) TenantID() string { return s.tenantID }

func (s Scope) String() string {
	if s.global {
		return "global"
	}
	return "tenant:" + s.tenantID
}

// =============================================================================
// COUNTER STORE - Atomic increment port
// =============================================================================

// CounterStore is the persistence port for sequence counters.
//
// Increment creates the counter at zero on first use and returns the
// post-increment value, all inside one atomic unit per (scope, kind): no
// two callers ever observe the same value, and a returned value is always
// durably committed. Uncommittable increments surface as
// engine.ErrAllocationContention.
type CounterStore interface {
	Increment(ctx context.Context, scope Scope, kind Kind, prefix string) (int64, error)
}

// =============================================================================
// ALLOCATOR - Bounded-retry code allocation
// =============================================================================

// defaultMaxAttempts bounds retries on allocation contention.
const defaultMaxAttempts = 3

// Allocator produces formatted entity codes from a CounterStore.
type Allocator struct {
	Store CounterStore

	// MaxAttempts caps tries per allocation; 0 means the default (3).
	MaxAttempts int
}

// NewAllocator creates an Allocator over the given store.
func NewAllocator(store CounterStore) *Allocator {
	return &Allocator{Store: store}
}

// Next allocates the next code in the scope's sequence.
func (a *Allocator) Next(ctx context.Context, scope Scope, kind Kind, prefix string) (string, error) {
	attempts := a.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}

	var err error
	for i := 0; i < attempts; i++ {
		var n int64
		n, err = a.Store.Increment(ctx, scope, kind, prefix)
		if err == nil {
			return FormatCode(prefix, n), nil
		}
		if !engine.IsRetryable(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("allocating %s code for %s: %w", kind, scope, err)
}

// NextCompanyCode allocates a COM code in the global scope.
func (a *Allocator) NextCompanyCode(ctx context.Context) (string, error) {
	return a.Next(ctx, Global(), KindCompany, PrefixCompany)
}

// NextEmployeeCode allocates an EMP code in the tenant's scope.
func (a *Allocator) NextEmployeeCode(ctx context.Context, tenantID string) (string, error) {
	return a.Next(ctx, Tenant(tenantID), KindEmployee, PrefixEmployee)
}

// NextProjectCode allocates a PRO code in the tenant's scope.
func (a *Allocator) NextProjectCode(ctx context.Context, tenantID string) (string, error) {
	return a.Next(ctx, Tenant(tenantID), KindProject, PrefixProject)
}

// NextWorkplaceCode allocates a LOC code in the tenant's scope.
func (a *Allocator) NextWorkplaceCode(ctx context.Context, tenantID string) (string, error) {
	return a.Next(ctx, Tenant(tenantID), KindWorkplace, PrefixWorkplace)
}

// FormatCode renders a counter value as prefix + value zero-padded to three
// digits. Values past 999 widen; nothing truncates.
func FormatCode(prefix string, n int64) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}
