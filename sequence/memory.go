package sequence

import (
	"context"
	"sync"
)

// =============================================================================
// MEMORY COUNTER STORE - In-memory implementation (for testing/dev)
// =============================================================================

// MemoryCounters is an in-memory CounterStore. A single mutex serializes the
// read-increment-write; counters for different scope keys live in one map
// but never influence each other's values.
type MemoryCounters struct {
	mu       sync.Mutex
	counters map[counterKey]int64
}

type counterKey struct {
	Scope Scope
	Kind  Kind
}

// NewMemoryCounters creates an empty in-memory counter store.
func NewMemoryCounters() *MemoryCounters {
	return &MemoryCounters{counters: make(map[counterKey]int64)}
}

// Increment implements CounterStore. The first allocation for a scope key
// returns 1.
func (m *MemoryCounters) Increment(_ context.Context, scope Scope, kind Kind, _ string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := counterKey{Scope: scope, Kind: kind}
	m.counters[k]++
	return m.counters[k], nil
}

// Current returns the last issued value for a scope key, for inspection.
func (m *MemoryCounters) Current(scope Scope, kind Kind) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[counterKey{Scope: scope, Kind: kind}]
}
