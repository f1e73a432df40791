package sequence_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/timeclock/engine"
	"github.com/warp/timeclock/sequence"
)

func TestAllocator_SequentialCodes(t *testing.T) {
	// GIVEN: a fresh tenant
	// WHEN: allocating three employee codes in order
	// THEN: they come out EMP001, EMP002, EMP003 with no gaps

	ctx := context.Background()
	alloc := sequence.NewAllocator(sequence.NewMemoryCounters())

	for i, want := range []string{"EMP001", "EMP002", "EMP003"} {
		code, err := alloc.NextEmployeeCode(ctx, "tenant-a")
		require.NoError(t, err, "allocation %d", i+1)
		assert.Equal(t, want, code)
	}
}

func TestAllocator_ScopesAreIndependent(t *testing.T) {
	// Counters never bleed across tenants, across kinds, or into the
	// global company sequence.
	ctx := context.Background()
	alloc := sequence.NewAllocator(sequence.NewMemoryCounters())

	codeA, err := alloc.NextEmployeeCode(ctx, "tenant-a")
	require.NoError(t, err)
	codeB, err := alloc.NextEmployeeCode(ctx, "tenant-b")
	require.NoError(t, err)
	assert.Equal(t, "EMP001", codeA)
	assert.Equal(t, "EMP001", codeB)

	project, err := alloc.NextProjectCode(ctx, "tenant-a")
	require.NoError(t, err)
	assert.Equal(t, "PRO001", project)

	workplace, err := alloc.NextWorkplaceCode(ctx, "tenant-a")
	require.NoError(t, err)
	assert.Equal(t, "LOC001", workplace)

	company, err := alloc.NextCompanyCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "COM001", company)
}

func TestAllocator_ConcurrentAllocationsAreUnique(t *testing.T) {
	// GIVEN: 50 goroutines racing on one tenant's employee counter
	// WHEN: each allocates one code
	// THEN: the issued codes are exactly EMP001..EMP050, each once

	const n = 50
	ctx := context.Background()
	alloc := sequence.NewAllocator(sequence.NewMemoryCounters())

	codes := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := alloc.NextEmployeeCode(ctx, "tenant-a")
			assert.NoError(t, err)
			codes <- code
		}()
	}
	wg.Wait()
	close(codes)

	seen := make(map[string]bool, n)
	for code := range codes {
		assert.False(t, seen[code], "code %s issued twice", code)
		seen[code] = true
	}
	for i := 1; i <= n; i++ {
		assert.True(t, seen[sequence.FormatCode(sequence.PrefixEmployee, int64(i))],
			"missing code %d", i)
	}
}

func TestFormatCode_WidensPastThreeDigits(t *testing.T) {
	assert.Equal(t, "EMP001", sequence.FormatCode("EMP", 1))
	assert.Equal(t, "EMP042", sequence.FormatCode("EMP", 42))
	assert.Equal(t, "EMP999", sequence.FormatCode("EMP", 999))
	assert.Equal(t, "EMP1000", sequence.FormatCode("EMP", 1000))
	assert.Equal(t, "EMP12345", sequence.FormatCode("EMP", 12345))
}

// =============================================================================
// CONTENTION AND RETRY
// =============================================================================

// flakyCounters fails the first failCount increments with a contention error.
type flakyCounters struct {
	mu        sync.Mutex
	failCount int
	calls     int
	value     int64
}

func (f *flakyCounters) Increment(context.Context, sequence.Scope, sequence.Kind, string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.calls <= f.failCount {
		return 0, fmt.Errorf("%w: simulated", engine.ErrAllocationContention)
	}
	f.value++
	return f.value, nil
}

func TestAllocator_RetriesContention(t *testing.T) {
	// Two contention failures followed by a success still fits in the
	// default three attempts.
	store := &flakyCounters{failCount: 2}
	alloc := sequence.NewAllocator(store)

	code, err := alloc.NextEmployeeCode(context.Background(), "tenant-a")
	require.NoError(t, err)
	assert.Equal(t, "EMP001", code)
	assert.Equal(t, 3, store.calls)
}

func TestAllocator_GivesUpAfterMaxAttempts(t *testing.T) {
	store := &flakyCounters{failCount: 100}
	alloc := sequence.NewAllocator(store)

	_, err := alloc.NextEmployeeCode(context.Background(), "tenant-a")
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrAllocationContention)
	assert.Equal(t, 3, store.calls)
}

func TestAllocator_DoesNotRetryOtherErrors(t *testing.T) {
	store := &failingCounters{err: fmt.Errorf("disk full")}
	alloc := sequence.NewAllocator(store)

	_, err := alloc.NextEmployeeCode(context.Background(), "tenant-a")
	require.Error(t, err)
	assert.Equal(t, 1, store.calls)
}

type failingCounters struct {
	err   error
	calls int
}

func (f *failingCounters) Increment(context.Context, sequence.Scope, sequence.Kind, string) (int64, error) {
	f.calls++
	return 0, f.err
}
