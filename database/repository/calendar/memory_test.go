package calendarRepo

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIndex_ConcurrentOverlappingReserves(t *testing.T) {
	idx := NewMemoryIndex()
	ctx := context.Background()

	const racers = 16
	var wg sync.WaitGroup
	results := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = idx.Reserve(ctx, "st-1", "2026-03-02", 540, 45)
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range results {
		if err == nil {
			won++
		} else {
			assert.True(t, errors.Is(err, ErrConflict), "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, won, "exactly one racer should hold the range")

	committed, err := idx.Committed(ctx, "st-1", "2026-03-02")
	require.NoError(t, err)
	require.Len(t, committed, 1)
	assert.Equal(t, 540, committed[0].StartMinute)
	assert.Equal(t, 585, committed[0].EndMinute)
}

func TestMemoryIndex_BackToBackRangesDoNotConflict(t *testing.T) {
	idx := NewMemoryIndex()
	ctx := context.Background()

	_, err := idx.Reserve(ctx, "st-1", "2026-03-02", 540, 60)
	require.NoError(t, err)

	// [540,600) and [600,660) share no minute.
	_, err = idx.Reserve(ctx, "st-1", "2026-03-02", 600, 60)
	assert.NoError(t, err)

	// [570,630) overlaps both.
	_, err = idx.Reserve(ctx, "st-1", "2026-03-02", 570, 60)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMemoryIndex_TracksAreIndependent(t *testing.T) {
	idx := NewMemoryIndex()
	ctx := context.Background()

	_, err := idx.Reserve(ctx, "st-1", "2026-03-02", 540, 60)
	require.NoError(t, err)

	// Same range, different staff member.
	_, err = idx.Reserve(ctx, "st-2", "2026-03-02", 540, 60)
	assert.NoError(t, err)

	// Same range, same staff, different date.
	_, err = idx.Reserve(ctx, "st-1", "2026-03-03", 540, 60)
	assert.NoError(t, err)
}

func TestMemoryIndex_ReleaseFreesAndIsIdempotent(t *testing.T) {
	idx := NewMemoryIndex()
	ctx := context.Background()

	token, err := idx.Reserve(ctx, "st-1", "2026-03-02", 540, 60)
	require.NoError(t, err)

	require.NoError(t, idx.Release(ctx, token))

	committed, err := idx.Committed(ctx, "st-1", "2026-03-02")
	require.NoError(t, err)
	assert.Empty(t, committed)

	// Releasing again, or releasing garbage, is a quiet no-op.
	assert.NoError(t, idx.Release(ctx, token))
	assert.NoError(t, idx.Release(ctx, "no-such-token"))

	// The range is reservable again.
	_, err = idx.Reserve(ctx, "st-1", "2026-03-02", 540, 60)
	assert.NoError(t, err)
}
