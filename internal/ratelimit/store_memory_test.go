package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSlidingWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	for i := range 3 {
		res, err := s.Allow(ctx, "0xa1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := s.Allow(ctx, "0xa1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 60, res.RetryAfter)
	assert.Equal(t, now.Add(time.Minute), res.ResetAt)

	res, err = s.Allow(ctx, "0xa2", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed, "keys are independent")

	now = now.Add(time.Minute)
	res, err = s.Allow(ctx, "0xa1", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed, "window slid past the first hits")
}

func TestMemoryStoreDropsIdleKeys(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	for _, key := range []string{"0xa1", "0xa2", "0xa3"} {
		_, err := s.Allow(ctx, key, 1, time.Minute)
		require.NoError(t, err)
	}
	res, err := s.Allow(ctx, "0xa1", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Len(t, s.windows, 3)

	now = now.Add(2 * time.Minute)
	res, err = s.Allow(ctx, "0xb1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Len(t, s.windows, 1, "expired windows are swept")
	assert.Contains(t, s.windows, "0xb1")

	now = now.Add(2 * time.Minute)
	res, err = s.Allow(ctx, "0xb1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed, "an expired key starts a fresh window")
	assert.Len(t, s.windows["0xb1"], 1)
}
