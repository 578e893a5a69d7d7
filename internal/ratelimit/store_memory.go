package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps one window per key in process memory. Keys with no hits
// inside the window are dropped, so idle callers do not accumulate.
type MemoryStore struct {
	mu        sync.Mutex
	windows   map[string][]time.Time
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string][]time.Time), now: time.Now}
}

func (s *MemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-window)
	s.sweep(now, cutoff, window)

	hits := prune(s.windows[key], cutoff)
	if len(hits) == 0 {
		delete(s.windows, key)
	}

	if len(hits) >= limit {
		s.windows[key] = hits
		reset := hits[0].Add(window)
		return &Result{
			Allowed:    false,
			Limit:      limit,
			ResetAt:    reset,
			RetryAfter: retryAfter(reset.Sub(now)),
		}, nil
	}

	hits = append(hits, now)
	s.windows[key] = hits
	return &Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - len(hits),
		ResetAt:   hits[0].Add(window),
	}, nil
}

// sweep drops every expired key at most once per window.
func (s *MemoryStore) sweep(now, cutoff time.Time, window time.Duration) {
	if now.Sub(s.lastSweep) < window {
		return
	}
	s.lastSweep = now
	for key, hits := range s.windows {
		if len(hits) == 0 || !hits[len(hits)-1].After(cutoff) {
			delete(s.windows, key)
		}
	}
}

// prune drops timestamps at or before cutoff. hits is sorted.
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}
