package opstatus

import (
	"context"
	"log/slog"
	"sync"

	"surety/pkg/platform/circuit"
)

// FallbackStore serves the last value read from primary once primary has
// failed often enough to open the breaker. Writes are never faked: a failed
// Save always surfaces.
type FallbackStore struct {
	primary Store
	breaker *circuit.Breaker
	logger  *slog.Logger

	mu    sync.Mutex
	last  bool
	known bool
}

func NewFallbackStore(primary Store, breaker *circuit.Breaker, logger *slog.Logger) *FallbackStore {
	if breaker == nil {
		breaker = circuit.New("operational-status")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FallbackStore{primary: primary, breaker: breaker, logger: logger}
}

func (s *FallbackStore) Load(ctx context.Context) (bool, error) {
	v, err := s.primary.Load(ctx)
	if err != nil {
		useFallback, change := s.breaker.RecordFailure()
		if change.Opened {
			s.logger.WarnContext(ctx, "operational status store degraded, serving last known value",
				"breaker", s.breaker.Name(), "error", err)
		}
		if last, ok := s.lastKnown(); useFallback && ok {
			return last, nil
		}
		return false, err
	}
	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "operational status store recovered", "breaker", s.breaker.Name())
	}
	s.remember(v)
	return v, nil
}

func (s *FallbackStore) Save(ctx context.Context, operational bool) error {
	if err := s.primary.Save(ctx, operational); err != nil {
		s.breaker.RecordFailure()
		return err
	}
	s.remember(operational)
	return nil
}

func (s *FallbackStore) remember(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last, s.known = v, true
}

func (s *FallbackStore) lastKnown() (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.known
}
