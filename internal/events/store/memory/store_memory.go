package memory

import (
	"context"
	"sync"

	"surety/internal/events"
)

// InMemoryStore keeps the log in a slice; Sequence is the 1-based position.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []events.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event *events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.Sequence = uint64(len(s.events)) + 1
	s.events = append(s.events, *event)
	return nil
}

func (s *InMemoryStore) List(_ context.Context, after uint64, limit int) ([]events.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit = events.ClampLimit(limit)
	if after >= uint64(len(s.events)) {
		return []events.Event{}, nil
	}
	end := min(int(after)+limit, len(s.events))
	return append([]events.Event{}, s.events[after:end]...), nil
}

// Len returns the number of events appended so far.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
