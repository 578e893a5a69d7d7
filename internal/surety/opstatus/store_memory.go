package opstatus

import (
	"context"
	"sync/atomic"
)

// MemoryStore holds the flag in process. The zero value starts enabled.
type MemoryStore struct {
	disabled atomic.Bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (bool, error) {
	return !s.disabled.Load(), nil
}

func (s *MemoryStore) Save(_ context.Context, operational bool) error {
	s.disabled.Store(!operational)
	return nil
}
