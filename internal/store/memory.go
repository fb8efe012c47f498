package store

import (
	"context"
	"sync"

	"github.com/darts-ladder/internal/domain"
)

// MemoryStore is an ephemeral backend for tests and demo runs. The blob is
// kept as a deep copy so callers never share structure with the store.
type MemoryStore struct {
	mu    sync.Mutex
	state *domain.State
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

// Load returns a copy of the last saved state, or an empty state.
func (s *MemoryStore) Load(ctx context.Context) (*domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return domain.NewState(), nil
	}
	return s.state.Clone(), nil
}

// Save replaces the held state with a copy.
func (s *MemoryStore) Save(ctx context.Context, state *domain.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state.Clone()
	return nil
}
