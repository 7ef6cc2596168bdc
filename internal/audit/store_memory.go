package audit

import (
	"context"
	"sync"
)

// Store is the audit sink; append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByFirm(ctx context.Context, crd int) ([]Event, error)
}

type InMemoryStore struct {
	mu     sync.RWMutex
	events map[int][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[int][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.CRD] = append(s.events[event.CRD], event)
	return nil
}

func (s *InMemoryStore) ListByFirm(_ context.Context, crd int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[crd]...), nil
}
