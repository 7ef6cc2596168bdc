package contactstore

import (
	"context"
	"sync"
)

// InMemoryStore keeps the cache in process memory. Used in tests and when no
// backing store is configured.
type InMemoryStore struct {
	mu          sync.RWMutex
	scores      map[int]ScoreRecord
	enrichments map[int]EnrichmentRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		scores:      make(map[int]ScoreRecord),
		enrichments: make(map[int]EnrichmentRecord),
	}
}

func (s *InMemoryStore) SaveScores(_ context.Context, records []ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.scores[r.CRD] = r
	}
	return nil
}

func (s *InMemoryStore) SaveEnrichments(_ context.Context, records []EnrichmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.enrichments[r.CRD] = r
	}
	return nil
}

func (s *InMemoryStore) LookupScores(_ context.Context, crds []int) (map[int]ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := make(map[int]ScoreRecord)
	for _, crd := range crds {
		if r, ok := s.scores[crd]; ok {
			found[crd] = r
		}
	}
	return found, nil
}

func (s *InMemoryStore) LookupEnrichments(_ context.Context, crds []int) (map[int]EnrichmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := make(map[int]EnrichmentRecord)
	for _, crd := range crds {
		if r, ok := s.enrichments[crd]; ok {
			found[crd] = r
		}
	}
	return found, nil
}

func (s *InMemoryStore) Health(_ context.Context) error {
	return nil
}
