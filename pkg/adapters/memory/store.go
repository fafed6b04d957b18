package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/biomorph/pkg/domain"
)

// Store implements ports.GenomeStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Genome
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Genome),
	}
}

// Save keeps a deep copy of the genome so later edits by the caller are not seen.
func (s *Store) Save(ctx context.Context, id string, genome domain.Genome) error {
	if id == "" {
		return fmt.Errorf("genome id cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = genome.Clone()
	return nil
}

// Load returns a copy of the stored genome.
func (s *Store) Load(ctx context.Context, id string) (domain.Genome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.data[id]
	if !ok {
		return domain.Genome{}, domain.ErrGenomeNotFound
	}
	return g.Clone(), nil
}

// Delete removes the genome.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
