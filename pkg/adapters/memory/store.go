package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/logicx/pkg/domain"
	"github.com/aretw0/logicx/pkg/schema"
)

// Store implements ports.ProjectStore in memory.
// Snapshots are kept as encoded JSON documents, so a load always yields
// a fresh project. Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Save encodes the project and keeps the document.
func (s *Store) Save(ctx context.Context, name string, p *domain.Project) error {
	data, err := schema.Encode(p, schema.FormatJSON)
	if err != nil {
		return fmt.Errorf("encode project %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = data
	return nil
}

// Load decodes the stored document.
func (s *Store) Load(ctx context.Context, name string) (*domain.Project, error) {
	s.mu.RLock()
	data, ok := s.data[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrProjectNotFound, name)
	}

	p, err := schema.Decode(data, schema.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("decode project %q: %w", name, err)
	}
	return p, nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns stored snapshot names in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
