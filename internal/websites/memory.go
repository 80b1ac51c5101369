package websites

import (
	"context"
	"slices"
	"sync"

	"github.com/goliatone/go-sitegen/internal/site"
)

// MemoryRepository is an in-memory Repository for the CLI and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	sites map[string]*site.WebsiteAggregate
}

// NewMemoryRepository creates a repository seeded with aggs.
func NewMemoryRepository(aggs ...*site.WebsiteAggregate) *MemoryRepository {
	repo := &MemoryRepository{sites: make(map[string]*site.WebsiteAggregate)}
	for _, agg := range aggs {
		if agg != nil && agg.ID != "" {
			repo.sites[agg.ID] = agg.Clone()
		}
	}
	return repo
}

func (m *MemoryRepository) GetAggregate(_ context.Context, id string) (*site.WebsiteAggregate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	agg, ok := m.sites[id]
	if !ok {
		return nil, &NotFoundError{Resource: "website", Key: id}
	}
	return agg.Clone(), nil
}

func (m *MemoryRepository) SaveAggregate(_ context.Context, agg *site.WebsiteAggregate) error {
	if err := site.ValidateSiteID(agg.GetID()); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sites[agg.ID] = agg.Clone()
	return nil
}

func (m *MemoryRepository) DeleteAggregate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sites[id]; !ok {
		return &NotFoundError{Resource: "website", Key: id}
	}
	delete(m.sites, id)
	return nil
}

// ListIDs returns the stored site identifiers in lexical order.
func (m *MemoryRepository) ListIDs(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sites))
	for id := range m.sites {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
