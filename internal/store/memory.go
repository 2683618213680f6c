package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
)

// MemoryStore keeps strategies in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu         sync.RWMutex
	strategies map[string]StoredStrategy
	now        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		strategies: make(map[string]StoredStrategy),
		now:        time.Now,
	}
}

func (m *MemoryStore) Save(_ context.Context, id string, config types.StrategyConfig) (StoredStrategy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var existing *StoredStrategy
	if s, ok := m.strategies[id]; ok {
		existing = &s
	}

	s, err := record(id, config, existing, m.now())
	if err != nil {
		return StoredStrategy{}, err
	}

	m.strategies[s.ID] = s

	return s, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (StoredStrategy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.strategies[id]
	if !ok {
		return StoredStrategy{}, notFound(id)
	}

	return s, nil
}

func (m *MemoryStore) List(_ context.Context) ([]StoredStrategy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]StoredStrategy, 0, len(m.strategies))
	for _, s := range m.strategies {
		out = append(out, s)
	}

	sortStrategies(out)

	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.strategies[id]; !ok {
		return notFound(id)
	}

	delete(m.strategies, id)

	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

// sortStrategies orders by creation time, then id.
func sortStrategies(strategies []StoredStrategy) {
	sort.SliceStable(strategies, func(i, j int) bool {
		if !strategies[i].CreatedAt.Equal(strategies[j].CreatedAt) {
			return strategies[i].CreatedAt.Before(strategies[j].CreatedAt)
		}

		return strategies[i].ID < strategies[j].ID
	})
}
