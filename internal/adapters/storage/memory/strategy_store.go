package memory

import (
	"errors"
	"sync"

	"github.com/PabloGalante/dca-agent/internal/domain"
)

// StrategyStore is a simple in-memory implementation of domain.StrategyStore.
// It is NOT persistent.
type StrategyStore struct {
	mu         sync.RWMutex
	strategies []*domain.Strategy
}

// NewStrategyStore creates an empty StrategyStore.
func NewStrategyStore() *StrategyStore {
	return &StrategyStore{}
}

// AddStrategy appends a strategy. Ids are derived from token and interval, so
// duplicates are allowed, the same as the list the UI shows.
func (s *StrategyStore) AddStrategy(strategy *domain.Strategy) error {
	if strategy == nil {
		return errors.New("nil strategy")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.strategies = append(s.strategies, strategy)
	return nil
}

// ListStrategies returns all strategies in creation order.
func (s *StrategyStore) ListStrategies() ([]*domain.Strategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Strategy, len(s.strategies))
	copy(out, s.strategies)
	return out, nil
}

var _ domain.StrategyStore = (*StrategyStore)(nil)
