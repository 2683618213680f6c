package indicator

import (
	"slices"
	"sync"

	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
)

// Factory creates an indicator with its default configuration.
type Factory func() Indicator

// IndicatorRegistry manages all available indicators.
type IndicatorRegistry interface {
	RegisterIndicator(factory Factory) error
	// GetIndicator returns a fresh instance, so callers may Config it freely.
	GetIndicator(name types.IndicatorType) (Indicator, error)
	ListIndicators() []types.IndicatorType
	RemoveIndicator(name types.IndicatorType) error
}

// IndicatorRegistryV1 is a mutex-guarded map of indicator factories.
type IndicatorRegistryV1 struct {
	factories map[types.IndicatorType]Factory
	mu        sync.RWMutex
}

// NewIndicatorRegistry creates an empty registry.
func NewIndicatorRegistry() IndicatorRegistry {
	return &IndicatorRegistryV1{
		factories: make(map[types.IndicatorType]Factory),
		mu:        sync.RWMutex{},
	}
}

// NewDefaultRegistry creates a registry holding SMA, EMA, RSI and MACD.
func NewDefaultRegistry() IndicatorRegistry {
	registry := NewIndicatorRegistry()
	for _, factory := range []Factory{NewMA, NewEMA, NewRSI, NewMACD} {
		// names are distinct, registration cannot fail
		_ = registry.RegisterIndicator(factory)
	}

	return registry
}

func (r *IndicatorRegistryV1) RegisterIndicator(factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := factory().Name()
	if _, exists := r.factories[name]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "RegisterIndicator: indicator with name %s already registered", name)
	}

	r.factories[name] = factory

	return nil
}

func (r *IndicatorRegistryV1) GetIndicator(name types.IndicatorType) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[name]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "GetIndicator: indicator with name %s not found", name)
	}

	return factory(), nil
}

// ListIndicators returns the registered names in sorted order.
func (r *IndicatorRegistryV1) ListIndicators() []types.IndicatorType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]types.IndicatorType, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func (r *IndicatorRegistryV1) RemoveIndicator(name types.IndicatorType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; !exists {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "RemoveIndicator: indicator with name %s not found", name)
	}

	delete(r.factories, name)

	return nil
}
