package ai

import (
	"fmt"
	"sort"
)

// ScorerOptions carries the settings a scorer factory may need.
type ScorerOptions struct {
	SurplusWeight int
	// Caller is required by the lua scorer only.
	Caller ScriptCaller
}

// ScorerFactory builds a PotionScorer from options.
type ScorerFactory func(opts ScorerOptions) (PotionScorer, error)

// Registry indexes potion scoring strategies by name.
//
// Invariant: each name is registered at most once.
type Registry struct {
	factories map[string]ScorerFactory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]ScorerFactory)}
}

// DefaultRegistry returns a Registry holding the price, surplus, and lua strategies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register("price", func(ScorerOptions) (PotionScorer, error) {
		return PriceScorer{}, nil
	})
	_ = r.Register("surplus", func(opts ScorerOptions) (PotionScorer, error) {
		if opts.SurplusWeight < 0 {
			return nil, fmt.Errorf("surplus weight must be >= 0, got %d", opts.SurplusWeight)
		}
		return SurplusScorer{Weight: opts.SurplusWeight}, nil
	})
	_ = r.Register("lua", func(opts ScorerOptions) (PotionScorer, error) {
		if opts.Caller == nil {
			return nil, fmt.Errorf("lua scorer requires a script caller")
		}
		return LuaScorer{Caller: opts.Caller}, nil
	})
	return r
}

// Register stores factory under name.
//
// Precondition: name must be non-empty; factory must not be nil.
// Postcondition: returns error on name collision.
func (r *Registry) Register(name string, factory ScorerFactory) error {
	if name == "" || factory == nil {
		return fmt.Errorf("ai.Registry: name and factory must be set")
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("ai.Registry: scorer %q already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Build constructs the scorer registered under name.
//
// Postcondition: returns error for unknown names or factory failures.
func (r *Registry) Build(name string, opts ScorerOptions) (PotionScorer, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("ai.Registry: unknown scorer %q", name)
	}
	s, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("ai.Registry: building scorer %q: %w", name, err)
	}
	return s, nil
}

// Names returns the registered strategy names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
