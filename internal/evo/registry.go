package evo

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"coevo/internal/substrate"
)

var (
	ErrSelectorExists  = errors.New("selector already registered")
	ErrUnknownSelector = errors.New("unknown selector")
	ErrUnknownScorer   = errors.New("unknown scorer")
)

// SelectorSpec describes a selector by name plus its parameters. Fields
// that a selector does not use are ignored.
type SelectorSpec struct {
	Name           string
	Bias           float64
	TournamentSize int
	Virulence      *VirulenceSpec
}

type VirulenceSpec struct {
	Lambda    float64
	Normalise bool
}

type SelectorFactory func(spec SelectorSpec) (Selector, error)

var selectorRegistry = struct {
	mu sync.RWMutex
	m  map[string]SelectorFactory
}{
	m: map[string]SelectorFactory{
		"fps": func(spec SelectorSpec) (Selector, error) {
			return NewFitnessProportionateSelection(biasOrDefault(spec.Bias))
		},
		"sus": func(spec SelectorSpec) (Selector, error) {
			return NewStochasticUniversalSampling(biasOrDefault(spec.Bias))
		},
		"tournament": func(spec SelectorSpec) (Selector, error) {
			return NewTournamentSelection(spec.TournamentSize)
		},
	},
}

// RegisterSelector adds a named selector factory.
func RegisterSelector(name string, factory SelectorFactory) error {
	if name == "" {
		return errors.New("selector name is required")
	}
	if factory == nil {
		return errors.New("selector factory is required")
	}

	selectorRegistry.mu.Lock()
	defer selectorRegistry.mu.Unlock()

	if _, exists := selectorRegistry.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrSelectorExists, name)
	}
	selectorRegistry.m[name] = factory
	return nil
}

// ResolveSelector builds the selector named by spec, wrapped in a
// VirulenceSelector when spec.Virulence is set.
func ResolveSelector(spec SelectorSpec) (Selector, error) {
	name := spec.Name
	if name == "" {
		name = "fps"
	}
	selectorRegistry.mu.RLock()
	factory, ok := selectorRegistry.m[name]
	selectorRegistry.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSelector, name)
	}

	base, err := factory(spec)
	if err != nil {
		return nil, fmt.Errorf("selector %s: %w", name, err)
	}
	if spec.Virulence == nil {
		return base, nil
	}
	wrapped, err := NewVirulenceSelector(base, spec.Virulence.Lambda, spec.Virulence.Normalise)
	if err != nil {
		return nil, err
	}
	return wrapped, nil
}

func ListSelectors() []string {
	selectorRegistry.mu.RLock()
	defer selectorRegistry.mu.RUnlock()

	names := make([]string, 0, len(selectorRegistry.m))
	for name := range selectorRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ScorerSpec describes a scorer by kind.
type ScorerSpec struct {
	Kind         string
	SampleSize   int
	Intransitive bool
}

func ResolveScorer(spec ScorerSpec) (substrate.Scorer, error) {
	switch spec.Kind {
	case "", "minimal":
		sampleSize := spec.SampleSize
		if sampleSize == 0 {
			sampleSize = substrate.DefaultSampleSize
		}
		dynamics := substrate.Transitive
		if spec.Intransitive {
			dynamics = substrate.Intransitive
		}
		scorer, err := substrate.NewScorer(sampleSize, dynamics)
		if err != nil {
			return nil, err
		}
		return scorer, nil
	case "f0":
		return substrate.F0Scorer{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownScorer, spec.Kind)
	}
}
