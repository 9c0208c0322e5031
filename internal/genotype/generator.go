package genotype

import "fmt"

// Generator builds fresh individuals of TraitCount traits, each TraitBits
// bits wide.
type Generator struct {
	TraitBits  int
	TraitCount int
}

func NewGenerator(traitBits, traitCount int) (Generator, error) {
	if traitBits <= 0 {
		return Generator{}, fmt.Errorf("%w: trait bits must be > 0", ErrInvalidArgument)
	}
	if traitCount <= 0 {
		return Generator{}, fmt.Errorf("%w: trait count must be > 0", ErrInvalidArgument)
	}
	return Generator{TraitBits: traitBits, TraitCount: traitCount}, nil
}

// Individual returns an individual whose traits all start at value.
func (g Generator) Individual(value int) (*Individual, error) {
	traits := make([]Trait, 0, g.TraitCount)
	for i := 0; i < g.TraitCount; i++ {
		t, err := NewTrait(value, g.TraitBits)
		if err != nil {
			return nil, err
		}
		traits = append(traits, t)
	}
	return NewIndividual(traits)
}

// Population returns n independent individuals built by Individual(value).
func (g Generator) Population(n, value int) (Population, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: population size %d < 0", ErrInvalidArgument, n)
	}
	seed, err := g.Individual(value)
	if err != nil {
		return nil, err
	}
	pop := make(Population, n)
	for i := range pop {
		pop[i] = seed.Clone()
	}
	return pop, nil
}
