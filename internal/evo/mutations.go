package evo

import (
	"fmt"
	"math/rand"

	"coevo/internal/genotype"
)

const DefaultMutationRate = 0.005

// Mutator resamples every trait bit by bit using only unitation counts.
// A mutating bit is either flipped (BitFlip) or redrawn uniformly from {0,1}.
type Mutator struct {
	Rate    float64
	BitFlip bool
}

func NewMutator(rate float64, bitFlip bool) (Mutator, error) {
	if rate < 0 || rate > 1 {
		return Mutator{}, fmt.Errorf("%w: mutation rate must be in [0,1], got %v", ErrInvalidArgument, rate)
	}
	return Mutator{Rate: rate, BitFlip: bitFlip}, nil
}

func (m Mutator) Name() string {
	if m.BitFlip {
		return "bit_flip"
	}
	return "bit_redraw"
}

// Mutate returns a mutated copy of ind, or ind itself when inplace is set.
// Set bits are visited before unset bits for every trait in order.
func (m Mutator) Mutate(rng *rand.Rand, ind *genotype.Individual, inplace bool) (*genotype.Individual, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: random source is required", ErrInvalidArgument)
	}
	if ind == nil {
		return nil, fmt.Errorf("%w: individual is required", ErrInvalidArgument)
	}
	if !inplace {
		ind = ind.Clone()
	}
	for i := 0; i < ind.Len(); i++ {
		trait := ind.Trait(i)
		setBits := trait.Value()
		unsetBits := trait.TotalBits() - setBits
		value := 0
		for b := 0; b < setBits; b++ {
			value += m.mutateBit(rng, 1)
		}
		for b := 0; b < unsetBits; b++ {
			value += m.mutateBit(rng, 0)
		}
		trait.SetValue(value)
	}
	return ind, nil
}

func (m Mutator) mutateBit(rng *rand.Rand, bit int) int {
	if rng.Float64() >= m.Rate {
		return bit
	}
	if m.BitFlip {
		return 1 - bit
	}
	return rng.Intn(2)
}
