package genotype

import (
	"fmt"
	"strings"
)

// Individual is an ordered sequence of traits. The trait list is fixed at
// construction; trait values may be changed in place through Trait.
type Individual struct {
	traits []Trait
}

func NewIndividual(traits []Trait) (*Individual, error) {
	if len(traits) == 0 {
		return nil, fmt.Errorf("%w: individual requires at least one trait", ErrInvalidArgument)
	}
	return &Individual{traits: append([]Trait(nil), traits...)}, nil
}

// Len returns the number of traits.
func (i *Individual) Len() int {
	return len(i.traits)
}

// Trait returns a pointer to the trait at idx so its value can be mutated.
func (i *Individual) Trait(idx int) *Trait {
	return &i.traits[idx]
}

func (i *Individual) Values() []int {
	values := make([]int, len(i.traits))
	for idx, t := range i.traits {
		values[idx] = t.value
	}
	return values
}

// Value is the objective fitness: the total number of set bits.
func (i *Individual) Value() int {
	total := 0
	for _, t := range i.traits {
		total += t.value
	}
	return total
}

func (i *Individual) TotalBitsByTrait() []int {
	bits := make([]int, len(i.traits))
	for idx, t := range i.traits {
		bits[idx] = t.totalBits
	}
	return bits
}

func (i *Individual) TotalBits() int {
	total := 0
	for _, t := range i.traits {
		total += t.totalBits
	}
	return total
}

// Bits concatenates the canonical bit rows of every trait in order.
func (i *Individual) Bits() []int {
	bits := make([]int, 0, i.TotalBits())
	for _, t := range i.traits {
		bits = append(bits, t.Bits()...)
	}
	return bits
}

// Clone returns a structurally independent copy.
func (i *Individual) Clone() *Individual {
	return &Individual{traits: append([]Trait(nil), i.traits...)}
}

func (i *Individual) String() string {
	parts := make([]string, len(i.traits))
	for idx, t := range i.traits {
		parts[idx] = fmt.Sprint(t.value)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Population is an ordered collection of individuals. Index i of a fitness
// vector refers to index i of the population it was assessed on.
type Population []*Individual

// Clone deep-copies every individual.
func (p Population) Clone() Population {
	out := make(Population, len(p))
	for idx, ind := range p {
		out[idx] = ind.Clone()
	}
	return out
}

// Values returns the objective value of every individual.
func (p Population) Values() []int {
	values := make([]int, len(p))
	for idx, ind := range p {
		values[idx] = ind.Value()
	}
	return values
}
