package genotype

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidValue    = errors.New("invalid value")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Trait is a unitation-encoded bitstring: only the count of set bits is
// stored, the arrangement of the bits is never represented.
type Trait struct {
	value     int
	totalBits int
}

func NewTrait(value, totalBits int) (Trait, error) {
	if totalBits < 0 {
		return Trait{}, fmt.Errorf("%w: total bits %d < 0", ErrInvalidValue, totalBits)
	}
	if value < 0 || value > totalBits {
		return Trait{}, fmt.Errorf("%w: value %d outside [0, %d]", ErrInvalidValue, value, totalBits)
	}
	return Trait{value: value, totalBits: totalBits}, nil
}

func (t Trait) Value() int {
	return t.value
}

func (t Trait) TotalBits() int {
	return t.totalBits
}

// SetValue clamps v into [0, TotalBits].
func (t *Trait) SetValue(v int) {
	t.value = max(0, min(v, t.totalBits))
}

// Bits materializes the canonical arrangement: ones first, then zeros.
func (t Trait) Bits() []int {
	bits := make([]int, t.totalBits)
	for i := 0; i < t.value; i++ {
		bits[i] = 1
	}
	return bits
}

func (t Trait) String() string {
	return fmt.Sprintf("%d/%d", t.value, t.totalBits)
}
