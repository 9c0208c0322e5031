package genotype

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewTraitRejectsOutOfRangeValue(t *testing.T) {
	for _, value := range []int{-1, 11} {
		if _, err := NewTrait(value, 10); !errors.Is(err, ErrInvalidValue) {
			t.Fatalf("value=%d: expected ErrInvalidValue, got %v", value, err)
		}
	}
	if _, err := NewTrait(0, -1); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for negative total bits, got %v", err)
	}
	tr, err := NewTrait(10, 10)
	if err != nil {
		t.Fatalf("new trait: %v", err)
	}
	if tr.Value() != 10 || tr.TotalBits() != 10 {
		t.Fatalf("unexpected trait: %s", tr)
	}
}

func TestTraitSetValueClamps(t *testing.T) {
	tr, err := NewTrait(5, 10)
	if err != nil {
		t.Fatalf("new trait: %v", err)
	}
	tr.SetValue(42)
	if tr.Value() != 10 {
		t.Fatalf("expected clamp to 10, got %d", tr.Value())
	}
	tr.SetValue(-3)
	if tr.Value() != 0 {
		t.Fatalf("expected clamp to 0, got %d", tr.Value())
	}
	tr.SetValue(7)
	if tr.Value() != 7 {
		t.Fatalf("expected 7, got %d", tr.Value())
	}
}

func TestTraitBitsAreOnesThenZeros(t *testing.T) {
	tr, _ := NewTrait(3, 5)
	if got := tr.Bits(); !reflect.DeepEqual(got, []int{1, 1, 1, 0, 0}) {
		t.Fatalf("unexpected bits: %v", got)
	}
}

func TestIndividualDerivedAttributes(t *testing.T) {
	a, _ := NewTrait(2, 4)
	b, _ := NewTrait(5, 6)
	ind, err := NewIndividual([]Trait{a, b})
	if err != nil {
		t.Fatalf("new individual: %v", err)
	}
	if !reflect.DeepEqual(ind.Values(), []int{2, 5}) {
		t.Fatalf("unexpected values: %v", ind.Values())
	}
	if ind.Value() != 7 || ind.TotalBits() != 10 {
		t.Fatalf("unexpected value=%d total=%d", ind.Value(), ind.TotalBits())
	}
	if !reflect.DeepEqual(ind.TotalBitsByTrait(), []int{4, 6}) {
		t.Fatalf("unexpected bits by trait: %v", ind.TotalBitsByTrait())
	}
	if got := ind.Bits(); !reflect.DeepEqual(got, []int{1, 1, 0, 0, 1, 1, 1, 1, 1, 0}) {
		t.Fatalf("unexpected bit row: %v", got)
	}
	if ind.String() != "[2 5]" {
		t.Fatalf("unexpected string: %s", ind)
	}
}

func TestNewIndividualRequiresTraits(t *testing.T) {
	if _, err := NewIndividual(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestNewIndividualCopiesTraitSlice(t *testing.T) {
	tr, _ := NewTrait(1, 4)
	traits := []Trait{tr}
	ind, _ := NewIndividual(traits)
	traits[0].SetValue(4)
	if ind.Value() != 1 {
		t.Fatalf("expected individual to own its traits, got value %d", ind.Value())
	}
}

func TestGeneratorPopulationIndependentCopies(t *testing.T) {
	gen, err := NewGenerator(10, 3)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	pop, err := gen.Population(5, 4)
	if err != nil {
		t.Fatalf("population: %v", err)
	}
	if len(pop) != 5 {
		t.Fatalf("expected 5 individuals, got %d", len(pop))
	}
	for i, ind := range pop {
		if ind.Value() != 12 || ind.TotalBits() != 30 {
			t.Fatalf("individual %d: value=%d total=%d", i, ind.Value(), ind.TotalBits())
		}
	}

	pop[0].Trait(1).SetValue(9)
	for i := 1; i < len(pop); i++ {
		if pop[i].Value() != 12 {
			t.Fatalf("mutating individual 0 changed individual %d: %v", i, pop[i])
		}
	}
}

func TestGeneratorRejectsInvalidInitialValue(t *testing.T) {
	gen, _ := NewGenerator(10, 1)
	if _, err := gen.Population(3, 11); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if _, err := NewGenerator(0, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestPopulationCloneIsDeep(t *testing.T) {
	gen, _ := NewGenerator(8, 2)
	pop, _ := gen.Population(2, 3)
	cloned := pop.Clone()
	cloned[0].Trait(0).SetValue(8)
	if pop[0].Value() != 6 {
		t.Fatalf("expected original untouched, got %d", pop[0].Value())
	}
	if !reflect.DeepEqual(pop.Values(), []int{6, 6}) || !reflect.DeepEqual(cloned.Values(), []int{11, 6}) {
		t.Fatalf("unexpected values original=%v cloned=%v", pop.Values(), cloned.Values())
	}
}
