package evo

import (
	"errors"
	"math/rand"
	"testing"

	"coevo/internal/genotype"
)

func newTestIndividual(t *testing.T, bits int, values ...int) *genotype.Individual {
	t.Helper()
	traits := make([]genotype.Trait, 0, len(values))
	for _, v := range values {
		tr, err := genotype.NewTrait(v, bits)
		if err != nil {
			t.Fatalf("new trait: %v", err)
		}
		traits = append(traits, tr)
	}
	ind, err := genotype.NewIndividual(traits)
	if err != nil {
		t.Fatalf("new individual: %v", err)
	}
	return ind
}

func mustMutate(t *testing.T, m Mutator, rng *rand.Rand, ind *genotype.Individual, inplace bool) *genotype.Individual {
	t.Helper()
	out, err := m.Mutate(rng, ind, inplace)
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	return out
}

func TestMutatorKeepsValuesInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, m := range []Mutator{{Rate: 0.3}, {Rate: 0.9, BitFlip: true}, {Rate: 1}} {
		ind := newTestIndividual(t, 12, 0, 6, 12)
		for i := 0; i < 200; i++ {
			ind = mustMutate(t, m, rng, ind, i%2 == 0)
			for j, v := range ind.Values() {
				if v < 0 || v > 12 {
					t.Fatalf("%s: trait %d out of range: %d", m.Name(), j, v)
				}
			}
		}
	}
}

func TestMutatorCopiesUnlessInplace(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	m := Mutator{Rate: 1, BitFlip: true}
	ind := newTestIndividual(t, 10, 3)

	out := mustMutate(t, m, rng, ind, false)
	if out == ind {
		t.Fatal("expected a new individual")
	}
	if ind.Value() != 3 {
		t.Fatalf("expected original untouched, got %d", ind.Value())
	}
	if out.Value() != 7 {
		t.Fatalf("expected every bit flipped, got %d", out.Value())
	}

	same := mustMutate(t, m, rng, ind, true)
	if same != ind || ind.Value() != 7 {
		t.Fatalf("expected in-place flip to 7, got %d", ind.Value())
	}
}

func TestMutatorZeroRateIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	m := Mutator{Rate: 0}
	ind := newTestIndividual(t, 50, 10, 40)
	for i := 0; i < 50; i++ {
		ind = mustMutate(t, m, rng, ind, false)
	}
	if ind.Values()[0] != 10 || ind.Values()[1] != 40 {
		t.Fatalf("expected no change, got %v", ind.Values())
	}
}

func TestMutatorRedrawDriftsTowardHalf(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	m := Mutator{Rate: 1}
	total := 0
	runs := 400
	for i := 0; i < runs; i++ {
		total += mustMutate(t, m, rng, newTestIndividual(t, 100, 0), false).Value()
	}
	mean := float64(total) / float64(runs)
	if mean < 47 || mean > 53 {
		t.Fatalf("expected redraw mean near 50, got %.2f", mean)
	}
}

func TestNewMutatorValidatesRate(t *testing.T) {
	if _, err := NewMutator(-0.1, false); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	m, err := NewMutator(DefaultMutationRate, true)
	if err != nil || m.Name() != "bit_flip" {
		t.Fatalf("unexpected mutator=%+v err=%v", m, err)
	}
}

func TestMutatorRequiresRandomSource(t *testing.T) {
	m := Mutator{Rate: 0.5}
	ind := newTestIndividual(t, 10, 4)
	out, err := m.Mutate(nil, ind, true)
	if !errors.Is(err, ErrInvalidArgument) || out != nil {
		t.Fatalf("expected ErrInvalidArgument for nil rng, got out=%v err=%v", out, err)
	}
	if ind.Value() != 4 {
		t.Fatalf("expected individual untouched, got %d", ind.Value())
	}
	if _, err := m.Mutate(rand.New(rand.NewSource(1)), nil, false); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for nil individual, got %v", err)
	}
}
