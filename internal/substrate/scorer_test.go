package substrate

import (
	"errors"
	"math/rand"
	"testing"

	"coevo/internal/genotype"
)

func mustIndividual(t *testing.T, bits int, values ...int) *genotype.Individual {
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

func TestTransitiveScoreUsesLargestDisagreement(t *testing.T) {
	s, err := NewScorer(1, Transitive)
	if err != nil {
		t.Fatalf("new scorer: %v", err)
	}
	// Trait 1 differs most (2 vs 10); b wins it even though a has more bits overall.
	a := mustIndividual(t, 10, 9, 2, 9)
	b := mustIndividual(t, 10, 6, 10, 8)
	if got := s.Score(a, b); got != 0 {
		t.Fatalf("expected a to lose, got %d", got)
	}
	if got := s.Score(b, a); got != 1 {
		t.Fatalf("expected b to win, got %d", got)
	}
}

func TestIntransitiveScoreUsesSmallestDisagreement(t *testing.T) {
	s, err := NewScorer(1, Intransitive)
	if err != nil {
		t.Fatalf("new scorer: %v", err)
	}
	a := mustIndividual(t, 10, 9, 2, 9)
	b := mustIndividual(t, 10, 6, 10, 8)
	if got := s.Score(a, b); got != 1 {
		t.Fatalf("expected a to win on trait 2, got %d", got)
	}
}

func TestScoreTieKeepsFirstIndexAndCountsEqualAsLoss(t *testing.T) {
	s, _ := NewScorer(1, Transitive)
	// Both traits differ by 3; the first one decides.
	a := mustIndividual(t, 10, 5, 0)
	b := mustIndividual(t, 10, 2, 3)
	if got := s.Score(a, b); got != 1 {
		t.Fatalf("expected first trait to decide, got %d", got)
	}
	same := mustIndividual(t, 10, 4, 4)
	if s.Score(same, same.Clone()) != 0 || s.Score(same.Clone(), same) != 0 {
		t.Fatal("expected exact ties to count as a loss for both sides")
	}
}

func TestScoreAntisymmetricWithoutTies(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, dyn := range []Dynamics{Transitive, Intransitive} {
		s, _ := NewScorer(1, dyn)
		checked := 0
		for i := 0; i < 500; i++ {
			a := mustIndividual(t, 20, rng.Intn(21), rng.Intn(21), rng.Intn(21))
			b := mustIndividual(t, 20, rng.Intn(21), rng.Intn(21), rng.Intn(21))
			ab := s.Score(a, b)
			ba := s.Score(b, a)
			if ab == 0 && ba == 0 {
				continue
			}
			checked++
			if ab != 1-ba {
				t.Fatalf("%s: score(a,b)=%d score(b,a)=%d for a=%v b=%v", dyn, ab, ba, a, b)
			}
		}
		if checked == 0 {
			t.Fatalf("%s: no untied contests sampled", dyn)
		}
	}
}

func TestSubjectiveFitnessSamplesWithReplacement(t *testing.T) {
	s, _ := NewScorer(15, Transitive)
	rng := rand.New(rand.NewSource(1))
	ind := mustIndividual(t, 10, 5)
	opponents := genotype.Population{mustIndividual(t, 10, 2), mustIndividual(t, 10, 8)}

	out := s.SubjectiveFitness(rng, ind, opponents)
	if len(out) != 15 {
		t.Fatalf("expected 15 outcomes, got %d", len(out))
	}
	wins := 0
	for _, v := range out {
		if v != 0 && v != 1 {
			t.Fatalf("unexpected outcome %d", v)
		}
		wins += v
	}
	if wins == 0 || wins == 15 {
		t.Fatalf("expected both opponents to be sampled, wins=%d", wins)
	}
}

func TestSubjectiveFitnessEmptyOpponents(t *testing.T) {
	s, _ := NewScorer(5, Transitive)
	out := s.SubjectiveFitness(rand.New(rand.NewSource(1)), mustIndividual(t, 4, 1), nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty sample, got %v", out)
	}
}

func TestF0ScorerAlwaysZero(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pop := genotype.Population{mustIndividual(t, 4, 0), mustIndividual(t, 4, 4)}
	for _, ind := range pop {
		out := F0Scorer{}.SubjectiveFitness(rng, ind, pop)
		if len(out) != 1 || out[0] != 0 {
			t.Fatalf("expected [0], got %v", out)
		}
	}
}

func TestNewScorerValidatesSampleSize(t *testing.T) {
	if _, err := NewScorer(0, Transitive); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := ParseDynamics("sideways"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	d, err := ParseDynamics("Intransitive")
	if err != nil || d != Intransitive {
		t.Fatalf("unexpected parse result d=%v err=%v", d, err)
	}
}
