// Package substrate implements the minimal-substrate contest: two
// individuals are compared on a single trait, chosen by how much they
// disagree on it.
package substrate

import (
	"fmt"
	"math/rand"
	"strings"

	"coevo/internal/genotype"
)

const DefaultSampleSize = 15

var ErrInvalidArgument = genotype.ErrInvalidArgument

// Dynamics selects which trait decides a contest.
type Dynamics int

const (
	// Transitive picks the trait of maximum disagreement.
	Transitive Dynamics = iota
	// Intransitive picks the trait of minimum disagreement.
	Intransitive
)

func (d Dynamics) String() string {
	switch d {
	case Transitive:
		return "transitive"
	case Intransitive:
		return "intransitive"
	default:
		return fmt.Sprintf("dynamics(%d)", int(d))
	}
}

func ParseDynamics(name string) (Dynamics, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "transitive":
		return Transitive, nil
	case "intransitive":
		return Intransitive, nil
	default:
		return 0, fmt.Errorf("%w: unknown dynamics %q", ErrInvalidArgument, name)
	}
}

// replaces reports whether a trait with disagreement delta displaces the
// current best. Ties never displace, so the first index wins.
func (d Dynamics) replaces(delta, best int) bool {
	if d == Intransitive {
		return delta < best
	}
	return delta > best
}

// Scorer estimates subjective fitness from contests against opponents.
type Scorer interface {
	Name() string
	SubjectiveFitness(rng *rand.Rand, ind *genotype.Individual, opponents genotype.Population) []int
}

// MinimalScorer samples SampleSize opponents with replacement and plays one
// contest against each.
type MinimalScorer struct {
	SampleSize int
	Dynamics   Dynamics
}

func NewScorer(sampleSize int, dynamics Dynamics) (*MinimalScorer, error) {
	if sampleSize <= 0 {
		return nil, fmt.Errorf("%w: sample size must be > 0, got %d", ErrInvalidArgument, sampleSize)
	}
	if dynamics != Transitive && dynamics != Intransitive {
		return nil, fmt.Errorf("%w: unknown dynamics %d", ErrInvalidArgument, int(dynamics))
	}
	return &MinimalScorer{SampleSize: sampleSize, Dynamics: dynamics}, nil
}

func (s *MinimalScorer) Name() string {
	return "minimal_" + s.Dynamics.String()
}

// Score returns 1 when a beats b on the deciding trait, 0 otherwise. A tie on
// the deciding trait counts as a loss for a.
func (s *MinimalScorer) Score(a, b *genotype.Individual) int {
	av := a.Values()
	bv := b.Values()
	n := min(len(av), len(bv))
	if n == 0 {
		return 0
	}
	mi := 0
	for i := 0; i < n; i++ {
		if s.Dynamics.replaces(absInt(bv[i]-av[i]), absInt(av[mi]-bv[mi])) {
			mi = i
		}
	}
	if av[mi] > bv[mi] {
		return 1
	}
	return 0
}

// SubjectiveFitness returns one outcome per sampled opponent, or an empty
// slice when there are no opponents.
func (s *MinimalScorer) SubjectiveFitness(rng *rand.Rand, ind *genotype.Individual, opponents genotype.Population) []int {
	if len(opponents) == 0 {
		return []int{}
	}
	out := make([]int, s.SampleSize)
	for i := range out {
		out[i] = s.Score(ind, opponents[rng.Intn(len(opponents))])
	}
	return out
}

// F0Scorer removes coevolutionary pressure: every individual scores a
// single 0 regardless of opponents.
type F0Scorer struct{}

func (F0Scorer) Name() string {
	return "f0"
}

func (F0Scorer) SubjectiveFitness(_ *rand.Rand, _ *genotype.Individual, _ genotype.Population) []int {
	return []int{0}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
