package evo

import (
	"fmt"
	"math/rand"

	"coevo/internal/genotype"
)

const DefaultBias = 0.000001

var ErrInvalidArgument = genotype.ErrInvalidArgument

// Selector maps a fitness vector to k indices drawn with replacement.
type Selector interface {
	Name() string
	Select(rng *rand.Rand, fitnesses []float64, k int) ([]int, error)
}

// SelectAll draws one index per fitness value.
func SelectAll(rng *rand.Rand, s Selector, fitnesses []float64) ([]int, error) {
	return s.Select(rng, fitnesses, len(fitnesses))
}

func validateSelect(rng *rand.Rand, fitnesses []float64, k int) error {
	if rng == nil {
		return fmt.Errorf("%w: random source is required", ErrInvalidArgument)
	}
	if len(fitnesses) == 0 {
		return fmt.Errorf("%w: empty fitness vector", ErrInvalidArgument)
	}
	if k <= 0 {
		return fmt.Errorf("%w: selection count must be > 0, got %d", ErrInvalidArgument, k)
	}
	return nil
}

// buildWheel returns the cumulative sums of fitness+bias. Negative fitness
// contributes only the bias. The virulence curve 2f/λ - f²/λ² goes negative
// for f > 2λ, so with λ < 0.5 and normalised input a selector can see
// negative values; left unclamped they would shrink or invert the wheel.
func buildWheel(fitnesses []float64, bias float64) ([]float64, float64) {
	wheel := make([]float64, len(fitnesses))
	total := 0.0
	for i, f := range fitnesses {
		total += max(f, 0) + bias
		wheel[i] = total
	}
	return wheel, total
}

// spin returns the first wheel index whose cumulative value is not below
// point, starting the scan at from.
func spin(wheel []float64, point float64, from int) int {
	i := from
	for i < len(wheel)-1 && wheel[i] < point {
		i++
	}
	return i
}

// FitnessProportionateSelection is roulette-wheel sampling: k independent
// spins.
type FitnessProportionateSelection struct {
	Bias float64
}

func NewFitnessProportionateSelection(bias float64) (FitnessProportionateSelection, error) {
	if bias <= 0 {
		return FitnessProportionateSelection{}, fmt.Errorf("%w: bias must be > 0, got %v", ErrInvalidArgument, bias)
	}
	return FitnessProportionateSelection{Bias: bias}, nil
}

func (FitnessProportionateSelection) Name() string {
	return "fps"
}

func (s FitnessProportionateSelection) Select(rng *rand.Rand, fitnesses []float64, k int) ([]int, error) {
	if err := validateSelect(rng, fitnesses, k); err != nil {
		return nil, err
	}
	wheel, total := buildWheel(fitnesses, biasOrDefault(s.Bias))
	selected := make([]int, k)
	for i := range selected {
		selected[i] = spin(wheel, rng.Float64()*total, 0)
	}
	return selected, nil
}

// StochasticUniversalSampling spins once and reads k equally spaced pointers
// off the wheel.
type StochasticUniversalSampling struct {
	Bias float64
}

func NewStochasticUniversalSampling(bias float64) (StochasticUniversalSampling, error) {
	if bias <= 0 {
		return StochasticUniversalSampling{}, fmt.Errorf("%w: bias must be > 0, got %v", ErrInvalidArgument, bias)
	}
	return StochasticUniversalSampling{Bias: bias}, nil
}

func (StochasticUniversalSampling) Name() string {
	return "sus"
}

func (s StochasticUniversalSampling) Select(rng *rand.Rand, fitnesses []float64, k int) ([]int, error) {
	if err := validateSelect(rng, fitnesses, k); err != nil {
		return nil, err
	}
	wheel, total := buildWheel(fitnesses, biasOrDefault(s.Bias))
	dist := total / float64(k)
	start := rng.Float64() * dist
	selected := make([]int, k)
	// Pointers ascend, so the scan resumes where the previous one stopped.
	idx := 0
	for i := range selected {
		idx = spin(wheel, start+float64(i)*dist, idx)
		selected[i] = idx
	}
	return selected, nil
}

// TournamentSelection draws N contestants with replacement per pick and
// keeps the first one with the highest fitness.
type TournamentSelection struct {
	N int
}

func NewTournamentSelection(n int) (TournamentSelection, error) {
	if n <= 0 {
		return TournamentSelection{}, fmt.Errorf("%w: tournament size must be > 0, got %d", ErrInvalidArgument, n)
	}
	return TournamentSelection{N: n}, nil
}

func (TournamentSelection) Name() string {
	return "tournament"
}

func (s TournamentSelection) Select(rng *rand.Rand, fitnesses []float64, k int) ([]int, error) {
	if err := validateSelect(rng, fitnesses, k); err != nil {
		return nil, err
	}
	if s.N <= 0 {
		return nil, fmt.Errorf("%w: tournament size must be > 0, got %d", ErrInvalidArgument, s.N)
	}
	selected := make([]int, k)
	for i := range selected {
		best := rng.Intn(len(fitnesses))
		for j := 1; j < s.N; j++ {
			candidate := rng.Intn(len(fitnesses))
			if fitnesses[candidate] > fitnesses[best] {
				best = candidate
			}
		}
		selected[i] = best
	}
	return selected, nil
}

// VirulenceSelector reshapes fitness with the virulence curve before
// delegating to Base.
type VirulenceSelector struct {
	Base      Selector
	Lambda    float64
	Normalise bool
}

func NewVirulenceSelector(base Selector, lambda float64, normalise bool) (*VirulenceSelector, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: base selector is required", ErrInvalidArgument)
	}
	if lambda <= 0 || lambda > 1 {
		return nil, fmt.Errorf("%w: virulence lambda must be in (0,1], got %v", ErrInvalidArgument, lambda)
	}
	return &VirulenceSelector{Base: base, Lambda: lambda, Normalise: normalise}, nil
}

func (s *VirulenceSelector) Name() string {
	return "virulence_" + s.Base.Name()
}

// Transforms returns the fitness pipeline applied before the base selector.
func (s *VirulenceSelector) Transforms() []FitnessTransform {
	transforms := make([]FitnessTransform, 0, 2)
	if s.Normalise {
		transforms = append(transforms, MinMaxNormaliser{})
	}
	return append(transforms, VirulenceTransform{Lambda: s.Lambda})
}

func (s *VirulenceSelector) Select(rng *rand.Rand, fitnesses []float64, k int) ([]int, error) {
	if err := validateSelect(rng, fitnesses, k); err != nil {
		return nil, err
	}
	return s.Base.Select(rng, ApplyTransforms(fitnesses, s.Transforms()...), k)
}

func biasOrDefault(bias float64) float64 {
	if bias <= 0 {
		return DefaultBias
	}
	return bias
}
