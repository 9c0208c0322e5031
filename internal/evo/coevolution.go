package evo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"coevo/internal/genotype"
	"coevo/internal/substrate"
)

// Side names one of the two coevolving populations.
type Side string

const (
	SideA Side = "a"
	SideB Side = "b"
)

type CoevolutionConfig struct {
	Scorer   substrate.Scorer
	Selector Selector
	Mutator  *Mutator
	// HallOfFame is a template: each side gets its own archive with the
	// template's scorer and size, starting from copies of its members.
	// Nil disables the archive.
	HallOfFame *HallOfFame
	Seed       int64
	Logger     *slog.Logger
}

// CoevolutionResult is the full history of a run. Every per-generation
// slice has generations+1 entries.
type CoevolutionResult struct {
	Seed         int64
	Generations  int
	PopulationsA []genotype.Population
	PopulationsB []genotype.Population
	SubjectiveA  []float64
	SubjectiveB  []float64
	HallOfFameA  genotype.Population
	HallOfFameB  genotype.Population
	Samples      int
}

// Populations returns the history of one side.
func (r CoevolutionResult) Populations(side Side) []genotype.Population {
	if side == SideB {
		return r.PopulationsB
	}
	return r.PopulationsA
}

// Subjective returns the mean subjective fitness history of one side.
func (r CoevolutionResult) Subjective(side Side) []float64 {
	if side == SideB {
		return r.SubjectiveB
	}
	return r.SubjectiveA
}

// Coevolution drives two populations against each other generation by
// generation.
type Coevolution struct {
	cfg CoevolutionConfig
	log *slog.Logger
}

func NewCoevolution(cfg CoevolutionConfig) (*Coevolution, error) {
	if cfg.Scorer == nil {
		scorer, err := substrate.NewScorer(substrate.DefaultSampleSize, substrate.Transitive)
		if err != nil {
			return nil, err
		}
		cfg.Scorer = scorer
	}
	if cfg.Selector == nil {
		cfg.Selector = FitnessProportionateSelection{Bias: DefaultBias}
	}
	if cfg.Mutator == nil {
		cfg.Mutator = &Mutator{Rate: DefaultMutationRate}
	}
	if cfg.Mutator.Rate < 0 || cfg.Mutator.Rate > 1 {
		return nil, fmt.Errorf("%w: mutation rate must be in [0,1], got %v", ErrInvalidArgument, cfg.Mutator.Rate)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Coevolution{cfg: cfg, log: logger}, nil
}

// Run evaluates generations 0..generations inclusive. The initial
// populations become the first history entries and are not modified.
func (c *Coevolution) Run(ctx context.Context, popA, popB genotype.Population, generations int) (CoevolutionResult, error) {
	if generations <= 0 {
		return CoevolutionResult{}, fmt.Errorf("%w: generations must be > 0, got %d", ErrInvalidArgument, generations)
	}
	if len(popA) == 0 || len(popB) == 0 {
		return CoevolutionResult{}, fmt.Errorf("%w: populations must be non-empty (a=%d b=%d)", ErrInvalidArgument, len(popA), len(popB))
	}

	rng := rand.New(rand.NewSource(c.cfg.Seed))
	var hofA, hofB *HallOfFame
	if c.cfg.HallOfFame != nil {
		hofA = c.cfg.HallOfFame.fork()
		hofB = c.cfg.HallOfFame.fork()
	}

	result := CoevolutionResult{
		Seed:         c.cfg.Seed,
		Generations:  generations,
		PopulationsA: make([]genotype.Population, 0, generations+1),
		PopulationsB: make([]genotype.Population, 0, generations+1),
		SubjectiveA:  make([]float64, 0, generations+1),
		SubjectiveB:  make([]float64, 0, generations+1),
	}
	result.PopulationsA = append(result.PopulationsA, popA)
	result.PopulationsB = append(result.PopulationsB, popB)

	c.log.Info("coevolution started",
		"seed", c.cfg.Seed,
		"generations", generations,
		"scorer", c.cfg.Scorer.Name(),
		"selector", c.cfg.Selector.Name(),
		"mutator", c.cfg.Mutator.Name(),
		"hall_of_fame", hofA != nil,
	)

	for gen := 0; gen <= generations; gen++ {
		if err := ctx.Err(); err != nil {
			return CoevolutionResult{}, err
		}
		popA = result.PopulationsA[len(result.PopulationsA)-1]
		popB = result.PopulationsB[len(result.PopulationsB)-1]

		fitA, samplesA, err := c.assessFitness(rng, popA, popB, hofA)
		if err != nil {
			return CoevolutionResult{}, fmt.Errorf("generation %d side a: %w", gen, err)
		}
		fitB, samplesB, err := c.assessFitness(rng, popB, popA, hofB)
		if err != nil {
			return CoevolutionResult{}, fmt.Errorf("generation %d side b: %w", gen, err)
		}
		result.Samples += samplesA + samplesB
		result.SubjectiveA = append(result.SubjectiveA, meanFloat(fitA))
		result.SubjectiveB = append(result.SubjectiveB, meanFloat(fitB))

		if hofA != nil {
			hofA.Add(popA[argmax(fitA)])
			hofB.Add(popB[argmax(fitB)])
		}

		c.log.Debug("generation assessed",
			"generation", gen,
			"subjective_a", result.SubjectiveA[gen],
			"subjective_b", result.SubjectiveB[gen],
		)

		if gen == generations {
			break
		}

		nextA, err := c.nextGeneration(rng, popA, fitA)
		if err != nil {
			return CoevolutionResult{}, fmt.Errorf("generation %d side a: %w", gen, err)
		}
		nextB, err := c.nextGeneration(rng, popB, fitB)
		if err != nil {
			return CoevolutionResult{}, fmt.Errorf("generation %d side b: %w", gen, err)
		}
		result.PopulationsA = append(result.PopulationsA, nextA)
		result.PopulationsB = append(result.PopulationsB, nextB)
	}

	if hofA != nil {
		result.HallOfFameA = hofA.Members()
		result.HallOfFameB = hofB.Members()
	}
	c.log.Info("coevolution finished",
		"generations", generations,
		"samples", result.Samples,
		"final_subjective_a", result.SubjectiveA[generations],
		"final_subjective_b", result.SubjectiveB[generations],
	)
	return result, nil
}

// assessFitness scores each individual against sampled opponents, extended
// by a sample against the side's archive when one is enabled.
func (c *Coevolution) assessFitness(rng *rand.Rand, pop, opponents genotype.Population, hof *HallOfFame) ([]float64, int, error) {
	fitnesses := make([]float64, len(pop))
	samples := 0
	for i, ind := range pop {
		scores := c.cfg.Scorer.SubjectiveFitness(rng, ind, opponents)
		if hof != nil {
			scores = append(scores, hof.SubjectiveFitness(rng, ind)...)
		}
		if len(scores) == 0 {
			return nil, 0, fmt.Errorf("%w: empty subjective sample for individual %d", ErrInvalidArgument, i)
		}
		fitnesses[i] = meanInt(scores)
		samples += len(scores)
	}
	return fitnesses, samples, nil
}

func (c *Coevolution) nextGeneration(rng *rand.Rand, pop genotype.Population, fitnesses []float64) (genotype.Population, error) {
	idxs, err := c.cfg.Selector.Select(rng, fitnesses, len(pop))
	if err != nil {
		return nil, err
	}
	next := make(genotype.Population, 0, len(idxs))
	for _, idx := range idxs {
		child, err := c.cfg.Mutator.Mutate(rng, pop[idx], false)
		if err != nil {
			return nil, err
		}
		next = append(next, child)
	}
	return next, nil
}

func meanInt(values []int) float64 {
	total := 0
	for _, v := range values {
		total += v
	}
	return float64(total) / float64(len(values))
}

func meanFloat(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// argmax returns the first index holding the maximum value.
func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
