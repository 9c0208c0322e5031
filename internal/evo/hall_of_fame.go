package evo

import (
	"fmt"
	"math/rand"

	"coevo/internal/genotype"
	"coevo/internal/substrate"
)

const (
	DefaultHallOfFameSize       = 50
	DefaultHallOfFameSampleSize = 5
)

// HallOfFame is a FIFO archive of past elites with its own scorer.
type HallOfFame struct {
	scorer  substrate.Scorer
	size    int
	members genotype.Population
}

func NewHallOfFame(scorer substrate.Scorer, size int) (*HallOfFame, error) {
	if scorer == nil {
		return nil, fmt.Errorf("%w: hall of fame scorer is required", ErrInvalidArgument)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: hall of fame size must be > 0, got %d", ErrInvalidArgument, size)
	}
	return &HallOfFame{scorer: scorer, size: size}, nil
}

// Add appends ind and evicts the oldest member once capacity is exceeded.
func (h *HallOfFame) Add(ind *genotype.Individual) {
	h.members = append(h.members, ind)
	if len(h.members) > h.size {
		h.members = append(genotype.Population(nil), h.members[len(h.members)-h.size:]...)
	}
}

// Members returns the archive oldest first.
func (h *HallOfFame) Members() genotype.Population {
	return append(genotype.Population(nil), h.members...)
}

func (h *HallOfFame) Len() int {
	return len(h.members)
}

func (h *HallOfFame) Size() int {
	return h.size
}

func (h *HallOfFame) Scorer() substrate.Scorer {
	return h.scorer
}

// SubjectiveFitness scores ind against the archive with the archive's scorer.
func (h *HallOfFame) SubjectiveFitness(rng *rand.Rand, ind *genotype.Individual) []int {
	return h.scorer.SubjectiveFitness(rng, ind, h.members)
}

// fork returns an independent archive with the same scorer and capacity,
// seeded with deep copies of the current members.
func (h *HallOfFame) fork() *HallOfFame {
	return &HallOfFame{scorer: h.scorer, size: h.size, members: h.members.Clone()}
}
