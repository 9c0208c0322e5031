package stats

import (
	"coevo/internal/evo"
	"coevo/internal/genotype"
	"coevo/internal/model"
)

// Summarize condenses every generation of both sides of a run.
func Summarize(result evo.CoevolutionResult) ([]model.GenerationSummary, []model.GenerationSummary) {
	a := SummarizeSide(evo.SideA, result.PopulationsA, result.SubjectiveA)
	b := SummarizeSide(evo.SideB, result.PopulationsB, result.SubjectiveB)
	return a, b
}

// SummarizeSide pairs each population snapshot with its subjective mean.
func SummarizeSide(side evo.Side, pops []genotype.Population, subjective []float64) []model.GenerationSummary {
	out := make([]model.GenerationSummary, 0, len(pops))
	for g, pop := range pops {
		summary := model.GenerationSummary{
			Generation: g,
			Side:       string(side),
			Size:       len(pop),
		}
		if g < len(subjective) {
			summary.Subjective = subjective[g]
		}
		if len(pop) > 0 {
			values := pop.Values()
			summary.TotalBits = pop[0].TotalBits()
			summary.MinObjective = values[0]
			summary.MaxObjective = values[0]
			total := 0
			for _, v := range values {
				total += v
				summary.MinObjective = min(summary.MinObjective, v)
				summary.MaxObjective = max(summary.MaxObjective, v)
			}
			summary.MeanObjective = float64(total) / float64(len(values))
		}
		out = append(out, summary)
	}
	return out
}

// ObjectiveValues returns every individual's objective value per generation.
func ObjectiveValues(pops []genotype.Population) [][]int {
	out := make([][]int, len(pops))
	for g, pop := range pops {
		out[g] = pop.Values()
	}
	return out
}
