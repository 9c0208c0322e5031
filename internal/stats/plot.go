package stats

import "coevo/internal/genotype"

type PlotPoint struct {
	Generation int     `json:"generation"`
	Value      float64 `json:"value"`
}

// ObjectiveSeries returns one scatter point per individual per generation
// and one average point per generation.
func ObjectiveSeries(pops []genotype.Population) ([]PlotPoint, []PlotPoint) {
	size := 0
	for _, pop := range pops {
		size += len(pop)
	}
	raw := make([]PlotPoint, 0, size)
	avgs := make([]PlotPoint, 0, len(pops))
	for g, pop := range pops {
		if len(pop) == 0 {
			continue
		}
		total := 0
		for _, ind := range pop {
			v := ind.Value()
			total += v
			raw = append(raw, PlotPoint{Generation: g, Value: float64(v)})
		}
		avgs = append(avgs, PlotPoint{Generation: g, Value: float64(total) / float64(len(pop))})
	}
	return raw, avgs
}

// SubjectiveSeries turns a subjective history into plot points.
func SubjectiveSeries(subjective []float64) []PlotPoint {
	points := make([]PlotPoint, len(subjective))
	for g, v := range subjective {
		points[g] = PlotPoint{Generation: g, Value: v}
	}
	return points
}

// EliteBitmap returns, per generation, the bit row of the individual with
// the highest objective value (first one on ties).
func EliteBitmap(pops []genotype.Population) [][]int {
	rows := make([][]int, 0, len(pops))
	for _, pop := range pops {
		if len(pop) == 0 {
			rows = append(rows, nil)
			continue
		}
		elite := pop[0]
		for _, ind := range pop[1:] {
			if ind.Value() > elite.Value() {
				elite = ind
			}
		}
		rows = append(rows, elite.Bits())
	}
	return rows
}
