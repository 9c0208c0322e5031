package evo

// FitnessTransform rewrites a fitness vector before selection. Transforms
// never modify their input.
type FitnessTransform interface {
	Name() string
	Transform(fitnesses []float64) []float64
}

// MinMaxNormaliser shifts the minimum to 0 and scales the maximum to 1. A
// constant vector becomes all zeros.
type MinMaxNormaliser struct{}

func (MinMaxNormaliser) Name() string {
	return "normalise"
}

func (MinMaxNormaliser) Transform(fitnesses []float64) []float64 {
	out := cloneFitness(fitnesses)
	if len(out) == 0 {
		return out
	}
	lo := out[0]
	for _, f := range out[1:] {
		lo = min(lo, f)
	}
	hi := 0.0
	for i := range out {
		out[i] -= lo
		hi = max(hi, out[i])
	}
	if hi > 0 {
		for i := range out {
			out[i] /= hi
		}
	}
	return out
}

// VirulenceTransform maps f to 2f/λ - f²/λ², a concave curve peaking at f=λ.
type VirulenceTransform struct {
	Lambda float64
}

func (VirulenceTransform) Name() string {
	return "virulence"
}

func (t VirulenceTransform) Transform(fitnesses []float64) []float64 {
	out := cloneFitness(fitnesses)
	la := t.Lambda
	for i, f := range out {
		out[i] = 2*f/la - f*f/(la*la)
	}
	return out
}

// ApplyTransforms runs transforms left to right.
func ApplyTransforms(fitnesses []float64, transforms ...FitnessTransform) []float64 {
	out := cloneFitness(fitnesses)
	for _, t := range transforms {
		out = t.Transform(out)
	}
	return out
}

func cloneFitness(fitnesses []float64) []float64 {
	out := make([]float64, len(fitnesses))
	copy(out, fitnesses)
	return out
}
