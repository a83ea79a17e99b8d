package genetic

import (
	"math"
	"math/rand/v2"
)

// ParameterBounds defines min/max for a single parameter
// Infinite limits mark an unbounded parameter; Span then sets its perturbation scale
type ParameterBounds struct {
	Min, Max float64
	Span     float64
}

// Unbounded returns bounds that never clamp
func Unbounded(span float64) ParameterBounds {
	return ParameterBounds{Min: math.Inf(-1), Max: math.Inf(1), Span: span}
}

// Width is the perturbation scale of the parameter
func (b ParameterBounds) Width() float64 {
	if math.IsInf(b.Min, 0) || math.IsInf(b.Max, 0) {
		return b.Span
	}
	return b.Max - b.Min
}

// VectorCodec maps a problem value onto a bounded real vector and back
// Decode clamps first, so every vector decodes to a valid value
type VectorCodec[P any] interface {
	Encode(P) []float64
	Decode([]float64) P
	Clamp([]float64) []float64
	Bounds() []ParameterBounds
}

// BoundedPerturbator applies perturbation with range clamping
type BoundedPerturbator struct {
	Bounds            []ParameterBounds
	StandardDeviation float64
}

// Perturb adds gaussian noise to each parameter with probability rate
func (bp *BoundedPerturbator) Perturb(solution *[]float64, rate float64, rng *rand.Rand) {
	if solution == nil || len(*solution) == 0 {
		return
	}

	for i := range *solution {
		if i >= len(bp.Bounds) {
			break
		}
		if rng.Float64() >= rate {
			continue
		}

		bounds := bp.Bounds[i]
		noise := rng.NormFloat64() * bp.StandardDeviation * bounds.Width()
		(*solution)[i] = clampTo((*solution)[i]+noise, bounds)
	}
}

// Clamp enforces bounds without mutation
func (bp *BoundedPerturbator) Clamp(solution []float64) []float64 {
	result := make([]float64, len(solution))
	for i, v := range solution {
		if i >= len(bp.Bounds) {
			result[i] = v
			continue
		}
		result[i] = clampTo(v, bp.Bounds[i])
	}
	return result
}

func clampTo(v float64, b ParameterBounds) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}
