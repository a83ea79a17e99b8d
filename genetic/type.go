package genetic

import (
	"context"
	"math/rand/v2"
)

// --- Core Type Constraints ---

// Solution represents any type that can be used as a solution encoding
type Solution any

// Numeric constrains types to numeric values for fitness scores
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// --- Core Data Structures ---

// Candidate represents a potential solution with its evaluated quality score
// S is the solution type, F is the fitness/quality score type
type Candidate[S Solution, F Numeric] struct {
	// Data holds the encoded solution representation
	Data S
	// Score represents the quality/fitness of this solution (higher = better)
	Score F
	// Info carries evaluator output beyond the score, e.g. per-run statistics
	Info any
}

// Pool represents a collection of solution candidates sorted by descending score
type Pool[S Solution, F Numeric] struct {
	// Members contains all candidates in this pool
	Members []Candidate[S, F]
	// Generation tracks the iteration number this pool represents
	Generation int
	// Stats holds statistical information about this pool
	Stats PoolStats[F]
}

// PoolStats contains statistical information about a candidate pool
type PoolStats[F Numeric] struct {
	BestScore    F
	WorstScore   F
	AverageScore F
}

// --- Function Types for Flexibility ---

// EvaluatorFunc scores a batch of solutions
// Results are returned in input order; an error abandons the whole batch
type EvaluatorFunc[S Solution, F Numeric] func(ctx context.Context, solutions []S) ([]Candidate[S, F], error)

// InitializerFunc creates a fresh random solution
type InitializerFunc[S Solution] func(rng *rand.Rand) S

// --- Core Operators as Interfaces ---

// Selector defines the selection operator for choosing candidates for reproduction
type Selector[S Solution, F Numeric] interface {
	// Select chooses size candidates from the pool
	Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F]
}

// Combiner defines the recombination operator for creating new solutions
type Combiner[S Solution, F Numeric] interface {
	// Combine creates offspring from parent solutions
	Combine(parents []Candidate[S, F], rng *rand.Rand) []S
}

// Perturbator defines the mutation operator for introducing variation
type Perturbator[S Solution] interface {
	// Perturb modifies a solution in place
	// rate scales the perturbation; 0 leaves the solution unchanged
	Perturb(solution *S, rate float64, rng *rand.Rand)
}

// CombineFunc adapts a function to Combiner
type CombineFunc[S Solution, F Numeric] func(parents []Candidate[S, F], rng *rand.Rand) []S

func (f CombineFunc[S, F]) Combine(parents []Candidate[S, F], rng *rand.Rand) []S {
	return f(parents, rng)
}

// PerturbFunc adapts a function to Perturbator
type PerturbFunc[S Solution] func(solution *S, rate float64, rng *rand.Rand)

func (f PerturbFunc[S]) Perturb(solution *S, rate float64, rng *rand.Rand) {
	f(solution, rate, rng)
}
