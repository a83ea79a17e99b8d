// Package genetic provides a generic population search over any solution encoding
// The engine knows nothing about the problem; operators and evaluator are supplied by the caller
package genetic

import (
	"math/rand/v2"
)

// --- Concrete Operator Implementations ---

// TournamentSelector implements tournament selection
// Randomly samples small groups and selects the best from each group
type TournamentSelector[S Solution, F Numeric] struct {
	// TournamentSize is the number of candidates to compete in each tournament
	TournamentSize int
}

// Select implements the Selector interface using tournament selection
func (ts *TournamentSelector[S, F]) Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F] {
	poolSize := len(pool.Members)
	if poolSize == 0 {
		return nil
	}

	tournSize := min(ts.TournamentSize, poolSize)
	if tournSize < 1 {
		tournSize = min(2, poolSize)
	}

	selected := make([]Candidate[S, F], 0, size)
	for len(selected) < size {
		winner := pool.Members[rng.IntN(poolSize)]
		for i := 1; i < tournSize; i++ {
			c := pool.Members[rng.IntN(poolSize)]
			if c.Score > winner.Score {
				winner = c
			}
		}
		selected = append(selected, winner)
	}
	return selected
}

// UniformSelector draws candidates uniformly at random, with replacement
type UniformSelector[S Solution, F Numeric] struct{}

// Select implements the Selector interface
func (UniformSelector[S, F]) Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F] {
	if len(pool.Members) == 0 {
		return nil
	}
	selected := make([]Candidate[S, F], size)
	for i := range selected {
		selected[i] = pool.Members[rng.IntN(len(pool.Members))]
	}
	return selected
}

// UniformCombiner performs uniform crossover between slice solutions
// Each element has equal probability of coming from either parent
type UniformCombiner[S ~[]T, T any, F Numeric] struct {
	// MixProbability is the chance of taking from parent 1 vs parent 2
	MixProbability float64
}

// Combine creates two offspring using uniform crossover
func (uc *UniformCombiner[S, T, F]) Combine(parents []Candidate[S, F], rng *rand.Rand) []S {
	switch len(parents) {
	case 0:
		return nil
	case 1:
		return []S{append(S(nil), parents[0].Data...)}
	}

	parent1, parent2 := parents[0].Data, parents[1].Data
	length := min(len(parent1), len(parent2))

	offspring1 := make(S, length)
	offspring2 := make(S, length)
	for i := 0; i < length; i++ {
		if rng.Float64() < uc.MixProbability {
			offspring1[i] = parent1[i]
			offspring2[i] = parent2[i]
		} else {
			offspring1[i] = parent2[i]
			offspring2[i] = parent1[i]
		}
	}
	return []S{offspring1, offspring2}
}
