package genetic

import (
	"context"
	"errors"
	"slices"

	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/vmath"
)

// ErrEmptyPool is returned by Best before any generation was evaluated
var ErrEmptyPool = errors.New("no candidates available")

// --- Algorithm Engine ---

// Engine is the main genetic algorithm execution engine
// It coordinates all operators and advances the population one generation per Step
type Engine[S Solution, F Numeric] struct {
	// Core operators
	evaluator   EvaluatorFunc[S, F]
	initializer InitializerFunc[S]
	selector    Selector[S, F]
	combiner    Combiner[S, F]
	perturbator Perturbator[S]

	config EngineConfig

	// State
	rng         *vmath.RNG
	seeds       []S
	currentPool *Pool[S, F]
	best        *Candidate[S, F]
	temperature float64
	history     []PoolStats[F]
}

// EngineConfig holds configuration parameters for the algorithm
type EngineConfig struct {
	// PoolSize is the number of candidates kept after each generation
	PoolSize int
	// Fresh is the number of new random candidates injected each generation
	Fresh int
	// InitialTemperature is the perturbation rate of the first bred generation
	InitialTemperature float64
	// TemperatureDecay multiplies the temperature after each generation
	TemperatureDecay float64
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		PoolSize:           parameter.GAPopulationSize,
		Fresh:              parameter.GAFreshPerGeneration,
		InitialTemperature: parameter.GAInitialTemperature,
		TemperatureDecay:   parameter.GATemperatureDecay,
	}
}

// NewEngine creates a new genetic algorithm engine with the specified operators
func NewEngine[S Solution, F Numeric](
	evaluator EvaluatorFunc[S, F],
	initializer InitializerFunc[S],
	selector Selector[S, F],
	combiner Combiner[S, F],
	perturbator Perturbator[S],
	config EngineConfig,
	rng *vmath.RNG,
) *Engine[S, F] {
	if config.PoolSize < 1 {
		config.PoolSize = 1
	}
	config.Fresh = min(max(config.Fresh, 0), config.PoolSize)
	return &Engine[S, F]{
		evaluator:   evaluator,
		initializer: initializer,
		selector:    selector,
		combiner:    combiner,
		perturbator: perturbator,
		config:      config,
		rng:         rng,
		temperature: config.InitialTemperature,
	}
}

// Seed queues solutions for the first generation, ahead of random ones
// Has no effect once a generation was evaluated
func (e *Engine[S, F]) Seed(solutions ...S) {
	if e.currentPool == nil {
		e.seeds = append(e.seeds, solutions...)
	}
}

// Step evaluates one generation
// The first call evaluates seeds and random solutions; later calls inject fresh solutions,
// breed the rest from the current pool, merge both and keep the best PoolSize
// On error the engine state, random stream included, is left as before the call
func (e *Engine[S, F]) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	state := e.rng.Save()
	var batch []S
	if e.currentPool == nil {
		batch = e.initialBatch()
	} else {
		batch = e.breed()
	}

	evaluated, err := e.evaluator(ctx, batch)
	if err != nil {
		e.rng.Restore(state)
		return err
	}

	generation := 0
	merged := evaluated
	if e.currentPool != nil {
		generation = e.currentPool.Generation + 1
		merged = append(slices.Clone(e.currentPool.Members), evaluated...)
		e.temperature *= e.config.TemperatureDecay
	}
	slices.SortStableFunc(merged, func(a, b Candidate[S, F]) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	merged = merged[:min(len(merged), e.config.PoolSize)]

	e.seeds = nil
	e.currentPool = &Pool[S, F]{
		Members:    merged,
		Generation: generation,
		Stats:      calculateStats(merged),
	}
	e.history = append(e.history, e.currentPool.Stats)

	if len(merged) > 0 && (e.best == nil || merged[0].Score > e.best.Score) {
		top := merged[0]
		e.best = &top
	}
	return nil
}

func (e *Engine[S, F]) initialBatch() []S {
	batch := slices.Clone(e.seeds)
	for len(batch) < e.config.PoolSize {
		batch = append(batch, e.initializer(e.rng.Rand))
	}
	return batch
}

// breed returns Fresh random solutions followed by perturbed offspring up to PoolSize
func (e *Engine[S, F]) breed() []S {
	batch := make([]S, 0, e.config.PoolSize)
	for i := 0; i < e.config.Fresh; i++ {
		batch = append(batch, e.initializer(e.rng.Rand))
	}
	for len(batch) < e.config.PoolSize {
		parents := e.selector.Select(e.currentPool, 2, e.rng.Rand)
		for _, child := range e.combiner.Combine(parents, e.rng.Rand) {
			e.perturbator.Perturb(&child, e.temperature, e.rng.Rand)
			batch = append(batch, child)
			if len(batch) == e.config.PoolSize {
				break
			}
		}
	}
	return batch
}

// calculateStats computes statistical measures for a candidate pool
func calculateStats[S Solution, F Numeric](candidates []Candidate[S, F]) PoolStats[F] {
	if len(candidates) == 0 {
		return PoolStats[F]{}
	}

	stats := PoolStats[F]{
		BestScore:  candidates[0].Score,
		WorstScore: candidates[0].Score,
	}

	total := F(0)
	for _, c := range candidates {
		if c.Score > stats.BestScore {
			stats.BestScore = c.Score
		}
		if c.Score < stats.WorstScore {
			stats.WorstScore = c.Score
		}
		total += c.Score
	}
	stats.AverageScore = total / F(len(candidates))
	return stats
}

// Pool returns the current population, nil before the first Step
func (e *Engine[S, F]) Pool() *Pool[S, F] {
	return e.currentPool
}

// Temperature returns the perturbation rate of the next bred generation
func (e *Engine[S, F]) Temperature() float64 {
	return e.temperature
}

// History returns the statistics of every evaluated generation
func (e *Engine[S, F]) History() []PoolStats[F] {
	return e.history
}

// Best returns the best candidate found so far, across all generations
func (e *Engine[S, F]) Best() (Candidate[S, F], error) {
	if e.best == nil {
		return Candidate[S, F]{}, ErrEmptyPool
	}
	return *e.best, nil
}
