// Package optimize searches for attack plans that maximize the simulated score
package optimize

import (
	"context"
	"math"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/trickybestia/cocsim/game"
	"github.com/trickybestia/cocsim/genetic"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/plan"
	"github.com/trickybestia/cocsim/status"
)

// Stats aggregates the repeated simulations of one plan
type Stats struct {
	Runs          int     `json:"runs" msgpack:"runs"`
	AvgTime       float64 `json:"avg_time" msgpack:"avg_time"`
	AvgPercentage float64 `json:"avg_percentage" msgpack:"avg_percentage"`
	MinPercentage float64 `json:"min_percentage" msgpack:"min_percentage"`
	MaxPercentage float64 `json:"max_percentage" msgpack:"max_percentage"`
	AvgStars      float64 `json:"avg_stars" msgpack:"avg_stars"`
	Score         float64 `json:"score" msgpack:"score"`
}

// Score rewards time left over and destruction
func Score(avgTime, avgPercentage float64) float64 {
	return (parameter.MaxAttackDuration-avgTime)*parameter.ScoreTimeWeight + avgPercentage
}

func aggregate(results []game.Result) Stats {
	s := Stats{Runs: len(results), MinPercentage: math.Inf(1), MaxPercentage: math.Inf(-1)}
	for _, r := range results {
		s.AvgTime += r.Time
		s.AvgPercentage += r.Percentage
		s.AvgStars += float64(r.Stars)
		s.MinPercentage = min(s.MinPercentage, r.Percentage)
		s.MaxPercentage = max(s.MaxPercentage, r.Percentage)
	}
	if n := float64(len(results)); n > 0 {
		s.AvgTime /= n
		s.AvgPercentage /= n
		s.AvgStars /= n
	} else {
		s.MinPercentage, s.MaxPercentage = 0, 0
	}
	s.Score = Score(s.AvgTime, s.AvgPercentage)
	return s
}

// Evaluator scores plans by running full simulations
// Run i of every plan uses seed Seed+i, so plans are compared on the same random draws
type Evaluator struct {
	m       *game.Map
	runs    int
	workers int
	seed    uint64
	reg     *status.Registry

	statSimulations *atomic.Int64
	statPlans       *atomic.Int64
}

// NewEvaluator creates an evaluator for map m
// runs below 1 use the default; workers below 1 use one per CPU, 1 runs sequentially
func NewEvaluator(m *game.Map, runs, workers int, seed uint64, reg *status.Registry) *Evaluator {
	if runs < 1 {
		runs = parameter.DefaultRunsPerPlan
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Evaluator{
		m:               m,
		runs:            runs,
		workers:         workers,
		seed:            seed,
		reg:             reg,
		statSimulations: reg.Ints.Get("optimize.simulations"),
		statPlans:       reg.Ints.Get("optimize.plans"),
	}
}

// Runs returns simulations per plan
func (ev *Evaluator) Runs() int { return ev.runs }

// Seed returns the seed of the first run
func (ev *Evaluator) Seed() uint64 { return ev.seed }

// Status returns the registry simulations report to
func (ev *Evaluator) Status() *status.Registry { return ev.reg }

// Simulate runs p once to completion
func (ev *Evaluator) Simulate(p plan.AttackPlan, seed uint64) (game.Result, error) {
	g, err := game.New(ev.m, seed, ev.reg)
	if err != nil {
		return game.Result{}, err
	}
	g.SetDeployer(plan.NewExecutor(p, g.DropZone()))
	r := g.Run()
	ev.statSimulations.Add(1)
	return r, nil
}

// Evaluate scores one plan
func (ev *Evaluator) Evaluate(ctx context.Context, p plan.AttackPlan) (Stats, error) {
	stats, err := ev.EvaluateAll(ctx, []plan.AttackPlan{p})
	if err != nil {
		return Stats{}, err
	}
	return stats[0], nil
}

// EvaluateAll scores plans, fanning simulations out over the workers
// Aggregation happens in run order, so the result does not depend on the worker count
func (ev *Evaluator) EvaluateAll(ctx context.Context, plans []plan.AttackPlan) ([]Stats, error) {
	results := make([][]game.Result, len(plans))
	for i := range results {
		results[i] = make([]game.Result, ev.runs)
	}

	if ev.workers == 1 {
		for i, p := range plans {
			for r := 0; r < ev.runs; r++ {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				res, err := ev.Simulate(p, ev.seed+uint64(r))
				if err != nil {
					return nil, err
				}
				results[i][r] = res
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(ev.workers)
		for i, p := range plans {
			for r := 0; r < ev.runs; r++ {
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					res, err := ev.Simulate(p, ev.seed+uint64(r))
					if err != nil {
						return err
					}
					results[i][r] = res
					return nil
				})
			}
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	out := make([]Stats, len(plans))
	for i := range plans {
		out[i] = aggregate(results[i])
	}
	ev.statPlans.Add(int64(len(plans)))
	return out, nil
}

// Batch adapts EvaluateAll to the genetic engine
func (ev *Evaluator) Batch(ctx context.Context, plans []plan.AttackPlan) ([]genetic.Candidate[plan.AttackPlan, float64], error) {
	stats, err := ev.EvaluateAll(ctx, plans)
	if err != nil {
		return nil, err
	}
	out := make([]genetic.Candidate[plan.AttackPlan, float64], len(plans))
	for i, p := range plans {
		out[i] = genetic.Candidate[plan.AttackPlan, float64]{Data: p, Score: stats[i].Score, Info: stats[i]}
	}
	return out, nil
}
