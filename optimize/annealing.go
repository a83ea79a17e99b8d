package optimize

import (
	"context"

	"github.com/trickybestia/cocsim/plan"
	"github.com/trickybestia/cocsim/vmath"
)

// Annealing perturbs one current plan and accepts any candidate scoring at least as well
// Temperature falls linearly from 1 on the first iteration to 0 on the last of the budget and stays there
type Annealing struct {
	pr         *Problem
	rng        *vmath.RNG
	iterations int
	perStep    int

	iteration int
	initial   *plan.AttackPlan
	current   *Scored
	best      *Scored
}

// NewAnnealing creates an annealer running perStep iterations per step
func NewAnnealing(pr *Problem, seed uint64, iterations, perStep int) *Annealing {
	return &Annealing{
		pr:         pr,
		rng:        vmath.NewRNG(seed),
		iterations: max(iterations, 1),
		perStep:    max(perStep, 1),
	}
}

// Resume starts the search from p instead of a random plan
// Has no effect after the first step
func (o *Annealing) Resume(p plan.AttackPlan) {
	if o.current == nil {
		c := p.Clone()
		o.initial = &c
	}
}

// Temperature returns the perturbation scale of the next iteration
func (o *Annealing) Temperature() float64 {
	if o.iterations <= 1 {
		return 0
	}
	t := 1 - float64(o.iteration)/float64(o.iterations-1)
	return max(t, 0)
}

// Step runs one batch of iterations
func (o *Annealing) Step(ctx context.Context) (Scored, error) {
	if err := ctx.Err(); err != nil {
		return Scored{}, err
	}
	state := o.rng.Save()
	iteration, current, best := o.iteration, o.current, o.best

	fail := func(err error) (Scored, error) {
		o.rng.Restore(state)
		o.iteration, o.current, o.best = iteration, current, best
		return Scored{}, err
	}

	if o.current == nil {
		start := o.pr.Template
		if o.initial != nil {
			start = *o.initial
		} else {
			start = plan.Random(start, o.pr.Map, o.rng.Rand)
		}
		s, err := o.pr.Eval.Evaluate(ctx, start)
		if err != nil {
			return fail(err)
		}
		o.current = &Scored{Plan: start, Stats: s}
		o.best = o.current
	}

	for i := 0; i < o.perStep; i++ {
		candidate := plan.Mutate(o.current.Plan, o.pr.Map, o.rng.Rand, o.Temperature())
		s, err := o.pr.Eval.Evaluate(ctx, candidate)
		if err != nil {
			return fail(err)
		}
		o.iteration++
		if s.Score >= o.current.Stats.Score {
			o.current = &Scored{Plan: candidate, Stats: s}
		}
		if s.Score > o.best.Stats.Score {
			o.best = &Scored{Plan: candidate, Stats: s}
		}
	}
	o.initial = nil
	return *o.best, nil
}

// Best returns the best plan so far
func (o *Annealing) Best() (Scored, bool) {
	if o.best == nil {
		return Scored{}, false
	}
	return *o.best, true
}
