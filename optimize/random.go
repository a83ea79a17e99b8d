package optimize

import (
	"context"

	"github.com/trickybestia/cocsim/plan"
	"github.com/trickybestia/cocsim/vmath"
)

// RandomSearch evaluates fresh random plans every step and keeps the best
type RandomSearch struct {
	pr      *Problem
	rng     *vmath.RNG
	perStep int
	pending []plan.AttackPlan
	best    *Scored
}

// NewRandomSearch creates a random search evaluating perStep plans per step
func NewRandomSearch(pr *Problem, seed uint64, perStep int) *RandomSearch {
	return &RandomSearch{pr: pr, rng: vmath.NewRNG(seed), perStep: max(perStep, 1)}
}

// Resume evaluates p with the next step
func (o *RandomSearch) Resume(p plan.AttackPlan) {
	o.pending = append(o.pending, p.Clone())
}

// Step evaluates one batch
func (o *RandomSearch) Step(ctx context.Context) (Scored, error) {
	if err := ctx.Err(); err != nil {
		return Scored{}, err
	}
	state := o.rng.Save()

	batch := append([]plan.AttackPlan(nil), o.pending...)
	for len(batch) < o.perStep {
		batch = append(batch, plan.Random(o.pr.Template, o.pr.Map, o.rng.Rand))
	}
	stats, err := o.pr.Eval.EvaluateAll(ctx, batch)
	if err != nil {
		o.rng.Restore(state)
		return Scored{}, err
	}

	o.pending = nil
	for i, s := range stats {
		if o.best == nil || s.Score > o.best.Stats.Score {
			o.best = &Scored{Plan: batch[i], Stats: s}
		}
	}
	return *o.best, nil
}

// Best returns the best plan so far
func (o *RandomSearch) Best() (Scored, bool) {
	if o.best == nil {
		return Scored{}, false
	}
	return *o.best, true
}
