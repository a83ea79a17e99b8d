package optimize

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/trickybestia/cocsim/genetic"
	"github.com/trickybestia/cocsim/plan"
	"github.com/trickybestia/cocsim/vmath"
)

var errNoEvaluation = errors.New("solver returned without evaluating a plan")

// Continuous runs a Nelder-Mead simplex search over the flattened plan vector
// Each step grants the solver a fixed number of evaluations, restarting from the best plan;
// after a step without improvement the restart point is perturbed
type Continuous struct {
	pr      *Problem
	codec   genetic.VectorCodec[plan.AttackPlan]
	scale   []float64
	jitter  *genetic.BoundedPerturbator
	rng     *vmath.RNG
	perStep int
	simplex float64

	initial *plan.AttackPlan
	start   []float64
	stalled bool
	best    *Scored
}

// NewContinuous creates a simplex search granted perStep evaluations per step
// simplex is the initial simplex edge, relative to each parameter's range
func NewContinuous(pr *Problem, seed uint64, perStep int, simplex float64) *Continuous {
	codec := plan.NewVectorCodec(pr.Template, pr.Map)
	scale := make([]float64, len(codec.Bounds()))
	normalized := make([]genetic.ParameterBounds, len(codec.Bounds()))
	for i, b := range codec.Bounds() {
		scale[i] = b.Width()
		normalized[i] = genetic.ParameterBounds{Min: b.Min / scale[i], Max: b.Max / scale[i], Span: 1}
	}
	return &Continuous{
		pr:      pr,
		codec:   codec,
		scale:   scale,
		jitter:  &genetic.BoundedPerturbator{Bounds: normalized, StandardDeviation: simplex},
		rng:     vmath.NewRNG(seed),
		perStep: max(perStep, 1),
		simplex: simplex,
	}
}

// Resume starts the search from p
// Has no effect after the first step
func (o *Continuous) Resume(p plan.AttackPlan) {
	if o.best == nil {
		c := p.Clone()
		o.initial = &c
		o.start = o.normalize(o.codec.Encode(p))
	}
}

func (o *Continuous) normalize(x []float64) []float64 {
	y := make([]float64, len(x))
	for i := range x {
		y[i] = x[i] / o.scale[i]
	}
	return y
}

func (o *Continuous) decode(y []float64) plan.AttackPlan {
	x := make([]float64, len(y))
	for i := range y {
		x[i] = y[i] * o.scale[i]
	}
	return o.codec.Decode(x)
}

// Step hands the solver one evaluation budget
func (o *Continuous) Step(ctx context.Context) (Scored, error) {
	if err := ctx.Err(); err != nil {
		return Scored{}, err
	}
	state := o.rng.Save()

	start := o.start
	if start == nil {
		start = o.normalize(o.codec.Encode(plan.Random(o.pr.Template, o.pr.Map, o.rng.Rand)))
	} else if o.stalled {
		start = append([]float64(nil), start...)
		o.jitter.Perturb(&start, 1, o.rng.Rand)
	}

	var (
		evalErr error
		found   *Scored
	)
	consider := func(p plan.AttackPlan) float64 {
		if evalErr != nil {
			return math.Inf(1)
		}
		s, err := o.pr.Eval.Evaluate(ctx, p)
		if err != nil {
			evalErr = err
			return math.Inf(1)
		}
		if found == nil || s.Score > found.Stats.Score {
			found = &Scored{Plan: p, Stats: s}
		}
		return -s.Score
	}

	if o.initial != nil {
		consider(*o.initial)
	}
	if len(start) == 0 {
		consider(o.pr.Template)
	} else if evalErr == nil {
		problem := optimize.Problem{
			Func: func(y []float64) float64 { return consider(o.decode(y)) },
			Status: func() (optimize.Status, error) {
				if evalErr != nil {
					return optimize.Failure, evalErr
				}
				return optimize.NotTerminated, nil
			},
		}
		settings := &optimize.Settings{FuncEvaluations: o.perStep, Concurrent: 1}
		_, err := optimize.Minimize(problem, start, settings, &optimize.NelderMead{SimplexSize: o.simplex})
		if evalErr == nil && err != nil {
			evalErr = err
		}
	}
	if evalErr == nil {
		evalErr = ctx.Err()
	}
	if evalErr == nil && found == nil {
		evalErr = errNoEvaluation
	}
	if evalErr != nil {
		o.rng.Restore(state)
		return Scored{}, evalErr
	}

	improved := o.best == nil || found.Stats.Score > o.best.Stats.Score
	if improved {
		o.best = found
	}
	o.stalled = !improved
	o.initial = nil
	o.start = o.normalize(o.codec.Encode(o.best.Plan))
	return *o.best, nil
}

// Best returns the best plan so far
func (o *Continuous) Best() (Scored, bool) {
	if o.best == nil {
		return Scored{}, false
	}
	return *o.best, true
}
