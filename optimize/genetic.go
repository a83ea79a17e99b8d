package optimize

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/trickybestia/cocsim/genetic"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/plan"
	"github.com/trickybestia/cocsim/vmath"
)

type planEngine = genetic.Engine[plan.AttackPlan, float64]

// Genetic evolves a population of plans
type Genetic struct {
	engine *planEngine
}

// NewGenetic creates a population search from s
func NewGenetic(pr *Problem, s Settings) (*Genetic, error) {
	s = s.WithDefaults()

	var selector genetic.Selector[plan.AttackPlan, float64]
	switch s.Selection {
	case SelectUniform:
		selector = genetic.UniformSelector[plan.AttackPlan, float64]{}
	case SelectTournament:
		selector = &genetic.TournamentSelector[plan.AttackPlan, float64]{TournamentSize: parameter.GATournamentSize}
	default:
		return nil, fmt.Errorf("selection %q: %w", s.Selection, ErrUnknownKind)
	}

	initializer := func(rng *rand.Rand) plan.AttackPlan {
		return plan.Random(pr.Template, pr.Map, rng)
	}
	combiner := genetic.CombineFunc[plan.AttackPlan, float64](
		func(parents []genetic.Candidate[plan.AttackPlan, float64], rng *rand.Rand) []plan.AttackPlan {
			return []plan.AttackPlan{plan.Crossover(parents[0].Data, parents[1].Data, rng)}
		})
	perturbator := genetic.PerturbFunc[plan.AttackPlan](
		func(p *plan.AttackPlan, rate float64, rng *rand.Rand) {
			*p = plan.Mutate(*p, pr.Map, rng, rate)
		})

	cfg := genetic.EngineConfig{
		PoolSize:           s.Population,
		Fresh:              s.Fresh,
		InitialTemperature: s.Temperature,
		TemperatureDecay:   s.TemperatureDecay,
	}
	engine := genetic.NewEngine[plan.AttackPlan, float64](pr.Eval.Batch, initializer, selector, combiner, perturbator, cfg, vmath.NewRNG(s.Seed))
	return &Genetic{engine: engine}, nil
}

// Resume places p in the first generation
func (o *Genetic) Resume(p plan.AttackPlan) {
	o.engine.Seed(p.Clone())
}

// Generation returns the index of the last evaluated generation, -1 before the first
func (o *Genetic) Generation() int {
	if pool := o.engine.Pool(); pool != nil {
		return pool.Generation
	}
	return -1
}

// Step evaluates one generation
func (o *Genetic) Step(ctx context.Context) (Scored, error) {
	if err := o.engine.Step(ctx); err != nil {
		return Scored{}, err
	}
	best, _ := o.Best()
	return best, nil
}

// Best returns the best plan across all generations
func (o *Genetic) Best() (Scored, bool) {
	c, err := o.engine.Best()
	if err != nil {
		return Scored{}, false
	}
	return Scored{Plan: c.Data, Stats: c.Info.(Stats)}, true
}
