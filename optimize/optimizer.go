package optimize

import (
	"context"
	"errors"
	"fmt"

	"github.com/trickybestia/cocsim/game"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/plan"
	"github.com/trickybestia/cocsim/status"
)

// ErrUnknownKind is returned for an unsupported optimizer kind
var ErrUnknownKind = errors.New("unknown optimizer kind")

// ErrPlanMismatch is returned when an initial plan does not deploy the problem's army
var ErrPlanMismatch = errors.New("plan does not match army")

// Scored is a plan with its evaluation
type Scored struct {
	Plan  plan.AttackPlan `json:"plan" msgpack:"plan"`
	Stats Stats           `json:"stats" msgpack:"stats"`
}

// Optimizer advances a search one bounded unit of work at a time
// A step whose context is cancelled returns the context error and leaves the optimizer as it was
type Optimizer interface {
	// Step advances the search and returns the best plan found so far
	Step(ctx context.Context) (Scored, error)
	// Best returns the best plan found so far, false before the first completed step
	Best() (Scored, bool)
}

// Problem is the fixed part of a search: the map, the army and the evaluator
type Problem struct {
	Map      *game.Map
	Template plan.AttackPlan
	Eval     *Evaluator
}

// NewProblem validates m and army and builds an evaluator
func NewProblem(m *game.Map, army *game.Army, runs, workers int, seed uint64, reg *status.Registry) (*Problem, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("map: %w", err)
	}
	if err := army.Validate(); err != nil {
		return nil, fmt.Errorf("army: %w", err)
	}
	return &Problem{
		Map:      m,
		Template: plan.FromArmy(army),
		Eval:     NewEvaluator(m, runs, workers, seed, reg),
	}, nil
}

// Check reports whether p deploys exactly the problem's army
func (pr *Problem) Check(p plan.AttackPlan) error {
	a, b := pr.Template, p
	if len(a.Units) != len(b.Units) || len(a.Spells) != len(b.Spells) {
		return ErrPlanMismatch
	}
	for i := range a.Units {
		if a.Units[i].Kind != b.Units[i].Kind || a.Units[i].Level != b.Units[i].Level || a.Units[i].Count != b.Units[i].Count {
			return fmt.Errorf("unit group %d: %w", i, ErrPlanMismatch)
		}
	}
	for i := range a.Spells {
		if a.Spells[i].Kind != b.Spells[i].Kind || a.Spells[i].Level != b.Spells[i].Level || a.Spells[i].Count != b.Spells[i].Count {
			return fmt.Errorf("spell group %d: %w", i, ErrPlanMismatch)
		}
	}
	return nil
}

// Kind selects an optimizer
type Kind string

const (
	KindRandom     Kind = "random"
	KindAnnealing  Kind = "annealing"
	KindGenetic    Kind = "genetic"
	KindContinuous Kind = "continuous"
)

// Selection selects how the genetic optimizer picks parents
type Selection string

const (
	SelectUniform    Selection = "uniform"
	SelectTournament Selection = "tournament"
)

// Settings configures an optimizer; zero fields take defaults
type Settings struct {
	Kind    Kind   `yaml:"kind" json:"kind" jsonschema:"enum=random,enum=annealing,enum=genetic,enum=continuous"`
	Seed    uint64 `yaml:"seed" json:"seed"`
	Runs    int    `yaml:"runs,omitempty" json:"runs,omitempty" jsonschema:"minimum=1"`
	Workers int    `yaml:"workers,omitempty" json:"workers,omitempty" jsonschema:"minimum=0"`
	Steps   int    `yaml:"steps,omitempty" json:"steps,omitempty" jsonschema:"minimum=1"`

	// random
	PlansPerStep int `yaml:"plans_per_step,omitempty" json:"plans_per_step,omitempty"`

	// annealing
	Iterations        int `yaml:"iterations,omitempty" json:"iterations,omitempty"`
	IterationsPerStep int `yaml:"iterations_per_step,omitempty" json:"iterations_per_step,omitempty"`

	// genetic
	Population       int       `yaml:"population,omitempty" json:"population,omitempty"`
	Fresh            int       `yaml:"fresh,omitempty" json:"fresh,omitempty"`
	Temperature      float64   `yaml:"temperature,omitempty" json:"temperature,omitempty"`
	TemperatureDecay float64   `yaml:"temperature_decay,omitempty" json:"temperature_decay,omitempty"`
	Selection        Selection `yaml:"selection,omitempty" json:"selection,omitempty" jsonschema:"enum=uniform,enum=tournament"`

	// continuous
	EvaluationsPerStep int     `yaml:"evaluations_per_step,omitempty" json:"evaluations_per_step,omitempty"`
	SimplexSize        float64 `yaml:"simplex_size,omitempty" json:"simplex_size,omitempty"`
}

// DefaultSteps is the step count of a session when Settings.Steps is zero
const DefaultSteps = 50

// WithDefaults fills zero fields
func (s Settings) WithDefaults() Settings {
	if s.Kind == "" {
		s.Kind = KindGenetic
	}
	if s.Runs == 0 {
		s.Runs = parameter.DefaultRunsPerPlan
	}
	if s.Steps == 0 {
		s.Steps = DefaultSteps
	}
	if s.PlansPerStep == 0 {
		s.PlansPerStep = parameter.RandomSearchPlansPerStep
	}
	if s.Iterations == 0 {
		s.Iterations = parameter.AnnealingIterations
	}
	if s.IterationsPerStep == 0 {
		s.IterationsPerStep = parameter.AnnealingIterationsPerStep
	}
	if s.Population == 0 {
		s.Population = parameter.GAPopulationSize
	}
	if s.Fresh == 0 {
		s.Fresh = parameter.GAFreshPerGeneration
	}
	if s.Temperature == 0 {
		s.Temperature = parameter.GAInitialTemperature
	}
	if s.TemperatureDecay == 0 {
		s.TemperatureDecay = parameter.GATemperatureDecay
	}
	if s.Selection == "" {
		s.Selection = SelectUniform
	}
	if s.EvaluationsPerStep == 0 {
		s.EvaluationsPerStep = parameter.ContinuousEvaluationsPerStep
	}
	if s.SimplexSize == 0 {
		s.SimplexSize = parameter.ContinuousSimplexSize
	}
	return s
}

// New builds the optimizer s selects
// initial, when non-nil, seeds the search
func New(pr *Problem, s Settings, initial *plan.AttackPlan) (Optimizer, error) {
	s = s.WithDefaults()
	if initial != nil {
		if err := pr.Check(*initial); err != nil {
			return nil, err
		}
	}

	switch s.Kind {
	case KindRandom:
		o := NewRandomSearch(pr, s.Seed, s.PlansPerStep)
		if initial != nil {
			o.Resume(*initial)
		}
		return o, nil
	case KindAnnealing:
		o := NewAnnealing(pr, s.Seed, s.Iterations, s.IterationsPerStep)
		if initial != nil {
			o.Resume(*initial)
		}
		return o, nil
	case KindGenetic:
		o, err := NewGenetic(pr, s)
		if err != nil {
			return nil, err
		}
		if initial != nil {
			o.Resume(*initial)
		}
		return o, nil
	case KindContinuous:
		o := NewContinuous(pr, s.Seed, s.EvaluationsPerStep, s.SimplexSize)
		if initial != nil {
			o.Resume(*initial)
		}
		return o, nil
	}
	return nil, fmt.Errorf("%q: %w", s.Kind, ErrUnknownKind)
}
