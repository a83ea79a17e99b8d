package optimize

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/trickybestia/cocsim/catalog"
	"github.com/trickybestia/cocsim/game"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/plan"
	"github.com/trickybestia/cocsim/status"
	"github.com/trickybestia/cocsim/vmath"
)

func testMap() *game.Map {
	return &game.Map{
		BaseSize:   10,
		BorderSize: 2,
		Buildings: []game.BuildingSpec{
			{Kind: catalog.TownHall, X: 5, Y: 5},
			{Kind: catalog.Cannon, X: 9, Y: 5},
			{Kind: catalog.BuilderHut, X: 3, Y: 10},
		},
	}
}

func testArmy() *game.Army {
	return &game.Army{
		Units:  []game.UnitSlot{{Kind: catalog.Dragon, Count: 2}, {Kind: catalog.Barbarian, Count: 4}},
		Spells: []game.SpellSlot{{Kind: catalog.Lightning, Count: 1}},
	}
}

func testProblem(t *testing.T, workers int) *Problem {
	t.Helper()
	pr, err := NewProblem(testMap(), testArmy(), 2, workers, 7, status.NewRegistry())
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	return pr
}

func testSettings(kind Kind) Settings {
	return Settings{
		Kind:               kind,
		Seed:               3,
		PlansPerStep:       3,
		Iterations:         10,
		IterationsPerStep:  2,
		Population:         6,
		Fresh:              2,
		EvaluationsPerStep: 6,
	}
}

var kinds = []Kind{KindRandom, KindAnnealing, KindGenetic, KindContinuous}

func TestScore(t *testing.T) {
	if got := Score(parameter.MaxAttackDuration, 40); got != 40 {
		t.Errorf("Score at full time = %v, want 40", got)
	}
	if got := Score(170, 100); got != 10*parameter.ScoreTimeWeight+100 {
		t.Errorf("Score(170, 100) = %v", got)
	}
}

func TestEvaluatorWorkersAgree(t *testing.T) {
	sequential := testProblem(t, 1)
	parallel := testProblem(t, 4)

	plans := []plan.AttackPlan{
		plan.Random(sequential.Template, sequential.Map, vmath.NewRand(1)),
		plan.Random(sequential.Template, sequential.Map, vmath.NewRand(2)),
	}
	a, err := sequential.Eval.EvaluateAll(context.Background(), plans)
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	b, err := parallel.Eval.EvaluateAll(context.Background(), plans)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("sequential %+v != parallel %+v", a, b)
	}
	if a[0].Runs != 2 {
		t.Errorf("Runs = %d, want 2", a[0].Runs)
	}
}

func TestEvaluatorCancelled(t *testing.T) {
	pr := testProblem(t, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := pr.Eval.Evaluate(ctx, pr.Template); !errors.Is(err, context.Canceled) {
		t.Errorf("Evaluate = %v, want context.Canceled", err)
	}
}

func TestOptimizersNeverRegress(t *testing.T) {
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			opt, err := New(testProblem(t, 0), testSettings(kind), nil)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if _, ok := opt.Best(); ok {
				t.Fatal("Best() reported a plan before the first step")
			}

			prev := -1.0
			for i := 0; i < 3; i++ {
				got, err := opt.Step(context.Background())
				if err != nil {
					t.Fatalf("Step %d: %v", i, err)
				}
				if got.Stats.Score < prev {
					t.Fatalf("step %d: best fell from %v to %v", i, prev, got.Stats.Score)
				}
				prev = got.Stats.Score

				best, ok := opt.Best()
				if !ok || best.Stats.Score != got.Stats.Score {
					t.Fatalf("Best() = %v, %v after Step returned %v", best.Stats.Score, ok, got.Stats.Score)
				}
			}
		})
	}
}

func TestAnnealingTemperatureSchedule(t *testing.T) {
	o := NewAnnealing(testProblem(t, 1), 1, 5, 1)
	want := []float64{1, 0.75, 0.5, 0.25, 0, 0}
	for i, w := range want {
		o.iteration = i
		if got := o.Temperature(); got != w {
			t.Errorf("iteration %d: temperature %v, want %v", i, got, w)
		}
	}
}

func TestCancelledStepLeavesState(t *testing.T) {
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			a, _ := New(testProblem(t, 1), testSettings(kind), nil)
			b, _ := New(testProblem(t, 1), testSettings(kind), nil)

			ctx := context.Background()
			a.Step(ctx)
			b.Step(ctx)

			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			if _, err := a.Step(cancelled); !errors.Is(err, context.Canceled) {
				t.Fatalf("Step = %v, want context.Canceled", err)
			}

			ra, err := a.Step(ctx)
			if err != nil {
				t.Fatalf("Step after cancel: %v", err)
			}
			rb, _ := b.Step(ctx)
			if !reflect.DeepEqual(ra, rb) {
				t.Errorf("cancelled step changed the search:\n%+v\n%+v", ra.Stats, rb.Stats)
			}
		})
	}
}

func TestResumeFromInitialPlan(t *testing.T) {
	pr := testProblem(t, 0)
	initial := plan.Random(pr.Template, pr.Map, vmath.NewRand(9))
	want, err := pr.Eval.Evaluate(context.Background(), initial)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			opt, err := New(pr, testSettings(kind), &initial)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			got, err := opt.Step(context.Background())
			if err != nil {
				t.Fatalf("Step: %v", err)
			}
			if got.Stats.Score < want.Score {
				t.Errorf("best %v is worse than the initial plan %v", got.Stats.Score, want.Score)
			}
		})
	}
}

func TestNewRejects(t *testing.T) {
	pr := testProblem(t, 1)

	other := plan.FromArmy(&game.Army{Units: []game.UnitSlot{{Kind: catalog.Goblin, Count: 1}}})
	if _, err := New(pr, testSettings(KindRandom), &other); !errors.Is(err, ErrPlanMismatch) {
		t.Errorf("mismatched plan: %v", err)
	}
	if _, err := New(pr, Settings{Kind: "hill-climb"}, nil); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown kind: %v", err)
	}
	if _, err := New(pr, Settings{Kind: KindGenetic, Selection: "roulette"}, nil); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown selection: %v", err)
	}
	if _, err := NewProblem(testMap(), &game.Army{Units: []game.UnitSlot{{Kind: catalog.Dragon, Count: 99}}}, 1, 1, 0, nil); !errors.Is(err, game.ErrHousing) {
		t.Errorf("oversized army: %v", err)
	}
}

func TestSessionStream(t *testing.T) {
	pr := testProblem(t, 0)
	opt, _ := New(pr, testSettings(KindRandom), nil)
	s := NewSession(pr, opt, 2, 30)

	var msgs []Message
	best, err := s.Run(context.Background(), func(m Message) error {
		msgs = append(msgs, m)
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 2 progress and 1 result", len(msgs))
	}
	for i, m := range msgs[:2] {
		if m.Kind != MessageProgress || m.Step != i+1 || m.Session != s.ID || m.Text == "" {
			t.Errorf("message %d = %+v", i, m)
		}
	}
	last := msgs[2]
	if last.Kind != MessageResult || last.Replay == nil || len(last.Replay.Frames) < 2 {
		t.Fatalf("result message = %+v", last)
	}
	if !reflect.DeepEqual(last.Replay.Plan, best.Plan) {
		t.Error("replay does not show the best plan")
	}
	if got := pr.Eval.Status().Ints.Get("session.steps").Load(); got != 2 {
		t.Errorf("session.steps = %d, want 2", got)
	}
}

func TestSessionCancelled(t *testing.T) {
	pr := testProblem(t, 0)
	opt, _ := New(pr, testSettings(KindAnnealing), nil)
	s := NewSession(pr, opt, 5, 1)

	ctx, cancel := context.WithCancel(context.Background())
	var got []MessageKind
	_, err := s.Run(ctx, func(m Message) error {
		got = append(got, m.Kind)
		cancel()
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if len(got) != 1 || got[0] != MessageProgress {
		t.Errorf("messages = %v, want a single progress message", got)
	}
}
