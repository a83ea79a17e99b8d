package genetic

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/trickybestia/cocsim/vmath"
)

var bounds = []ParameterBounds{{Min: -10, Max: 10}, {Min: -10, Max: 10}}

// score peaks at (3, -2)
func score(x []float64) float64 {
	dx, dy := x[0]-3, x[1]+2
	return -(dx*dx + dy*dy)
}

func evaluate(_ context.Context, xs [][]float64) ([]Candidate[[]float64, float64], error) {
	out := make([]Candidate[[]float64, float64], len(xs))
	for i, x := range xs {
		out[i] = Candidate[[]float64, float64]{Data: x, Score: score(x)}
	}
	return out, nil
}

func randomPoint(rng *rand.Rand) []float64 {
	return []float64{vmath.RandRange(rng, -10, 10), vmath.RandRange(rng, -10, 10)}
}

func newTestEngine(seed uint64, eval EvaluatorFunc[[]float64, float64]) *Engine[[]float64, float64] {
	bp := &BoundedPerturbator{Bounds: bounds, StandardDeviation: 0.1}
	return NewEngine(
		eval,
		randomPoint,
		&TournamentSelector[[]float64, float64]{TournamentSize: 3},
		&UniformCombiner[[]float64, float64, float64]{MixProbability: 0.5},
		bp,
		DefaultConfig(),
		vmath.NewRNG(seed),
	)
}

func TestEngineNeverRegresses(t *testing.T) {
	e := newTestEngine(1, evaluate)
	if _, err := e.Best(); !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("Best() before Step = %v, want ErrEmptyPool", err)
	}

	prev := -1e18
	for i := 0; i < 30; i++ {
		if err := e.Step(context.Background()); err != nil {
			t.Fatalf("Step: %v", err)
		}
		best, err := e.Best()
		if err != nil {
			t.Fatalf("Best: %v", err)
		}
		if best.Score < prev {
			t.Fatalf("generation %d: best fell from %v to %v", i, prev, best.Score)
		}
		prev = best.Score
	}
	if prev < -2 {
		t.Errorf("best score %v after 30 generations, want within 1.4 of the optimum", prev)
	}
	if got := len(e.History()); got != 30 {
		t.Errorf("history has %d entries, want 30", got)
	}
}

func TestEnginePoolSortedAndTruncated(t *testing.T) {
	e := newTestEngine(2, evaluate)
	for i := 0; i < 3; i++ {
		if err := e.Step(context.Background()); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	pool := e.Pool()
	if len(pool.Members) != DefaultConfig().PoolSize {
		t.Fatalf("pool size %d, want %d", len(pool.Members), DefaultConfig().PoolSize)
	}
	for i := 1; i < len(pool.Members); i++ {
		if pool.Members[i].Score > pool.Members[i-1].Score {
			t.Fatalf("pool not sorted at %d", i)
		}
	}
	if pool.Generation != 2 {
		t.Errorf("generation = %d, want 2", pool.Generation)
	}
}

func TestEngineSeedComesFirst(t *testing.T) {
	e := newTestEngine(3, evaluate)
	e.Seed([]float64{3, -2})
	if err := e.Step(context.Background()); err != nil {
		t.Fatalf("Step: %v", err)
	}
	best, _ := e.Best()
	if best.Score != 0 {
		t.Errorf("best score %v, want the seeded optimum", best.Score)
	}
}

func TestEngineFailedStepKeepsState(t *testing.T) {
	fail := false
	eval := func(ctx context.Context, xs [][]float64) ([]Candidate[[]float64, float64], error) {
		if fail {
			return nil, context.Canceled
		}
		return evaluate(ctx, xs)
	}

	a := newTestEngine(4, eval)
	b := newTestEngine(4, evaluate)
	for _, e := range []*Engine[[]float64, float64]{a, b} {
		if err := e.Step(context.Background()); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	fail = true
	if err := a.Step(context.Background()); !errors.Is(err, context.Canceled) {
		t.Fatalf("Step = %v, want context.Canceled", err)
	}
	fail = false

	if a.Pool().Generation != 0 || a.Temperature() != b.Temperature() {
		t.Fatal("failed step changed engine state")
	}
	for i := 0; i < 3; i++ {
		a.Step(context.Background())
		b.Step(context.Background())
	}
	ba, _ := a.Best()
	bb, _ := b.Best()
	if ba.Score != bb.Score {
		t.Errorf("engines diverged after a failed step: %v vs %v", ba.Score, bb.Score)
	}
}

func TestEngineCancelledContext(t *testing.T) {
	e := newTestEngine(5, evaluate)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := e.Step(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Step = %v, want context.Canceled", err)
	}
	if e.Pool() != nil {
		t.Error("cancelled first step created a pool")
	}
}

func TestTournamentSelectorPicksBest(t *testing.T) {
	pool := &Pool[int, int]{Members: []Candidate[int, int]{{Data: 1, Score: 1}, {Data: 2, Score: 5}}}
	ts := &TournamentSelector[int, int]{TournamentSize: 2}
	rng := vmath.NewRand(1)

	wins := 0
	for _, c := range ts.Select(pool, 200, rng) {
		if c.Data == 2 {
			wins++
		}
	}
	// the weaker candidate wins only when drawn twice, about a quarter of the time
	if wins < 120 || wins == 200 {
		t.Errorf("stronger candidate won %d of 200 tournaments", wins)
	}
}

func TestBoundedPerturbator(t *testing.T) {
	bp := &BoundedPerturbator{
		Bounds:            []ParameterBounds{{Min: 0, Max: 1}, Unbounded(1)},
		StandardDeviation: 10,
	}
	rng := vmath.NewRand(7)
	for i := 0; i < 100; i++ {
		x := []float64{0.5, 0}
		bp.Perturb(&x, 1, rng)
		if x[0] < 0 || x[0] > 1 {
			t.Fatalf("bounded parameter escaped: %v", x[0])
		}
	}

	x := []float64{0.5, 4}
	bp.Perturb(&x, 0, rng)
	if x[0] != 0.5 || x[1] != 4 {
		t.Errorf("rate 0 changed %v", x)
	}

	got := bp.Clamp([]float64{-3, 1e9, 2})
	if got[0] != 0 || got[1] != 1e9 || got[2] != 2 {
		t.Errorf("Clamp = %v", got)
	}
}
