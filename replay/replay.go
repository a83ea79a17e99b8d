// Package replay records a plan's simulation as render frames
package replay

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/trickybestia/cocsim/game"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/plan"
	"github.com/trickybestia/cocsim/render"
)

// Replay is one recorded attack
type Replay struct {
	Seed   uint64          `msgpack:"seed"`
	Every  int             `msgpack:"every"`
	Plan   plan.AttackPlan `msgpack:"plan"`
	Result game.Result     `msgpack:"result"`
	Frames []render.Frame  `msgpack:"frames"`
}

// Materialize simulates p on m with seed and captures a frame every n ticks
// The frame before the first tick and the final frame are always captured
func Materialize(m *game.Map, p plan.AttackPlan, seed uint64, every int) (*Replay, error) {
	every = max(every, 1)
	g, err := game.New(m, seed, nil)
	if err != nil {
		return nil, err
	}
	g.SetDeployer(plan.NewExecutor(p, g.DropZone()))

	r := &Replay{Seed: seed, Every: every, Plan: p.Clone()}
	r.Frames = append(r.Frames, g.Frame())
	for tick := 1; !g.Done(); tick++ {
		g.Tick(parameter.DeltaTime)
		if tick%every == 0 || g.Done() {
			r.Frames = append(r.Frames, g.Frame())
		}
	}
	r.Result = g.Result()
	return r, nil
}

// Encode writes r as msgpack
func (r *Replay) Encode(w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("encode replay: %w", err)
	}
	return nil
}

// Decode reads a replay written by Encode
func Decode(rd io.Reader) (*Replay, error) {
	var r Replay
	if err := msgpack.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode replay: %w", err)
	}
	return &r, nil
}

// Marshal returns r as msgpack bytes
func (r *Replay) Marshal() ([]byte, error) {
	return msgpack.Marshal(r)
}

// GridAt returns the latest grid layer at or before frame i
func (r *Replay) GridAt(i int) []render.Shape {
	for ; i >= 0; i-- {
		if r.Frames[i].Grid != nil {
			return r.Frames[i].Grid
		}
	}
	return nil
}
