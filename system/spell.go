package system

import (
	"github.com/trickybestia/cocsim/engine"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/vmath"
)

// SpellSystem advances drop-in animations, delayed actions and pulsing effects
type SpellSystem struct {
	world *engine.World
}

// NewSpellSystem creates the spell step
func NewSpellSystem(world *engine.World) engine.System {
	return &SpellSystem{world: world}
}

func (s *SpellSystem) Name() string  { return "spell" }
func (s *SpellSystem) Priority() int { return parameter.PrioritySpell }

func (s *SpellSystem) Update() {
	w := s.world
	dt := w.Resources.Time.Delta

	for _, e := range w.Query().With(w.DropIns).With(w.Positions).Without(w.Dead).Execute() {
		in := w.DropIns.Ptr(e)
		in.Elapsed = min(in.Elapsed+dt, in.Duration)
		t := 1.0
		if in.Duration > 0 {
			t = in.Elapsed / in.Duration
		}
		*w.Positions.Ptr(e) = in.From.Lerp(in.To, vmath.EaseInOut(t))
	}

	for _, e := range w.Query().With(w.Delays).With(w.Positions).Without(w.Dead).Execute() {
		d := w.Delays.Ptr(e)
		d.Remaining -= dt
		if d.Remaining > vmath.Epsilon {
			continue
		}
		then := d.Then
		team, _ := w.Teams.Get(e)
		pos, _ := w.Positions.Get(e)
		if in, ok := w.DropIns.Get(e); ok {
			pos = in.To
		}
		w.Kill(e)
		Execute(w, then, ActionContext{Source: e, Team: team, Point: pos})
	}

	for _, e := range w.Query().With(w.Pulses).With(w.Positions).Without(w.Dead).Execute() {
		p := w.Pulses.Ptr(e)
		p.Next -= dt
		if p.Next <= vmath.Epsilon {
			p.Next += p.Interval
			team, _ := w.Teams.Get(e)
			pos, _ := w.Positions.Get(e)
			Execute(w, p.Action, ActionContext{Source: e, Team: team, Point: pos})
			p = w.Pulses.Ptr(e)
		}
		p.Left -= dt
		if p.Left <= vmath.Epsilon {
			w.Kill(e)
		}
	}
}
