package system

import (
	"sync/atomic"

	"github.com/trickybestia/cocsim/engine"
	"github.com/trickybestia/cocsim/parameter"
)

// TrapSystem springs traps once an enemy ground unit walks into range
type TrapSystem struct {
	world *engine.World

	statSprung *atomic.Int64
}

// NewTrapSystem creates the trap step
func NewTrapSystem(world *engine.World) engine.System {
	return &TrapSystem{
		world:      world,
		statSprung: world.Resources.Status.Ints.Get("trap.sprung"),
	}
}

func (s *TrapSystem) Name() string  { return "trap" }
func (s *TrapSystem) Priority() int { return parameter.PriorityTrap }

func (s *TrapSystem) Update() {
	w := s.world

	traps := w.Query().With(w.Traps).With(w.Positions).Without(w.Dead).Execute()
	if len(traps) == 0 {
		return
	}
	units := w.Query().With(w.Movers).With(w.Targets).With(w.Positions).Without(w.Dead).Execute()

	for _, e := range traps {
		trap, _ := w.Traps.Get(e)
		team, _ := w.Teams.Get(e)
		pos, _ := w.Positions.Get(e)

		for _, u := range units {
			if ut, _ := w.Teams.Get(u); ut == team || !w.Alive(u) {
				continue
			}
			if tgt, _ := w.Targets.Get(u); !tgt.Flags.Any(trap.Hits) {
				continue
			}
			if up, _ := w.Positions.Get(u); up.Dist(pos) > trap.Radius {
				continue
			}
			w.Kill(e)
			s.statSprung.Add(1)
			Execute(w, trap.Action, ActionContext{Source: e, Team: team, Point: pos})
			break
		}
	}
}
