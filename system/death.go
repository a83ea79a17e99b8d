package system

import (
	"sync/atomic"

	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/engine"
	"github.com/trickybestia/cocsim/parameter"
)

// DeathSystem marks entities without health for removal and fires their despawn actions
// Despawn damage is applied immediately and the scan repeats until nothing else dies
type DeathSystem struct {
	world *engine.World

	statDeaths    *atomic.Int64
	statBuildings *atomic.Int64
}

// NewDeathSystem creates the death step
func NewDeathSystem(world *engine.World) engine.System {
	return &DeathSystem{
		world:         world,
		statDeaths:    world.Resources.Status.Ints.Get("death.count"),
		statBuildings: world.Resources.Status.Ints.Get("death.buildings"),
	}
}

func (s *DeathSystem) Name() string  { return "death" }
func (s *DeathSystem) Priority() int { return parameter.PriorityDeath }

func (s *DeathSystem) Update() {
	w := s.world
	for pass := 0; pass < parameter.FixedPointPasses; pass++ {
		var dying []core.Entity
		for _, e := range w.Query().With(w.Healths).Without(w.Dead).Execute() {
			if h, _ := w.Healths.Get(e); !h.Alive() {
				dying = append(dying, e)
			}
		}
		if len(dying) == 0 {
			return
		}
		for _, e := range dying {
			s.kill(e)
		}
		applyDamage(w)
	}
}

func (s *DeathSystem) kill(e core.Entity) {
	w := s.world
	w.Kill(e)
	s.statDeaths.Add(1)

	if b := w.Buildings.Ptr(e); b != nil {
		b.Destroyed = true
		w.Resources.Grids.Invalidate()
		s.statBuildings.Add(1)
	}

	if act, ok := w.OnDespawn.Get(e); ok {
		team, _ := w.Teams.Get(e)
		pos, _ := w.Positions.Get(e)
		Execute(w, act, ActionContext{Source: e, Team: team, Point: pos})
	}
}
