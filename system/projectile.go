package system

import (
	"sync/atomic"

	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/engine"
	"github.com/trickybestia/cocsim/parameter"
)

// ProjectileSystem flies projectiles and detonates them on arrival
// A homing projectile whose target died disappears without effect
type ProjectileSystem struct {
	world *engine.World

	statHits   *atomic.Int64
	statMisses *atomic.Int64
}

// NewProjectileSystem creates the projectile step
func NewProjectileSystem(world *engine.World) engine.System {
	return &ProjectileSystem{
		world:      world,
		statHits:   world.Resources.Status.Ints.Get("projectile.hits"),
		statMisses: world.Resources.Status.Ints.Get("projectile.misses"),
	}
}

func (s *ProjectileSystem) Name() string  { return "projectile" }
func (s *ProjectileSystem) Priority() int { return parameter.PriorityProjectile }

func (s *ProjectileSystem) Update() {
	w := s.world
	dt := w.Resources.Time.Delta

	for _, e := range w.Query().With(w.Projectiles).With(w.Positions).Without(w.Dead).Execute() {
		p := w.Projectiles.Ptr(e)
		pos := w.Positions.Ptr(e)
		team, _ := w.Teams.Get(e)
		step := p.Speed * dt

		if !p.Homing {
			var arrived bool
			*pos, arrived = pos.MoveToward(p.Dest, step)
			if arrived {
				payload := p.Payload
				w.Kill(e)
				s.statHits.Add(1)
				Execute(w, payload, ActionContext{Source: e, Team: team, Point: p.Dest})
			}
			continue
		}

		if !w.Alive(p.Target) {
			w.Kill(e)
			s.statMisses.Add(1)
			continue
		}

		p.Offset, _ = p.Offset.MoveToward(core.Point{}, step)
		tp, _ := w.Positions.Get(p.Target)
		*pos = tp.Add(p.Offset)

		if p.Offset.Len() <= parameter.ProjectileArrivalEpsilon {
			payload, target := p.Payload, p.Target
			w.Kill(e)
			s.statHits.Add(1)
			Execute(w, payload, ActionContext{Source: e, Team: team, Target: target, Point: tp})
		}
	}
}
