package system

import (
	"github.com/trickybestia/cocsim/engine"
	"github.com/trickybestia/cocsim/parameter"
)

// MovementSystem advances movers along their waypoints
type MovementSystem struct {
	world *engine.World
}

// NewMovementSystem creates the movement step
func NewMovementSystem(world *engine.World) engine.System {
	return &MovementSystem{world: world}
}

func (s *MovementSystem) Name() string  { return "movement" }
func (s *MovementSystem) Priority() int { return parameter.PriorityMovement }

func (s *MovementSystem) Update() {
	w := s.world
	dt := w.Resources.Time.Delta

	for _, e := range w.Query().With(w.Movers).With(w.Positions).Without(w.Dead).Execute() {
		m := w.Movers.Ptr(e)
		if m.Stun > 0 {
			m.Stun -= dt
			continue
		}
		if !m.Walking() {
			continue
		}

		speed := m.Speed
		if b, ok := w.Buffs.Get(e); ok && b.SpeedMul > 0 {
			speed *= b.SpeedMul
		}

		pos := w.Positions.Ptr(e)
		step := speed * dt
		for step > 0 {
			next, ok := m.Next()
			if !ok {
				break
			}
			d := pos.Dist(next)
			p, reached := pos.MoveToward(next, step)
			*pos = p
			if !reached {
				break
			}
			step -= d
			m.Pop()
		}
		m.Arrived = !m.Walking()
	}
}
