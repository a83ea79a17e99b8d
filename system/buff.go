package system

import (
	"github.com/trickybestia/cocsim/engine"
	"github.com/trickybestia/cocsim/parameter"
)

// BuffSystem resets multipliers to baseline and reapplies live modifiers
type BuffSystem struct {
	world *engine.World
}

// NewBuffSystem creates the buff step
func NewBuffSystem(world *engine.World) engine.System {
	return &BuffSystem{world: world}
}

func (s *BuffSystem) Name() string  { return "buff" }
func (s *BuffSystem) Priority() int { return parameter.PriorityBuff }

func (s *BuffSystem) Update() {
	w := s.world
	dt := w.Resources.Time.Delta
	for _, e := range w.Query().With(w.Buffs).Execute() {
		b := w.Buffs.Ptr(e)
		b.SpeedMul, b.DamageMul = 1, 1
		if b.Speed.Active() {
			b.SpeedMul = b.Speed.Amount
			b.Speed.Remaining -= dt
		}
		if b.Damage.Active() {
			b.DamageMul = b.Damage.Amount
			b.Damage.Remaining -= dt
		}
	}
}
