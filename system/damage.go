package system

import (
	"sync/atomic"

	"github.com/trickybestia/cocsim/engine"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/vmath"
)

// DamageSystem applies damage queued during the previous tick
type DamageSystem struct {
	world *engine.World

	statEvents *atomic.Int64
}

// NewDamageSystem creates the damage step
func NewDamageSystem(world *engine.World) engine.System {
	return &DamageSystem{
		world:      world,
		statEvents: world.Resources.Status.Ints.Get("damage.events"),
	}
}

func (s *DamageSystem) Name() string  { return "damage" }
func (s *DamageSystem) Priority() int { return parameter.PriorityDamage }

func (s *DamageSystem) Update() {
	s.statEvents.Add(int64(applyDamage(s.world)))
}

// applyDamage drains the damage queue in order, clamping health to [0, Max]
// Events against removed or already dead entities are dropped
func applyDamage(w *engine.World) int {
	events := w.Resources.Damage.Drain()
	for _, ev := range events {
		if w.Dead.Has(ev.Target) {
			continue
		}
		h := w.Healths.Ptr(ev.Target)
		if h == nil {
			continue
		}
		h.Current = vmath.Clamp(h.Current-ev.Amount, 0, h.Max)
	}
	return len(events)
}
