package system

import (
	"github.com/trickybestia/cocsim/component"
	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/engine"
	"github.com/trickybestia/cocsim/parameter"
)

// CleanupSystem removes entities marked dead during the tick
// Destroyed buildings keep their footprint as rubble and lose everything combat related
type CleanupSystem struct {
	world *engine.World

	doomed []core.Entity
}

// NewCleanupSystem creates the cleanup step
func NewCleanupSystem(world *engine.World) engine.System {
	return &CleanupSystem{world: world}
}

func (s *CleanupSystem) Name() string  { return "cleanup" }
func (s *CleanupSystem) Priority() int { return parameter.PriorityCleanup }

func (s *CleanupSystem) Update() {
	w := s.world
	s.doomed = s.doomed[:0]

	for _, e := range w.Dead.All() {
		if !w.Buildings.Has(e) {
			s.doomed = append(s.doomed, e)
			continue
		}
		w.Healths.Remove(e)
		w.Targets.Remove(e)
		w.Attackers.Remove(e)
		w.ClanCastles.Remove(e)
		w.OnDespawn.Remove(e)
		w.Dead.Remove(e)
		if v := w.Visuals.Ptr(e); v != nil {
			v.Color = core.RGBRubble
			v.Kind = component.VisualRect
		}
	}

	w.DestroyBatch(s.doomed)
}
