package system

import (
	"sync/atomic"

	"github.com/trickybestia/cocsim/engine"
	"github.com/trickybestia/cocsim/grid"
	"github.com/trickybestia/cocsim/parameter"
)

// GridSystem rebuilds drop-zone and collision grids after structural changes
// Walking ground units are sent to retarget so they can use newly opened routes
type GridSystem struct {
	world *engine.World

	footprints []grid.Footprint

	statRebuilds *atomic.Int64
}

// NewGridSystem creates the grid step
func NewGridSystem(world *engine.World) engine.System {
	return &GridSystem{
		world:        world,
		statRebuilds: world.Resources.Status.Ints.Get("grid.rebuilds"),
	}
}

func (s *GridSystem) Name() string  { return "grid" }
func (s *GridSystem) Priority() int { return parameter.PriorityGrid }

func (s *GridSystem) Update() {
	w := s.world
	grids := w.Resources.Grids
	if !grids.Dirty {
		return
	}

	s.footprints = Footprints(w, s.footprints[:0])
	grids.Rebuild(s.footprints)
	s.statRebuilds.Add(1)

	for _, e := range w.Query().With(w.Movers).With(w.Attackers).Without(w.Dead).Execute() {
		m := w.Movers.Ptr(e)
		if m.Air || !m.Walking() {
			continue
		}
		w.Attackers.Ptr(e).Retarget = true
	}
}

// Footprints appends the grid footprint of every standing building to dst
func Footprints(w *engine.World, dst []grid.Footprint) []grid.Footprint {
	for _, e := range w.Query().With(w.Buildings).Execute() {
		b, _ := w.Buildings.Get(e)
		if b.Destroyed {
			continue
		}
		dst = append(dst, grid.Footprint{
			Entity:          e,
			Area:            b.Area(),
			AffectsDropZone: b.AffectsDropZone,
			Blocks:          b.Blocks,
			Wall:            b.Wall,
		})
	}
	return dst
}
