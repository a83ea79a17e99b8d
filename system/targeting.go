package system

import (
	"math"
	"sync/atomic"

	"github.com/trickybestia/cocsim/collider"
	"github.com/trickybestia/cocsim/component"
	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/engine"
	"github.com/trickybestia/cocsim/navigation"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/vmath"
)

// candidate is a snapshot of one attackable entity for the current targeting pass
type candidate struct {
	entity core.Entity
	team   core.Team
	pos    core.Point
	shape  collider.Collider
	flags  component.Flags
}

// TargetingSystem acquires and validates attacker targets
// A change of target restarts the attacker's cooldown; re-routing to the same target keeps it
type TargetingSystem struct {
	world *engine.World

	candidates []candidate
	field      *navigation.FlowField

	statRetargets *atomic.Int64
	statPaths     *atomic.Int64
}

// NewTargetingSystem creates the targeting step
func NewTargetingSystem(world *engine.World) engine.System {
	return &TargetingSystem{
		world:         world,
		statRetargets: world.Resources.Status.Ints.Get("targeting.retargets"),
		statPaths:     world.Resources.Status.Ints.Get("targeting.paths"),
	}
}

func (s *TargetingSystem) Name() string  { return "targeting" }
func (s *TargetingSystem) Priority() int { return parameter.PriorityTargeting }

func (s *TargetingSystem) Update() {
	w := s.world
	s.collect()

	for _, e := range w.Query().With(w.Attackers).With(w.Positions).Without(w.Dead).Execute() {
		a := w.Attackers.Ptr(e)
		if !s.needsRetarget(e, a) {
			continue
		}
		prev, remaining := a.Target, a.Remaining
		a.Reset()
		a.Target = s.find(e, a)
		if a.Target != core.NoEntity && a.Target == prev {
			a.Remaining = remaining
		}
		s.statRetargets.Add(1)
	}
}

// collect snapshots every living attackable entity in spawn order
func (s *TargetingSystem) collect() {
	w := s.world
	s.candidates = s.candidates[:0]
	for _, e := range w.Query().With(w.Targets).With(w.Positions).With(w.Teams).Without(w.Dead).Execute() {
		if !w.Alive(e) {
			continue
		}
		tgt, _ := w.Targets.Get(e)
		pos, _ := w.Positions.Get(e)
		team, _ := w.Teams.Get(e)
		s.candidates = append(s.candidates, candidate{
			entity: e,
			team:   team,
			pos:    pos,
			shape:  tgt.At(pos),
			flags:  tgt.Flags,
		})
	}
}

func (s *TargetingSystem) needsRetarget(e core.Entity, a *component.Attacker) bool {
	w := s.world
	if a.Retarget || !w.Alive(a.Target) {
		return true
	}

	pos, _ := w.Positions.Get(e)
	tgt, _ := w.Targets.Get(a.Target)
	tp, _ := w.Positions.Get(a.Target)
	shape := tgt.At(tp)

	switch a.Finder {
	case component.FinderBuilding:
		if collider.Distance(shape, pos) < a.MinRange || !inReach(shape, pos, a.MaxRange) {
			return true
		}
		return a.Arc != nil && !vmath.AngleInArc(tp.Sub(pos).Angle(), a.Arc.Facing, a.Arc.HalfWidth)

	case component.FinderHunter:
		if tp.Dist(a.Anchor) > parameter.PathDriftTolerance {
			m := w.Movers.Ptr(e)
			if m == nil || !m.Arrived || !inReach(shape, pos, a.MaxRange) {
				return true
			}
			// Still in reach, no need for a new route
			a.Anchor = tp
		}
	}

	if m := w.Movers.Ptr(e); m != nil && m.Arrived && m.Stun <= 0 {
		return !inReach(shape, pos, a.MaxRange+vmath.Epsilon*10)
	}
	return false
}

func (s *TargetingSystem) find(e core.Entity, a *component.Attacker) core.Entity {
	switch a.Finder {
	case component.FinderBuilding:
		return s.findForBuilding(e, a)
	case component.FinderAir:
		return s.findForAir(e, a)
	case component.FinderGround:
		return s.findForGround(e, a)
	case component.FinderHunter:
		return s.findForHunter(e, a)
	}
	panic("system: unhandled finder")
}

// findForBuilding picks the nearest enemy in [min, max] range and inside the facing arc
func (s *TargetingSystem) findForBuilding(e core.Entity, a *component.Attacker) core.Entity {
	pos, _ := s.world.Positions.Get(e)
	team, _ := s.world.Teams.Get(e)

	best, bestDist := core.NoEntity, math.Inf(1)
	for i := range s.candidates {
		c := &s.candidates[i]
		if c.team == team || !c.flags.Any(a.Hits) {
			continue
		}
		d := collider.Distance(c.shape, pos)
		if d < a.MinRange || !inReach(c.shape, pos, a.MaxRange) {
			continue
		}
		if a.Arc != nil && !vmath.AngleInArc(c.pos.Sub(pos).Angle(), a.Arc.Facing, a.Arc.HalfWidth) {
			continue
		}
		if d < bestDist {
			best, bestDist = c.entity, d
		}
	}
	return best
}

// findForAir picks the best building by preference then distance and flies next to it
func (s *TargetingSystem) findForAir(e core.Entity, a *component.Attacker) core.Entity {
	w := s.world
	pos, _ := w.Positions.Get(e)
	team, _ := w.Teams.Get(e)

	best := -1
	bestRank, bestDist := math.MaxInt, math.Inf(1)
	for i := range s.candidates {
		c := &s.candidates[i]
		if c.team == team {
			continue
		}
		rank, ok := rankBuilding(a.Preference, c.flags)
		if !ok {
			continue
		}
		d := collider.Distance(c.shape, pos)
		if better(rank, d, bestRank, bestDist) {
			best, bestRank, bestDist = i, rank, d
		}
	}
	if best < 0 {
		w.Movers.MustPtr(e).Stop()
		return core.NoEntity
	}

	c := &s.candidates[best]
	s.flyTo(e, a, c)
	return c.entity
}

// findForHunter picks the nearest enemy unit it can hit
func (s *TargetingSystem) findForHunter(e core.Entity, a *component.Attacker) core.Entity {
	w := s.world
	pos, _ := w.Positions.Get(e)
	team, _ := w.Teams.Get(e)
	m := w.Movers.MustPtr(e)

	best, bestDist := -1, math.Inf(1)
	for i := range s.candidates {
		c := &s.candidates[i]
		if c.team == team || !c.flags.Has(component.FlagUnit) || !c.flags.Any(a.Hits) {
			continue
		}
		if d := collider.Distance(c.shape, pos); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		m.Stop()
		return core.NoEntity
	}

	c := &s.candidates[best]
	a.Anchor = c.pos
	if m.Air {
		s.flyTo(e, a, c)
		return c.entity
	}
	if !s.walkTo(e, a, []int{best}, nil) {
		s.flyTo(e, a, c)
	}
	return c.entity
}

// findForGround picks the building with the best preference rank and cheapest path
// When the path runs through a wall, the wall becomes the target
func (s *TargetingSystem) findForGround(e core.Entity, a *component.Attacker) core.Entity {
	w := s.world
	team, _ := w.Teams.Get(e)

	var idx, ranks []int
	for i := range s.candidates {
		c := &s.candidates[i]
		if c.team == team {
			continue
		}
		if rank, ok := rankBuilding(a.Preference, c.flags); ok {
			idx = append(idx, i)
			ranks = append(ranks, rank)
		}
	}
	if len(idx) == 0 {
		w.Movers.MustPtr(e).Stop()
		return core.NoEntity
	}

	if !s.walkTo(e, a, idx, ranks) {
		// Nothing reachable on the grid, walk straight to the nearest
		pos, _ := w.Positions.Get(e)
		best, bestRank, bestDist := -1, math.MaxInt, math.Inf(1)
		for j, i := range idx {
			if d := collider.Distance(s.candidates[i].shape, pos); better(ranks[j], d, bestRank, bestDist) {
				best, bestRank, bestDist = i, ranks[j], d
			}
		}
		s.flyTo(e, a, &s.candidates[best])
		return s.candidates[best].entity
	}
	return a.Target
}

// flyTo routes the mover straight to a point of the target's attack area near the attacker
func (s *TargetingSystem) flyTo(e core.Entity, a *component.Attacker, c *candidate) {
	w := s.world
	pos, _ := w.Positions.Get(e)
	area := c.shape.AttackArea(a.MaxRange)

	p := area.RandomNearPoint(pos, w.Resources.Rng)
	w.Movers.MustPtr(e).Walk(fitInRange(c.shape, p, a.MaxRange))
}

// walkTo searches the collision grid from the attacker and walks to the cheapest
// reachable candidate among idx; ranks, when given, dominate path cost
// Sets a.Target and returns false when no candidate is reachable
func (s *TargetingSystem) walkTo(e core.Entity, a *component.Attacker, idx, ranks []int) bool {
	w := s.world
	col := w.Resources.Grids.Collision
	if s.field == nil || s.field.Width != col.Size() {
		s.field = navigation.NewFlowField(col.Size(), col.Size())
	}

	pos, _ := w.Positions.Get(e)
	sx, sy := col.Cell(pos)
	s.field.Compute(sx, sy, func(x, y int) (int, bool) {
		if _, wall := col.Wall(x, y); wall {
			return parameter.PathCostWall, true
		}
		return 0, !col.Blocked(x, y)
	})
	s.statPaths.Add(1)

	best, bestRank, bestDist := -1, math.MaxInt, navigation.Unreachable
	var goalX, goalY int
	for j, i := range idx {
		c := &s.candidates[i]
		rank := 0
		if ranks != nil {
			rank = ranks[j]
		}
		if rank > bestRank {
			continue
		}

		area := c.shape.AttackArea(a.MaxRange)
		lo, hi := area.Bounds()
		x0, y0, x1, y1 := col.Bounds(lo, hi)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if col.Blocked(x, y) && !(x == sx && y == sy) {
					continue
				}
				center := col.Center(x, y)
				if !inReach(c.shape, center, a.MaxRange) {
					continue
				}
				d := s.field.Distance(x, y)
				if d >= navigation.Unreachable {
					continue
				}
				if better(rank, float64(d), bestRank, float64(bestDist)) {
					best, bestRank, bestDist = i, rank, d
					goalX, goalY = x, y
				}
			}
		}
	}
	if best < 0 {
		return false
	}

	path := s.field.Trace(goalX, goalY)
	a.Target = s.candidates[best].entity

	// Stop in front of the first wall on the way unless the wall is the goal
	for k := 1; k < len(path); k++ {
		wall, isWall := col.Wall(path[k][0], path[k][1])
		if !isWall || wall == a.Target {
			continue
		}
		if w.Alive(wall) {
			a.Target = wall
			path = path[:k]
		}
		break
	}

	points := make([]core.Point, 0, len(path))
	for k := 1; k < len(path); k++ {
		// Keep turning points only
		if k+1 < len(path) && sameStep(path[k-1], path[k], path[k+1]) {
			continue
		}
		points = append(points, col.Center(path[k][0], path[k][1]))
	}
	if len(points) == 0 {
		points = append(points, col.Center(path[0][0], path[0][1]))
	}
	w.Movers.MustPtr(e).Walk(points...)
	return true
}

// rankBuilding orders buildings for a preference; lower rank wins regardless of distance
func rankBuilding(p component.Preference, f component.Flags) (int, bool) {
	if !f.Has(component.FlagBuilding) {
		return 0, false
	}

	var preferred component.Flags
	switch p {
	case component.PreferActive:
		preferred = component.FlagActive
	case component.PreferResource:
		preferred = component.FlagResource
	case component.PreferWall:
		preferred = component.FlagWall
	}
	if preferred != 0 && f.Has(preferred) {
		return 0, true
	}
	if !f.Has(component.FlagCounted) {
		return 0, false
	}
	if preferred == 0 {
		return 0, true
	}
	return 1, true
}

// inReach reports whether an attacker at pos with reach r can hit shape
// Reach grows the shape on every side, so rectangles keep square corners
func inReach(shape collider.Collider, pos core.Point, r float64) bool {
	return shape.AttackArea(r).Contains(pos)
}

func better(rank int, dist float64, bestRank int, bestDist float64) bool {
	if rank != bestRank {
		return rank < bestRank
	}
	return dist < bestDist
}

func sameStep(a, b, c [2]int) bool {
	return b[0]-a[0] == c[0]-b[0] && b[1]-a[1] == c[1]-b[1]
}

// fitInRange pulls p toward shape until it is within reach
func fitInRange(shape collider.Collider, p core.Point, reach float64) core.Point {
	near := shape.NearestPoint(p)
	d := near.Dist(p)
	limit := reach * 0.99
	if d <= limit {
		return p
	}
	return near.Add(p.Sub(near).Scale(limit / d))
}
