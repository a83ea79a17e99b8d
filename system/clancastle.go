package system

import (
	"sync/atomic"

	"github.com/trickybestia/cocsim/catalog"
	"github.com/trickybestia/cocsim/component"
	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/engine"
	"github.com/trickybestia/cocsim/parameter"
)

// ClanCastleSystem releases reserve troops while enemies are near the castle
// One troop leaves per cooldown, preferring one that can hit the enemies present
type ClanCastleSystem struct {
	world *engine.World

	statDeployed *atomic.Int64
}

// NewClanCastleSystem creates the clan castle step
func NewClanCastleSystem(world *engine.World) engine.System {
	return &ClanCastleSystem{
		world:        world,
		statDeployed: world.Resources.Status.Ints.Get("clancastle.deployed"),
	}
}

func (s *ClanCastleSystem) Name() string  { return "clancastle" }
func (s *ClanCastleSystem) Priority() int { return parameter.PriorityClanCastle }

func (s *ClanCastleSystem) Update() {
	w := s.world
	dt := w.Resources.Time.Delta

	for _, e := range w.Query().With(w.ClanCastles).With(w.Positions).Without(w.Dead).Execute() {
		if len(w.ClanCastles.Ptr(e).Reserve) == 0 {
			continue
		}
		team, _ := w.Teams.Get(e)
		pos, _ := w.Positions.Get(e)

		nearest, present := s.scan(team, pos, w.ClanCastles.Ptr(e).Radius)
		if nearest == nil {
			continue
		}

		cc := w.ClanCastles.Ptr(e)
		cc.Remaining -= dt
		if cc.Remaining > 0 {
			continue
		}
		cc.Remaining = cc.Cooldown

		pick := 0
		for i, t := range cc.Reserve {
			if t.Hits.Any(present) {
				pick = i
				break
			}
		}
		troop := cc.Reserve[pick]
		cc.Reserve = append(cc.Reserve[:pick], cc.Reserve[pick+1:]...)

		spawn := pos
		if tgt, ok := w.Targets.Get(e); ok {
			spawn = tgt.At(pos).NearestPoint(*nearest)
		}
		catalog.SpawnUnit(w, catalog.UnitKind(troop.Kind), troop.Level, spawn, team)
		s.statDeployed.Add(1)
	}
}

// scan returns the nearest enemy unit position within radius and the union of enemy flags present
func (s *ClanCastleSystem) scan(team core.Team, pos core.Point, radius float64) (*core.Point, component.Flags) {
	w := s.world
	var (
		nearest *core.Point
		best    = radius
		present component.Flags
	)
	for _, u := range w.Query().With(w.Movers).With(w.Targets).With(w.Positions).Without(w.Dead).Execute() {
		if ut, _ := w.Teams.Get(u); ut == team || !w.Alive(u) {
			continue
		}
		up, _ := w.Positions.Get(u)
		d := up.Dist(pos)
		if d > radius {
			continue
		}
		tgt, _ := w.Targets.Get(u)
		present |= tgt.Flags
		if nearest == nil || d < best {
			p := up
			nearest, best = &p, d
		}
	}
	return nearest, present
}
