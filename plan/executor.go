package plan

import (
	"cmp"
	"slices"

	"github.com/trickybestia/cocsim/catalog"
	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/game"
	"github.com/trickybestia/cocsim/grid"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/vmath"
)

// Event is one spawn of a unit or spell
type Event struct {
	Time  float64
	Spell bool
	Unit  catalog.UnitKind
	Cast  catalog.SpellKind
	Level int
	Pos   core.Point
}

type scheduled struct {
	time  float64
	spell bool
	index int
	count int
	proto Event
}

// Schedule expands every group of p into single spawns ordered by time
// Groups deploy in order of requested drop time, units before spells on ties;
// a group never starts before the previous group's last drop plus the group cooldown
func Schedule(p AttackPlan, dz *grid.DropZone) []Event {
	groups := make([]scheduled, 0, len(p.Units)+len(p.Spells))
	for i, g := range p.Units {
		pos := Landing(dz, g.Angle, g.Distance)
		groups = append(groups, scheduled{time: g.DropTime, index: i, count: g.Count,
			proto: Event{Unit: g.Kind, Level: g.Level, Pos: pos}})
	}
	for i, g := range p.Spells {
		groups = append(groups, scheduled{time: g.DropTime, spell: true, index: i, count: g.Count,
			proto: Event{Spell: true, Cast: g.Kind, Level: g.Level, Pos: core.Pt(g.X, g.Y)}})
	}
	slices.SortStableFunc(groups, func(a, b scheduled) int {
		if c := cmp.Compare(a.time, b.time); c != 0 {
			return c
		}
		if a.spell != b.spell {
			if a.spell {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.index, b.index)
	})

	var out []Event
	next := 0.0
	for i, g := range groups {
		start := g.time
		if i > 0 {
			start = max(start, next)
		}
		cooldown := parameter.UnitDropCooldown
		if g.spell {
			cooldown = parameter.SpellDropCooldown
		}
		last := start
		for k := 0; k < g.count; k++ {
			e := g.proto
			e.Time = start + float64(k)*cooldown
			last = e.Time
			out = append(out, e)
		}
		next = last + parameter.GroupDropCooldown
	}
	return out
}

// Executor deploys a plan into a running game
// It implements game.Deployer
type Executor struct {
	events []Event
	next   int
}

// NewExecutor schedules p against the drop zone of a freshly built game
func NewExecutor(p AttackPlan, dz *grid.DropZone) *Executor {
	return &Executor{events: Schedule(p, dz)}
}

// Deploy spawns every pending event whose time has come
func (x *Executor) Deploy(g *game.Game) {
	now := g.Elapsed() + vmath.Epsilon
	for x.next < len(x.events) && x.events[x.next].Time <= now {
		e := x.events[x.next]
		if e.Spell {
			g.SpawnSpell(e.Cast, e.Level, e.Pos)
		} else {
			g.SpawnUnit(e.Unit, e.Level, e.Pos)
		}
		x.next++
	}
}

// Events returns the full schedule
func (x *Executor) Events() []Event { return x.events }

// Remaining returns the number of spawns not yet deployed
func (x *Executor) Remaining() int { return len(x.events) - x.next }

var _ game.Deployer = (*Executor)(nil)
