// Package game runs one attack against one base and keeps score
package game

import (
	"fmt"
	"sync/atomic"

	"github.com/trickybestia/cocsim/catalog"
	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/engine"
	"github.com/trickybestia/cocsim/grid"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/status"
	"github.com/trickybestia/cocsim/system"
	"github.com/trickybestia/cocsim/vmath"
)

// Deployer injects attacking units and spells as the attack progresses
// Deploy runs at the start of every tick, before any system
type Deployer interface {
	Deploy(g *Game)
}

// Result is the outcome of a finished or interrupted attack
type Result struct {
	Time       float64 `json:"time" msgpack:"time"`
	Percentage float64 `json:"percentage" msgpack:"percentage"`
	Stars      int     `json:"stars" msgpack:"stars"`
}

// Game is a running attack
// A Game is not safe for concurrent use; independent games share nothing but the status registry
type Game struct {
	world    *engine.World
	deployer Deployer

	mapSize    int
	baseSize   int
	borderSize int

	townHall core.Entity
	counted  []core.Entity

	destroyed int
	stars     int
	done      bool

	gridVersion int

	statTicks    *atomic.Int64
	statFinished *atomic.Int64
}

// New validates m and builds a game seeded with seed
// reg may be nil; shared registries aggregate counters across games
func New(m *Map, seed uint64, reg *status.Registry) (*Game, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	res := engine.NewResources(m.Size(), seed, reg)
	w := engine.NewWorld(res)
	system.Register(w)

	g := &Game{
		world:        w,
		mapSize:      m.Size(),
		baseSize:     m.BaseSize,
		borderSize:   m.BorderSize,
		gridVersion:  -1,
		statTicks:    res.Status.Ints.Get("game.ticks"),
		statFinished: res.Status.Ints.Get("game.finished"),
	}

	for _, b := range m.Buildings {
		e := catalog.SpawnBuilding(w, b.Kind, b.Level, b.X, b.Y, catalog.BuildingOptions{
			Facing:  b.Facing,
			Reserve: troops(b.Reserve),
		})
		if b.Kind == catalog.TownHall {
			g.townHall = e
		}
		if b.Kind.Counted() {
			g.counted = append(g.counted, e)
		}
	}

	// Deployers place units before the first grid pass
	res.Grids.Rebuild(system.Footprints(w, nil))
	return g, nil
}

// SetDeployer installs the source of attacking units
func (g *Game) SetDeployer(d Deployer) { g.deployer = d }

// World exposes the entity world
func (g *Game) World() *engine.World { return g.world }

// DropZone returns the current drop zone
func (g *Game) DropZone() *grid.DropZone { return g.world.Resources.Grids.DropZone }

// MapSize returns the map edge in tiles, border included
func (g *Game) MapSize() int { return g.mapSize }

// BaseSize returns the edge of the buildable square
func (g *Game) BaseSize() int { return g.baseSize }

// BorderSize returns the width of the open border
func (g *Game) BorderSize() int { return g.borderSize }

// Elapsed returns simulated seconds
func (g *Game) Elapsed() float64 { return g.world.Resources.Time.Elapsed }

// Done reports whether the attack is over
func (g *Game) Done() bool { return g.done }

// Stars returns the star count, which never decreases during a game
func (g *Game) Stars() int { return g.stars }

// TownHallDestroyed reports whether the town hall is down
func (g *Game) TownHallDestroyed() bool {
	b, _ := g.world.Buildings.Get(g.townHall)
	return b.Destroyed
}

// Percentage returns the share of counted buildings destroyed, 0 to 100
func (g *Game) Percentage() float64 {
	if len(g.counted) == 0 {
		return 0
	}
	return 100 * float64(g.destroyed) / float64(len(g.counted))
}

// Result snapshots the current score
func (g *Game) Result() Result {
	return Result{Time: g.Elapsed(), Percentage: g.Percentage(), Stars: g.stars}
}

// Progress formats the score line shown to viewers
func (g *Game) Progress() string {
	left := int(parameter.MaxAttackDuration - g.Elapsed())
	return fmt.Sprintf("%d%% | %d star | %d min %d s left", int(g.Percentage()), g.stars, left/60, left%60)
}

// SpawnUnit drops an attacking unit at pos
func (g *Game) SpawnUnit(kind catalog.UnitKind, level int, pos core.Point) core.Entity {
	return catalog.SpawnUnit(g.world, kind, level, pos, core.TeamAttack)
}

// SpawnSpell casts an attacking spell at pos
func (g *Game) SpawnSpell(kind catalog.SpellKind, level int, pos core.Point) core.Entity {
	return catalog.SpawnSpell(g.world, kind, level, pos, core.TeamAttack)
}

// Tick advances the attack by dt seconds
// Panics when the game is already done
func (g *Game) Tick(dt float64) {
	if g.done {
		panic("game: tick after done")
	}

	if g.deployer != nil {
		g.deployer.Deploy(g)
	}

	t := &g.world.Resources.Time
	t.Delta = dt
	g.world.Update()
	g.score()

	t.Elapsed += dt
	if t.Elapsed >= parameter.MaxAttackDuration-vmath.Epsilon {
		t.Elapsed = parameter.MaxAttackDuration
	}
	t.Tick++
	g.statTicks.Add(1)

	if t.Elapsed >= parameter.MaxAttackDuration || g.stars == 3 {
		g.done = true
		g.statFinished.Add(1)
	}
}

// Run ticks until done and returns the result
func (g *Game) Run() Result {
	for !g.done {
		g.Tick(parameter.DeltaTime)
	}
	return g.Result()
}

func (g *Game) score() {
	w := g.world
	g.destroyed = 0
	for _, e := range g.counted {
		if b, _ := w.Buildings.Get(e); b.Destroyed {
			g.destroyed++
		}
	}

	stars := 0
	if g.TownHallDestroyed() {
		stars++
	}
	if 2*g.destroyed >= len(g.counted) {
		stars++
	}
	if g.destroyed == len(g.counted) {
		stars++
	}
	g.stars = max(g.stars, stars)
}
