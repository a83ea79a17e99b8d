package plan

import (
	"math"
	"reflect"
	"testing"

	"github.com/trickybestia/cocsim/catalog"
	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/game"
	"github.com/trickybestia/cocsim/grid"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/vmath"
)

const tolerance = 1e-9

func testMap() *game.Map {
	return &game.Map{
		BaseSize:   10,
		BorderSize: 2,
		Buildings:  []game.BuildingSpec{{Kind: catalog.TownHall, X: 5, Y: 5}},
	}
}

func testArmy() *game.Army {
	return &game.Army{
		Units: []game.UnitSlot{
			{Kind: catalog.Barbarian, Count: 5},
			{Kind: catalog.Archer, Level: 1, Count: 3},
		},
		Spells: []game.SpellSlot{{Kind: catalog.Lightning, Count: 2}},
	}
}

// zone returns a 20x20 drop zone with one blocked building area
func zone(area core.Area) *grid.DropZone {
	g := grid.New(20)
	g.Rebuild([]grid.Footprint{{Area: area, AffectsDropZone: true}})
	return g.DropZone
}

func near(a, b float64) bool { return math.Abs(a-b) < tolerance }

func TestScheduleOrderAndSpacing(t *testing.T) {
	p := AttackPlan{
		Units: []UnitGroup{
			{Kind: catalog.Giant, Count: 2, DropTime: 5},
			{Kind: catalog.Barbarian, Count: 3, DropTime: 1},
		},
		Spells: []SpellGroup{{Kind: catalog.Rage, Count: 2, X: 10, Y: 10, DropTime: 1}},
	}
	events := Schedule(p, grid.New(20).DropZone)

	want := []struct {
		time  float64
		spell bool
	}{
		{1, false}, {1.1, false}, {1.2, false},
		{1.7, true}, {1.9, true},
		{5, false}, {5.1, false},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, w := range want {
		if !near(events[i].Time, w.time) || events[i].Spell != w.spell {
			t.Errorf("event %d = (%.3f, spell %v), want (%.3f, spell %v)", i, events[i].Time, events[i].Spell, w.time, w.spell)
		}
		if i > 0 && events[i].Time < events[i-1].Time {
			t.Errorf("schedule decreases at %d", i)
		}
	}
	if events[0].Unit != catalog.Barbarian || events[5].Unit != catalog.Giant {
		t.Error("groups not ordered by drop time")
	}
}

func TestScheduleClampsQueueJump(t *testing.T) {
	p := AttackPlan{Units: []UnitGroup{
		{Kind: catalog.Barbarian, Count: 10, DropTime: 0},
		{Kind: catalog.Archer, Count: 1, DropTime: 0.2},
	}}
	events := Schedule(p, grid.New(20).DropZone)
	last := events[len(events)-1]
	if want := 0.9 + parameter.GroupDropCooldown; !near(last.Time, want) {
		t.Errorf("second group starts at %.3f, want %.3f", last.Time, want)
	}
}

func TestLandingOnDropZoneEdge(t *testing.T) {
	dz := zone(core.Area{X: 8, Y: 8, Width: 4, Height: 4})

	p := Landing(dz, 0, 0.5)
	if !dz.DroppableAt(p) {
		t.Fatalf("landing %v is not droppable", p)
	}
	if !near(p.X, 13+parameter.DropEdgeInset) || !near(p.Y, 10.5) {
		t.Errorf("Landing = %v, want (%.2f, 10.5)", p, 13+parameter.DropEdgeInset)
	}

	// distance is clamped away from the tile corners
	if p := Landing(dz, 0, 1); !near(p.Y, 10+parameter.DropEdgeMaxFraction) {
		t.Errorf("Landing with distance 1 = %v", p)
	}
}

func TestLandingFallsBackToOppositeRay(t *testing.T) {
	dz := zone(core.Area{X: 2, Y: 8, Width: 4, Height: 4})

	p := Landing(dz, 0, 0.5)
	if !near(p.X, 1-parameter.DropEdgeInset) || !near(p.Y, 10.5) {
		t.Errorf("Landing = %v, want the edge of the opposite ray", p)
	}
}

func TestLandingOpenZoneUsesBorder(t *testing.T) {
	dz := grid.New(20).DropZone
	p := Landing(dz, 0, 0.5)
	if !near(p.X, 20-parameter.DropEdgeInset) || !near(p.Y, 10) {
		t.Errorf("Landing = %v, want the border point", p)
	}
	for a := 0.0; a < vmath.TwoPi; a += 0.3 {
		if p := Landing(dz, a, 0.5); !dz.DroppableAt(p) {
			t.Errorf("angle %.1f: landing %v not droppable", a, p)
		}
	}
}

func TestLandingCornerPocket(t *testing.T) {
	// Only the far corners stay droppable, so some rays cross no edge in either direction
	m := &game.Map{
		BaseSize:   6,
		BorderSize: 1,
		Buildings: []game.BuildingSpec{
			{Kind: catalog.TownHall, X: 1, Y: 1},
			{Kind: catalog.BuilderHut, X: 5, Y: 1},
			{Kind: catalog.BuilderHut, X: 1, Y: 5},
		},
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	g := grid.New(m.Size())
	var fps []grid.Footprint
	for _, b := range m.Buildings {
		fps = append(fps, grid.Footprint{Area: b.Area(), AffectsDropZone: true})
	}
	g.Rebuild(fps)

	for a := 0.0; a < vmath.TwoPi; a += math.Pi / 16 {
		if p := Landing(g.DropZone, a, 0.5); !g.DropZone.DroppableAt(p) {
			t.Errorf("angle %.3f: landing %v not droppable", a, p)
		}
	}
	if p := Landing(g.DropZone, 3*math.Pi/4, 0.5); !g.DropZone.DroppableAt(p) {
		t.Errorf("diagonal landing %v not droppable", p)
	}
}

func TestRandomDeterministic(t *testing.T) {
	template := FromArmy(testArmy())
	a := Random(template, testMap(), vmath.NewRand(11))
	b := Random(template, testMap(), vmath.NewRand(11))
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different plans")
	}

	lo, hi := spellRange(testMap())
	for _, g := range a.Units {
		if g.Angle < 0 || g.Angle >= vmath.TwoPi || g.Distance < 0 || g.Distance > 1 || g.DropTime > parameter.MaxDropTime {
			t.Errorf("unit group out of range: %+v", g)
		}
	}
	for _, g := range a.Spells {
		if g.X < lo || g.X > hi || g.Y < lo || g.Y > hi {
			t.Errorf("spell group outside the base: %+v", g)
		}
	}
	if got := a.Army(); !reflect.DeepEqual(got, *testArmy()) {
		t.Errorf("Army() = %+v, want the source army", got)
	}
}

func TestMutateZeroTemperature(t *testing.T) {
	m := testMap()
	p := Random(FromArmy(testArmy()), m, vmath.NewRand(5))
	if got := Mutate(p, m, vmath.NewRand(6), 0); !reflect.DeepEqual(got, p) {
		t.Errorf("Mutate at temperature 0 changed the plan:\n%+v\n%+v", got, p)
	}

	hot := Mutate(p, m, vmath.NewRand(6), 1)
	if reflect.DeepEqual(hot, p) {
		t.Error("Mutate at temperature 1 left the plan unchanged")
	}
	if hot.Units[0].Count != p.Units[0].Count || hot.Units[0].Kind != p.Units[0].Kind {
		t.Error("Mutate changed the army")
	}
}

func TestCrossoverTakesWholeGroups(t *testing.T) {
	m := testMap()
	template := FromArmy(testArmy())
	a := Random(template, m, vmath.NewRand(1))
	b := Random(template, m, vmath.NewRand(2))

	child := Crossover(a, b, vmath.NewRand(3))
	for i, g := range child.Units {
		if g != a.Units[i] && g != b.Units[i] {
			t.Errorf("unit group %d mixes parents: %+v", i, g)
		}
	}
	for i, g := range child.Spells {
		if g != a.Spells[i] && g != b.Spells[i] {
			t.Errorf("spell group %d mixes parents: %+v", i, g)
		}
	}
}

func TestVectorCodecRoundTrip(t *testing.T) {
	m := testMap()
	template := FromArmy(testArmy())
	codec := NewVectorCodec(template, m)
	if codec.Dim() != 3*(len(template.Units)+len(template.Spells)) {
		t.Fatalf("Dim() = %d", codec.Dim())
	}

	p := Random(template, m, vmath.NewRand(8))
	if got := codec.Decode(codec.Encode(p)); !reflect.DeepEqual(got, p) {
		t.Errorf("round trip changed the plan:\n%+v\n%+v", got, p)
	}

	v := codec.Encode(p)
	v[0], v[1], v[2] = 7, -3, 1000
	v[6] = math.NaN()
	q := codec.Decode(v)
	if !near(q.Units[0].Angle, 7-vmath.TwoPi) || q.Units[0].Distance != 0 || q.Units[0].DropTime != parameter.MaxDropTime {
		t.Errorf("Decode did not project the vector: %+v", q.Units[0])
	}
	if q.Spells[0].X != float64(m.BorderSize) {
		t.Errorf("NaN coordinate decoded to %v", q.Spells[0].X)
	}
}

func TestExecutorDeploysEverything(t *testing.T) {
	m := testMap()
	g, err := game.New(m, 1, nil)
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	p := AttackPlan{Units: []UnitGroup{{Kind: catalog.Barbarian, Count: 3, Angle: 1, Distance: 0.5}}}
	x := NewExecutor(p, g.DropZone())
	g.SetDeployer(x)

	if x.Remaining() != 3 {
		t.Fatalf("Remaining() = %d before the first tick", x.Remaining())
	}
	g.Tick(parameter.DeltaTime)
	if x.Remaining() != 2 {
		t.Errorf("Remaining() = %d after the first tick, want 2", x.Remaining())
	}
	for i := 0; i < 20; i++ {
		g.Tick(parameter.DeltaTime)
	}
	if x.Remaining() != 0 {
		t.Fatalf("Remaining() = %d after 21 ticks", x.Remaining())
	}

	w := g.World()
	if n := len(w.Query().With(w.Movers).Execute()); n != 3 {
		t.Errorf("%d units in the world, want 3", n)
	}
	for _, e := range x.Events() {
		if !g.DropZone().DroppableAt(e.Pos) {
			t.Errorf("unit scheduled outside the drop zone at %v", e.Pos)
		}
	}
}
