package system

import (
	"math"
	"testing"

	"github.com/trickybestia/cocsim/catalog"
	"github.com/trickybestia/cocsim/collider"
	"github.com/trickybestia/cocsim/component"
	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/engine"
	"github.com/trickybestia/cocsim/parameter"
)

func newTestWorld(size int) *engine.World {
	w := engine.NewWorld(engine.NewResources(size, 7, nil))
	Register(w)
	return w
}

// step advances the world by n ticks the way the game loop does
func step(w *engine.World, n int) {
	for i := 0; i < n; i++ {
		w.Resources.Time.Delta = parameter.DeltaTime
		w.Update()
		w.Resources.Time.Elapsed += parameter.DeltaTime
		w.Resources.Time.Tick++
	}
}

func destroyed(w *engine.World, e core.Entity) bool {
	b, ok := w.Buildings.Get(e)
	return ok && b.Destroyed
}

func TestRegisterOrder(t *testing.T) {
	w := newTestWorld(10)
	want := []string{
		"buff", "damage", "death", "grid", "targeting", "movement",
		"projectile", "attack", "trap", "clancastle", "spell", "cleanup",
	}
	got := w.Systems()
	if len(got) != len(want) {
		t.Fatalf("%d systems, want %d", len(got), len(want))
	}
	for i, s := range got {
		if s.Name() != want[i] {
			t.Errorf("system %d = %s, want %s", i, s.Name(), want[i])
		}
	}
}

func TestLightningLandsOneTickAfterDelay(t *testing.T) {
	w := newTestWorld(24)
	hut := catalog.SpawnBuilding(w, catalog.BuilderHut, 0, 10, 10, catalog.BuildingOptions{})
	th := catalog.SpawnBuilding(w, catalog.TownHall, 0, 13, 10, catalog.BuildingOptions{})
	thHealth := w.Healths.Ptr(th).Current

	catalog.SpawnSpell(w, catalog.Lightning, 5, core.Pt(11, 11), core.TeamAttack)

	delay := parameter.SpellTravelDelay / parameter.DeltaTime
	delayTicks := int(math.Round(delay))
	step(w, delayTicks)
	if destroyed(w, hut) {
		t.Fatal("hut destroyed before the damage step following the delay")
	}
	if h := w.Healths.Ptr(hut); h == nil || h.Current != h.Max {
		t.Fatalf("hut health changed early: %+v", h)
	}

	step(w, 1)
	if !destroyed(w, hut) {
		t.Fatal("hut should be destroyed one tick after the delay")
	}
	if w.Healths.Has(hut) {
		t.Error("destroyed building should lose its health at cleanup")
	}
	if !w.Positions.Has(hut) || !w.Visuals.Has(hut) {
		t.Error("destroyed building should stay as rubble")
	}
	if got := w.Healths.Ptr(th).Current; got != thHealth {
		t.Errorf("town hall health = %v, want %v", got, thHealth)
	}
}

func TestBarbarianDestroysBuilding(t *testing.T) {
	w := newTestWorld(20)
	hut := catalog.SpawnBuilding(w, catalog.BuilderHut, 0, 10, 10, catalog.BuildingOptions{})
	barb := catalog.SpawnUnit(w, catalog.Barbarian, 0, core.Pt(2, 2), core.TeamAttack)

	for i := 0; i < 50*60 && !destroyed(w, hut); i++ {
		step(w, 1)
	}
	if !destroyed(w, hut) {
		t.Fatal("hut survived 50 s of barbarian attacks")
	}

	step(w, 1)
	a, ok := w.Attackers.Get(barb)
	if !ok {
		t.Fatal("barbarian should survive")
	}
	if a.HasTarget() {
		t.Errorf("barbarian still targets %v with nothing left", a.Target)
	}
}

func TestGroundUnitBreaksThroughWalls(t *testing.T) {
	w := newTestWorld(20)
	catalog.SpawnBuilding(w, catalog.BuilderHut, 0, 9, 9, catalog.BuildingOptions{})

	walls := map[core.Entity]bool{}
	for i := 7; i <= 12; i++ {
		walls[catalog.SpawnBuilding(w, catalog.Wall, 0, i, 7, catalog.BuildingOptions{})] = true
		walls[catalog.SpawnBuilding(w, catalog.Wall, 0, i, 12, catalog.BuildingOptions{})] = true
	}
	for i := 8; i <= 11; i++ {
		walls[catalog.SpawnBuilding(w, catalog.Wall, 0, 7, i, catalog.BuildingOptions{})] = true
		walls[catalog.SpawnBuilding(w, catalog.Wall, 0, 12, i, catalog.BuildingOptions{})] = true
	}

	tests := []struct {
		name string
		kind catalog.UnitKind
	}{
		{"barbarian", catalog.Barbarian},
		{"wall_breaker", catalog.WallBreaker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := catalog.SpawnUnit(w, tt.kind, 0, core.Pt(2, 2.5), core.TeamAttack)
			step(w, 1)
			a, _ := w.Attackers.Get(e)
			if !walls[a.Target] {
				t.Errorf("target = %v, want one of the walls", a.Target)
			}
			m, _ := w.Movers.Get(e)
			if !m.Walking() {
				t.Error("unit should walk to the wall")
			}
			w.Kill(e)
			step(w, 1)
		})
	}
}

func TestDefenseWaitsFullCooldown(t *testing.T) {
	w := newTestWorld(20)
	cannon := catalog.SpawnBuilding(w, catalog.Cannon, 0, 10, 10, catalog.BuildingOptions{})
	catalog.SpawnUnit(w, catalog.Barbarian, 0, core.Pt(6, 11), core.TeamAttack)

	a, _ := w.Attackers.Get(cannon)
	ticks := int(a.Cooldown/parameter.DeltaTime + 0.5)

	step(w, ticks-1)
	if n := w.Projectiles.Len(); n != 0 {
		t.Fatalf("%d projectiles before the first cooldown ended", n)
	}
	step(w, 1)
	if n := w.Projectiles.Len(); n != 1 {
		t.Fatalf("%d projectiles after one cooldown, want 1", n)
	}
}

func TestHunterKeepsFiringAtWalkingTarget(t *testing.T) {
	w := newTestWorld(24)
	archer := catalog.SpawnUnit(w, catalog.Archer, 4, core.Pt(10, 10), core.TeamDefense)
	giant := catalog.SpawnUnit(w, catalog.Giant, 0, core.Pt(8, 12), core.TeamAttack)

	// The giant walks past at 1.5 tiles/s, never leaving the archer's reach
	ticks := int(math.Round(4 / 1.5 / parameter.DeltaTime))
	for i := 0; i < ticks; i++ {
		w.Positions.Set(giant, core.Pt(8+1.5*float64(i)*parameter.DeltaTime, 12))
		step(w, 1)
	}
	step(w, 30)

	if a, _ := w.Attackers.Get(archer); a.Target != giant {
		t.Errorf("archer target = %v, want the giant", a.Target)
	}
	h := w.Healths.Ptr(giant)
	if h == nil {
		t.Fatal("giant gone")
	}
	if hits := int(math.Round((h.Max - h.Current) / 20)); hits < 2 {
		t.Errorf("giant took %d hits in %.1f s of reach, want at least 2", hits, float64(ticks)*parameter.DeltaTime)
	}
}

func TestHomingProjectileMissesDeadTarget(t *testing.T) {
	w := newTestWorld(20)
	barb := catalog.SpawnUnit(w, catalog.Barbarian, 0, core.Pt(5, 5), core.TeamAttack)

	Execute(w, component.Homing(10, 1), ActionContext{
		Team:   core.TeamDefense,
		Target: barb,
		Point:  core.Pt(9, 5),
	})
	step(w, 1)
	if w.Projectiles.Len() != 1 {
		t.Fatal("projectile should be in flight")
	}

	w.Healths.Ptr(barb).Current = 0
	step(w, 1)
	if w.Projectiles.Len() != 0 {
		t.Error("projectile should vanish with its target")
	}
	if got := w.Resources.Status.Ints.Get("projectile.misses").Load(); got != 1 {
		t.Errorf("misses = %d, want 1", got)
	}
}

func TestHomingProjectileHits(t *testing.T) {
	w := newTestWorld(20)
	barb := catalog.SpawnUnit(w, catalog.Barbarian, 0, core.Pt(5, 5), core.TeamAttack)
	before := w.Healths.Ptr(barb).Current

	Execute(w, component.Homing(10, 30), ActionContext{
		Team:   core.TeamDefense,
		Target: barb,
		Point:  core.Pt(7, 5),
	})
	step(w, 30)

	if w.Projectiles.Len() != 0 {
		t.Fatal("projectile should have landed")
	}
	if got := w.Healths.Ptr(barb).Current; got != before-10 {
		t.Errorf("health = %v, want %v", got, before-10)
	}
}

func TestDespawnDamageChains(t *testing.T) {
	w := newTestWorld(20)
	hut := catalog.SpawnBuilding(w, catalog.BuilderHut, 0, 10, 10, catalog.BuildingOptions{})
	w.Healths.Ptr(hut).Current = 10

	balloon := catalog.SpawnUnit(w, catalog.Balloon, 0, core.Pt(11, 11), core.TeamAttack)
	w.Healths.Ptr(balloon).Current = 0

	step(w, 1)
	if !destroyed(w, hut) {
		t.Error("balloon death damage should destroy the hut in the same tick")
	}
	if w.Positions.Has(balloon) {
		t.Error("balloon should be removed at cleanup")
	}
}

func TestHealClampsToMax(t *testing.T) {
	w := newTestWorld(20)
	barb := catalog.SpawnUnit(w, catalog.Barbarian, 0, core.Pt(5, 5), core.TeamAttack)
	h := w.Healths.Ptr(barb)
	h.Current = 10

	Execute(w, component.Heal(1000, 3), ActionContext{Team: core.TeamAttack, Point: core.Pt(6, 5)})
	applyDamage(w)

	if h := w.Healths.Ptr(barb); h.Current != h.Max {
		t.Errorf("health = %v, want max %v", h.Current, h.Max)
	}
}

func TestSpeedModifierLapses(t *testing.T) {
	w := newTestWorld(20)
	barb := catalog.SpawnUnit(w, catalog.Barbarian, 0, core.Pt(5, 5), core.TeamAttack)

	Execute(w, component.Modify(2, 0, 3), ActionContext{Team: core.TeamAttack, Point: core.Pt(5, 5)})
	step(w, 1)
	if b, _ := w.Buffs.Get(barb); b.SpeedMul != 2 || b.DamageMul != 1 {
		t.Fatalf("multipliers = %v/%v, want 2/1", b.SpeedMul, b.DamageMul)
	}

	step(w, int(parameter.ModifierWindow/parameter.DeltaTime)+2)
	if b, _ := w.Buffs.Get(barb); b.SpeedMul != 1 {
		t.Errorf("speed multiplier = %v after the window, want 1", b.SpeedMul)
	}
}

func TestTrapSpringsOnce(t *testing.T) {
	w := newTestWorld(20)
	catalog.SpawnBuilding(w, catalog.Bomb, 0, 8, 8, catalog.BuildingOptions{})
	barb := catalog.SpawnUnit(w, catalog.Barbarian, 0, core.Pt(8.5, 9.5), core.TeamAttack)
	before := w.Healths.Ptr(barb).Current

	step(w, 1)
	if w.Traps.Len() != 0 {
		t.Fatal("trap should be spent")
	}
	step(w, 60)
	if got := w.Healths.Ptr(barb).Current; got >= before {
		t.Errorf("health = %v, want less than %v", got, before)
	}
	if got := w.Resources.Status.Ints.Get("trap.sprung").Load(); got != 1 {
		t.Errorf("sprung = %d, want 1", got)
	}
}

func TestClanCastleDeploysMatchingTroop(t *testing.T) {
	w := newTestWorld(30)
	cc := catalog.SpawnBuilding(w, catalog.ClanCastle, 0, 5, 5, catalog.BuildingOptions{
		Reserve: []component.Troop{
			catalog.NewTroop(catalog.Barbarian, 0),
			catalog.NewTroop(catalog.Archer, 0),
		},
	})
	catalog.SpawnUnit(w, catalog.Minion, 0, core.Pt(2, 2), core.TeamAttack)

	step(w, 1)
	c, _ := w.ClanCastles.Get(cc)
	if len(c.Reserve) != 1 || c.Reserve[0].Kind != uint8(catalog.Barbarian) {
		t.Fatalf("reserve = %+v, want the barbarian left", c.Reserve)
	}

	defenders := 0
	for _, e := range w.Query().With(w.Movers).Execute() {
		if team, _ := w.Teams.Get(e); team == core.TeamDefense {
			defenders++
		}
	}
	if defenders != 1 {
		t.Errorf("%d defenders, want 1", defenders)
	}
}

func TestKnockbackStunsAndRetargets(t *testing.T) {
	w := newTestWorld(20)
	balloon := catalog.SpawnUnit(w, catalog.Balloon, 0, core.Pt(10, 10), core.TeamAttack)

	Execute(w, component.Knockback(0, 2), ActionContext{
		Team:   core.TeamDefense,
		Target: balloon,
		Point:  core.Pt(8, 10),
	})

	if pos, _ := w.Positions.Get(balloon); pos != core.Pt(12, 10) {
		t.Errorf("position = %v, want (12,10)", pos)
	}
	m, _ := w.Movers.Get(balloon)
	if m.Stun <= 0 || m.Arrived {
		t.Errorf("mover = %+v, want stunned and not arrived", m)
	}
	if a, _ := w.Attackers.Get(balloon); !a.Retarget {
		t.Error("knockback should request a retarget")
	}
}

func TestInReachSquareCorners(t *testing.T) {
	hut := collider.Rect{Pos: core.Pt(10, 10), Size: core.Pt(2, 2)}
	tests := []struct {
		pos  core.Point
		want bool
	}{
		{core.Pt(9.2, 9.2), true}, // 1.13 from the corner, inside the grown square
		{core.Pt(9.2, 11), true},
		{core.Pt(8.9, 11), false},
		{core.Pt(13.1, 13.1), false},
	}
	for _, tt := range tests {
		if got := inReach(hut, tt.pos, 1); got != tt.want {
			t.Errorf("inReach(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestRankBuilding(t *testing.T) {
	counted := component.FlagBuilding | component.FlagCounted
	tests := []struct {
		pref  component.Preference
		flags component.Flags
		rank  int
		ok    bool
	}{
		{component.PreferAny, counted, 0, true},
		{component.PreferAny, component.FlagBuilding | component.FlagWall, 0, false},
		{component.PreferActive, counted | component.FlagActive, 0, true},
		{component.PreferActive, counted, 1, true},
		{component.PreferResource, counted | component.FlagResource, 0, true},
		{component.PreferWall, component.FlagBuilding | component.FlagWall, 0, true},
		{component.PreferWall, counted, 1, true},
		{component.PreferAny, component.FlagUnit | component.FlagGround, 0, false},
	}
	for _, tt := range tests {
		rank, ok := rankBuilding(tt.pref, tt.flags)
		if rank != tt.rank || ok != tt.ok {
			t.Errorf("rankBuilding(%d, %b) = %d, %v; want %d, %v", tt.pref, tt.flags, rank, ok, tt.rank, tt.ok)
		}
	}
}
