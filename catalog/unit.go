package catalog

import (
	"github.com/trickybestia/cocsim/collider"
	"github.com/trickybestia/cocsim/component"
	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/engine"
)

type unitLevel struct {
	health float64
	damage float64
}

type unitInfo struct {
	name        string
	housing     int
	speed       float64
	air         bool
	radius      float64
	attackRange float64
	cooldown    float64
	action      component.ActionKind
	splash      float64 // Splash radius
	projectile  float64 // Projectile speed
	wallMul     float64
	suicide     bool
	deathDamage []float64
	preference  component.Preference
	hits        component.Flags // Targets reachable when defending
	levels      []unitLevel
}

var units = [unitKindCount]unitInfo{
	Barbarian: {
		name: "barbarian", housing: 1, speed: 2, radius: 0.3,
		attackRange: 0.6, cooldown: 1, action: component.ActionMelee,
		hits: component.FlagGround,
		levels: []unitLevel{{45, 8}, {54, 11}, {65, 14}, {85, 18}, {105, 23}},
	},
	Archer: {
		name: "archer", housing: 1, speed: 3, radius: 0.3,
		attackRange: 3.5, cooldown: 1, action: component.ActionHoming, projectile: 10,
		hits: component.FlagGround | component.FlagAir,
		levels: []unitLevel{{20, 7}, {23, 9}, {28, 12}, {33, 16}, {40, 20}},
	},
	Giant: {
		name: "giant", housing: 5, speed: 1.5, radius: 0.5,
		attackRange: 1, cooldown: 2, action: component.ActionMelee,
		preference: component.PreferActive,
		hits:       component.FlagGround,
		levels:     []unitLevel{{300, 22}, {360, 28}, {450, 38}, {600, 48}, {800, 62}},
	},
	Goblin: {
		name: "goblin", housing: 1, speed: 4, radius: 0.3,
		attackRange: 0.6, cooldown: 1, action: component.ActionMelee,
		preference: component.PreferResource,
		hits:       component.FlagGround,
		levels:     []unitLevel{{25, 11}, {30, 14}, {36, 19}, {50, 24}, {65, 32}},
	},
	WallBreaker: {
		name: "wall_breaker", housing: 2, speed: 3, radius: 0.3,
		attackRange: 0.6, cooldown: 1, action: component.ActionSplash, splash: 1,
		wallMul: 40, suicide: true,
		preference: component.PreferWall,
		hits:       component.FlagGround,
		levels:     []unitLevel{{20, 6}, {24, 16}, {29, 24}, {35, 32}, {53, 46}},
	},
	Balloon: {
		name: "balloon", housing: 5, speed: 1.25, air: true, radius: 0.5,
		attackRange: 0.5, cooldown: 3, action: component.ActionArea, splash: 1.2, projectile: 4,
		deathDamage: []float64{25, 32, 48, 72, 108},
		preference:  component.PreferActive,
		hits:        component.FlagGround,
		levels:      []unitLevel{{150, 75}, {180, 96}, {216, 144}, {280, 216}, {390, 324}},
	},
	Wizard: {
		name: "wizard", housing: 4, speed: 2, radius: 0.3,
		attackRange: 3, cooldown: 1.5, action: component.ActionArea, splash: 0.5, projectile: 8,
		hits:   component.FlagGround | component.FlagAir,
		levels: []unitLevel{{75, 75}, {90, 97}, {108, 121}, {130, 145}, {150, 190}},
	},
	Minion: {
		name: "minion", housing: 2, speed: 4, air: true, radius: 0.3,
		attackRange: 2.75, cooldown: 1, action: component.ActionHoming, projectile: 10,
		hits:   component.FlagGround | component.FlagAir,
		levels: []unitLevel{{58, 38}, {64, 41}, {70, 44}, {76, 47}, {84, 50}},
	},
	Dragon: {
		name: "dragon", housing: 20, speed: 2, air: true, radius: 0.7,
		attackRange: 3, cooldown: 1.25, action: component.ActionArea, splash: 0.5, projectile: 8,
		hits:   component.FlagGround | component.FlagAir,
		levels: []unitLevel{{1900, 175}, {2100, 200}, {2300, 225}, {2700, 262}, {3100, 300}},
	},
}

// Housing returns the army space one unit of the kind uses
func (k UnitKind) Housing() int { return units[k].housing }

// Levels returns the number of levels in the kind's table
func (k UnitKind) Levels() int { return len(units[k].levels) }

// Air reports whether the unit flies
func (k UnitKind) Air() bool { return units[k].air }

// Hits returns the target flags the unit can attack when defending
func (k UnitKind) Hits() component.Flags { return units[k].hits }

// CheckLevel validates a level index
func (k UnitKind) CheckLevel(level int) error {
	return checkLevel(k.String(), level, k.Levels())
}

// NewTroop describes a clan castle reserve unit
func NewTroop(kind UnitKind, level int) component.Troop {
	return component.Troop{Kind: uint8(kind), Level: level, Hits: units[kind].hits}
}

// SpawnUnit creates a unit of team at pos
// Attacking units go after buildings; defending units hunt attacking units
func SpawnUnit(w *engine.World, kind UnitKind, level int, pos core.Point, team core.Team) core.Entity {
	info := &units[kind]
	stats := info.levels[level]

	flags := component.FlagUnit | component.FlagGround
	color := core.RGBAttacker
	if info.air {
		flags = component.FlagUnit | component.FlagAir
		color = core.RGBAir
	}
	if team == core.TeamDefense {
		color = core.RGBDefender
	}

	e := w.CreateEntity()
	w.Positions.Set(e, pos)
	w.Teams.Set(e, team)
	w.Healths.Set(e, component.Health{Current: stats.health, Max: stats.health})
	w.Targets.Set(e, component.Target{
		Collider: collider.Circle{Radius: info.radius},
		Flags:    flags,
	})
	w.Movers.Set(e, component.Mover{Speed: info.speed, Air: info.air, Arrived: true})
	w.Buffs.Set(e, component.Buff{SpeedMul: 1, DamageMul: 1})
	w.Visuals.Set(e, component.Visual{Kind: component.VisualCircle, Color: color, Radius: info.radius})

	a := component.Attacker{
		MaxRange:   info.attackRange,
		Cooldown:   info.cooldown,
		Remaining:  info.cooldown,
		Preference: info.preference,
		Hits:       component.FlagGround,
	}
	switch {
	case team == core.TeamDefense:
		a.Finder = component.FinderHunter
		a.Hits = info.hits
	case info.air:
		a.Finder = component.FinderAir
	default:
		a.Finder = component.FinderGround
	}

	switch info.action {
	case component.ActionMelee:
		a.Action = component.Melee(stats.damage)
	case component.ActionHoming:
		a.Action = component.Homing(stats.damage, info.projectile)
	case component.ActionArea:
		a.Action = component.Area(stats.damage, info.splash, info.projectile, info.hits)
	case component.ActionSplash:
		a.Action = component.Splash(stats.damage, info.splash, component.FlagGround, 0)
	}
	a.Action.WallMul = info.wallMul
	a.Action.SelfDestruct = info.suicide
	w.Attackers.Set(e, a)

	if info.deathDamage != nil {
		w.OnDespawn.Set(e, component.Splash(info.deathDamage[level], info.splash, component.FlagGround, 0))
	}

	return e
}
