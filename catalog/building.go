package catalog

import (
	"math"

	"github.com/trickybestia/cocsim/collider"
	"github.com/trickybestia/cocsim/component"
	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/engine"
	"github.com/trickybestia/cocsim/parameter"
)

// defenseStats describes how a defensive building fights
type defenseStats struct {
	minRange, maxRange float64
	cooldown           float64
	hits               component.Flags
	action             component.ActionKind
	radius             float64 // Splash radius for area attacks
	speed              float64 // Projectile speed
	arc                float64 // Half-width of facing arc in degrees, 0 for none
}

type buildingLevel struct {
	health float64
	damage float64 // Per attack; knockback distance for the air sweeper
}

type buildingInfo struct {
	name    string
	size    int
	flags   component.Flags
	defense *defenseStats
	levels  []buildingLevel
	color   core.RGB
	label   string
}

var buildings = [buildingKindCount]buildingInfo{
	TownHall: {
		name: "town_hall", size: 4, label: "TH", color: core.RGBTownHall,
		flags: component.FlagCounted | component.FlagTownHall,
		levels: []buildingLevel{
			{health: 1500}, {health: 1600}, {health: 1850}, {health: 2100}, {health: 2400},
		},
	},
	ClanCastle: {
		name: "clan_castle", size: 3, label: "CC", color: core.RGBDefense,
		flags: component.FlagCounted | component.FlagClanCastle,
		levels: []buildingLevel{
			{health: 1000}, {health: 1400}, {health: 2000}, {health: 2600}, {health: 3000},
		},
	},
	Cannon: {
		name: "cannon", size: 3, label: "Ca", color: core.RGBDefense,
		flags: component.FlagCounted | component.FlagActive,
		defense: &defenseStats{
			maxRange: 9, cooldown: 0.8, hits: component.FlagGround,
			action: component.ActionHoming, speed: 12,
		},
		levels: []buildingLevel{
			{420, 7.2}, {470, 8.8}, {520, 12}, {570, 15.2}, {620, 20},
		},
	},
	ArcherTower: {
		name: "archer_tower", size: 3, label: "AT", color: core.RGBDefense,
		flags: component.FlagCounted | component.FlagActive,
		defense: &defenseStats{
			maxRange: 10, cooldown: 0.5, hits: component.FlagGround | component.FlagAir,
			action: component.ActionHoming, speed: 14,
		},
		levels: []buildingLevel{
			{380, 5.5}, {420, 7.5}, {460, 9.5}, {500, 12.5}, {540, 15},
		},
	},
	Mortar: {
		name: "mortar", size: 3, label: "Mo", color: core.RGBDefense,
		flags: component.FlagCounted | component.FlagActive,
		defense: &defenseStats{
			minRange: 4, maxRange: 11, cooldown: 5, hits: component.FlagGround,
			action: component.ActionArea, radius: 1.5, speed: 5,
		},
		levels: []buildingLevel{
			{400, 20}, {450, 25}, {500, 30}, {550, 35}, {600, 40},
		},
	},
	AirDefense: {
		name: "air_defense", size: 3, label: "AD", color: core.RGBDefense,
		flags: component.FlagCounted | component.FlagActive,
		defense: &defenseStats{
			maxRange: 10, cooldown: 1, hits: component.FlagAir,
			action: component.ActionHoming, speed: 10,
		},
		levels: []buildingLevel{
			{800, 80}, {850, 110}, {900, 140}, {950, 160}, {1000, 190},
		},
	},
	WizardTower: {
		name: "wizard_tower", size: 3, label: "WT", color: core.RGBDefense,
		flags: component.FlagCounted | component.FlagActive,
		defense: &defenseStats{
			maxRange: 7, cooldown: 1.3, hits: component.FlagGround | component.FlagAir,
			action: component.ActionArea, radius: 1, speed: 8,
		},
		levels: []buildingLevel{
			{620, 11}, {650, 13}, {680, 16}, {730, 20}, {840, 24},
		},
	},
	AirSweeper: {
		name: "air_sweeper", size: 2, label: "AS", color: core.RGBDefense,
		flags: component.FlagCounted | component.FlagActive,
		defense: &defenseStats{
			minRange: 1, maxRange: 15, cooldown: 5, hits: component.FlagAir,
			action: component.ActionKnockback, arc: 60,
		},
		levels: []buildingLevel{
			{750, 1.6}, {800, 2}, {850, 2.4}, {900, 2.8}, {950, 3.2},
		},
	},
	Wall: {
		name: "wall", size: 1, color: core.RGBWall,
		flags: component.FlagWall,
		levels: []buildingLevel{
			{health: 300}, {health: 500}, {health: 700}, {health: 900}, {health: 1400},
		},
	},
	GoldMine: {
		name: "gold_mine", size: 3, label: "GM", color: core.RGBResource,
		flags: component.FlagCounted | component.FlagResource,
		levels: []buildingLevel{
			{health: 400}, {health: 440}, {health: 480}, {health: 520}, {health: 560},
		},
	},
	ElixirCollector: {
		name: "elixir_collector", size: 3, label: "EC", color: core.RGBResource,
		flags: component.FlagCounted | component.FlagResource,
		levels: []buildingLevel{
			{health: 400}, {health: 440}, {health: 480}, {health: 520}, {health: 560},
		},
	},
	GoldStorage: {
		name: "gold_storage", size: 3, label: "GS", color: core.RGBResource,
		flags: component.FlagCounted | component.FlagResource,
		levels: []buildingLevel{
			{health: 400}, {health: 600}, {health: 800}, {health: 1000}, {health: 1200},
		},
	},
	ElixirStorage: {
		name: "elixir_storage", size: 3, label: "ES", color: core.RGBResource,
		flags: component.FlagCounted | component.FlagResource,
		levels: []buildingLevel{
			{health: 400}, {health: 600}, {health: 800}, {health: 1000}, {health: 1200},
		},
	},
	ArmyCamp: {
		name: "army_camp", size: 4, label: "AC", color: core.RGBBuilding,
		flags: component.FlagCounted,
		levels: []buildingLevel{
			{health: 250}, {health: 270}, {health: 290}, {health: 310}, {health: 330},
		},
	},
	Barracks: {
		name: "barracks", size: 3, label: "Ba", color: core.RGBBuilding,
		flags: component.FlagCounted,
		levels: []buildingLevel{
			{health: 250}, {health: 290}, {health: 330}, {health: 370}, {health: 420},
		},
	},
	BuilderHut: {
		name: "builder_hut", size: 2, label: "BH", color: core.RGBBuilding,
		flags: component.FlagCounted,
		levels: []buildingLevel{
			{health: 250},
		},
	},
	Bomb: {
		name: "bomb", size: 1, color: core.RGBCollision,
		levels: []buildingLevel{
			{damage: 20}, {damage: 24}, {damage: 29}, {damage: 35}, {damage: 42},
		},
	},
}

// clanCastleHousing is the reserve capacity per clan castle level
var clanCastleHousing = []int{10, 15, 20, 25, 30}

const (
	bombRadius       = 1.5
	bombTriggerDelay = 0.5
	clanCastleRadius = 12.0
)

// BuildingOptions carries type-specific placement options
type BuildingOptions struct {
	// Facing is the air sweeper direction in degrees, 0 pointing east, clockwise
	Facing float64

	// Reserve holds clan castle troops
	Reserve []component.Troop
}

// Size returns the footprint edge in tiles
func (k BuildingKind) Size() int { return buildings[k].size }

// Levels returns the number of levels in the kind's table
func (k BuildingKind) Levels() int { return len(buildings[k].levels) }

// Flags returns the target flags of the kind, without ground/building bits
func (k BuildingKind) Flags() component.Flags { return buildings[k].flags }

// Counted reports whether the kind contributes to destruction percentage
func (k BuildingKind) Counted() bool { return buildings[k].flags.Any(component.FlagCounted) }

// IsTrap reports whether the kind is a hidden trap instead of a structure
func (k BuildingKind) IsTrap() bool { return k == Bomb }

// Health returns the hit points at level
func (k BuildingKind) Health(level int) float64 { return buildings[k].levels[level].health }

// CheckLevel validates a level index
func (k BuildingKind) CheckLevel(level int) error {
	return checkLevel(k.String(), level, k.Levels())
}

// ClanCastleHousing returns the reserve capacity of a clan castle level
func ClanCastleHousing(level int) int {
	if level < 0 || level >= len(clanCastleHousing) {
		return 0
	}
	return clanCastleHousing[level]
}

// SpawnBuilding creates a building (or trap) with its top-left tile at (x, y)
func SpawnBuilding(w *engine.World, kind BuildingKind, level, x, y int, opts BuildingOptions) core.Entity {
	info := &buildings[kind]
	stats := info.levels[level]
	size := float64(info.size)
	center := core.Pt(float64(x)+size/2, float64(y)+size/2)

	e := w.CreateEntity()
	w.Positions.Set(e, center)
	w.Teams.Set(e, core.TeamDefense)

	switch kind {
	case Bomb:
		w.Traps.Set(e, component.Trap{
			Radius: bombRadius,
			Hits:   component.FlagGround,
			Action: component.Delayed(bombTriggerDelay,
				component.Splash(stats.damage, bombRadius, component.FlagGround, 0)),
		})
		w.Visuals.Set(e, component.Visual{Kind: component.VisualRect, Color: info.color, Radius: size / 2})
		return e
	}

	w.Healths.Set(e, component.Health{Current: stats.health, Max: stats.health})
	w.Targets.Set(e, component.Target{
		Collider: collider.NewRect(-size/2, -size/2, size, size),
		Flags:    info.flags | component.FlagGround | component.FlagBuilding,
	})
	w.Buildings.Set(e, component.Building{
		X: x, Y: y, Size: info.size,
		Counted:         info.flags.Any(component.FlagCounted),
		AffectsDropZone: true,
		Blocks:          true,
		Wall:            kind == Wall,
	})
	w.Visuals.Set(e, component.Visual{Kind: component.VisualRect, Color: info.color, Radius: size / 2, Label: info.label})

	if d := info.defense; d != nil {
		a := component.Attacker{
			MinRange:  d.minRange,
			MaxRange:  d.maxRange,
			Cooldown:  d.cooldown,
			Remaining: d.cooldown,
			Finder:    component.FinderBuilding,
			Hits:      d.hits,
		}
		switch d.action {
		case component.ActionHoming:
			a.Action = component.Homing(stats.damage, d.speed)
		case component.ActionArea:
			a.Action = component.Area(stats.damage, d.radius, d.speed, d.hits)
		case component.ActionKnockback:
			a.Action = component.Knockback(0, stats.damage)
		}
		if d.arc > 0 {
			a.Arc = &component.FacingArc{
				Facing:    opts.Facing * math.Pi / 180,
				HalfWidth: d.arc * math.Pi / 180,
			}
		}
		w.Attackers.Set(e, a)
	}

	if kind == ClanCastle && len(opts.Reserve) > 0 {
		w.ClanCastles.Set(e, component.ClanCastle{
			Reserve:  append([]component.Troop(nil), opts.Reserve...),
			Radius:   clanCastleRadius,
			Cooldown: parameter.ClanCastleDeployCooldown,
		})
	}

	return e
}
