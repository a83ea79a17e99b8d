package catalog

import (
	"github.com/trickybestia/cocsim/component"
	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/engine"
	"github.com/trickybestia/cocsim/parameter"
)

type spellLevel struct {
	amount    float64 // Damage, heal per pulse, or speed multiplier
	damageMul float64
	duration  float64
}

type spellInfo struct {
	name    string
	housing int
	radius  float64
	levels  []spellLevel
}

var spells = [spellKindCount]spellInfo{
	Lightning: {
		name: "lightning", housing: 1, radius: 2,
		levels: []spellLevel{{amount: 150}, {amount: 180}, {amount: 210}, {amount: 240}, {amount: 270}, {amount: 320}},
	},
	Healing: {
		name: "healing", housing: 2, radius: 3,
		levels: []spellLevel{
			{amount: 15, duration: 12}, {amount: 20, duration: 12}, {amount: 25, duration: 12},
			{amount: 30, duration: 12}, {amount: 35, duration: 12},
		},
	},
	Rage: {
		name: "rage", housing: 2, radius: 3,
		levels: []spellLevel{
			{1.2, 1.3, 18}, {1.24, 1.4, 18}, {1.28, 1.5, 18}, {1.32, 1.6, 18}, {1.36, 1.7, 18},
		},
	},
	Haste: {
		name: "haste", housing: 1, radius: 4,
		levels: []spellLevel{
			{amount: 1.28, duration: 10}, {amount: 1.34, duration: 10}, {amount: 1.4, duration: 10},
			{amount: 1.46, duration: 10}, {amount: 1.52, duration: 10},
		},
	},
}

// lightningExclude lists the building types lightning never damages
const lightningExclude = component.FlagResource | component.FlagTownHall | component.FlagClanCastle

// Housing returns the spell space one spell of the kind uses
func (k SpellKind) Housing() int { return spells[k].housing }

// Levels returns the number of levels in the kind's table
func (k SpellKind) Levels() int { return len(spells[k].levels) }

// Radius returns the effect radius in tiles
func (k SpellKind) Radius() float64 { return spells[k].radius }

// CheckLevel validates a level index
func (k SpellKind) CheckLevel(level int) error {
	return checkLevel(k.String(), level, k.Levels())
}

// Effect returns the action the spell triggers once it lands
func (k SpellKind) Effect(level int) component.Action {
	info := &spells[k]
	l := info.levels[level]
	switch k {
	case Lightning:
		return component.Splash(l.amount, info.radius, component.FlagGround|component.FlagAir, lightningExclude)
	case Healing:
		return component.PulseEvery(parameter.SpellPulseInterval, l.duration, component.Heal(l.amount, info.radius))
	case Rage:
		return component.PulseEvery(parameter.SpellPulseInterval, l.duration, component.Modify(l.amount, l.damageMul, info.radius))
	case Haste:
		return component.PulseEvery(parameter.SpellPulseInterval, l.duration, component.Modify(l.amount, 0, info.radius))
	}
	panic("catalog: unhandled spell kind " + k.String())
}

// SpawnSpell drops a spell of team onto target
// The spell eases in from above and triggers its effect when the travel delay ends
func SpawnSpell(w *engine.World, kind SpellKind, level int, target core.Point, team core.Team) core.Entity {
	from := target.Add(core.Pt(0, parameter.SpellDropOffsetY))

	e := w.CreateEntity()
	w.Positions.Set(e, from)
	w.Teams.Set(e, team)
	w.DropIns.Set(e, component.DropIn{From: from, To: target, Duration: parameter.SpellTravelDelay})
	w.Delays.Set(e, component.Delay{Remaining: parameter.SpellTravelDelay, Then: kind.Effect(level)})
	w.Visuals.Set(e, component.Visual{Kind: component.VisualSpell, Color: core.RGBSpell, Radius: spells[kind].radius, Label: kind.String()})
	return e
}
