// Package plan describes where and when an army is deployed and turns plans into spawns
package plan

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/trickybestia/cocsim/catalog"
	"github.com/trickybestia/cocsim/game"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/vmath"
)

// UnitGroup deploys Count units from the drop-zone edge hit by a ray from the map center
type UnitGroup struct {
	Kind  catalog.UnitKind `yaml:"kind" json:"kind"`
	Level int              `yaml:"level" json:"level"`
	Count int              `yaml:"count" json:"count" jsonschema:"minimum=1"`

	// Angle is the ray bearing in radians
	Angle float64 `yaml:"angle" json:"angle"`
	// Distance selects the landing point along the crossed tile edge, 0 to 1
	Distance float64 `yaml:"distance" json:"distance" jsonschema:"minimum=0,maximum=1"`
	// DropTime is the requested time of the first drop, seconds
	DropTime float64 `yaml:"drop_time" json:"drop_time" jsonschema:"minimum=0"`
}

// SpellGroup casts Count spells on one point
type SpellGroup struct {
	Kind  catalog.SpellKind `yaml:"kind" json:"kind"`
	Level int               `yaml:"level" json:"level"`
	Count int               `yaml:"count" json:"count" jsonschema:"minimum=1"`

	X        float64 `yaml:"x" json:"x"`
	Y        float64 `yaml:"y" json:"y"`
	DropTime float64 `yaml:"drop_time" json:"drop_time" jsonschema:"minimum=0"`
}

// AttackPlan is one candidate deployment of a whole army
type AttackPlan struct {
	Units  []UnitGroup  `yaml:"units" json:"units"`
	Spells []SpellGroup `yaml:"spells,omitempty" json:"spells,omitempty"`
}

// FromArmy creates a plan with one group per army slot, all groups at their zero values
func FromArmy(army *game.Army) AttackPlan {
	var p AttackPlan
	for _, s := range army.Units {
		p.Units = append(p.Units, UnitGroup{Kind: s.Kind, Level: s.Level, Count: s.Count})
	}
	for _, s := range army.Spells {
		p.Spells = append(p.Spells, SpellGroup{Kind: s.Kind, Level: s.Level, Count: s.Count})
	}
	return p
}

// Clone returns a deep copy
func (p AttackPlan) Clone() AttackPlan {
	return AttackPlan{Units: slices.Clone(p.Units), Spells: slices.Clone(p.Spells)}
}

// Army returns the army the plan deploys
func (p AttackPlan) Army() game.Army {
	var a game.Army
	for _, g := range p.Units {
		a.Units = append(a.Units, game.UnitSlot{Kind: g.Kind, Level: g.Level, Count: g.Count})
	}
	for _, g := range p.Spells {
		a.Spells = append(a.Spells, game.SpellSlot{Kind: g.Kind, Level: g.Level, Count: g.Count})
	}
	return a
}

// Random fills every group of template with uniformly drawn placements
// Spells target the base square of m
func Random(template AttackPlan, m *game.Map, rng *rand.Rand) AttackPlan {
	p := template.Clone()
	lo, hi := spellRange(m)
	for i := range p.Units {
		g := &p.Units[i]
		g.Angle = rng.Float64() * vmath.TwoPi
		g.Distance = rng.Float64()
		g.DropTime = rng.Float64() * parameter.MaxDropTime
	}
	for i := range p.Spells {
		g := &p.Spells[i]
		g.X = vmath.RandRange(rng, lo, hi)
		g.Y = vmath.RandRange(rng, lo, hi)
		g.DropTime = rng.Float64() * parameter.MaxDropTime
	}
	return p
}

// Mutate returns a copy with every group nudged by a random amount scaled by temperature
// At temperature 0 the plan is unchanged
func Mutate(p AttackPlan, m *game.Map, rng *rand.Rand, temperature float64) AttackPlan {
	out := p.Clone()
	lo, hi := spellRange(m)
	for i := range out.Units {
		g := &out.Units[i]
		g.Angle = vmath.NormalizeAngle(g.Angle + temperature*math.Pi*vmath.RandSigned(rng))
		g.Distance = vmath.Clamp(g.Distance+temperature*vmath.RandSigned(rng), 0, 1)
		g.DropTime = mutateTime(g.DropTime, rng, temperature)
	}
	for i := range out.Spells {
		g := &out.Spells[i]
		reach := temperature * (hi - lo) / 2
		g.X = vmath.Clamp(g.X+reach*vmath.RandSigned(rng), lo, hi)
		g.Y = vmath.Clamp(g.Y+reach*vmath.RandSigned(rng), lo, hi)
		g.DropTime = mutateTime(g.DropTime, rng, temperature)
	}
	return out
}

func mutateTime(t float64, rng *rand.Rand, temperature float64) float64 {
	return vmath.Clamp(t+temperature*parameter.MaxDropTime/2*vmath.RandSigned(rng), 0, parameter.MaxDropTime)
}

// Crossover builds a child taking each group from a or b with equal probability
// Groups are paired by position; both parents must deploy the same army
func Crossover(a, b AttackPlan, rng *rand.Rand) AttackPlan {
	child := a.Clone()
	for i := range child.Units {
		if i < len(b.Units) && rng.IntN(2) == 1 {
			child.Units[i] = b.Units[i]
		}
	}
	for i := range child.Spells {
		if i < len(b.Spells) && rng.IntN(2) == 1 {
			child.Spells[i] = b.Spells[i]
		}
	}
	return child
}

// spellRange is the coordinate range spells may target
func spellRange(m *game.Map) (float64, float64) {
	return float64(m.BorderSize), float64(m.BorderSize + m.BaseSize)
}
