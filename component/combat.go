package component

import (
	"github.com/trickybestia/cocsim/collider"
	"github.com/trickybestia/cocsim/core"
)

// Health tracks hit points, Current stays within [0, Max]
type Health struct {
	Current float64
	Max     float64
}

// Alive reports whether hit points remain
func (h Health) Alive() bool { return h.Current > 0 }

// Target marks an entity as attackable
// Collider is local to the entity's position
type Target struct {
	Collider collider.Collider
	Flags    Flags
}

// At returns the target's collider in world space
func (t Target) At(pos core.Point) collider.Collider {
	return t.Collider.Translate(pos)
}

// Finder selects the target acquisition behavior of an attacker
type Finder uint8

const (
	FinderBuilding Finder = iota // Static defense scanning units in range
	FinderGround                 // Walking unit choosing buildings by path cost
	FinderAir                    // Flying unit choosing buildings by distance
	FinderHunter                 // Unit chasing enemy units
)

// Preference selects the candidate ordering used by unit finders
type Preference uint8

const (
	PreferAny      Preference = iota // Nearest counted building
	PreferActive                     // Defenses first, then nearest
	PreferResource                   // Resource buildings first
	PreferWall                       // Walls first
)

// FacingArc restricts a defense to bearings within HalfWidth of Facing
type FacingArc struct {
	Facing    float64
	HalfWidth float64
}

// Attacker carries target acquisition and attack state
type Attacker struct {
	MinRange float64
	MaxRange float64

	Cooldown  float64
	Remaining float64

	Target     core.Entity
	Finder     Finder
	Preference Preference
	Hits       Flags

	// Arc is nil for omnidirectional attackers
	Arc *FacingArc

	Action   Action
	Retarget bool

	// Anchor is the target position the current route was computed for
	Anchor core.Point
}

// HasTarget reports whether a target is assigned
func (a *Attacker) HasTarget() bool { return a.Target != core.NoEntity }

// Reset drops the target and restarts the cooldown
func (a *Attacker) Reset() {
	a.Target = core.NoEntity
	a.Remaining = a.Cooldown
	a.Retarget = false
}
