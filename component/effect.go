package component

import "github.com/trickybestia/cocsim/core"

// Delay counts down and then runs Then, after which the entity is removed
type Delay struct {
	Remaining float64
	Then      Action
}

// DropIn eases an entity from From to To over Duration
type DropIn struct {
	From     core.Point
	To       core.Point
	Elapsed  float64
	Duration float64
}

// Pulse repeats Action every Interval until Left runs out
type Pulse struct {
	Interval float64
	Next     float64
	Left     float64
	Action   Action
}

// Modifier is a timed multiplier that lapses unless refreshed
type Modifier struct {
	Amount    float64
	Remaining float64
}

// Active reports whether the modifier still applies
func (m Modifier) Active() bool { return m.Remaining > 0 }

// Refresh extends the modifier, only raising the amount
func (m *Modifier) Refresh(amount, window float64) {
	if !m.Active() || amount >= m.Amount {
		m.Amount = amount
	}
	m.Remaining = window
}

// Buff holds spell modifiers and the multipliers derived from them each tick
type Buff struct {
	Speed  Modifier
	Damage Modifier

	SpeedMul  float64
	DamageMul float64
}

// Dead marks an entity for removal at end of tick
type Dead struct{}

// VisualKind selects the drawable used for an entity
type VisualKind uint8

const (
	VisualRect VisualKind = iota
	VisualCircle
	VisualSpell
	VisualProjectile
)

// Visual describes how an entity is drawn
type Visual struct {
	Kind   VisualKind
	Color  core.RGB
	Radius float64
	Label  string
}
