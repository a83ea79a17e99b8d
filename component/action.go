package component

// ActionKind enumerates every behavior an attack, trap, spell or death can trigger
type ActionKind uint8

const (
	ActionNone      ActionKind = iota
	ActionMelee                // Direct damage to the current target
	ActionHoming               // Launch a projectile that tracks the target
	ActionArea                 // Launch a projectile at the target's current position
	ActionSplash               // Radius damage around a point
	ActionKnockback            // Damage, push and stun the target
	ActionHeal                 // Restore health to allied units in radius
	ActionModify               // Refresh speed/damage modifiers on allied units in radius
	ActionPulse                // Start a periodic Inner effect at a point
	ActionDelayed              // Run Inner after Delay seconds
)

var actionNames = [...]string{
	ActionNone:      "none",
	ActionMelee:     "melee",
	ActionHoming:    "homing",
	ActionArea:      "area",
	ActionSplash:    "splash",
	ActionKnockback: "knockback",
	ActionHeal:      "heal",
	ActionModify:    "modify",
	ActionPulse:     "pulse",
	ActionDelayed:   "delayed",
}

func (k ActionKind) String() string {
	if int(k) < len(actionNames) {
		return actionNames[k]
	}
	return "unknown"
}

// Action is a closed description of a deferred effect, interpreted by one dispatcher
// Fields irrelevant to Kind are zero
type Action struct {
	Kind ActionKind

	Damage float64
	Radius float64
	Speed  float64

	// WallMul multiplies damage against walls, 0 means 1
	WallMul float64

	// Hits and Exclude filter splash victims by their target flags
	Hits    Flags
	Exclude Flags

	// Push is the knockback distance in tiles
	Push float64

	SpeedMul  float64
	DamageMul float64

	// Delay is the wait of ActionDelayed or the period of ActionPulse
	Delay    float64
	Duration float64

	// SelfDestruct removes the source once the action fired
	SelfDestruct bool

	Inner *Action
}

// Melee hits the current target directly
func Melee(damage float64) Action {
	return Action{Kind: ActionMelee, Damage: damage}
}

// Homing fires a projectile that follows the target
func Homing(damage, speed float64) Action {
	return Action{Kind: ActionHoming, Damage: damage, Speed: speed}
}

// Area fires a projectile at the target's position that splashes on arrival
func Area(damage, radius, speed float64, hits Flags) Action {
	return Action{Kind: ActionArea, Damage: damage, Radius: radius, Speed: speed, Hits: hits}
}

// Splash damages every matching enemy within radius of the action point
func Splash(damage, radius float64, hits, exclude Flags) Action {
	return Action{Kind: ActionSplash, Damage: damage, Radius: radius, Hits: hits, Exclude: exclude}
}

// Knockback pushes the target away and stuns it
func Knockback(damage, push float64) Action {
	return Action{Kind: ActionKnockback, Damage: damage, Push: push}
}

// Heal restores health of allied units within radius
func Heal(amount, radius float64) Action {
	return Action{Kind: ActionHeal, Damage: amount, Radius: radius}
}

// Modify refreshes speed and damage modifiers of allied units within radius
// A multiplier of 0 leaves that modifier untouched
func Modify(speedMul, damageMul, radius float64) Action {
	return Action{Kind: ActionModify, SpeedMul: speedMul, DamageMul: damageMul, Radius: radius}
}

// PulseEvery repeats inner every period for duration seconds at the action point
func PulseEvery(period, duration float64, inner Action) Action {
	return Action{Kind: ActionPulse, Delay: period, Duration: duration, Inner: &inner}
}

// Delayed runs inner after delay seconds at the action point
func Delayed(delay float64, inner Action) Action {
	return Action{Kind: ActionDelayed, Delay: delay, Inner: &inner}
}

// Scaled returns a copy with direct damage multiplied, nested actions included
func (a Action) Scaled(mul float64) Action {
	if mul == 1 {
		return a
	}
	a.Damage *= mul
	if a.Inner != nil {
		inner := a.Inner.Scaled(mul)
		a.Inner = &inner
	}
	return a
}

// DamageAgainst returns the damage dealt to a victim with the given flags
func (a Action) DamageAgainst(flags Flags) float64 {
	if a.WallMul != 0 && flags.Any(FlagWall) {
		return a.Damage * a.WallMul
	}
	return a.Damage
}
