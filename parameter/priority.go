package parameter

// System execution order within one tick (lower runs first)
// The order is part of the simulation contract; changing it changes every result
const (
	PriorityBuff       = 5  // Modifiers recomputed from scratch before anything reads them
	PriorityDamage     = 10 // Queued damage from the previous tick
	PriorityDeath      = 20 // Deaths, on-despawn actions, repeated to a fixed point
	PriorityGrid       = 30 // Drop-zone/collision rebuild when dirty
	PriorityTargeting  = 40
	PriorityMovement   = 50
	PriorityProjectile = 55 // Projectile flight, after movers
	PriorityAttack     = 60 // Cooldown-gated firing, batched after the scan
	PriorityTrap       = 65
	PriorityClanCastle = 70
	PrioritySpell      = 80 // Delays, drop-ins and spell pulses
	PriorityCleanup    = 90
)
