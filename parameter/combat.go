package parameter

// Deployment
const (
	// UnitDropCooldown separates consecutive units of one group, seconds
	UnitDropCooldown = 0.1

	// SpellDropCooldown separates consecutive spells of one group, seconds
	SpellDropCooldown = 0.2

	// GroupDropCooldown separates the last drop of a group from the next group, seconds
	GroupDropCooldown = 0.5

	// MaxDropTime is the upper bound of a requested group drop time, seconds
	MaxDropTime = 30.0

	// DropEdgeMinFraction and DropEdgeMaxFraction clamp placement along a drop-zone edge
	DropEdgeMinFraction = 0.01
	DropEdgeMaxFraction = 0.99

	// DropEdgeInset pushes the landing point into the droppable tile
	DropEdgeInset = 0.05
)

// Spells
const (
	// SpellTravelDelay is the drop-in animation length before an effect triggers, seconds
	SpellTravelDelay = 0.4

	// SpellDropOffsetY is how far above the target the drop-in starts, tiles
	SpellDropOffsetY = -4.0

	// SpellPulseInterval is the period of healing/rage/haste pulses, seconds
	SpellPulseInterval = 0.3

	// ModifierWindow is how long a rage/haste modifier survives without refresh, seconds
	ModifierWindow = 1.0
)

// Projectiles & Effects
const (
	// ProjectileArrivalEpsilon is the distance at which projectiles detonate, tiles
	ProjectileArrivalEpsilon = 0.05

	// KnockbackStunDuration is the movement lock applied with a knockback, seconds
	KnockbackStunDuration = 0.5

	// PathDriftTolerance is how far a hunted unit may move before its hunter re-paths, tiles
	PathDriftTolerance = 1.0
)

// Clan Castle
const (
	// ClanCastleDeployCooldown is the delay between reserve troop deployments, seconds
	ClanCastleDeployCooldown = 1.0
)
