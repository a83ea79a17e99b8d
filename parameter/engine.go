package parameter

// Simulation Timing
const (
	// DeltaTime is the fixed simulation step in seconds
	DeltaTime = 1.0 / 60.0

	// MaxAttackDuration is the battle length in seconds; a game is done once elapsed time reaches it
	MaxAttackDuration = 180.0

	// FixedPointPasses caps damage/death resolution loops within one tick
	FixedPointPasses = 8
)

// Map Limits
const (
	// MinBaseSize is the smallest accepted base edge in tiles
	MinBaseSize = 1

	// MaxBaseSize is the largest accepted base edge in tiles
	MaxBaseSize = 64

	// MinBorderSize is the smallest accepted border around the base
	MinBorderSize = 1

	// MaxBorderSize is the largest accepted border around the base
	MaxBorderSize = 8

	// MaxBuildings caps building count per map
	MaxBuildings = 250
)

// Army Limits
const (
	// MaxArmyHousingSpace is the unit housing cap of an attacking army
	MaxArmyHousingSpace = 240

	// MaxSpellHousingSpace is the spell housing cap of an attacking army
	MaxSpellHousingSpace = 11

	// MaxClanCastleHousingSpace is the housing cap of clan castle reserve troops
	MaxClanCastleHousingSpace = 45
)

// Replay
const (
	// ReplayEvery keeps one frame per this many ticks when a replay is recorded
	ReplayEvery = 6

	// ServerReadLimit caps the size of a scenario document sent over a websocket
	ServerReadLimit = 1 << 20
)
