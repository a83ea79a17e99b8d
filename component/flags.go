package component

// Flags describes what an attackable entity is, for targeting and splash filters
type Flags uint16

const (
	FlagGround Flags = 1 << iota
	FlagAir
	FlagUnit
	FlagBuilding
	FlagCounted // Contributes to destruction percentage
	FlagActive  // Defensive building
	FlagResource
	FlagWall
	FlagTownHall
	FlagClanCastle
)

// Has reports whether every bit of m is set
func (f Flags) Has(m Flags) bool { return f&m == m }

// Any reports whether at least one bit of m is set
func (f Flags) Any(m Flags) bool { return f&m != 0 }

// Matches reports whether f overlaps hits and avoids every excluded bit
func (f Flags) Matches(hits, exclude Flags) bool {
	return f&hits != 0 && f&exclude == 0
}
