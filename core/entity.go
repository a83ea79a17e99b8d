package core

import "strconv"

// Entity is an opaque identifier; behaviour comes from attached components
type Entity uint64

// NoEntity is the "dead" sentinel used for empty target slots
const NoEntity Entity = 0

// Team separates attackers from the defended base
type Team uint8

const (
	TeamAttack Team = iota
	TeamDefense
)

// Opponent returns the opposing team
func (t Team) Opponent() Team {
	if t == TeamAttack {
		return TeamDefense
	}
	return TeamAttack
}

func (t Team) String() string {
	if t == TeamAttack {
		return "attack"
	}
	return "defense"
}

func (e Entity) String() string {
	return "#" + strconv.FormatUint(uint64(e), 10)
}
