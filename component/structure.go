package component

import "github.com/trickybestia/cocsim/core"

// Building is a static structure placed on the tile grid
type Building struct {
	X, Y int
	Size int

	Counted         bool
	AffectsDropZone bool
	Blocks          bool
	Wall            bool

	Destroyed bool
}

// Area returns the tile footprint
func (b Building) Area() core.Area {
	return core.Area{X: b.X, Y: b.Y, Width: b.Size, Height: b.Size}
}

// Center returns the footprint center in tile units
func (b Building) Center() core.Point {
	return b.Area().Center()
}

// Troop is a reserve unit held by a clan castle
// Kind is a catalog unit kind, kept numeric to avoid a package cycle
type Troop struct {
	Kind  uint8
	Level int
	Hits  Flags
}

// ClanCastle deploys reserve troops when attackers come near
type ClanCastle struct {
	Reserve   []Troop
	Radius    float64
	Cooldown  float64
	Remaining float64
}

// Trap is a hidden device that fires once when an enemy steps in
type Trap struct {
	Radius float64
	Hits   Flags
	Action Action
}
