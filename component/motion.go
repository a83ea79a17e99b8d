package component

import "github.com/trickybestia/cocsim/core"

// Mover walks a waypoint stack, the last element is the next waypoint
type Mover struct {
	Speed     float64
	Waypoints []core.Point
	Arrived   bool
	Air       bool

	// Stun is remaining seconds during which the mover stays still
	Stun float64
}

// Next returns the nearest pending waypoint
func (m *Mover) Next() (core.Point, bool) {
	if len(m.Waypoints) == 0 {
		return core.Point{}, false
	}
	return m.Waypoints[len(m.Waypoints)-1], true
}

// Pop discards the nearest waypoint
func (m *Mover) Pop() {
	if len(m.Waypoints) > 0 {
		m.Waypoints = m.Waypoints[:len(m.Waypoints)-1]
	}
}

// Walk replaces the route; points are ordered from first to reach to last
func (m *Mover) Walk(points ...core.Point) {
	m.Waypoints = m.Waypoints[:0]
	for i := len(points) - 1; i >= 0; i-- {
		m.Waypoints = append(m.Waypoints, points[i])
	}
	m.Arrived = len(m.Waypoints) == 0
}

// Stop clears the route
func (m *Mover) Stop() {
	m.Waypoints = m.Waypoints[:0]
	m.Arrived = true
}

// Walking reports whether the mover still has somewhere to go
func (m *Mover) Walking() bool { return len(m.Waypoints) > 0 }

// Projectile flies toward a live entity (homing) or a fixed point (area)
type Projectile struct {
	Homing bool
	Target core.Entity

	// Offset is the projectile's position relative to a homing target
	Offset core.Point

	// Dest is the fixed destination of an area projectile
	Dest core.Point

	Speed   float64
	Payload Action
}
