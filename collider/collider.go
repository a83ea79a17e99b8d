// Package collider provides the shapes used for targeting, range checks and
// unit placement. All coordinates are in tile units
package collider

import (
	"math/rand/v2"

	"github.com/trickybestia/cocsim/core"
)

// Collider is a closed 2D shape
type Collider interface {
	// AttackArea returns the set of points from which an attacker with the given
	// range can hit this shape
	AttackArea(attackRange float64) Collider

	// NearestPoint returns the closest point of the shape to p, p itself when inside
	NearestPoint(p core.Point) core.Point

	// Translate returns a copy moved by offset
	Translate(offset core.Point) Collider

	// Contains reports whether p lies inside or on the boundary
	Contains(p core.Point) bool

	// Area returns the surface in square tiles
	Area() float64

	// Bounds returns the axis-aligned bounding box
	Bounds() (min, max core.Point)

	// RandomPoint samples a uniform point inside the shape
	RandomPoint(rng *rand.Rand) core.Point

	// RandomNearPoint samples a point on the part of the boundary visible from
	// the external point from; returns from when it is already inside
	RandomNearPoint(from core.Point, rng *rand.Rand) core.Point
}

// Distance returns the distance from p to the nearest point of c
func Distance(c Collider, p core.Point) float64 {
	return c.NearestPoint(p).Dist(p)
}
