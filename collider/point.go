package collider

import (
	"math/rand/v2"

	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/vmath"
)

// Point is a degenerate collider; its attack area is a circle of the range
type Point struct {
	P core.Point
}

func (p Point) AttackArea(attackRange float64) Collider {
	return Circle{Center: p.P, Radius: attackRange}
}

func (p Point) NearestPoint(core.Point) core.Point {
	return p.P
}

func (p Point) Translate(offset core.Point) Collider {
	return Point{P: p.P.Add(offset)}
}

func (p Point) Contains(q core.Point) bool {
	return p.P.Dist(q) <= vmath.Epsilon
}

func (p Point) Area() float64 {
	return 0
}

func (p Point) Bounds() (core.Point, core.Point) {
	return p.P, p.P
}

func (p Point) RandomPoint(*rand.Rand) core.Point {
	return p.P
}

func (p Point) RandomNearPoint(core.Point, *rand.Rand) core.Point {
	return p.P
}
