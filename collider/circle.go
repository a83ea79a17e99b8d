package collider

import (
	"math"
	"math/rand/v2"

	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/vmath"
)

// Circle is a disc given by center and radius
type Circle struct {
	Center core.Point
	Radius float64
}

func (c Circle) AttackArea(attackRange float64) Collider {
	return Circle{Center: c.Center, Radius: c.Radius + attackRange}
}

func (c Circle) NearestPoint(p core.Point) core.Point {
	d := p.Sub(c.Center)
	dist := d.Len()
	if dist <= c.Radius {
		return p
	}
	return c.Center.Add(d.Scale(c.Radius / dist))
}

func (c Circle) Translate(offset core.Point) Collider {
	return Circle{Center: c.Center.Add(offset), Radius: c.Radius}
}

func (c Circle) Contains(p core.Point) bool {
	return p.Dist(c.Center) <= c.Radius+vmath.Epsilon
}

func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

func (c Circle) Bounds() (core.Point, core.Point) {
	r := core.Pt(c.Radius, c.Radius)
	return c.Center.Sub(r), c.Center.Add(r)
}

func (c Circle) RandomPoint(rng *rand.Rand) core.Point {
	if c.Radius <= 0 {
		return c.Center
	}
	r := c.Radius * math.Sqrt(rng.Float64())
	return c.Center.Add(core.FromAngle(rng.Float64() * vmath.TwoPi).Scale(r))
}

func (c Circle) RandomNearPoint(from core.Point, rng *rand.Rand) core.Point {
	if c.Contains(from) {
		return from
	}
	if c.Radius <= 0 {
		return c.Center
	}

	toCenter := c.Center.Sub(from)
	dist := toCenter.Len()
	half := math.Asin(vmath.Clamp(c.Radius/dist, 0, 1))
	angle := toCenter.Angle() + (rng.Float64()*2-1)*half
	dir := core.FromAngle(angle)

	t, ok := vmath.RayCircleEnter(from, dir, c.Center, c.Radius)
	if !ok {
		return c.NearestPoint(from)
	}
	return c.NearestPoint(from.Add(dir.Scale(t)))
}
