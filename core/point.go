package core

import "math"

// Point is a 2D coordinate in tile units
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(o Point) Point      { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point      { return Point{p.X - o.X, p.Y - o.Y} }
func (p Point) Scale(k float64) Point  { return Point{p.X * k, p.Y * k} }
func (p Point) Dot(o Point) float64    { return p.X*o.X + p.Y*o.Y }
func (p Point) Len() float64           { return math.Hypot(p.X, p.Y) }
func (p Point) LenSq() float64         { return p.X*p.X + p.Y*p.Y }
func (p Point) Dist(o Point) float64   { return p.Sub(o).Len() }
func (p Point) DistSq(o Point) float64 { return p.Sub(o).LenSq() }

// Normalize returns the unit vector, zero-safe
func (p Point) Normalize() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Angle returns the bearing of the vector in radians, range (-π, π]
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Lerp interpolates between p (t=0) and o (t=1)
func (p Point) Lerp(o Point, t float64) Point {
	return Point{p.X + (o.X-p.X)*t, p.Y + (o.Y-p.Y)*t}
}

// MoveToward steps p toward target by at most step, returns new point and whether target was reached
func (p Point) MoveToward(target Point, step float64) (Point, bool) {
	d := target.Sub(p)
	dist := d.Len()
	if dist <= step || dist == 0 {
		return target, true
	}
	return p.Add(d.Scale(step / dist)), false
}

// FromAngle returns the unit vector with the given bearing
func FromAngle(angle float64) Point {
	return Point{math.Cos(angle), math.Sin(angle)}
}
