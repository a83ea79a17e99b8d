package collider

import (
	"math/rand/v2"

	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/vmath"
)

// Rect is an axis-aligned rectangle anchored at its top-left corner
type Rect struct {
	Pos  core.Point
	Size core.Point
}

// NewRect creates a rect from top-left corner and dimensions
func NewRect(x, y, w, h float64) Rect {
	return Rect{Pos: core.Pt(x, y), Size: core.Pt(w, h)}
}

// RectFromArea converts an integer tile footprint to a rect
func RectFromArea(a core.Area) Rect {
	return NewRect(float64(a.X), float64(a.Y), float64(a.Width), float64(a.Height))
}

func (r Rect) Max() core.Point    { return r.Pos.Add(r.Size) }
func (r Rect) Center() core.Point { return r.Pos.Add(r.Size.Scale(0.5)) }

func (r Rect) AttackArea(attackRange float64) Collider {
	return Rect{
		Pos:  r.Pos.Sub(core.Pt(attackRange, attackRange)),
		Size: r.Size.Add(core.Pt(2*attackRange, 2*attackRange)),
	}
}

func (r Rect) NearestPoint(p core.Point) core.Point {
	m := r.Max()
	return core.Pt(vmath.Clamp(p.X, r.Pos.X, m.X), vmath.Clamp(p.Y, r.Pos.Y, m.Y))
}

func (r Rect) Translate(offset core.Point) Collider {
	return Rect{Pos: r.Pos.Add(offset), Size: r.Size}
}

func (r Rect) Contains(p core.Point) bool {
	m := r.Max()
	return p.X >= r.Pos.X-vmath.Epsilon && p.X <= m.X+vmath.Epsilon &&
		p.Y >= r.Pos.Y-vmath.Epsilon && p.Y <= m.Y+vmath.Epsilon
}

func (r Rect) Area() float64 {
	return r.Size.X * r.Size.Y
}

func (r Rect) Bounds() (core.Point, core.Point) {
	return r.Pos, r.Max()
}

func (r Rect) RandomPoint(rng *rand.Rand) core.Point {
	return core.Pt(r.Pos.X+rng.Float64()*r.Size.X, r.Pos.Y+rng.Float64()*r.Size.Y)
}

// Vertices returns the four corners clockwise from top-left
func (r Rect) Vertices() [4]core.Point {
	m := r.Max()
	return [4]core.Point{r.Pos, core.Pt(m.X, r.Pos.Y), m, core.Pt(r.Pos.X, m.Y)}
}

func (r Rect) RandomNearPoint(from core.Point, rng *rand.Rand) core.Point {
	if r.Contains(from) {
		return from
	}
	if r.Size.X <= 0 && r.Size.Y <= 0 {
		return r.Pos
	}

	v := r.Vertices()
	arc := vmath.VisibleArc(from, v[:])
	dir := core.FromAngle(arc.At(rng.Float64()))

	t, ok := vmath.RayRectEnter(from, dir, r.Pos, r.Max())
	if !ok {
		// Grazing ray at the arc edge, numerically missed
		return r.NearestPoint(from)
	}
	return r.NearestPoint(from.Add(dir.Scale(t)))
}
