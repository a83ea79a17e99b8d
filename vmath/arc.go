package vmath

import (
	"math"

	"github.com/trickybestia/cocsim/core"
)

// Arc is an angular interval [Start, Start+Width] in radians
type Arc struct {
	Start float64
	Width float64
}

// Contains reports whether angle lies inside the arc
func (a Arc) Contains(angle float64) bool {
	return NormalizeAngle(angle-a.Start) <= a.Width+Epsilon
}

// At returns the angle at fraction t of the arc
func (a Arc) At(t float64) float64 {
	return a.Start + a.Width*t
}

// VisibleArc returns the smallest arc, as seen from the external point from,
// that spans every vertex. Used to aim at the part of a shape facing the viewer
func VisibleArc(from core.Point, vertices []core.Point) Arc {
	if len(vertices) == 0 {
		return Arc{Start: 0, Width: TwoPi}
	}

	base := vertices[0].Sub(from).Angle()
	lo, hi := 0.0, 0.0
	for _, v := range vertices[1:] {
		d := AngleDiff(base, v.Sub(from).Angle())
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return Arc{Start: base + lo, Width: hi - lo}
}
