package vmath

import (
	"math"

	"github.com/trickybestia/cocsim/core"
)

// RayRectExit returns the distance t >= 0 along origin + t*dir where a ray
// starting inside the rect [min, max] leaves it. dir must be non-zero
func RayRectExit(origin, dir, min, max core.Point) float64 {
	t := math.Inf(1)
	if dir.X > 0 {
		t = math.Min(t, (max.X-origin.X)/dir.X)
	} else if dir.X < 0 {
		t = math.Min(t, (min.X-origin.X)/dir.X)
	}
	if dir.Y > 0 {
		t = math.Min(t, (max.Y-origin.Y)/dir.Y)
	} else if dir.Y < 0 {
		t = math.Min(t, (min.Y-origin.Y)/dir.Y)
	}
	if t < 0 {
		return 0
	}
	return t
}

// RayRectEnter returns the smallest t >= 0 where origin + t*dir enters the
// rect [min, max] from outside, ok=false when the ray misses
func RayRectEnter(origin, dir, min, max core.Point) (float64, bool) {
	tMin, tMax := 0.0, math.Inf(1)

	for axis := 0; axis < 2; axis++ {
		o, d, lo, hi := origin.X, dir.X, min.X, max.X
		if axis == 1 {
			o, d, lo, hi = origin.Y, dir.Y, min.Y, max.Y
		}
		if math.Abs(d) < 1e-12 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// RayCircleEnter returns the smallest t >= 0 where origin + t*dir hits the
// circle boundary, ok=false when the ray misses. dir must be a unit vector
func RayCircleEnter(origin, dir, center core.Point, radius float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.LenSq() - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
