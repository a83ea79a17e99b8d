package collider

import (
	"math"
	"math/rand/v2"

	"github.com/trickybestia/cocsim/core"
)

// List is the union of its members
type List []Collider

func (l List) AttackArea(attackRange float64) Collider {
	out := make(List, len(l))
	for i, c := range l {
		out[i] = c.AttackArea(attackRange)
	}
	return out
}

// nearestMember returns the index of the member closest to p, -1 for an empty list
func (l List) nearestMember(p core.Point) (int, core.Point) {
	best, bestDist := -1, math.Inf(1)
	var bestPoint core.Point
	for i, c := range l {
		q := c.NearestPoint(p)
		if d := q.DistSq(p); d < bestDist {
			best, bestDist, bestPoint = i, d, q
		}
	}
	return best, bestPoint
}

func (l List) NearestPoint(p core.Point) core.Point {
	if i, q := l.nearestMember(p); i >= 0 {
		return q
	}
	return p
}

func (l List) Translate(offset core.Point) Collider {
	out := make(List, len(l))
	for i, c := range l {
		out[i] = c.Translate(offset)
	}
	return out
}

func (l List) Contains(p core.Point) bool {
	for _, c := range l {
		if c.Contains(p) {
			return true
		}
	}
	return false
}

// Area is the sum of member areas; overlaps are counted twice
func (l List) Area() float64 {
	total := 0.0
	for _, c := range l {
		total += c.Area()
	}
	return total
}

func (l List) Bounds() (core.Point, core.Point) {
	if len(l) == 0 {
		return core.Point{}, core.Point{}
	}
	lo, hi := l[0].Bounds()
	for _, c := range l[1:] {
		a, b := c.Bounds()
		lo = core.Pt(math.Min(lo.X, a.X), math.Min(lo.Y, a.Y))
		hi = core.Pt(math.Max(hi.X, b.X), math.Max(hi.Y, b.Y))
	}
	return lo, hi
}

// RandomPoint picks a member weighted by area, uniformly when all areas are zero
func (l List) RandomPoint(rng *rand.Rand) core.Point {
	if len(l) == 0 {
		return core.Point{}
	}

	total := l.Area()
	if total <= 0 {
		return l[rng.IntN(len(l))].RandomPoint(rng)
	}

	pick := rng.Float64() * total
	for _, c := range l {
		pick -= c.Area()
		if pick < 0 {
			return c.RandomPoint(rng)
		}
	}
	return l[len(l)-1].RandomPoint(rng)
}

func (l List) RandomNearPoint(from core.Point, rng *rand.Rand) core.Point {
	i, _ := l.nearestMember(from)
	if i < 0 {
		return from
	}
	return l[i].RandomNearPoint(from, rng)
}
