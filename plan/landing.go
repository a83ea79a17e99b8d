package plan

import (
	"fmt"
	"math"

	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/grid"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/vmath"
)

// Landing returns where a unit group with the given ray angle and edge fraction lands
// The ray is walked inward from the map border; the first droppable to blocked tile
// crossing decides the edge. Without a crossing the opposite ray is tried, then the
// border point itself, and last the droppable tile nearest to that border point
// Panics only on an empty drop zone, which a validated map never has
func Landing(dz *grid.DropZone, angle, distance float64) core.Point {
	if p, ok := landingOnRay(dz, angle, distance); ok {
		return p
	}
	if p, ok := landingOnRay(dz, angle+math.Pi, distance); ok {
		return p
	}
	border := borderPoint(dz.Size(), angle)
	if dz.DroppableAt(border) {
		return border
	}
	if p, ok := nearestDroppable(dz, border); ok {
		return p
	}
	panic(fmt.Sprintf("plan: no landing position for angle %.3f", angle))
}

// nearestDroppable returns the center of the droppable tile closest to p
// Ties keep the first tile in row-major order
func nearestDroppable(dz *grid.DropZone, p core.Point) (core.Point, bool) {
	best, bestDist, found := core.Point{}, math.Inf(1), false
	for y := 0; y < dz.Size(); y++ {
		for x := 0; x < dz.Size(); x++ {
			if !dz.Droppable(x, y) {
				continue
			}
			c := core.Pt(float64(x)+0.5, float64(y)+0.5)
			if d := c.DistSq(p); d < bestDist {
				best, bestDist, found = c, d, true
			}
		}
	}
	return best, found
}

// borderPoint is where the ray from the map center leaves the map, kept inside the last tile
func borderPoint(size int, angle float64) core.Point {
	n := float64(size)
	center := core.Pt(n/2, n/2)
	dir := core.FromAngle(angle)
	p := center.Add(dir.Scale(vmath.RayRectExit(center, dir, core.Point{}, core.Pt(n, n))))
	inset := parameter.DropEdgeInset
	return core.Pt(vmath.Clamp(p.X, inset, n-inset), vmath.Clamp(p.Y, inset, n-inset))
}

// landingOnRay steps tile by tile from the border toward the center
func landingOnRay(dz *grid.DropZone, angle, distance float64) (core.Point, bool) {
	n := float64(dz.Size())
	center := core.Pt(n/2, n/2)
	start := borderPoint(dz.Size(), angle)
	total := start.Dist(center)
	if total == 0 {
		return core.Point{}, false
	}
	dir := center.Sub(start).Normalize()

	tx, ty := int(math.Floor(start.X)), int(math.Floor(start.Y))
	stepX, tMaxX, tDeltaX := ddaAxis(start.X, dir.X, tx)
	stepY, tMaxY, tDeltaY := ddaAxis(start.Y, dir.Y, ty)

	frac := vmath.Clamp(distance, parameter.DropEdgeMinFraction, parameter.DropEdgeMaxFraction)
	inset := parameter.DropEdgeInset

	for {
		alongX := tMaxX < tMaxY
		t := tMaxY
		if alongX {
			t = tMaxX
		}
		if t > total {
			return core.Point{}, false
		}

		px, py := tx, ty
		if alongX {
			tx += stepX
			tMaxX += tDeltaX
		} else {
			ty += stepY
			tMaxY += tDeltaY
		}

		if !dz.Droppable(px, py) || dz.Droppable(tx, ty) {
			continue
		}
		if alongX {
			edge := float64(max(px, tx))
			return core.Pt(edge-float64(stepX)*inset, float64(py)+frac), true
		}
		edge := float64(max(py, ty))
		return core.Pt(float64(px)+frac, edge-float64(stepY)*inset), true
	}
}

// ddaAxis returns the step direction, distance to the first tile boundary and
// distance between boundaries along one axis
func ddaAxis(pos, dir float64, tile int) (int, float64, float64) {
	switch {
	case dir > 0:
		return 1, (float64(tile+1) - pos) / dir, 1 / dir
	case dir < 0:
		return -1, (float64(tile) - pos) / dir, -1 / dir
	default:
		return 0, math.Inf(1), math.Inf(1)
	}
}
