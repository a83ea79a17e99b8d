package grid

import (
	"math"

	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/parameter"
)

// Collision is the sub-tile grid ground units path over
type Collision struct {
	size  int // Cells per edge
	cells []core.Entity
	walls []bool
}

// NewCollision creates an empty collision grid for a map of mapSize tiles
func NewCollision(mapSize int) *Collision {
	n := mapSize * parameter.CollisionTilesPerMapTile
	return &Collision{
		size:  n,
		cells: make([]core.Entity, n*n),
		walls: make([]bool, n*n),
	}
}

// Size returns the edge length in cells
func (c *Collision) Size() int { return c.size }

// Blocked reports whether cell (x, y) is occupied, true outside the grid
func (c *Collision) Blocked(x, y int) bool {
	if x < 0 || y < 0 || x >= c.size || y >= c.size {
		return true
	}
	return c.cells[y*c.size+x] != core.NoEntity
}

// Wall returns the wall occupying cell (x, y)
func (c *Collision) Wall(x, y int) (core.Entity, bool) {
	if x < 0 || y < 0 || x >= c.size || y >= c.size {
		return core.NoEntity, false
	}
	i := y*c.size + x
	return c.cells[i], c.walls[i]
}

// Cell returns the cell containing p, clamped to the grid
func (c *Collision) Cell(p core.Point) (int, int) {
	res := float64(parameter.CollisionTilesPerMapTile)
	x := int(math.Floor(p.X * res))
	y := int(math.Floor(p.Y * res))
	return min(max(x, 0), c.size-1), min(max(y, 0), c.size-1)
}

// Center returns the center of cell (x, y) in tile units
func (c *Collision) Center(x, y int) core.Point {
	res := float64(parameter.CollisionTilesPerMapTile)
	return core.Point{X: (float64(x) + 0.5) / res, Y: (float64(y) + 0.5) / res}
}

// Bounds returns the cell range covering [lo, hi] in tile units, clamped
func (c *Collision) Bounds(lo, hi core.Point) (x0, y0, x1, y1 int) {
	x0, y0 = c.Cell(lo)
	x1, y1 = c.Cell(hi)
	return
}

func (c *Collision) rebuild(footprints []Footprint) {
	clear(c.cells)
	clear(c.walls)

	res := parameter.CollisionTilesPerMapTile
	inset := int(parameter.BuildingCollisionInset * float64(res))

	for _, fp := range footprints {
		if !fp.Blocks {
			continue
		}
		a := fp.Area
		x0, y0 := a.X*res, a.Y*res
		x1, y1 := (a.X+a.Width)*res, (a.Y+a.Height)*res
		if !fp.Wall && a.Width > 1 {
			x0, y0, x1, y1 = x0+inset, y0+inset, x1-inset, y1-inset
		}
		for y := max(y0, 0); y < min(y1, c.size); y++ {
			for x := max(x0, 0); x < min(x1, c.size); x++ {
				i := y*c.size + x
				c.cells[i] = fp.Entity
				c.walls[i] = fp.Wall
			}
		}
	}
}
