package grid

import "github.com/trickybestia/cocsim/core"

// Occupancy maps each tile to the building standing on it
type Occupancy struct {
	size  int
	cells []core.Entity
}

// NewOccupancy creates an empty occupancy grid
func NewOccupancy(size int) *Occupancy {
	return &Occupancy{size: size, cells: make([]core.Entity, size*size)}
}

// At returns the occupant of tile (x, y), NoEntity when empty or outside
func (o *Occupancy) At(x, y int) core.Entity {
	if x < 0 || y < 0 || x >= o.size || y >= o.size {
		return core.NoEntity
	}
	return o.cells[y*o.size+x]
}

// Place claims the area's tiles for e
// Returns the first occupant found in the area, in which case nothing is claimed
func (o *Occupancy) Place(a core.Area, e core.Entity) (core.Entity, bool) {
	for y := max(a.Y, 0); y < min(a.Y+a.Height, o.size); y++ {
		for x := max(a.X, 0); x < min(a.X+a.Width, o.size); x++ {
			if other := o.cells[y*o.size+x]; other != core.NoEntity {
				return other, false
			}
		}
	}
	for y := max(a.Y, 0); y < min(a.Y+a.Height, o.size); y++ {
		for x := max(a.X, 0); x < min(a.X+a.Width, o.size); x++ {
			o.cells[y*o.size+x] = e
		}
	}
	return core.NoEntity, true
}

// Clear empties every tile
func (o *Occupancy) Clear() {
	clear(o.cells)
}
