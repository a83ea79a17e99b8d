package grid

import (
	"math"

	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/parameter"
)

// DropZone marks tiles where attacking units may land
type DropZone struct {
	size  int
	cells []bool
}

// NewDropZone creates a fully droppable zone
func NewDropZone(size int) *DropZone {
	d := &DropZone{size: size, cells: make([]bool, size*size)}
	d.rebuild(nil)
	return d
}

// Size returns the edge length in tiles
func (d *DropZone) Size() int { return d.size }

// Droppable reports whether tile (x, y) accepts units, false outside the map
func (d *DropZone) Droppable(x, y int) bool {
	if x < 0 || y < 0 || x >= d.size || y >= d.size {
		return false
	}
	return d.cells[y*d.size+x]
}

// DroppableAt reports whether the tile containing p accepts units
func (d *DropZone) DroppableAt(p core.Point) bool {
	return d.Droppable(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}

// Count returns the number of droppable tiles
func (d *DropZone) Count() int {
	n := 0
	for _, ok := range d.cells {
		if ok {
			n++
		}
	}
	return n
}

func (d *DropZone) rebuild(footprints []Footprint) {
	for i := range d.cells {
		d.cells[i] = true
	}
	for _, fp := range footprints {
		if !fp.AffectsDropZone {
			continue
		}
		a := fp.Area.Expand(parameter.DropZoneBuffer)
		for y := max(a.Y, 0); y < min(a.Y+a.Height, d.size); y++ {
			for x := max(a.X, 0); x < min(a.X+a.Width, d.size); x++ {
				d.cells[y*d.size+x] = false
			}
		}
	}
}
