package grid

import "github.com/trickybestia/cocsim/core"

// Footprint is the grid-relevant part of one building
type Footprint struct {
	Entity          core.Entity
	Area            core.Area
	AffectsDropZone bool
	Blocks          bool
	Wall            bool
}

// Grids bundles the derived spatial grids of one map
// None of them is authoritative; Rebuild recreates all from the live footprints
type Grids struct {
	Size int

	DropZone  *DropZone
	Occupancy *Occupancy
	Collision *Collision

	// Dirty requests a rebuild before the next targeting pass
	Dirty bool

	// Version increments on every rebuild
	Version int
}

// New allocates grids for a square map of size tiles
func New(size int) *Grids {
	return &Grids{
		Size:      size,
		DropZone:  NewDropZone(size),
		Occupancy: NewOccupancy(size),
		Collision: NewCollision(size),
		Dirty:     true,
	}
}

// Invalidate schedules a rebuild
func (g *Grids) Invalidate() {
	g.Dirty = true
}

// Rebuild recomputes every grid from the given footprints
func (g *Grids) Rebuild(footprints []Footprint) {
	g.Occupancy.Clear()
	for _, fp := range footprints {
		g.Occupancy.Place(fp.Area, fp.Entity)
	}
	g.DropZone.rebuild(footprints)
	g.Collision.rebuild(footprints)

	g.Dirty = false
	g.Version++
}
