package grid

import (
	"testing"

	"github.com/trickybestia/cocsim/core"
)

func TestDropZoneExcludesFootprintAndNeighbors(t *testing.T) {
	g := New(12)
	fps := []Footprint{
		{Entity: 1, Area: core.Area{X: 3, Y: 3, Width: 2, Height: 2}, AffectsDropZone: true, Blocks: true},
		{Entity: 2, Area: core.Area{X: 9, Y: 8, Width: 1, Height: 1}, AffectsDropZone: true, Blocks: true, Wall: true},
	}
	g.Rebuild(fps)

	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			blocked := false
			for _, fp := range fps {
				a := fp.Area
				// 8-adjacent or inside
				if x >= a.X-1 && x <= a.X+a.Width && y >= a.Y-1 && y <= a.Y+a.Height {
					blocked = true
				}
			}
			if got := g.DropZone.Droppable(x, y); got == blocked {
				t.Errorf("tile (%d,%d): droppable=%v, want %v", x, y, got, !blocked)
			}
		}
	}

	if g.DropZone.Droppable(-1, 0) || g.DropZone.Droppable(0, 12) {
		t.Error("tiles outside the map must not be droppable")
	}
}

func TestDropZoneIgnoresNonAffectingFootprints(t *testing.T) {
	g := New(6)
	g.Rebuild([]Footprint{{Entity: 1, Area: core.Area{X: 2, Y: 2, Width: 1, Height: 1}}})
	if got := g.DropZone.Count(); got != 36 {
		t.Errorf("Count() = %d, want 36", got)
	}
}

func TestCollisionInsetAndWalls(t *testing.T) {
	g := New(10)
	g.Rebuild([]Footprint{
		{Entity: 1, Area: core.Area{X: 2, Y: 2, Width: 3, Height: 3}, AffectsDropZone: true, Blocks: true},
		{Entity: 2, Area: core.Area{X: 7, Y: 7, Width: 1, Height: 1}, AffectsDropZone: true, Blocks: true, Wall: true},
	})
	c := g.Collision

	if c.Size() != 20 {
		t.Fatalf("Size() = %d, want 20", c.Size())
	}
	// Outer half tile of a 3x3 building stays walkable
	if c.Blocked(4, 4) {
		t.Error("cell (4,4) on building edge should be free")
	}
	if !c.Blocked(5, 5) || !c.Blocked(8, 8) {
		t.Error("building interior should be blocked")
	}
	if c.Blocked(9, 9) {
		t.Error("cell (9,9) on far building edge should be free")
	}

	for _, cell := range [][2]int{{14, 14}, {15, 14}, {14, 15}, {15, 15}} {
		e, wall := c.Wall(cell[0], cell[1])
		if !wall || e != 2 {
			t.Errorf("cell %v: wall=%v entity=%d, want wall of entity 2", cell, wall, e)
		}
	}
	if !c.Blocked(-1, 3) {
		t.Error("cells outside grid must be blocked")
	}
}

func TestOccupancyPlaceDetectsOverlap(t *testing.T) {
	o := NewOccupancy(8)
	if _, ok := o.Place(core.Area{X: 1, Y: 1, Width: 3, Height: 3}, 1); !ok {
		t.Fatal("first placement should succeed")
	}
	other, ok := o.Place(core.Area{X: 3, Y: 3, Width: 2, Height: 2}, 2)
	if ok || other != 1 {
		t.Errorf("Place() = (%d, %v), want (1, false)", other, ok)
	}
	if o.At(4, 4) != core.NoEntity {
		t.Error("failed placement must not claim tiles")
	}
	if o.At(2, 2) != 1 {
		t.Errorf("At(2,2) = %d, want 1", o.At(2, 2))
	}
}

func TestRebuildClearsDirty(t *testing.T) {
	g := New(4)
	if !g.Dirty {
		t.Fatal("new grids should start dirty")
	}
	g.Rebuild(nil)
	if g.Dirty || g.Version != 1 {
		t.Errorf("after rebuild Dirty=%v Version=%d", g.Dirty, g.Version)
	}
}
