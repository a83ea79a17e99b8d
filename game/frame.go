package game

import (
	"github.com/trickybestia/cocsim/component"
	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/render"
)

const (
	healthBarOffset = 0.25
	projectileSize  = 0.15
	arcAlpha        = 0.35
)

// Frame renders the current state
// Grid shapes are included only when the grids changed since the previous call
func (g *Game) Frame() render.Frame {
	f := render.Frame{
		Time:     g.Elapsed(),
		Progress: g.Progress(),
		Size:     g.mapSize,
	}

	grids := g.world.Resources.Grids
	if grids.Version != g.gridVersion {
		g.gridVersion = grids.Version
		f.Grid = g.gridShapes()
	}

	w := g.world
	for _, e := range w.Query().With(w.Visuals).With(w.Positions).Execute() {
		v, _ := w.Visuals.Get(e)
		pos, _ := w.Positions.Get(e)

		switch v.Kind {
		case component.VisualRect:
			if b, ok := w.Buildings.Get(e); ok {
				s := render.Rect(float64(b.X), float64(b.Y), float64(b.Size), float64(b.Size), v.Color)
				s.Label = v.Label
				f.Shapes = append(f.Shapes, s)
			} else {
				f.Shapes = append(f.Shapes, render.Rect(pos.X-v.Radius, pos.Y-v.Radius, 2*v.Radius, 2*v.Radius, v.Color))
			}
		case component.VisualProjectile:
			f.Shapes = append(f.Shapes, render.Circle(pos, projectileSize, v.Color))
		default:
			f.Shapes = append(f.Shapes, render.Circle(pos, v.Radius, v.Color))
		}

		if a := w.Attackers.Ptr(e); a != nil && a.Arc != nil {
			color := core.RGBGrass.Blend(v.Color, arcAlpha)
			f.Shapes = append(f.Shapes, render.Arc(pos, a.MaxRange, a.Arc.Facing-a.Arc.HalfWidth, a.Arc.Facing+a.Arc.HalfWidth, color))
		}

		if h, ok := w.Healths.Get(e); ok && h.Current < h.Max && h.Max > 0 {
			top := pos.Y - v.Radius - healthBarOffset
			from := core.Pt(pos.X-v.Radius, top)
			to := core.Pt(pos.X-v.Radius+2*v.Radius*h.Current/h.Max, top)
			f.Shapes = append(f.Shapes, render.Line(from, to, core.RGBHealth))
		}
	}
	return f
}

func (g *Game) gridShapes() []render.Shape {
	grids := g.world.Resources.Grids
	n := float64(g.mapSize)
	out := []render.Shape{render.Rect(0, 0, n, n, core.RGBGrass)}

	for y := 0; y < g.mapSize; y++ {
		for x := 0; x < g.mapSize; x++ {
			if grids.DropZone.Droppable(x, y) {
				out = append(out, render.Rect(float64(x), float64(y), 1, 1, core.RGBDropZone))
			}
		}
	}

	col := grids.Collision
	cell := 1 / float64(parameter.CollisionTilesPerMapTile)
	for y := 0; y < col.Size(); y++ {
		for x := 0; x < col.Size(); x++ {
			if col.Blocked(x, y) {
				out = append(out, render.Rect(float64(x)*cell, float64(y)*cell, cell, cell, core.RGBCollision))
			}
		}
	}
	return out
}
