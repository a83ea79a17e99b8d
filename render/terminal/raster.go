package terminal

import (
	"fmt"
	"math"

	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/render"
	"github.com/trickybestia/cocsim/vmath"
)

// Raster maps tile coordinates onto cells
// Terminal cells are about twice as tall as wide, so a tile is two columns by one row
type Raster struct {
	ScaleX, ScaleY   float64
	OriginX, OriginY int
}

// DefaultRaster leaves the top row for the status line
func DefaultRaster() Raster {
	return Raster{ScaleX: 2, ScaleY: 1, OriginY: 1}
}

// CellsFor returns the buffer size needed for a map of n tiles
func (r Raster) CellsFor(n int) (int, int) {
	return r.OriginX + int(math.Ceil(float64(n)*r.ScaleX)), r.OriginY + int(math.Ceil(float64(n)*r.ScaleY))
}

// span returns the half-open cell range overlapping tiles [a, b)
func span(a, b, scale float64, origin int) (int, int) {
	lo := int(math.Floor(a * scale))
	hi := int(math.Ceil(b * scale))
	if hi <= lo {
		hi = lo + 1
	}
	return lo + origin, hi + origin
}

func (r Raster) center(cx, cy int) core.Point {
	return core.Pt((float64(cx-r.OriginX)+0.5)/r.ScaleX, (float64(cy-r.OriginY)+0.5)/r.ScaleY)
}

func (r Raster) cell(p core.Point) (int, int) {
	return int(math.Floor(p.X*r.ScaleX)) + r.OriginX, int(math.Floor(p.Y*r.ScaleY)) + r.OriginY
}

// DrawFrame paints the grid layer, then sector arcs, then everything else, then the status line
func (r Raster) DrawFrame(b *Buffer, grid []render.Shape, f render.Frame, status string) {
	for _, s := range grid {
		r.DrawShape(b, s)
	}
	for _, s := range f.Shapes {
		if s.Kind == render.ShapeArc {
			r.DrawShape(b, s)
		}
	}
	for _, s := range f.Shapes {
		if s.Kind != render.ShapeArc {
			r.DrawShape(b, s)
		}
	}

	line := fmt.Sprintf("%6.2fs  %s", f.Time, f.Progress)
	if status != "" {
		line += "  " + status
	}
	w, _ := b.Size()
	for x := 0; x < w; x++ {
		b.SetBg(x, 0, core.RGBBlack)
	}
	b.Text(0, 0, line, core.RGBWhite)
}

// DrawShape paints one shape
func (r Raster) DrawShape(b *Buffer, s render.Shape) {
	switch s.Kind {
	case render.ShapeRect:
		x0, x1 := span(s.X, s.X+s.W, r.ScaleX, r.OriginX)
		y0, y1 := span(s.Y, s.Y+s.H, r.ScaleY, r.OriginY)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				b.SetBg(x, y, s.Color)
			}
		}
		if s.Label != "" {
			label := s.Label
			if n := x1 - x0; len(label) > n {
				label = label[:n]
			}
			b.Text(x0, y0, label, core.RGBWhite)
		}

	case render.ShapeCircle:
		r.disc(b, s, func(float64) bool { return true })

	case render.ShapeArc:
		mid := (s.Start + s.End) / 2
		half := (s.End - s.Start) / 2
		r.disc(b, s, func(angle float64) bool { return vmath.AngleInArc(angle, mid, half) })

	case render.ShapeLine:
		from, to := core.Pt(s.X, s.Y), core.Pt(s.X2, s.Y2)
		steps := int(math.Ceil(from.Dist(to)*max(r.ScaleX, r.ScaleY)*2)) + 1
		for i := 0; i <= steps; i++ {
			x, y := r.cell(from.Lerp(to, float64(i)/float64(steps)))
			b.SetBg(x, y, s.Color)
		}
	}
}

// disc fills cells whose centers lie inside the circle and pass keep
// A circle smaller than a cell still marks the cell holding its center
func (r Raster) disc(b *Buffer, s render.Shape, keep func(angle float64) bool) {
	c := core.Pt(s.X, s.Y)
	lo, hi := s.Bounds()
	x0, x1 := span(lo.X, hi.X, r.ScaleX, r.OriginX)
	y0, y1 := span(lo.Y, hi.Y, r.ScaleY, r.OriginY)

	painted := false
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			d := r.center(x, y).Sub(c)
			if d.Len() > s.Radius || !keep(d.Angle()) {
				continue
			}
			b.SetBg(x, y, s.Color)
			painted = true
		}
	}
	if !painted && s.Kind == render.ShapeCircle {
		x, y := r.cell(c)
		b.SetBg(x, y, s.Color)
	}
}
