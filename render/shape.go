// Package render describes simulation frames as renderer-independent shapes
package render

import "github.com/trickybestia/cocsim/core"

// ShapeKind selects how a Shape is drawn
type ShapeKind uint8

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
	ShapeLine
	ShapeArc
)

// Shape is one filled primitive in tile units
// Rect uses X, Y, W, H; Circle uses X, Y, Radius; Line runs from (X, Y) to (X2, Y2);
// Arc is a circle sector from Start to End radians
type Shape struct {
	Kind   ShapeKind `msgpack:"k"`
	X      float64   `msgpack:"x"`
	Y      float64   `msgpack:"y"`
	W      float64   `msgpack:"w,omitempty"`
	H      float64   `msgpack:"h,omitempty"`
	X2     float64   `msgpack:"x2,omitempty"`
	Y2     float64   `msgpack:"y2,omitempty"`
	Radius float64   `msgpack:"r,omitempty"`
	Start  float64   `msgpack:"s,omitempty"`
	End    float64   `msgpack:"e,omitempty"`
	Color  core.RGB  `msgpack:"c"`
	Label  string    `msgpack:"l,omitempty"`
}

func Rect(x, y, w, h float64, color core.RGB) Shape {
	return Shape{Kind: ShapeRect, X: x, Y: y, W: w, H: h, Color: color}
}

func Circle(center core.Point, radius float64, color core.RGB) Shape {
	return Shape{Kind: ShapeCircle, X: center.X, Y: center.Y, Radius: radius, Color: color}
}

func Line(from, to core.Point, color core.RGB) Shape {
	return Shape{Kind: ShapeLine, X: from.X, Y: from.Y, X2: to.X, Y2: to.Y, Color: color}
}

func Arc(center core.Point, radius, start, end float64, color core.RGB) Shape {
	return Shape{Kind: ShapeArc, X: center.X, Y: center.Y, Radius: radius, Start: start, End: end, Color: color}
}

// Bounds returns the axis-aligned box covering the shape
func (s Shape) Bounds() (core.Point, core.Point) {
	switch s.Kind {
	case ShapeRect:
		return core.Pt(s.X, s.Y), core.Pt(s.X+s.W, s.Y+s.H)
	case ShapeLine:
		return core.Pt(min(s.X, s.X2), min(s.Y, s.Y2)), core.Pt(max(s.X, s.X2), max(s.Y, s.Y2))
	default:
		r := core.Pt(s.Radius, s.Radius)
		c := core.Pt(s.X, s.Y)
		return c.Sub(r), c.Add(r)
	}
}

// Frame is everything a viewer needs to draw one tick
// Grid is only filled when the grids changed since the previous frame
type Frame struct {
	Time     float64 `msgpack:"t"`
	Progress string  `msgpack:"p"`
	Size     int     `msgpack:"n"`
	Shapes   []Shape `msgpack:"s"`
	Grid     []Shape `msgpack:"g,omitempty"`
}
