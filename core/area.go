package core

// Area is an integer tile rectangle, used for building footprints
type Area struct {
	X, Y          int // Top-left tile
	Width, Height int // Dimensions in tiles (minimum 1x1)
}

// Contains reports whether tile (x, y) lies within the area
func (a Area) Contains(x, y int) bool {
	return x >= a.X && x < a.X+a.Width && y >= a.Y && y < a.Y+a.Height
}

// Overlaps reports whether two areas share at least one tile
func (a Area) Overlaps(b Area) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}

// Center returns the geometric center in tile units
func (a Area) Center() Point {
	return Point{
		X: float64(a.X) + float64(a.Width)/2,
		Y: float64(a.Y) + float64(a.Height)/2,
	}
}

// Expand grows the area by n tiles on every side
func (a Area) Expand(n int) Area {
	return Area{X: a.X - n, Y: a.Y - n, Width: a.Width + 2*n, Height: a.Height + 2*n}
}
