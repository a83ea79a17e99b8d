// Package terminal draws render frames into a tcell screen
package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/trickybestia/cocsim/core"
)

// Background is used for cells no shape touched
var Background = core.RGB{R: 26, G: 27, B: 38}

// Cell is one character cell
type Cell struct {
	Rune rune
	Fg   core.RGB
	Bg   core.RGB
}

var emptyCell = Cell{Fg: core.RGBWhite, Bg: core.RGBBlack}

// Buffer is a cell compositor with touched tracking
type Buffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
}

// NewBuffer creates a cleared buffer
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts dimensions, reallocating only when capacity is insufficient
func (b *Buffer) Resize(width, height int) {
	size := max(width, 0) * max(height, 0)
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Size returns width and height in cells
func (b *Buffer) Size() (int, int) { return b.width, b.height }

// Clear resets all cells using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = emptyCell
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the cell at x, y and whether anything painted its background
func (b *Buffer) At(x, y int) (Cell, bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	i := y*b.width + x
	return b.cells[i], b.touched[i]
}

// SetBg replaces the background, keeping rune and foreground
func (b *Buffer) SetBg(x, y int, bg core.RGB) {
	if !b.inBounds(x, y) {
		return
	}
	i := y*b.width + x
	b.cells[i].Bg = bg
	b.touched[i] = true
}

// BlendBg mixes bg into the current background
func (b *Buffer) BlendBg(x, y int, bg core.RGB, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	i := y*b.width + x
	if !b.touched[i] {
		b.cells[i].Bg = Background
	}
	b.cells[i].Bg = b.cells[i].Bg.Blend(bg, alpha)
	b.touched[i] = true
}

// SetFg writes a rune over the existing background
func (b *Buffer) SetFg(x, y int, r rune, fg core.RGB) {
	if !b.inBounds(x, y) {
		return
	}
	i := y*b.width + x
	b.cells[i].Rune = r
	b.cells[i].Fg = fg
}

// Text writes s left to right starting at x, y; returns the column after the last rune
func (b *Buffer) Text(x, y int, s string, fg core.RGB) int {
	for _, r := range s {
		b.SetFg(x, y, r, fg)
		x++
	}
	return x
}

func (b *Buffer) finalize() {
	for i := range b.cells {
		if !b.touched[i] {
			b.cells[i].Bg = Background
		}
	}
}

// Flush writes the buffer to screen; the caller calls Show
func (b *Buffer) Flush(screen tcell.Screen) {
	b.finalize()
	for y := 0; y < b.height; y++ {
		row := y * b.width
		for x := 0; x < b.width; x++ {
			c := b.cells[row+x]
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.Foreground(Color(c.Fg)).Background(Color(c.Bg))
			screen.SetContent(x, y, r, nil, style)
		}
	}
}

// Color converts an RGB to a tcell color
func Color(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
