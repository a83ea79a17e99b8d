package navigation

import "github.com/trickybestia/cocsim/parameter"

// Direction indices into DirVectors: N=0, NE=1, E=2, SE=3, S=4, SW=5, W=6, NW=7
const (
	DirNone   int8 = -1 // Unreached
	DirSource int8 = -2 // Search origin
	DirCount  int8 = 8
)

// DirVectors holds the cell offset of each direction
var DirVectors = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Unreachable is the distance of cells the search never reached
const Unreachable = 1<<30 - 1

var dirCosts = [8]int{
	parameter.PathCostCardinal, parameter.PathCostDiagonal,
	parameter.PathCostCardinal, parameter.PathCostDiagonal,
	parameter.PathCostCardinal, parameter.PathCostDiagonal,
	parameter.PathCostCardinal, parameter.PathCostDiagonal,
}

type heapEntry struct {
	idx  int
	dist int
}

// minHeap orders by distance, then by cell index so equal-cost searches are reproducible
type minHeap []heapEntry

func (h minHeap) less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].idx < h[j].idx
}

func (h *minHeap) push(e heapEntry) {
	*h = append(*h, e)
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *minHeap) pop() heapEntry {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && h.less(right, left) {
			smallest = right
		}
		if !h.less(smallest, i) {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

// CostFunc returns the extra cost of entering cell (x, y), or ok=false if impassable
type CostFunc func(x, y int) (extra int, ok bool)

// FlowField is a single-source weighted shortest-path tree over a grid
// Directions point from each reached cell one step back toward the source
type FlowField struct {
	Width, Height int
	Directions    []int8
	Distances     []int

	SourceX, SourceY int
	Valid            bool

	heap minHeap
}

// NewFlowField allocates a field for a width x height grid
func NewFlowField(width, height int) *FlowField {
	size := width * height
	return &FlowField{
		Width:      width,
		Height:     height,
		Directions: make([]int8, size),
		Distances:  make([]int, size),
		SourceX:    -1,
		SourceY:    -1,
		heap:       make(minHeap, 0, size/4),
	}
}

// Distance returns the path cost from the source to (x, y), Unreachable if none
func (f *FlowField) Distance(x, y int) int {
	if !f.Valid || x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return Unreachable
	}
	return f.Distances[y*f.Width+x]
}

// Compute runs weighted Dijkstra from the source cell
// Edge weight is the cardinal/diagonal step cost plus the entered cell's extra cost
// The source itself is always enterable; diagonals may not cut impassable corners
func (f *FlowField) Compute(sourceX, sourceY int, cost CostFunc) {
	f.Valid = false
	if sourceX < 0 || sourceY < 0 || sourceX >= f.Width || sourceY >= f.Height {
		return
	}

	w := f.Width
	for i := range f.Distances {
		f.Directions[i] = DirNone
		f.Distances[i] = Unreachable
	}

	passable := func(x, y int) bool {
		if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
			return false
		}
		_, ok := cost(x, y)
		return ok
	}

	src := sourceY*w + sourceX
	f.Distances[src] = 0
	f.Directions[src] = DirSource

	f.heap = f.heap[:0]
	f.heap.push(heapEntry{idx: src, dist: 0})

	for len(f.heap) > 0 {
		entry := f.heap.pop()
		if entry.dist > f.Distances[entry.idx] {
			continue
		}
		cx, cy := entry.idx%w, entry.idx/w

		for dir := int8(0); dir < DirCount; dir++ {
			dx, dy := DirVectors[dir][0], DirVectors[dir][1]
			nx, ny := cx+dx, cy+dy
			if nx < 0 || ny < 0 || nx >= f.Width || ny >= f.Height {
				continue
			}
			extra, ok := cost(nx, ny)
			if !ok {
				continue
			}
			if dx != 0 && dy != 0 && (!passable(cx+dx, cy) || !passable(cx, cy+dy)) {
				continue
			}

			nIdx := ny*w + nx
			nd := entry.dist + dirCosts[dir] + extra
			if nd < f.Distances[nIdx] {
				f.Distances[nIdx] = nd
				// Store the step back toward the source
				f.Directions[nIdx] = (dir + 4) % DirCount
				f.heap.push(heapEntry{idx: nIdx, dist: nd})
			}
		}
	}

	f.SourceX, f.SourceY = sourceX, sourceY
	f.Valid = true
}

// Trace returns the cells from the source to (x, y) inclusive, nil if unreachable
func (f *FlowField) Trace(x, y int) [][2]int {
	if f.Distance(x, y) >= Unreachable {
		return nil
	}

	var rev [][2]int
	for {
		rev = append(rev, [2]int{x, y})
		dir := f.Directions[y*f.Width+x]
		if dir == DirSource {
			break
		}
		x += DirVectors[dir][0]
		y += DirVectors[dir][1]
	}

	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}
