package renderer

import "github.com/Mroik/render-3d/pkg/core"

type depthCell struct {
	depth    float64
	normal   core.Normal3
	occupied bool
}

// DepthBuffer holds, per pixel, the depth and normal of the nearest sample
// seen so far. Cells are stored row-major at y*width+x.
type DepthBuffer struct {
	width  int
	height int
	cells  []depthCell
}

// NewDepthBuffer allocates an empty buffer
func NewDepthBuffer(width, height int) *DepthBuffer {
	return &DepthBuffer{
		width:  width,
		height: height,
		cells:  make([]depthCell, width*height),
	}
}

// Write records a sample at (x, y) if the cell is empty or the sample is
// strictly nearer than the current occupant. Non-positive depths and
// coordinates outside the buffer are never recorded. It reports whether the
// cell was updated.
func (b *DepthBuffer) Write(x, y int, depth float64, normal core.Normal3) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || !(depth > 0) {
		return false
	}

	cell := &b.cells[y*b.width+x]
	if cell.occupied && !(depth < cell.depth) {
		return false
	}

	*cell = depthCell{depth: depth, normal: normal, occupied: true}
	return true
}

// At returns the occupant of (x, y), if any
func (b *DepthBuffer) At(x, y int) (depth float64, normal core.Normal3, ok bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, core.Normal3{}, false
	}
	cell := b.cells[y*b.width+x]
	return cell.depth, cell.normal, cell.occupied
}

// Covered returns the number of occupied cells
func (b *DepthBuffer) Covered() int {
	n := 0
	for _, cell := range b.cells {
		if cell.occupied {
			n++
		}
	}
	return n
}
