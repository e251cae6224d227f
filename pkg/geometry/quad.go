package geometry

import (
	"fmt"

	"github.com/Mroik/render-3d/pkg/core"
)

// DefaultSteps is the number of grid subdivisions per edge used when an item
// does not set its own resolution.
const DefaultSteps = 100

// Quad represents a flat parallelogram defined by a corner and two edge vectors,
// sampled on a regular grid
type Quad struct {
	Corner core.Point3  // One corner of the quad
	U      core.Vec3    // First edge vector
	V      core.Vec3    // Second edge vector
	Normal core.Normal3 // Normal carried by every sample
	Steps  int          // Grid subdivisions per edge, 0 means DefaultSteps
}

// NewQuad creates a new quad from a corner point and two edge vectors.
// The normal is the unit vector along U × V.
func NewQuad(corner, u, v core.Vec3) (*Quad, error) {
	normal := u.Cross(v)
	if normal.Length() == 0 {
		return nil, fmt.Errorf("%w: quad edges %v and %v are parallel", ErrInvalidItem, u, v)
	}

	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal.Normalize(),
	}, nil
}

func (q *Quad) steps() int {
	if q.Steps <= 0 {
		return DefaultSteps
	}
	return q.Steps
}

// GeneratePoints samples a (Steps+1)×(Steps+1) grid including both edges,
// stepping along U in the outer loop and V in the inner loop
func (q *Quad) GeneratePoints() []Sample {
	n := q.steps()
	samples := make([]Sample, 0, (n+1)*(n+1))
	for a := 0; a <= n; a++ {
		along := q.U.Multiply(float64(a) / float64(n))
		for b := 0; b <= n; b++ {
			position := q.Corner.Add(along).Add(q.V.Multiply(float64(b) / float64(n)))
			samples = append(samples, Sample{Position: position, Normal: q.Normal})
		}
	}
	return samples
}
