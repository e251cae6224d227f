package geometry

import (
	"fmt"
	"math"

	"github.com/Mroik/render-3d/pkg/core"
)

// Quadrant offsets combined to reach every face. The azimuth starts at the
// -Z face, so an unrotated cube enumerates the face looking at the camera
// first and keeps its shared edges on equal-depth ties.
var (
	azimuthQuadrants   = [4]float64{math.Pi, 3 * math.Pi / 2, 0, math.Pi / 2}
	elevationQuadrants = [4]float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
)

// Cube represents an axis-rotated cube sampled face by face with flat shading
type Cube struct {
	Center core.Point3 // Center point of the cube
	Size   float64     // Edge length
	Yaw    float64     // Rotation around the vertical axis in radians
	Pitch  float64     // Rotation around the horizontal axis in radians
	Steps  int         // Grid subdivisions per edge, 0 means DefaultSteps
}

// NewCube creates a new cube with the given center, edge length and orientation
func NewCube(center core.Point3, size, yaw, pitch float64) (*Cube, error) {
	if !(size > 0) || math.IsInf(size, 1) {
		return nil, fmt.Errorf("%w: cube size must be positive, got %v", ErrInvalidItem, size)
	}
	return &Cube{
		Center: center,
		Size:   size,
		Yaw:    yaw,
		Pitch:  pitch,
	}, nil
}

// Rotate adds to the cube's orientation angles
func (c *Cube) Rotate(dYaw, dPitch float64) {
	c.Yaw += dYaw
	c.Pitch += dPitch
}

// orient maps a local direction through the cube's orientation: pitch about X,
// then yaw about Y
func (c *Cube) orient(v core.Vec3) core.Vec3 {
	return v.RotateX(c.Pitch).RotateY(c.Yaw)
}

// Faces returns the cube's distinct faces as quads.
//
// Every combination of the four quadrant offsets on both axes yields a face
// direction; the sixteen combinations cover the six faces with duplicates, so
// only the first quad for each direction is kept. The first tangent is taken at
// zero pitch in local space, which keeps the basis orthonormal for the polar
// faces and for any composed yaw/pitch, where evaluating it at the rotated
// polar angle would collapse onto the normal.
func (c *Cube) Faces() []*Quad {
	if !(c.Size > 0) {
		return nil
	}

	half := c.Size / 2
	faces := make([]*Quad, 0, 6)
	seen := make(map[[3]int64]bool, 6)

	for _, theta := range azimuthQuadrants {
		for _, phi := range elevationQuadrants {
			normal := c.orient(axisDirection(theta, phi))

			key := directionKey(normal)
			if seen[key] {
				continue
			}
			seen[key] = true

			t1 := c.orient(axisDirection(theta+math.Pi/2, 0))
			t2 := c.orient(axisDirection(theta, phi+math.Pi/2))

			corner := c.Center.
				Add(normal.Multiply(half)).
				Subtract(t1.Multiply(half)).
				Subtract(t2.Multiply(half))

			faces = append(faces, &Quad{
				Corner: corner,
				U:      t1.Multiply(c.Size),
				V:      t2.Multiply(c.Size),
				Normal: normal,
				Steps:  c.Steps,
			})
		}
	}

	return faces
}

// GeneratePoints samples every face of the cube on a grid; each sample carries
// its face direction as the normal
func (c *Cube) GeneratePoints() []Sample {
	faces := c.Faces()
	if len(faces) == 0 {
		return nil
	}

	n := faces[0].steps()
	samples := make([]Sample, 0, len(faces)*(n+1)*(n+1))
	for _, face := range faces {
		samples = append(samples, face.GeneratePoints()...)
	}
	return samples
}

// axisDirection returns core.Direction for quadrant angles with each component
// rounded to -1, 0 or 1, so faces of an unrotated cube lie exactly on their
// planes
func axisDirection(theta, phi float64) core.Vec3 {
	d := core.Direction(theta, phi)
	return core.NewVec3(math.Round(d.X), math.Round(d.Y), math.Round(d.Z))
}

// directionKey quantizes a unit direction so that numerically equal face
// directions collide
func directionKey(v core.Vec3) [3]int64 {
	const scale = 1e6
	return [3]int64{
		int64(math.Round(v.X * scale)),
		int64(math.Round(v.Y * scale)),
		int64(math.Round(v.Z * scale)),
	}
}
