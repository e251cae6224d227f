package geometry

import (
	"fmt"
	"math"

	"github.com/Mroik/render-3d/pkg/core"
)

const (
	defaultSphereRings    = 60
	defaultSphereSegments = 120
)

// Sphere represents a sphere sampled on a latitude/longitude grid
type Sphere struct {
	Center   core.Point3
	Radius   float64
	Rings    int // Latitude subdivisions pole to pole, 0 means 60
	Segments int // Longitude subdivisions around the axis, 0 means 120
}

// NewSphere creates a new sphere
func NewSphere(center core.Point3, radius float64) (*Sphere, error) {
	if !(radius > 0) || math.IsInf(radius, 1) {
		return nil, fmt.Errorf("%w: sphere radius must be positive, got %v", ErrInvalidItem, radius)
	}
	return &Sphere{
		Center: center,
		Radius: radius,
	}, nil
}

// GeneratePoints samples the sphere surface. Each sample's normal is the unit
// outward direction from the center.
func (s *Sphere) GeneratePoints() []Sample {
	if !(s.Radius > 0) {
		return nil
	}

	rings := s.Rings
	if rings <= 0 {
		rings = defaultSphereRings
	}
	segments := s.Segments
	if segments <= 0 {
		segments = defaultSphereSegments
	}

	samples := make([]Sample, 0, (rings+1)*segments)
	for r := 0; r <= rings; r++ {
		phi := -math.Pi/2 + math.Pi*float64(r)/float64(rings)
		for seg := 0; seg < segments; seg++ {
			theta := 2 * math.Pi * float64(seg) / float64(segments)
			direction := core.Direction(theta, phi)
			samples = append(samples, Sample{
				Position: s.Center.Add(direction.Multiply(s.Radius)),
				Normal:   direction,
			})
		}
	}
	return samples
}
