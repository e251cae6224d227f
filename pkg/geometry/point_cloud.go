package geometry

import (
	"fmt"

	"github.com/Mroik/render-3d/pkg/core"
)

// PointCloud is a fixed set of oriented points, typically loaded from a PLY scan
type PointCloud struct {
	samples []Sample
}

// NewPointCloud pairs positions with normals. Both slices must have the same length.
func NewPointCloud(positions []core.Point3, normals []core.Normal3) (*PointCloud, error) {
	if len(positions) != len(normals) {
		return nil, fmt.Errorf("%w: %d positions but %d normals", ErrInvalidItem, len(positions), len(normals))
	}

	samples := make([]Sample, len(positions))
	for i := range positions {
		samples[i] = Sample{Position: positions[i], Normal: normals[i]}
	}
	return &PointCloud{samples: samples}, nil
}

// Transform scales every position about the origin and then translates it.
// Normals are left untouched.
func (pc *PointCloud) Transform(scale float64, offset core.Vec3) {
	for i := range pc.samples {
		pc.samples[i].Position = pc.samples[i].Position.Multiply(scale).Add(offset)
	}
}

// Len returns the number of points in the cloud
func (pc *PointCloud) Len() int {
	return len(pc.samples)
}

// GeneratePoints returns a copy of the stored samples in load order
func (pc *PointCloud) GeneratePoints() []Sample {
	samples := make([]Sample, len(pc.samples))
	copy(samples, pc.samples)
	return samples
}
