package renderer

import (
	"math"

	"github.com/Mroik/render-3d/pkg/core"
)

// Camera is a pinhole camera looking down the +Z axis
type Camera struct {
	Position      core.Point3 // Camera position; only X and Y offset the projection
	FocalDistance float64     // Projection scale, must be positive
}

// Projection is a point mapped to screen space
type Projection struct {
	X, Y  float64 // Screen coordinates before truncation to pixels
	Depth float64 // World z of the projected point, used by the depth test
}

// Project maps a world-space point onto a screen whose origin sits at
// (centerX, centerY). X and Y offsets from the camera are scaled by
// FocalDistance / p.Z; the depth is p.Z itself.
//
// Points with z <= 0 are behind the camera and are rejected, as are
// non-finite points, so the perspective divide never sees a zero.
func (c Camera) Project(p core.Point3, centerX, centerY float64) (Projection, bool) {
	if !p.IsFinite() || p.Z <= 0 {
		return Projection{}, false
	}

	scale := c.FocalDistance / p.Z
	proj := Projection{
		X:     centerX + (p.X-c.Position.X)*scale,
		Y:     centerY + (p.Y-c.Position.Y)*scale,
		Depth: p.Z,
	}
	if math.IsNaN(proj.X) || math.IsNaN(proj.Y) {
		return Projection{}, false
	}
	return proj, true
}
