package geometry

import (
	"errors"

	"github.com/Mroik/render-3d/pkg/core"
)

// ErrInvalidItem is returned when an item is constructed with unusable parameters
var ErrInvalidItem = errors.New("invalid item")

// Sample is one visible surface point produced by an Item
type Sample struct {
	Position core.Point3  // World-space position
	Normal   core.Normal3 // Outward surface orientation, not necessarily unit length
}

// Item interface for objects that can enumerate their surface samples.
// GeneratePoints returns a fresh slice on every call. Implementations must be
// deterministic: enumeration order decides which of two equal-depth samples
// wins a pixel.
type Item interface {
	GeneratePoints() []Sample
}

// Rotator is implemented by items whose orientation can be animated between frames
type Rotator interface {
	Rotate(dYaw, dPitch float64)
}
