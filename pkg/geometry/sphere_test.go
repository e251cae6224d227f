package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mroik/render-3d/pkg/core"
)

func TestNewSphere_InvalidRadius(t *testing.T) {
	for _, radius := range []float64{0, -2, math.NaN()} {
		_, err := NewSphere(core.NewVec3(0, 0, 0), radius)
		assert.ErrorIs(t, err, ErrInvalidItem, "radius %v", radius)
	}
}

func TestSphere_GeneratePoints(t *testing.T) {
	center := core.NewVec3(0, 0, 20)
	sphere, err := NewSphere(center, 5)
	require.NoError(t, err)
	sphere.Rings = 8
	sphere.Segments = 16

	samples := sphere.GeneratePoints()
	require.Len(t, samples, 9*16)

	for _, s := range samples {
		offset := s.Position.Subtract(center)
		assert.InDelta(t, 5, offset.Length(), 1e-9)
		assert.InDelta(t, 1, s.Normal.Length(), 1e-9)
		assertVecNear(t, offset.Multiply(1.0/5), s.Normal)
	}

	// First ring is the south pole, last ring the north pole
	assert.InDelta(t, -5, samples[0].Position.Y, 1e-9)
	assert.InDelta(t, 5, samples[len(samples)-1].Position.Y, 1e-9)
}

func TestSphere_DefaultResolution(t *testing.T) {
	sphere, err := NewSphere(core.NewVec3(0, 0, 20), 1)
	require.NoError(t, err)
	assert.Len(t, sphere.GeneratePoints(), (defaultSphereRings+1)*defaultSphereSegments)
}
