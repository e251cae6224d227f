package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mroik/render-3d/pkg/core"
)

const tolerance = 1e-9

func assertVecNear(t *testing.T, expected, actual core.Vec3, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, 0, expected.Subtract(actual).Length(), tolerance, msgAndArgs...)
}

func TestNewCube_InvalidSize(t *testing.T) {
	for _, size := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewCube(core.NewVec3(0, 0, 0), size, 0, 0)
		assert.ErrorIs(t, err, ErrInvalidItem, "size %v", size)
	}
}

func TestCube_Faces_AxisAligned(t *testing.T) {
	cube, err := NewCube(core.NewVec3(1, 2, 3), 4, 0, 0)
	require.NoError(t, err)

	faces := cube.Faces()
	require.Len(t, faces, 6)

	// The face looking at the camera comes first
	expectedNormals := []core.Vec3{
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, -1, 0),
		core.NewVec3(-1, 0, 0),
		core.NewVec3(1, 0, 0),
	}
	for i, face := range faces {
		assertVecNear(t, expectedNormals[i], face.Normal, "face %d normal", i)
	}
}

func TestCube_Faces_Basis(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float64
	}{
		{"axis aligned", 0, 0},
		{"yaw only", 0.6, 0},
		{"pitch only", 0, 0.9},
		{"composed rotation", 0.4, 0.7},
		{"large angles", 5.1, -3.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center := core.NewVec3(10, -5, 40)
			cube, err := NewCube(center, 6, tt.yaw, tt.pitch)
			require.NoError(t, err)

			faces := cube.Faces()
			require.Len(t, faces, 6)

			for i, face := range faces {
				assert.InDelta(t, 1, face.Normal.Length(), tolerance, "face %d normal length", i)
				assert.InDelta(t, 6, face.U.Length(), tolerance, "face %d U length", i)
				assert.InDelta(t, 6, face.V.Length(), tolerance, "face %d V length", i)
				assert.InDelta(t, 0, face.U.Dot(face.V), tolerance, "face %d U·V", i)
				assert.InDelta(t, 0, face.U.Dot(face.Normal), tolerance, "face %d U·N", i)
				assert.InDelta(t, 0, face.V.Dot(face.Normal), tolerance, "face %d V·N", i)

				faceCenter := face.Corner.Add(face.U.Multiply(0.5)).Add(face.V.Multiply(0.5))
				assertVecNear(t, center.Add(face.Normal.Multiply(3)), faceCenter, "face %d center", i)
			}

			// Opposite faces come in pairs
			sum := core.Vec3{}
			for _, face := range faces {
				sum = sum.Add(face.Normal)
			}
			assertVecNear(t, core.Vec3{}, sum)
		})
	}
}

func TestCube_GeneratePoints_Count(t *testing.T) {
	cube, err := NewCube(core.NewVec3(0, 0, 50), 20, 0, 0)
	require.NoError(t, err)

	samples := cube.GeneratePoints()
	assert.Len(t, samples, 6*101*101)

	cube.Steps = 4
	assert.Len(t, cube.GeneratePoints(), 6*5*5)
}

func TestCube_GeneratePoints_OnSurface(t *testing.T) {
	center := core.NewVec3(400, 300, 100)
	cube, err := NewCube(center, 20, 0.3, 1.1)
	require.NoError(t, err)
	cube.Steps = 10

	for _, s := range cube.GeneratePoints() {
		offset := s.Position.Subtract(center)
		assert.InDelta(t, 10, offset.Dot(s.Normal), 1e-6, "sample %v not on its face plane", s.Position)

		local := offset.RotateY(-cube.Yaw).RotateX(-cube.Pitch)
		extent := math.Max(math.Abs(local.X), math.Max(math.Abs(local.Y), math.Abs(local.Z)))
		assert.InDelta(t, 10, extent, 1e-6, "sample %v outside the cube surface", s.Position)
	}
}

func TestCube_GeneratePoints_Deterministic(t *testing.T) {
	cube, err := NewCube(core.NewVec3(0, 0, 30), 8, 0.2, 0.1)
	require.NoError(t, err)
	cube.Steps = 6

	assert.Equal(t, cube.GeneratePoints(), cube.GeneratePoints())
}

func TestCube_GeneratePoints_FaceGridEdges(t *testing.T) {
	cube, err := NewCube(core.NewVec3(0, 0, 0), 2, 0, 0)
	require.NoError(t, err)
	cube.Steps = 2

	// The -Z face comes first and spans x,y in [-1, 1] at z = -1
	samples := cube.GeneratePoints()[:9]
	assertVecNear(t, core.NewVec3(1, -1, -1), samples[0].Position)
	assertVecNear(t, core.NewVec3(1, 0, -1), samples[1].Position)
	assertVecNear(t, core.NewVec3(-1, 1, -1), samples[8].Position)
	for _, s := range samples {
		assertVecNear(t, core.NewVec3(0, 0, -1), s.Normal)
	}
}

func TestCube_Faces_ExactPlanesWhenUnrotated(t *testing.T) {
	cube, err := NewCube(core.NewVec3(400, 300, 100), 20, 0, 0)
	require.NoError(t, err)
	cube.Steps = 10

	// Adjacent faces must meet at exactly the same depth along shared edges
	for i, face := range cube.Faces() {
		for _, s := range face.GeneratePoints() {
			switch {
			case s.Normal.Z < 0:
				assert.Equal(t, 90.0, s.Position.Z, "face %d", i)
			case s.Normal.Z > 0:
				assert.Equal(t, 110.0, s.Position.Z, "face %d", i)
			default:
				assert.GreaterOrEqual(t, s.Position.Z, 90.0, "face %d", i)
				assert.LessOrEqual(t, s.Position.Z, 110.0, "face %d", i)
			}
		}
		assert.Equal(t, 0.0, face.U.Dot(face.V), "face %d U·V", i)
	}
}

func TestCube_Rotate(t *testing.T) {
	cube, err := NewCube(core.NewVec3(0, 0, 0), 1, 0.5, 0.25)
	require.NoError(t, err)

	var rotator Rotator = cube
	rotator.Rotate(0.1, -0.05)

	assert.InDelta(t, 0.6, cube.Yaw, tolerance)
	assert.InDelta(t, 0.2, cube.Pitch, tolerance)
}

func TestCube_ZeroSizeProducesNothing(t *testing.T) {
	cube := &Cube{Center: core.NewVec3(0, 0, 10)}
	assert.Empty(t, cube.Faces())
	assert.Empty(t, cube.GeneratePoints())
}
