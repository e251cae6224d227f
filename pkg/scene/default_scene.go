package scene

import (
	"sort"

	"github.com/Mroik/render-3d/pkg/core"
	"github.com/Mroik/render-3d/pkg/geometry"
	"github.com/Mroik/render-3d/pkg/renderer"
)

// builtin describes a scene constructed in code
type builtin struct {
	description string
	create      func() *Scene
}

const (
	cubeDescription         = "Single cube on the camera axis in a 90x60 view"
	spinningCubeDescription = "Large tumbling cube with graded shading"
	cubesDescription        = "Two cubes, the nearer one partly hiding the other"
	shapesDescription       = "Cube and sphere standing on a floor"
)

var builtins = map[string]builtin{
	"cube":          {description: cubeDescription, create: NewCubeScene},
	"spinning-cube": {description: spinningCubeDescription, create: NewSpinningCubeScene},
	"cubes":         {description: cubesDescription, create: NewCubesScene},
	"shapes":        {description: shapesDescription, create: NewShapesScene},
}

// BuiltinNames returns the names of the scenes constructed in code, sorted
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// gradedLight spreads unit normals facing the camera across most of the
// default ramp
var gradedLight = core.NewVec3(-4, -6, -8)

// NewCubeScene creates the reference scene: a 20-unit cube 100 units in front
// of a camera at (400, 300, 0), lit from (500, 600, 0)
func NewCubeScene() *Scene {
	return &Scene{
		Name:        "cube",
		Description: cubeDescription,
		Config:      renderer.DefaultConfig(),
		Items: []geometry.Item{
			&geometry.Cube{Center: core.NewVec3(400, 300, 100), Size: 20},
		},
		Spin: Spin{Yaw: 0.05, Pitch: 0.03},
	}
}

// NewSpinningCubeScene creates a cube that fills most of the view
func NewSpinningCubeScene() *Scene {
	return &Scene{
		Name:        "spinning-cube",
		Description: spinningCubeDescription,
		Config: renderer.Config{
			Width:         90,
			Height:        60,
			FocalDistance: 50,
			Camera:        core.NewVec3(0, 0, 0),
			Light:         gradedLight,
		},
		Items: []geometry.Item{
			&geometry.Cube{Center: core.NewVec3(0, 0, 80), Size: 30, Yaw: 0.6, Pitch: 0.4},
		},
		Spin: Spin{Yaw: 0.07, Pitch: 0.04},
	}
}

// NewCubesScene creates two overlapping cubes at different depths
func NewCubesScene() *Scene {
	return &Scene{
		Name:        "cubes",
		Description: cubesDescription,
		Config: renderer.Config{
			Width:         90,
			Height:        60,
			FocalDistance: 50,
			Camera:        core.NewVec3(0, 0, 0),
			Light:         gradedLight,
		},
		Items: []geometry.Item{
			&geometry.Cube{Center: core.NewVec3(-8, 0, 70), Size: 24, Yaw: 0.5},
			&geometry.Cube{Center: core.NewVec3(10, 4, 95), Size: 24, Yaw: -0.3, Pitch: 0.3},
		},
		Spin: Spin{Yaw: 0.04},
	}
}

// NewShapesScene creates a cube and a sphere above a floor quad. World +Y
// points down the screen, so the floor sits at positive Y.
func NewShapesScene() *Scene {
	return &Scene{
		Name:        "shapes",
		Description: shapesDescription,
		Config: renderer.Config{
			Width:         90,
			Height:        60,
			FocalDistance: 60,
			Camera:        core.NewVec3(0, 0, 0),
			Light:         core.NewVec3(-3, -7, -7),
		},
		Items: []geometry.Item{
			&geometry.Cube{Center: core.NewVec3(-15, 10, 90), Size: 25, Yaw: 0.6, Pitch: 0.4},
			&geometry.Sphere{Center: core.NewVec3(20, 12, 100), Radius: 13},
			&geometry.Quad{
				Corner: core.NewVec3(-40, 25, 60),
				U:      core.NewVec3(80, 0, 0),
				V:      core.NewVec3(0, 0, 80),
				Normal: core.NewVec3(0, -1, 0),
				Steps:  160,
			},
		},
		Spin: Spin{Yaw: 0.05},
	}
}
