package scene

import (
	"errors"
	"fmt"

	"github.com/Mroik/render-3d/pkg/core"
	"github.com/Mroik/render-3d/pkg/geometry"
	"github.com/Mroik/render-3d/pkg/renderer"
)

var (
	// ErrUnknownScene is returned when a scene name matches no built-in or file
	ErrUnknownScene = errors.New("unknown scene")
	// ErrInvalidScene is returned for scene files that cannot be turned into a scene
	ErrInvalidScene = errors.New("invalid scene")
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Description string
	Config      renderer.Config
	Items       []geometry.Item // Drawn in order; earlier items win equal-depth ties
	Spin        Spin            // Rotation applied to every Rotator per frame
}

// Spin is the per-frame rotation of animated items, in radians
type Spin struct {
	Yaw   float64
	Pitch float64
}

// Renderer builds a renderer for the scene's configuration holding all of its items.
// Items are shared, so Advance affects renderers built earlier.
func (s *Scene) Renderer() (*renderer.Renderer, error) {
	r, err := renderer.New(s.Config)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", s.Name, err)
	}
	for _, item := range s.Items {
		r.AddItem(item)
	}

	core.Logger().Debug("renderer built",
		"scene", s.Name,
		"items", len(s.Items),
		"width", s.Config.Width,
		"height", s.Config.Height)
	return r, nil
}

// Advance rotates every animated item by the scene's spin. It must not be
// called while a frame is being rendered.
func (s *Scene) Advance() {
	if s.Spin == (Spin{}) {
		return
	}
	for _, item := range s.Items {
		if rotator, ok := item.(geometry.Rotator); ok {
			rotator.Rotate(s.Spin.Yaw, s.Spin.Pitch)
		}
	}
}
