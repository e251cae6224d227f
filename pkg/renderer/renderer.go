package renderer

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/Mroik/render-3d/pkg/core"
	"github.com/Mroik/render-3d/pkg/geometry"
)

var (
	// ErrInvalidDimension is returned when width or height is not positive
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrInvalidFocalDistance is returned when the focal distance is not a positive finite number
	ErrInvalidFocalDistance = errors.New("invalid focal distance")
	// ErrInvalidRamp is returned for an unusable luminosity ramp
	ErrInvalidRamp = errors.New("invalid luminosity ramp")
)

// Config contains the projection and shading parameters of a renderer
type Config struct {
	Width         int          // Pixel columns
	Height        int          // Pixel rows
	FocalDistance float64      // Projection scale
	Camera        core.Point3  // Camera position
	Light         core.Normal3 // Light direction, used as is (not normalized)
	Ramp          string       // Luminosity glyphs faintest first, empty means DefaultRamp
}

// DefaultConfig returns a 90x60 view with the camera at (400, 300, 0)
func DefaultConfig() Config {
	return Config{
		Width:         90,
		Height:        60,
		FocalDistance: 10,
		Camera:        core.NewVec3(400, 300, 0),
		Light:         core.NewVec3(500, 600, 0),
		Ramp:          DefaultRamp,
	}
}

// Validate checks the configuration without building a renderer
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, c.Width, c.Height)
	}
	if !(c.FocalDistance > 0) || math.IsInf(c.FocalDistance, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidFocalDistance, c.FocalDistance)
	}
	if _, err := NewRamp(c.Ramp); err != nil {
		return err
	}
	return nil
}

// Renderer projects the samples of its items onto a character grid
type Renderer struct {
	config Config
	camera Camera
	ramp   Ramp
	items  []geometry.Item
}

// New creates a renderer with no items
func New(config Config) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	ramp, err := NewRamp(config.Ramp)
	if err != nil {
		return nil, err
	}

	core.Logger().Debug("renderer configured",
		"width", config.Width,
		"height", config.Height,
		"focal_distance", config.FocalDistance,
		"ramp", ramp.String())

	return &Renderer{
		config: config,
		camera: Camera{Position: config.Camera, FocalDistance: config.FocalDistance},
		ramp:   ramp,
	}, nil
}

// Config returns the renderer configuration
func (r *Renderer) Config() Config {
	return r.config
}

// AddItem appends an item; items are drawn in insertion order
func (r *Renderer) AddItem(item geometry.Item) {
	r.items = append(r.items, item)
}

// Items returns the renderer's items
func (r *Renderer) Items() []geometry.Item {
	return r.items
}

// Convert projects a world-space point. The screen origin is the center of
// the pixel grid. ok is false for points at or behind the camera plane.
func (r *Renderer) Convert(p core.Point3) (Projection, bool) {
	return r.camera.Project(p, float64(r.config.Width)/2, float64(r.config.Height)/2)
}

// pixel truncates a projection to integer pixel coordinates. Coordinates that
// are negative before truncation fall outside the grid.
func (r *Renderer) pixel(p Projection) (x, y int, inside bool) {
	if !(p.X >= 0 && p.X < float64(r.config.Width)) || !(p.Y >= 0 && p.Y < float64(r.config.Height)) {
		return 0, 0, false
	}
	return int(p.X), int(p.Y), true
}

// Render runs the full pipeline and returns the shaded frame. A fresh depth
// buffer is used for every call.
func (r *Renderer) Render() (*Frame, RenderStats) {
	width, height := r.config.Width, r.config.Height
	buffer := NewDepthBuffer(width, height)
	stats := RenderStats{Items: len(r.items)}

	for _, item := range r.items {
		for _, sample := range item.GeneratePoints() {
			stats.TotalSamples++

			proj, ok := r.Convert(sample.Position)
			if !ok {
				stats.BehindCamera++
				continue
			}

			x, y, inside := r.pixel(proj)
			if !inside {
				stats.OutOfFrame++
				continue
			}

			if !buffer.Write(x, y, proj.Depth, sample.Normal) {
				stats.Occluded++
			}
		}
	}

	stats.CoveredPixels = buffer.Covered()

	frame := NewFrame(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			_, normal, ok := buffer.At(x, y)
			if !ok {
				continue
			}

			glyph, clamped := r.ramp.Glyph(normal.Dot(r.config.Light))
			if clamped {
				stats.Clamped++
			}
			frame.Set(x, y, glyph)
		}
	}

	core.Logger().Debug("frame rendered", "stats", stats)
	return frame, stats
}

// Draw renders a frame and writes it to w, one line per row. A write error is
// returned as the terminal error of the call.
func (r *Renderer) Draw(w io.Writer) (RenderStats, error) {
	frame, stats := r.Render()
	if _, err := frame.WriteTo(w); err != nil {
		return stats, fmt.Errorf("write frame: %w", err)
	}
	return stats, nil
}
