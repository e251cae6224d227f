package terminal

import (
	"context"
	"time"

	"github.com/Mroik/render-3d/pkg/core"
	"github.com/Mroik/render-3d/pkg/renderer"
	"github.com/Mroik/render-3d/pkg/scene"
)

// FrameFunc is called with every rendered frame; a non-nil error stops the
// animation
type FrameFunc func(index int, frame *renderer.Frame, stats renderer.RenderStats) error

// Options controls an animation run
type Options struct {
	Frames  int           // Frames to render, 0 renders until the context is done
	Delay   time.Duration // Pause between frames
	OnFrame FrameFunc     // Optional per-frame callback
}

// Animate renders the scene repeatedly, advancing it after every frame. Frames
// are presented on d when it is non-nil. It returns the context error when
// cancelled before the requested frame count is reached.
func Animate(ctx context.Context, d *Display, s *scene.Scene, opts Options) error {
	r, err := s.Renderer()
	if err != nil {
		return err
	}

	if d != nil {
		d.Begin()
		defer d.End()
	}

	start := time.Now()
	rendered := 0
	defer func() {
		core.Logger().Debug("animation stopped",
			"scene", s.Name,
			"frames", rendered,
			"elapsed", time.Since(start))
	}()

	for opts.Frames <= 0 || rendered < opts.Frames {
		if err := ctx.Err(); err != nil {
			return err
		}

		frame, stats := r.Render()
		if d != nil {
			if err := d.Present(frame); err != nil {
				return err
			}
		}
		if opts.OnFrame != nil {
			if err := opts.OnFrame(rendered, frame, stats); err != nil {
				return err
			}
		}
		rendered++
		s.Advance()

		if opts.Frames > 0 && rendered == opts.Frames {
			break
		}
		if err := sleep(ctx, opts.Delay); err != nil {
			return err
		}
	}
	return nil
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
