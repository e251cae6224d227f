package terminal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mroik/render-3d/pkg/core"
	"github.com/Mroik/render-3d/pkg/geometry"
	"github.com/Mroik/render-3d/pkg/renderer"
	"github.com/Mroik/render-3d/pkg/scene"
)

func smallScene() (*scene.Scene, *geometry.Cube) {
	cube := &geometry.Cube{Center: core.NewVec3(0, 0, 40), Size: 10, Steps: 20}
	return &scene.Scene{
		Name: "small",
		Config: renderer.Config{
			Width:         20,
			Height:        10,
			FocalDistance: 20,
			Light:         core.NewVec3(0, 0, -8),
		},
		Items: []geometry.Item{cube},
		Spin:  scene.Spin{Yaw: 0.1, Pitch: 0.05},
	}, cube
}

func TestAnimateFrameCount(t *testing.T) {
	s, cube := smallScene()
	var buf bytes.Buffer
	d := NewDisplay(&buf, false)

	var indexes []int
	err := Animate(context.Background(), d, s, Options{
		Frames: 3,
		OnFrame: func(index int, frame *renderer.Frame, stats renderer.RenderStats) error {
			indexes = append(indexes, index)
			assert.Equal(t, 20, frame.Width)
			assert.Positive(t, stats.CoveredPixels)
			return nil
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, indexes)
	assert.Equal(t, 3, d.Presented())
	assert.Equal(t, 30, strings.Count(buf.String(), "\n"))
	assert.InDelta(t, 0.3, cube.Yaw, 1e-12)
	assert.InDelta(t, 0.15, cube.Pitch, 1e-12)
}

func TestAnimateWithoutDisplay(t *testing.T) {
	s, _ := smallScene()

	frames := 0
	err := Animate(context.Background(), nil, s, Options{
		Frames: 2,
		OnFrame: func(int, *renderer.Frame, renderer.RenderStats) error {
			frames++
			return nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, frames)
}

func TestAnimateStopsOnCancel(t *testing.T) {
	s, _ := smallScene()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames := 0
	err := Animate(ctx, nil, s, Options{
		Delay: time.Hour,
		OnFrame: func(int, *renderer.Frame, renderer.RenderStats) error {
			frames++
			cancel()
			return nil
		},
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, frames, "cancel should interrupt the delay")
}

func TestAnimateUnboundedUntilDeadline(t *testing.T) {
	s, _ := smallScene()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	frames := 0
	err := Animate(ctx, nil, s, Options{
		Delay: 5 * time.Millisecond,
		OnFrame: func(int, *renderer.Frame, renderer.RenderStats) error {
			frames++
			return nil
		},
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, frames)
}

func TestAnimateCallbackError(t *testing.T) {
	s, _ := smallScene()
	stop := errors.New("disk full")

	err := Animate(context.Background(), nil, s, Options{
		Frames: 5,
		OnFrame: func(index int, _ *renderer.Frame, _ renderer.RenderStats) error {
			if index == 1 {
				return stop
			}
			return nil
		},
	})
	assert.ErrorIs(t, err, stop)
}

func TestAnimateInvalidScene(t *testing.T) {
	s := &scene.Scene{Name: "empty"}

	err := Animate(context.Background(), nil, s, Options{Frames: 1})
	assert.ErrorIs(t, err, renderer.ErrInvalidDimension)
}

func TestAnimateRestoresCursor(t *testing.T) {
	s, _ := smallScene()
	var buf bytes.Buffer
	d := NewDisplay(&buf, true)

	err := Animate(context.Background(), d, s, Options{
		Frames: 1,
		OnFrame: func(int, *renderer.Frame, renderer.RenderStats) error {
			return errors.New("stop")
		},
	})
	require.Error(t, err)
	assert.True(t, strings.HasSuffix(buf.String(), "\x1b[?25h"))
}
