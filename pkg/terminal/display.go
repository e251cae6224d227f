package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/Mroik/render-3d/pkg/renderer"
)

// Display presents successive frames on a writer. An interactive display
// redraws in place; otherwise frames are written one after another.
type Display struct {
	out         *termenv.Output
	interactive bool
	presented   int
}

// NewDisplay creates a display writing to w. interactive selects in-place
// redrawing and should be true only when w is a terminal.
func NewDisplay(w io.Writer, interactive bool) *Display {
	return &Display{
		out:         termenv.NewOutput(w),
		interactive: interactive,
	}
}

// Interactive reports whether frames are redrawn in place
func (d *Display) Interactive() bool {
	return d.interactive
}

// Presented returns the number of frames written so far
func (d *Display) Presented() int {
	return d.presented
}

// Begin prepares the screen: the cursor is hidden and the screen cleared
func (d *Display) Begin() {
	if !d.interactive {
		return
	}
	d.out.HideCursor()
	d.out.ClearScreen()
}

// Present writes a frame, returning the cursor to the top-left corner first
// on an interactive display
func (d *Display) Present(frame *renderer.Frame) error {
	if d.interactive {
		d.out.MoveCursor(1, 1)
	}
	if _, err := frame.WriteTo(d.out); err != nil {
		return fmt.Errorf("present frame %d: %w", d.presented, err)
	}
	d.presented++
	return nil
}

// End restores the cursor
func (d *Display) End() {
	if !d.interactive {
		return
	}
	d.out.ShowCursor()
}

// IsTerminal reports whether f is connected to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Size returns the terminal dimensions of f in character cells
func Size(f *os.File) (width, height int, err error) {
	width, height, err = term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("terminal size: %w", err)
	}
	return width, height, nil
}

// Fit sizes config to a terminal of the given dimensions. One row is left for
// the cursor so an in-place redraw does not scroll.
func Fit(config renderer.Config, width, height int) renderer.Config {
	if width > 0 {
		config.Width = width
	}
	if height > 1 {
		config.Height = height - 1
	}
	return config
}
