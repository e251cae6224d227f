package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrUnsupportedGlyph is returned when a frame holds a glyph the image font
// cannot draw
var ErrUnsupportedGlyph = errors.New("glyph not drawable in image")

// Frame is a rendered grid of glyphs, one per pixel, stored row-major
type Frame struct {
	Width  int
	Height int
	Cells  []rune
}

// NewFrame creates a frame filled with Blank
func NewFrame(width, height int) *Frame {
	cells := make([]rune, width*height)
	for i := range cells {
		cells[i] = Blank
	}
	return &Frame{Width: width, Height: height, Cells: cells}
}

// At returns the glyph at (x, y)
func (f *Frame) At(x, y int) rune {
	return f.Cells[y*f.Width+x]
}

// Set stores the glyph at (x, y)
func (f *Frame) Set(x, y int, g rune) {
	f.Cells[y*f.Width+x] = g
}

// Row returns row y without its line terminator
func (f *Frame) Row(y int) string {
	return string(f.Cells[y*f.Width : (y+1)*f.Width])
}

// String returns the frame with a newline after every row
func (f *Frame) String() string {
	var sb strings.Builder
	sb.Grow((f.Width + 1) * f.Height)
	for y := 0; y < f.Height; y++ {
		sb.WriteString(f.Row(y))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteTo implements io.WriterTo
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, f.String())
	return int64(n), err
}

// Image draws the frame as white glyphs on black using a fixed 7x13 bitmap
// font. The font covers printable ASCII only; other glyphs leave their cell
// black. EncodePNG rejects such frames.
func (f *Frame) Image() *image.RGBA {
	face := basicfont.Face7x13
	img := image.NewRGBA(image.Rect(0, 0, f.Width*face.Advance, f.Height*face.Height))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
	}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			g := f.At(x, y)
			if g == Blank {
				continue
			}
			d.Dot = fixed.P(x*face.Advance, y*face.Height+face.Ascent)
			d.DrawString(string(g))
		}
	}
	return img
}

// EncodePNG writes the frame image as PNG. Frames holding glyphs outside
// printable ASCII fail with ErrUnsupportedGlyph before anything is written.
func (f *Frame) EncodePNG(w io.Writer) error {
	for i, g := range f.Cells {
		if g < ' ' || g > '~' {
			return fmt.Errorf("%w: %q at (%d, %d)", ErrUnsupportedGlyph, g, i%f.Width, i/f.Width)
		}
	}
	return png.Encode(w, f.Image())
}
