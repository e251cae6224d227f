package renderer

import (
	"fmt"
	"math"

	"github.com/charmbracelet/x/ansi"
)

// DefaultRamp orders glyphs from faintest to brightest
const DefaultRamp = ".,-~:;=!*#$@"

// Blank is emitted for pixels no sample reached
const Blank = ' '

// Ramp maps shading intensities to glyphs
type Ramp struct {
	glyphs []rune
}

// NewRamp builds a ramp from a string of single-cell glyphs, faintest first.
// An empty string selects DefaultRamp.
func NewRamp(glyphs string) (Ramp, error) {
	if glyphs == "" {
		glyphs = DefaultRamp
	}

	runes := []rune(glyphs)
	for i, g := range runes {
		if w := ansi.StringWidth(string(g)); w != 1 {
			return Ramp{}, fmt.Errorf("%w: glyph %d (%q) is %d cells wide", ErrInvalidRamp, i, g, w)
		}
	}
	return Ramp{glyphs: runes}, nil
}

// Len returns the number of glyphs in the ramp
func (r Ramp) Len() int {
	return len(r.glyphs)
}

// Index returns floor(intensity) clamped to the ramp's range. clamped reports
// whether the raw value fell outside it; NaN maps to 0 and counts as clamped.
func (r Ramp) Index(intensity float64) (index int, clamped bool) {
	last := len(r.glyphs) - 1
	if math.IsNaN(intensity) {
		return 0, true
	}

	f := math.Floor(intensity)
	switch {
	case f < 0:
		return 0, true
	case f > float64(last):
		return last, true
	}
	return int(f), false
}

// Glyph returns the glyph for a shading intensity and whether its index was
// clamped. The zero Ramp yields Blank.
func (r Ramp) Glyph(intensity float64) (rune, bool) {
	if len(r.glyphs) == 0 {
		return Blank, false
	}
	i, clamped := r.Index(intensity)
	return r.glyphs[i], clamped
}

// String returns the ramp glyphs in order
func (r Ramp) String() string {
	return string(r.glyphs)
}
