package renderer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRamp_Default(t *testing.T) {
	ramp, err := NewRamp("")
	require.NoError(t, err)
	assert.Equal(t, 12, ramp.Len())
	assert.Equal(t, DefaultRamp, ramp.String())
}

func TestNewRamp_Custom(t *testing.T) {
	ramp, err := NewRamp(" .:#")
	require.NoError(t, err)
	assert.Equal(t, 4, ramp.Len())

	g, clamped := ramp.Glyph(3.2)
	assert.Equal(t, '#', g)
	assert.False(t, clamped)

	g, clamped = ramp.Glyph(40)
	assert.Equal(t, '#', g)
	assert.True(t, clamped)
}

func TestNewRamp_RejectsMultiCellGlyphs(t *testing.T) {
	for _, glyphs := range []string{"ab\t", "\x1b[31m", ".🙂"} {
		_, err := NewRamp(glyphs)
		assert.ErrorIs(t, err, ErrInvalidRamp, "%q", glyphs)
	}
}

func TestRamp_Index(t *testing.T) {
	ramp, err := NewRamp(DefaultRamp)
	require.NoError(t, err)

	tests := []struct {
		name        string
		intensity   float64
		wantIndex   int
		wantClamped bool
	}{
		{"zero", 0, 0, false},
		{"fraction floors down", 0.99, 0, false},
		{"one", 1, 1, false},
		{"just under the top", 11.9, 11, false},
		{"top", 12, 11, true},
		{"far above", 1e9, 11, true},
		{"slightly negative", -0.5, 0, true},
		{"far below", -1e9, 0, true},
		{"positive infinity", math.Inf(1), 11, true},
		{"negative infinity", math.Inf(-1), 0, true},
		{"NaN", math.NaN(), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, clamped := ramp.Index(tt.intensity)
			assert.Equal(t, tt.wantIndex, index)
			assert.Equal(t, tt.wantClamped, clamped)
		})
	}
}

func TestRamp_ZeroValueGlyph(t *testing.T) {
	g, clamped := Ramp{}.Glyph(3)
	assert.Equal(t, Blank, g)
	assert.False(t, clamped)
}
