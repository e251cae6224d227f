package renderer

import "log/slog"

// RenderStats contains statistics about a single draw call
type RenderStats struct {
	Items         int // Items drawn
	TotalSamples  int // Samples generated by all items
	BehindCamera  int // Samples skipped because z <= 0
	OutOfFrame    int // Samples projected outside the pixel grid
	Occluded      int // Samples that lost the depth test
	CoveredPixels int // Pixels holding a sample after the depth pass
	Clamped       int // Covered pixels whose luminosity index was clamped into the ramp
}

// Visible returns the number of samples that reached the depth buffer
func (s RenderStats) Visible() int {
	return s.TotalSamples - s.BehindCamera - s.OutOfFrame
}

// LogValue implements slog.LogValuer
func (s RenderStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("items", s.Items),
		slog.Int("samples", s.TotalSamples),
		slog.Int("behind_camera", s.BehindCamera),
		slog.Int("out_of_frame", s.OutOfFrame),
		slog.Int("occluded", s.Occluded),
		slog.Int("covered", s.CoveredPixels),
		slog.Int("clamped", s.Clamped),
	)
}
