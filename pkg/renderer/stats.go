package renderer

import "time"

// RenderStats summarizes a completed (or cancelled) render
type RenderStats struct {
	Width           int
	Height          int
	TotalPixels     int
	SamplesPerPixel int
	TotalSamples    int // samples actually taken, lower than the target when cancelled
	TileCount       int
	TilesRendered   int
	Workers         int
	Elapsed         time.Duration
}

// SamplesPerSecond returns the observed sampling rate
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}
