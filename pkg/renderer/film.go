package renderer

import (
	"image"
	"image/color"

	"github.com/lumen-render/lumen/pkg/core"
)

// filmPixel accumulates weighted radiance for one pixel
type filmPixel struct {
	color  core.Vec3
	weight float64
}

// Film is the image accumulation buffer. Pixels store a running sum of
// radiance and sample weight so that samples can be added incrementally.
// Concurrent AddSample calls are safe as long as callers write disjoint
// pixel regions, which the tile partition guarantees.
type Film struct {
	width  int
	height int
	pixels []filmPixel
}

// NewFilm creates an empty film of the given dimensions
func NewFilm(width, height int) *Film {
	return &Film{
		width:  width,
		height: height,
		pixels: make([]filmPixel, width*height),
	}
}

// Width returns the film width in pixels
func (f *Film) Width() int { return f.width }

// Height returns the film height in pixels
func (f *Film) Height() int { return f.height }

// AddSample accumulates a radiance sum with the given weight into pixel
// (i, j). Samples containing NaN are dropped rather than poisoning the
// accumulator. Out-of-bounds coordinates are ignored.
func (f *Film) AddSample(i, j int, radiance core.Vec3, weight float64) {
	if i < 0 || i >= f.width || j < 0 || j >= f.height {
		return
	}
	if radiance.HasNaN() || weight <= 0 {
		return
	}

	p := &f.pixels[j*f.width+i]
	p.color = p.color.Add(radiance)
	p.weight += weight
}

// Pixel returns the current estimate for pixel (i, j): accumulated color
// divided by accumulated weight, or black if no samples have landed yet.
func (f *Film) Pixel(i, j int) core.Vec3 {
	p := f.pixels[j*f.width+i]
	if p.weight <= 0 {
		return core.Vec3{}
	}
	return p.color.Multiply(1.0 / p.weight)
}

// Image converts the film to an 8-bit sRGB image, applying gamma 2.0
// correction and clamping to [0, 1].
func (f *Film) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))

	for j := 0; j < f.height; j++ {
		for i := 0; i < f.width; i++ {
			c := f.Pixel(i, j).GammaCorrect(2.0).Clamp(0.0, 1.0)
			img.Set(i, j, color.RGBA{
				R: uint8(c.X*255.0 + 0.5),
				G: uint8(c.Y*255.0 + 0.5),
				B: uint8(c.Z*255.0 + 0.5),
				A: 255,
			})
		}
	}

	return img
}
