package renderer_test

import (
	"context"
	"math"
	"testing"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
	"github.com/lumen-render/lumen/pkg/integrator"
	"github.com/lumen-render/lumen/pkg/material"
	"github.com/lumen-render/lumen/pkg/renderer"
	"github.com/lumen-render/lumen/pkg/scene"
)

func testScene(t *testing.T, width, height int) *scene.Scene {
	t.Helper()

	s := &scene.Scene{
		CameraConfig: renderer.CameraConfig{
			Width: width, Height: height,
			LookFrom: core.NewVec3(0, 1, 3),
			LookAt:   core.NewVec3(0, 0.5, 0),
			VUp:      core.NewVec3(0, 1, 0),
			VFov:     45.0,
		},
		Shapes: []core.Shape{
			geometry.NewQuad(core.NewVec3(-5, 0, -5), core.NewVec3(10, 0, 0), core.NewVec3(0, 0, 10),
				material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
			geometry.NewSphere(core.NewVec3(0, 0.5, 0), 0.5,
				material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
			geometry.NewSphere(core.NewVec3(0, 3, 0), 0.5,
				material.NewEmissive(core.NewVec3(10, 10, 10))),
		},
		SamplingConfig: core.SamplingConfig{
			SamplesPerPixel:           4,
			MaxDepth:                  3,
			RussianRouletteMinBounces: 2,
			Seed:                      42,
		},
		TopColor:    core.NewVec3(0.3, 0.5, 0.8),
		BottomColor: core.NewVec3(1, 1, 1),
	}
	if err := s.Prepare(); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	return s
}

func renderFilm(t *testing.T, s *scene.Scene, width, height, tileSize, workers int) *renderer.Film {
	t.Helper()

	integ := integrator.NewPathTracer(s.GetSamplingConfig())
	r, err := renderer.New(s, integ, renderer.Options{
		Width:      width,
		Height:     height,
		TileSize:   tileSize,
		NumWorkers: workers,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !result.Complete {
		t.Fatal("Expected a complete render")
	}
	return result.Film
}

func TestRenderer_DeterministicAcrossWorkerCounts(t *testing.T) {
	width, height := 24, 18
	s := testScene(t, width, height)

	serial := renderFilm(t, s, width, height, 8, 1)
	parallel := renderFilm(t, s, width, height, 8, 4)

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			if serial.Pixel(i, j) != parallel.Pixel(i, j) {
				t.Fatalf("Pixel (%d,%d) differs between 1 and 4 workers: %v vs %v",
					i, j, serial.Pixel(i, j), parallel.Pixel(i, j))
			}
		}
	}
}

func TestRenderer_DeterministicAcrossTileSizes(t *testing.T) {
	width, height := 24, 18
	s := testScene(t, width, height)

	coarse := renderFilm(t, s, width, height, 16, 2)
	fine := renderFilm(t, s, width, height, 5, 3)

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			if coarse.Pixel(i, j) != fine.Pixel(i, j) {
				t.Fatalf("Pixel (%d,%d) differs between tile sizes: %v vs %v",
					i, j, coarse.Pixel(i, j), fine.Pixel(i, j))
			}
		}
	}
}

func TestRenderer_FurnaceSceneConvergesToEnclosureRadiance(t *testing.T) {
	s := scene.NewFurnaceScene(16, 16)
	if err := s.Prepare(); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	integ := integrator.NewPathTracer(s.GetSamplingConfig())
	r, err := renderer.New(s, integ, renderer.Options{Width: 16, Height: 16, TileSize: 8, NumWorkers: 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !result.Complete {
		t.Fatal("Expected a complete render")
	}

	// Every camera ray sees unit radiance: paths bouncing off the white
	// sphere keep unit throughput, and rays that miss it hit the unit
	// emitter directly. The whole film must be uniform at 1.0.
	for j := 0; j < 16; j++ {
		for i := 0; i < 16; i++ {
			pixel := result.Film.Pixel(i, j)
			for _, c := range []float64{pixel.X, pixel.Y, pixel.Z} {
				if math.Abs(c-1.0) > 1e-9 {
					t.Fatalf("Pixel (%d,%d): expected radiance 1.0, got %v", i, j, pixel)
				}
			}
		}
	}
}

func TestRenderer_StatsAccounting(t *testing.T) {
	width, height := 20, 10
	s := testScene(t, width, height)

	integ := integrator.NewPathTracer(s.GetSamplingConfig())
	r, err := renderer.New(s, integ, renderer.Options{Width: width, Height: height, TileSize: 8, NumWorkers: 2})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	stats := result.Stats
	if stats.TotalPixels != width*height {
		t.Errorf("Expected %d pixels, got %d", width*height, stats.TotalPixels)
	}
	expectedSamples := width * height * s.GetSamplingConfig().SamplesPerPixel
	if stats.TotalSamples != expectedSamples {
		t.Errorf("Expected %d samples, got %d", expectedSamples, stats.TotalSamples)
	}
	if stats.TilesRendered != stats.TileCount {
		t.Errorf("Expected all %d tiles rendered, got %d", stats.TileCount, stats.TilesRendered)
	}
}

func TestRenderer_CancelledContext(t *testing.T) {
	width, height := 20, 10
	s := testScene(t, width, height)

	integ := integrator.NewPathTracer(s.GetSamplingConfig())
	r, err := renderer.New(s, integ, renderer.Options{Width: width, Height: height, TileSize: 4, NumWorkers: 1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancelled before the render starts

	result, err := r.Render(ctx)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if result.Complete {
		t.Error("Expected an incomplete render after cancellation")
	}
	if result.Stats.TilesRendered != 0 {
		t.Errorf("Expected no tiles rendered, got %d", result.Stats.TilesRendered)
	}
}

func TestRenderer_InvalidDimensions(t *testing.T) {
	s := testScene(t, 8, 8)
	integ := integrator.NewPathTracer(s.GetSamplingConfig())

	if _, err := renderer.New(s, integ, renderer.Options{Width: 0, Height: 10}); err == nil {
		t.Error("Expected error for zero width")
	}
	if _, err := renderer.New(s, integ, renderer.Options{Width: 10, Height: -1}); err == nil {
		t.Error("Expected error for negative height")
	}
}
