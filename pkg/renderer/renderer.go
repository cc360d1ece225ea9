package renderer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/integrator"
)

// Options configures a Renderer. Zero values fall back to defaults: 64
// pixel tiles and one worker per CPU.
type Options struct {
	Width      int
	Height     int
	TileSize   int
	NumWorkers int
	Logger     core.Logger
}

// Renderer drives a render: it partitions the film into tiles, hands them
// to a worker pool and accumulates the results. Because every pixel sample
// is generated by a sampler seeded only from (seed, pixel, sample index),
// the output is bit-identical for any worker count and tile size.
type Renderer struct {
	scene      core.Scene
	integrator integrator.Integrator
	width      int
	height     int
	tileSize   int
	numWorkers int
	logger     core.Logger
}

// RenderResult bundles the film with render statistics. Complete is false
// when the context was cancelled before all tiles were rendered; the film
// then holds the finished tiles only.
type RenderResult struct {
	Film     *Film
	Stats    RenderStats
	Complete bool
}

// New creates a renderer for the given scene and integrator
func New(scene core.Scene, integ integrator.Integrator, opts Options) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", opts.Width, opts.Height)
	}

	tileSize := opts.TileSize
	if tileSize <= 0 {
		tileSize = 64
	}

	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	return &Renderer{
		scene:      scene,
		integrator: integ,
		width:      opts.Width,
		height:     opts.Height,
		tileSize:   tileSize,
		numWorkers: opts.NumWorkers,
		logger:     logger,
	}, nil
}

// Render renders the scene to a fresh film. Cancellation is checked
// between tiles: a cancelled context stops new tiles from starting, but
// tiles already in flight run to completion so the film never contains a
// partially sampled tile.
func (r *Renderer) Render(ctx context.Context) (*RenderResult, error) {
	start := time.Now()
	config := r.scene.GetSamplingConfig()

	film := NewFilm(r.width, r.height)
	tiles := NewTileGrid(r.width, r.height, r.tileSize)

	pool := NewWorkerPool(r.numWorkers, len(tiles))

	samplers := make([]*core.PixelSampler, pool.NumWorkers())
	for i := range samplers {
		samplers[i] = core.NewPixelSampler(config.Seed, 0, 0, 0)
	}

	r.logger.Infof("rendering %dx%d, %d spp, %d tiles, %d workers",
		r.width, r.height, config.SamplesPerPixel, len(tiles), pool.NumWorkers())

	var cancelled atomic.Bool
	pool.Start(func(workerID int, tile Tile) TileResult {
		if cancelled.Load() {
			return TileResult{TileID: tile.ID, Skipped: true}
		}
		select {
		case <-ctx.Done():
			cancelled.Store(true)
			return TileResult{TileID: tile.ID, Skipped: true}
		default:
		}

		samples := r.renderTile(tile, film, samplers[workerID], config)
		return TileResult{TileID: tile.ID, Samples: samples}
	})

	for _, tile := range tiles {
		pool.Submit(tile)
	}
	pool.Stop()

	totalSamples := 0
	tilesRendered := 0
	for result := range pool.Results() {
		if result.Skipped {
			continue
		}
		tilesRendered++
		totalSamples += result.Samples
	}

	elapsed := time.Since(start)
	complete := tilesRendered == len(tiles)
	if !complete {
		r.logger.Warningf("render cancelled after %d/%d tiles", tilesRendered, len(tiles))
	} else {
		r.logger.Infof("render finished in %s", elapsed.Round(time.Millisecond))
	}

	return &RenderResult{
		Film: film,
		Stats: RenderStats{
			Width:           r.width,
			Height:          r.height,
			TotalPixels:     r.width * r.height,
			SamplesPerPixel: config.SamplesPerPixel,
			TotalSamples:    totalSamples,
			TileCount:       len(tiles),
			TilesRendered:   tilesRendered,
			Workers:         pool.NumWorkers(),
			Elapsed:         elapsed,
		},
		Complete: complete,
	}, nil
}

// renderTile renders every pixel in the tile bounds into the shared film.
// Tiles are disjoint, so no locking is needed around AddSample. The
// sampler is reset per sample index, making the result independent of
// which worker picked up the tile.
func (r *Renderer) renderTile(tile Tile, film *Film, sampler *core.PixelSampler, config core.SamplingConfig) int {
	camera := r.scene.GetCamera()
	spp := config.SamplesPerPixel
	samples := 0

	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			var accum core.Vec3

			for s := 0; s < spp; s++ {
				sampler.Reset(config.Seed, i, j, s)
				filmSample := sampler.Get2D()
				lensSample := sampler.Get2D()

				ray := camera.GetRay(i, j, filmSample, lensSample)
				accum = accum.Add(r.integrator.Li(ray, r.scene, sampler))
			}

			film.AddSample(i, j, accum, float64(spp))
			samples += spp
		}
	}

	r.logger.Debugf("tile %d done (%d samples)", tile.ID, samples)
	return samples
}

type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...interface{})   {}
func (noopLogger) Infof(format string, args ...interface{})    {}
func (noopLogger) Warningf(format string, args ...interface{}) {}
func (noopLogger) Errorf(format string, args ...interface{})   {}
