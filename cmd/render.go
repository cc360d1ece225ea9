package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/lumen-render/lumen/pkg/integrator"
	"github.com/lumen-render/lumen/pkg/renderer"
	"github.com/lumen-render/lumen/pkg/scene"
)

// RenderScene renders a built-in scene to a PNG file
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	sceneName := ctx.Args().First()
	if sceneName == "" {
		sceneName = "default"
	}

	width := ctx.Int("width")
	height := ctx.Int("height")

	sc, err := scene.FromName(sceneName, width, height)
	if err != nil {
		return err
	}

	if spp := ctx.Int("spp"); spp > 0 {
		sc.SamplingConfig.SamplesPerPixel = spp
	}
	if depth := ctx.Int("max-depth"); depth >= 0 {
		sc.SamplingConfig.MaxDepth = depth
	}
	if seed := ctx.Int64("seed"); seed != 0 {
		sc.SamplingConfig.Seed = seed
	}

	integ, err := integrator.FromName(ctx.String("integrator"), sc.SamplingConfig)
	if err != nil {
		return err
	}

	r, err := renderer.New(sc, integ, renderer.Options{
		Width:      width,
		Height:     height,
		TileSize:   ctx.Int("tile-size"),
		NumWorkers: ctx.Int("workers"),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	// Ctrl-C cancels the render; finished tiles are still written out
	renderCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	result, err := r.Render(renderCtx)
	if err != nil {
		return err
	}

	outFile := ctx.String("out")
	if err := writePNG(outFile, result); err != nil {
		return err
	}

	displayRenderStats(result.Stats)
	if !result.Complete {
		logger.Warningf("render was cancelled, %s holds a partial image", outFile)
	} else {
		logger.Infof("wrote %s", outFile)
	}

	return nil
}

// ListScenes prints the built-in scene names
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description"})
	for _, name := range scene.Names() {
		table.Append([]string{name, scene.Describe(name)})
	}
	table.Render()

	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}

func writePNG(path string, result *renderer.RenderResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := png.Encode(file, result.Film.Image()); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Resolution", "SPP", "Tiles", "Workers", "Samples/sec", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.SamplesPerPixel),
		fmt.Sprintf("%d/%d", stats.TilesRendered, stats.TileCount),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%.0f", stats.SamplesPerSecond()),
		stats.Elapsed.String(),
	})
	table.Render()

	logger.Infof("render statistics\n%s", buf.String())
}
