package main

import (
	"os"

	"github.com/lumen-render/lumen/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "lumen"
	app.Usage = "render scenes using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "q",
			Usage: "only log warnings and errors",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "render",
			Usage:     "render a built-in scene to a PNG file",
			ArgsUsage: "[scene-name]",
			Description: `
Render one of the built-in scenes. The output is deterministic for a given
seed: the same seed, resolution and sample count produce a bit-identical
image regardless of worker count.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 400,
					Usage: "image width in pixels",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 400,
					Usage: "image height in pixels",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel (0 uses the scene default)",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Value: -1,
					Usage: "maximum indirect bounces, 0 renders direct light only (negative uses the scene default)",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "sampler seed (0 uses the scene default)",
				},
				cli.StringFlag{
					Name:  "integrator",
					Value: "path",
					Usage: "integrator to use: path or direct",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 64,
					Usage: "tile edge length in pixels",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers (0 uses all CPUs)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderScene,
		},
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: cmd.ListScenes,
		},
	}

	app.Run(os.Args)
}
