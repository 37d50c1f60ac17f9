package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
	"github.com/zouzias/QuadRay-engine/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "quadray"
	app.Usage = "render QuadRay scene literals"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "verbose", Usage: "enable verbose logging"},
		cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},

		cli.IntFlag{Name: "d", Value: 0, Usage: "demo scene index"},
		cli.IntFlag{Name: "c", Value: 0, Usage: "camera index (NextCam calls from the default camera)"},
		cli.IntFlag{Name: "f", Value: 1, Usage: "number of frames to render"},
		cli.IntFlag{Name: "g", Value: 40, Usage: "per-frame time delta, ms"},
		cli.IntFlag{Name: "i", Value: 0, Usage: "saved-image starting index"},
		cli.IntFlag{Name: "b", Value: 0, Usage: "time window start, ms"},
		cli.IntFlag{Name: "e", Value: 0, Usage: "time window end, ms (0: unbounded, stop after -f frames)"},

		cli.IntFlag{Name: "q", Value: 1, Usage: "SIMD quad factor {1,2,4,8}"},
		cli.IntFlag{Name: "s", Value: 1, Usage: "SIMD subvariant {1,2,4,8}"},
		cli.IntFlag{Name: "v", Value: 4, Usage: "SIMD vector size {1,2,4,8} (bucketed down to the largest registered backend width not above it, 4 if none)"},
		cli.IntFlag{Name: "t", Value: 4, Usage: "thread count (<=1000)"},

		cli.IntFlag{Name: "w", Value: 4, Usage: "window size class {0..9}"},
		cli.IntFlag{Name: "x", Value: 0, Usage: "frame width override (<=65535)"},
		cli.IntFlag{Name: "y", Value: 0, Usage: "frame height override (<=65535)"},
		cli.IntFlag{Name: "r", Value: 1000, Usage: "log interval, ms"},

		cli.BoolFlag{Name: "l", Usage: "set the log mode bit (frame stats are printed every -r ms either way)"},
		cli.BoolFlag{Name: "h", Usage: "set the hide-UI mode bit (no UI overlay is drawn)"},
		cli.BoolFlag{Name: "o", Usage: "offscreen mode"},
		cli.BoolFlag{Name: "u", Usage: "static-update: skip bound recomputation on unchanged frames"},
		cli.BoolFlag{Name: "a", Usage: "enable 4x FSAA"},

		cli.StringFlag{Name: "out", Value: "frame", Usage: "output image basename"},
	}

	app.Commands = []cli.Command{
		{
			Name:        "render",
			Usage:       "render scenes",
			Description: "Render one of the built-in demo scene literals.",
			Subcommands: []cli.Command{
				{
					Name:        "frame",
					Usage:       "render one or more still frames",
					Description: "Render -f still frames -g ms apart with no camera motion.",
					Action:      cmd.RenderFrame,
				},
				{
					Name:  "interactive",
					Usage: "render a sequence of frames simulating a moving camera",
					Description: `Since this redesign does not open a window, "interactive" here
means writing successive PNG frames while a fixed camera action is
applied every frame, rather than reading a live keyboard/mouse.`,
					Action: cmd.RenderInteractive,
				},
			},
		},
		{
			Name:   "backends",
			Usage:  "list the registered SIMD packet tracer backends",
			Action: cmd.ListBackends,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
