package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"github.com/zouzias/QuadRay-engine/engine"
	"github.com/zouzias/QuadRay-engine/object"
)

// windowSizes maps the -w window size class {0..9} onto a resolution,
// overridden by an explicit -x/-y.
var windowSizes = [10][2]uint32{
	{160, 120}, {320, 240}, {480, 360}, {640, 480}, {800, 480},
	{800, 600}, {1024, 768}, {1280, 720}, {1600, 900}, {1920, 1080},
}

func resolveResolution(ctx *cli.Context) (uint32, uint32) {
	class := ctx.GlobalInt("w")
	if class < 0 {
		class = 0
	}
	if class > 9 {
		class = 9
	}
	w, h := windowSizes[class][0], windowSizes[class][1]
	if v := ctx.GlobalInt("x"); v > 0 {
		w = uint32(v)
	}
	if v := ctx.GlobalInt("y"); v > 0 {
		h = uint32(v)
	}
	return w, h
}

func optsFromFlags(ctx *cli.Context) engine.OptsBitmask {
	var bits engine.OptsBitmask
	if ctx.GlobalBool("l") {
		bits |= engine.OptLog
	}
	if ctx.GlobalBool("h") {
		bits |= engine.OptHideUI
	}
	if ctx.GlobalBool("o") {
		bits |= engine.OptOffscreen
	}
	if ctx.GlobalBool("u") {
		bits |= engine.OptStatic
	}
	return bits
}

// buildScene assembles an engine.Scene from a demo literal and the flags
// shared by both render subcommands.
func buildScene(ctx *cli.Context) (*engine.Scene, error) {
	frameW, frameH := resolveResolution(ctx)
	width := bucketWidth(ctx.GlobalInt("v"))
	if q, s := ctx.GlobalInt("q"), ctx.GlobalInt("s"); q != 1 || s != 1 {
		logger.Noticef("the cpu backend has no quad-factor/subvariant axis; -q %d -s %d accepted but ignored, width %d selected from -v alone", q, s, width)
	}

	opts := engine.DefaultOptions()
	opts.FrameW, opts.FrameH = frameW, frameH
	opts.ThreadN = uint32(ctx.GlobalInt("t"))
	opts.SIMDWidth = width
	opts.SIMDVariant = "cpu"
	opts.Opts = optsFromFlags(ctx)
	if ctx.GlobalBool("a") {
		opts.FSAA = engine.FSAA4X
	}

	lit := buildDemo(ctx.GlobalInt("d"))
	sc, err := engine.New(lit, opts, newBackendRegistry())
	if err != nil {
		return nil, err
	}

	for i := 0; i < ctx.GlobalInt("c"); i++ {
		sc.NextCam()
	}

	return sc, nil
}

// RenderFrame renders -f still frames, -g ms apart, with no camera motion
// between them, saving each as <out>-NNNN.png.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := buildScene(ctx)
	if err != nil {
		return err
	}
	defer sc.Close()

	return renderLoop(ctx, sc, object.ActionNone)
}

// RenderInteractive stands in for the window-driven interactive demo: it
// applies a fixed camera action every frame and writes successive PNGs
// rather than opening a display and reading a live keyboard/mouse, which is
// out of scope for this core.
func RenderInteractive(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := buildScene(ctx)
	if err != nil {
		return err
	}
	defer sc.Close()

	return renderLoop(ctx, sc, object.ActionTurnRight)
}

func renderLoop(ctx *cli.Context, sc *engine.Scene, action object.CameraAction) error {
	frames := ctx.GlobalInt("f")
	if frames <= 0 {
		frames = 1
	}
	delta := int64(ctx.GlobalInt("g"))
	if delta <= 0 {
		delta = 40
	}
	frameTime := int64(ctx.GlobalInt("b"))
	endTime := int64(ctx.GlobalInt("e"))
	startIndex := ctx.GlobalInt("i")
	out := ctx.GlobalString("out")
	logInterval := int64(ctx.GlobalInt("r"))
	var lastLog int64 = -1

	for i := 0; i < frames; i++ {
		if endTime > 0 && frameTime > endTime {
			break
		}

		act := action
		if i == 0 {
			act = object.ActionNone
		}
		if err := sc.Update(frameTime, act); err != nil {
			return err
		}

		stats, err := sc.Render()
		if err != nil {
			return err
		}

		path := fmt.Sprintf("%s-%04d.png", out, startIndex+i)
		if err := sc.SaveFrame(path); err != nil {
			return err
		}

		if logInterval <= 0 || lastLog < 0 || frameTime-lastLog >= logInterval {
			logger.Noticef("wrote %s in %s", path, stats.Total())
			displayFrameStats(stats)
			lastLog = frameTime
		}

		frameTime += delta
	}
	return nil
}

func displayFrameStats(stats engine.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "% of frame", "Render time"})
	for _, w := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", w.WorkerIndex),
			fmt.Sprintf("%d", w.BlockH),
			fmt.Sprintf("%02.1f %%", w.FramePercent*100),
			fmt.Sprintf("%s", w.RenderTime),
		})
	}
	table.SetFooter([]string{"", "", "update+bounds+tiling", fmt.Sprintf("%s", stats.UpdateTime+stats.BoundsTime+stats.TilingTime)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
