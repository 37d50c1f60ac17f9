package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"github.com/zouzias/QuadRay-engine/tracer"
)

// simdWidths are the lane counts the reference CPU backend is registered
// under. Real vector hardware would register one backend per instruction
// set here instead; the registry's Select/CycleVariant logic does not care
// which.
var simdWidths = []int{4, 8, 16}

// newBackendRegistry registers the reference CPU packet tracer at every
// supported width.
func newBackendRegistry() *tracer.Registry {
	reg := tracer.NewRegistry()
	for _, w := range simdWidths {
		reg.Register(tracer.NewCPU(w))
	}
	return reg
}

// bucketWidth rounds v down to the nearest registered SIMD width, or the
// smallest registered width if v undershoots all of them.
func bucketWidth(v int) int {
	best := simdWidths[0]
	for _, w := range simdWidths {
		if w <= v {
			best = w
		}
	}
	return best
}

// ListBackends prints every registered packet tracer backend's width and
// variant, the -t-less counterpart of go-pathtrace's "list-devices".
func ListBackends(ctx *cli.Context) error {
	setupLogging(ctx)

	reg := newBackendRegistry()
	current := reg.Current()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Width", "Variant", "Current"})
	for _, b := range reg.Backends() {
		table.Append([]string{
			fmt.Sprintf("%d", b.Width()),
			b.Variant(),
			fmt.Sprintf("%t", b == current),
		})
	}
	table.Render()
	logger.Noticef("registered packet tracer backends\n%s", buf.String())
	return nil
}
