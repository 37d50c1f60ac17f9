package cmd

import (
	"github.com/urfave/cli"
	"github.com/zouzias/QuadRay-engine/log"
)

var logger = log.New("cmd")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("verbose") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("debug") {
		log.SetLevel(log.Debug)
	}
}
