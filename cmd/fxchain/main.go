// Command fxchain inspects, edits, renders and plays effect chain presets.
//
// Usage:
//
//	fxchain <command> [flags] [args]
//
// Examples:
//
//	fxchain dump > preset.yaml
//	fxchain apply preset.yaml < edited.yaml
//	fxchain render -preset preset.yaml -tone 750 -set "General Filter Mode=notch"
//	fxchain play -order LadderFilter,Overdrive,Chorus,Phaser,GeneralFilter
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/cwbudde/algo-fxchain/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil && err != flag.ErrHelp {
		stop()
		log.Fatal(err)
	}
}
