// Package cli implements the fxchain command line: preset inspection and
// editing, offline rendering and live playback.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
)

const cmdName = "fxchain"

// Version and Revision are set at build time.
var (
	Version  = "0.1.0"
	Revision = "HEAD"
)

// Run executes the command named by argv[0].
func Run(ctx context.Context, argv []string, outStream, errStream io.Writer) error {
	log.SetOutput(errStream)
	log.SetPrefix(fmt.Sprintf("[%s] ", cmdName))
	log.SetFlags(0)

	nameAndVer := fmt.Sprintf("%s (v%s rev:%s)", cmdName, Version, Revision)
	fs := flag.NewFlagSet(nameAndVer, flag.ContinueOnError)
	fs.SetOutput(errStream)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage of %s:\n", nameAndVer)
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nCommands:\n")
		formatCommands(fs.Output())
	}

	ver := fs.Bool("version", false, "display version")
	if err := fs.Parse(argv); err != nil {
		return err
	}

	if *ver {
		return printVersion(outStream)
	}

	argv = fs.Args()
	if len(argv) < 1 {
		fs.Usage()
		return fmt.Errorf("no command specified")
	}

	if cmd, ok := cmder.dispatch[argv[0]]; ok {
		return cmd.Run(ctx, argv[1:], outStream, errStream)
	}

	return fmt.Errorf("unknown command %q", argv[0])
}

func printVersion(out io.Writer) error {
	_, err := fmt.Fprintf(out, "%s v%s (rev:%s)\n", cmdName, Version, Revision)
	return err
}
