package cli

import (
	"context"
	"flag"
	"io"
)

var cmdDump = &command{
	Name:        "dump",
	Description: "print a preset (or the defaults) as normalized YAML",
	Run: func(ctx context.Context, argv []string, outStream, errStream io.Writer) error {
		fs := flag.NewFlagSet("fxchain dump", flag.ContinueOnError)
		fs.SetOutput(errStream)

		var cf chainFlags
		cf.register(fs)

		if err := fs.Parse(argv); err != nil {
			return err
		}

		if fs.NArg() > 0 {
			cf.preset = fs.Arg(0)
		}

		p, err := cf.processor()
		if err != nil {
			return err
		}

		data, err := p.SerializeState()
		if err != nil {
			return err
		}

		_, err = outStream.Write(data)

		return err
	},
}
