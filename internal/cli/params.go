package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-fxchain/dsp/param"
)

var cmdParams = &command{
	Name:        "params",
	Description: "list parameters with ranges, defaults and current values",
	Run: func(ctx context.Context, argv []string, outStream, errStream io.Writer) error {
		fs := flag.NewFlagSet("fxchain params", flag.ContinueOnError)
		fs.SetOutput(errStream)

		var cf chainFlags
		cf.register(fs)

		if err := fs.Parse(argv); err != nil {
			return err
		}

		p, err := cf.processor()
		if err != nil {
			return err
		}

		store := p.Store()
		tw := tabwriter.NewWriter(outStream, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tRANGE\tDEFAULT\tVALUE")

		for i := range store.Len() {
			id := param.ID(i)
			d := store.Descriptor(id)

			var rng, def string
			if d.Kind == param.KindChoice {
				rng = strings.Join(d.Choices, "|")
				def = d.Choices[int(d.Default)]
			} else {
				rng = fmt.Sprintf("%g..%g", d.Min, d.Max)
				def = fmt.Sprintf("%g", d.Default)
			}

			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Key, rng, def, store.Format(id))
		}

		return tw.Flush()
	},
}
