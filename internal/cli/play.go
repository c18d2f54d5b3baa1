package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Songmu/prompter"

	"github.com/cwbudde/algo-fxchain/dsp/fxchain"
	"github.com/cwbudde/algo-fxchain/internal/audio"
)

var cmdPlay = &command{
	Name:        "play",
	Description: "play a test tone through the chain and edit it live",
	Run: func(ctx context.Context, argv []string, outStream, errStream io.Writer) error {
		fs := flag.NewFlagSet("fxchain play", flag.ContinueOnError)
		fs.SetOutput(errStream)

		var cf chainFlags
		cf.register(fs)

		sr := fs.Int("sr", 48000, "sample rate in Hz")
		block := fs.Int("block", 256, "block size in frames")
		shape := fs.String("shape", "saw", "tone shape: sine, saw or square")
		toneHz := fs.Float64("tone", 110, "tone frequency in Hz")
		amp := fs.Float64("amp", 0.3, "tone amplitude")
		seconds := fs.Float64("seconds", 0, "play for a fixed time instead of prompting")

		if err := fs.Parse(argv); err != nil {
			return err
		}

		p, err := cf.processor(fxchain.WithLogger(log.Default()))
		if err != nil {
			return err
		}

		if err := p.Prepare(float64(*sr), *block, audio.Channels); err != nil {
			return err
		}

		osc, err := newOscillator(*shape, *toneHz, float64(*sr), *amp)
		if err != nil {
			return err
		}

		player, err := audio.NewPlayer(*sr, *block, &chainSource{osc: osc, proc: p})
		if err != nil {
			return err
		}

		player.Play()

		defer func() {
			if err := player.Stop(); err != nil {
				log.Printf("stop: %v", err)
			}

			p.ReleaseResources()
		}()

		if *seconds > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(time.Duration(*seconds * float64(time.Second))):
			}

			return nil
		}

		fmt.Fprintln(outStream, controlHelp)

		for ctx.Err() == nil {
			line := prompter.Prompt("fxchain", "quit")

			quit, err := execControl(p, line, outStream)
			if err != nil {
				log.Print(err)
			}

			if quit {
				break
			}
		}

		return nil
	},
}

// chainSource feeds the oscillator through the processor on the audio
// goroutine.
type chainSource struct {
	osc  *oscillator
	proc *fxchain.Processor
}

func (s *chainSource) Render(block [][]float64) {
	s.osc.Fill(block)
	s.proc.Process(block)
}

const controlHelp = `commands:
  set <key>=<value>   change a parameter (choice labels allowed)
  order <a,b,c,d,e>   reorder the units
  show                list parameters
  save <file>         write the current state as YAML
  reset               restore defaults
  quit                stop playback (empty line quits)`

// execControl runs one control line against p.
func execControl(p *fxchain.Processor, line string, out io.Writer) (quit bool, err error) {
	line = strings.TrimSpace(line)
	verb, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(verb) {
	case "", "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(out, controlHelp)
	case "set":
		if err := applySetting(p, arg); err != nil {
			return false, err
		}

		key, _, _ := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		fmt.Fprintf(out, "%s = %s\n", key, p.Store().Format(p.Store().MustLookup(key)))
	case "order":
		order, err := fxchain.ParseOrder(arg)
		if err != nil {
			return false, err
		}

		if err := p.RequestReorder(order); err != nil {
			return false, err
		}

		fmt.Fprintf(out, "order = %s\n", order)
	case "show":
		fmt.Fprintf(out, "order = %s\n", p.RequestedOrder())

		for _, key := range p.Store().Keys() {
			fmt.Fprintf(out, "  %s = %s\n", key, p.Store().Format(p.Store().MustLookup(key)))
		}
	case "save":
		if arg == "" {
			return false, fmt.Errorf("save: no file specified")
		}

		data, err := p.SerializeState()
		if err != nil {
			return false, err
		}

		if err := os.WriteFile(arg, data, 0o644); err != nil {
			return false, err
		}

		fmt.Fprintf(out, "saved %s\n", arg)
	case "reset":
		if err := p.RestoreState(nil); err != nil {
			return false, err
		}

		fmt.Fprintln(out, "defaults restored")
	default:
		return false, fmt.Errorf("unknown command %q (try help)", verb)
	}

	return false, nil
}
