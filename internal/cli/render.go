package cli

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-fxchain/dsp/core"
	"github.com/cwbudde/algo-fxchain/dsp/fxchain"
	"github.com/cwbudde/algo-fxchain/dsp/spectrum"
)

type renderConfig struct {
	stream  core.StreamFormat
	seconds float64
	shape   string
	toneHz  float64
	amp     float64
	fftSize int
	out     string
}

var cmdRender = &command{
	Name:        "render",
	Description: "render a test tone through the chain and print per-stage levels",
	Run: func(ctx context.Context, argv []string, outStream, errStream io.Writer) error {
		fs := flag.NewFlagSet("fxchain render", flag.ContinueOnError)
		fs.SetOutput(errStream)

		var cf chainFlags
		cf.register(fs)

		sr := fs.Float64("sr", 48000, "sample rate in Hz")
		block := fs.Int("block", 512, "block size in frames")
		channels := fs.Int("channels", 2, "channel count")

		var rc renderConfig
		fs.Float64Var(&rc.seconds, "seconds", 1, "length of the rendered signal")
		fs.StringVar(&rc.shape, "shape", "sine", "tone shape: sine, saw or square")
		fs.Float64Var(&rc.toneHz, "tone", 440, "tone frequency in Hz")
		fs.Float64Var(&rc.amp, "amp", 0.5, "tone amplitude")
		fs.IntVar(&rc.fftSize, "fft", 4096, "analysis FFT size (power of two)")
		fs.StringVar(&rc.out, "o", "", "write interleaved little-endian float32 output to this file")

		if err := fs.Parse(argv); err != nil {
			return err
		}

		rc.stream = core.NewStreamFormat(
			core.WithSampleRate(*sr),
			core.WithBlockSize(*block),
			core.WithChannels(*channels),
		)

		p, err := cf.processor(
			fxchain.WithMaxChannels(rc.stream.Channels),
			fxchain.WithLogger(log.Default()),
		)
		if err != nil {
			return err
		}

		if rc.out == "" {
			return render(ctx, p, rc, outStream, nil)
		}

		f, err := createOutput(rc.out)
		if err != nil {
			return err
		}

		if err := render(ctx, p, rc, outStream, f); err != nil {
			f.Close()
			return err
		}

		return f.Close()
	},
}

// createOutput opens the file that receives the raw samples of -o.
var createOutput = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// stageReport collects the metering of one point in the chain.
type stageReport struct {
	name    string
	meter   spectrum.LevelMeter
	capture []float64
}

func (s *stageReport) record(block [][]float64) {
	s.meter.Process(block)
	s.capture = append(s.capture, block[0]...)
}

// render runs the chain twice over the same tone: unit by unit to meter
// every stage, and through the processor for the output.
func render(ctx context.Context, p *fxchain.Processor, rc renderConfig, out, raw io.Writer) error {
	cfg := rc.stream
	if err := p.Prepare(cfg.SampleRate, cfg.BlockSize, cfg.Channels); err != nil {
		return err
	}

	osc, err := newOscillator(rc.shape, rc.toneHz, cfg.SampleRate, rc.amp)
	if err != nil {
		return err
	}

	analyzer, err := spectrum.NewAnalyzer(rc.fftSize, cfg.SampleRate)
	if err != nil {
		return err
	}

	order := p.RequestedOrder()
	spec := fxchain.ProcessSpec{SampleRate: cfg.SampleRate, MaxBlockSize: cfg.BlockSize, NumChannels: cfg.Channels}

	units := make([]fxchain.Unit, len(order))
	reports := make([]*stageReport, 0, len(order)+2)
	reports = append(reports, &stageReport{name: "input"})

	for i, opt := range order {
		u, err := fxchain.NewUnit(opt, p.Store())
		if err != nil {
			return err
		}

		if err := u.Prepare(spec); err != nil {
			return err
		}

		u.Reset()
		units[i] = u
		reports = append(reports, &stageReport{name: fmt.Sprintf("%d %s", i+1, opt)})
	}

	output := &stageReport{name: "output"}
	reports = append(reports, output)

	var (
		input    = core.NewBlock(cfg.Channels, cfg.BlockSize)
		staged   = core.NewBlock(cfg.Channels, cfg.BlockSize)
		chain    = core.NewBlock(cfg.Channels, cfg.BlockSize)
		view     = make([][]float64, 3*cfg.Channels)
		frameBuf = make([]float32, cfg.Channels*cfg.BlockSize)
	)

	total := cfg.Frames(time.Duration(rc.seconds * float64(time.Second)))
	for done := 0; done < total; {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := min(cfg.BlockSize, total-done)
		in, st, ch := view[:cfg.Channels], view[cfg.Channels:2*cfg.Channels], view[2*cfg.Channels:]

		for c := range cfg.Channels {
			in[c], st[c], ch[c] = input[c][:n], staged[c][:n], chain[c][:n]
		}

		osc.Fill(in)
		reports[0].record(in)

		for c := range cfg.Channels {
			copy(st[c], in[c])
			copy(ch[c], in[c])
		}

		for i, u := range units {
			u.Process(st)
			reports[i+1].record(st)
		}

		p.Process(ch)
		output.record(ch)

		if raw != nil {
			frames := core.Interleave(frameBuf, ch)
			if err := binary.Write(raw, binary.LittleEndian, frameBuf[:frames*cfg.Channels]); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}

		done += n
	}

	fmt.Fprintf(out, "order: %s\n", p.Order())

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STAGE\tPEAK dBFS\tRMS dBFS\tSPECTRAL PEAK\tTONE dBFS")

	for _, r := range reports {
		tail := r.capture[max(0, len(r.capture)-rc.fftSize):]
		if err := analyzer.Analyze(tail); err != nil {
			return err
		}

		peakHz, peakDB := analyzer.Peak()

		tone, err := spectrum.ToneAmplitude(r.capture, rc.toneHz, cfg.SampleRate)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.0f Hz @ %.1f dB\t%.1f\n",
			r.name, r.meter.PeakDB(), r.meter.RMSDB(), peakHz, peakDB, toneDB(tone))
	}

	return tw.Flush()
}

func toneDB(a float64) float64 {
	if a <= 1e-15 {
		return spectrum.FloorDB
	}

	return core.LinearToDB(a)
}
