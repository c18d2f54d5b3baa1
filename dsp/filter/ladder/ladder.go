package ladder

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fxchain/dsp/core"
)

const (
	defaultCutoffHz  = 20000.0
	defaultResonance = 0.0
	defaultDrive     = 1.0

	minCutoffHz  = 1.0
	maxResonance = 1.0
	minDrive     = 1.0
	maxDrive     = 100.0

	// maxCutoffRatio keeps the one-pole coefficient away from Nyquist.
	maxCutoffRatio = 0.49

	minScaledResonance = 0.1
	maxScaledResonance = 1.0
)

// Mode selects which combination of ladder stages forms the output.
type Mode int

const (
	// ModeLPF12 is a 12 dB/oct low-pass.
	ModeLPF12 Mode = iota
	// ModeHPF12 is a 12 dB/oct high-pass.
	ModeHPF12
	// ModeBPF12 is a 12 dB/oct band-pass.
	ModeBPF12
	// ModeLPF24 is a 24 dB/oct low-pass.
	ModeLPF24
	// ModeHPF24 is a 24 dB/oct high-pass.
	ModeHPF24
	// ModeBPF24 is a 24 dB/oct band-pass.
	ModeBPF24
)

// Modes lists every mode in declaration order.
var Modes = []Mode{ModeLPF12, ModeHPF12, ModeBPF12, ModeLPF24, ModeHPF24, ModeBPF24}

func (m Mode) String() string {
	switch m {
	case ModeLPF12:
		return "LPF12"
	case ModeHPF12:
		return "HPF12"
	case ModeBPF12:
		return "BPF12"
	case ModeLPF24:
		return "LPF24"
	case ModeHPF24:
		return "HPF24"
	case ModeBPF24:
		return "BPF24"
	default:
		return "unknown"
	}
}

// mix holds the output weights for nodes a..e and the feedback compensation.
type mix struct {
	weights [5]float64
	comp    float64
}

var modeMix = [...]mix{
	ModeLPF12: {weights: [5]float64{0, 0, 1, 0, 0}, comp: 0.5},
	ModeHPF12: {weights: [5]float64{1, -2, 1, 0, 0}, comp: 0},
	ModeBPF12: {weights: [5]float64{0, 0, -1, 1, 0}, comp: 0.5},
	ModeLPF24: {weights: [5]float64{0, 0, 0, 0, 1}, comp: 0.5},
	ModeHPF24: {weights: [5]float64{1, -4, 6, -4, 1}, comp: 0},
	ModeBPF24: {weights: [5]float64{0, 0, 1, -2, 1}, comp: 0.5},
}

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	mode      Mode
	cutoffHz  float64
	resonance float64
	drive     float64
}

func defaultConfig() config {
	return config{
		mode:      ModeLPF12,
		cutoffHz:  defaultCutoffHz,
		resonance: defaultResonance,
		drive:     defaultDrive,
	}
}

// WithMode selects the output mode.
func WithMode(mode Mode) Option {
	return func(cfg *config) error {
		if !validMode(mode) {
			return fmt.Errorf("ladder: invalid mode: %d", mode)
		}

		cfg.mode = mode

		return nil
	}
}

// WithCutoffHz sets cutoff in Hz. Must be finite and >= 1. Values at or
// above 0.49*sampleRate are clamped.
func WithCutoffHz(cutoffHz float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(cutoffHz, minCutoffHz, math.Inf(1), "cutoff"); err != nil {
			return err
		}

		cfg.cutoffHz = cutoffHz

		return nil
	}
}

// WithResonance sets resonance in [0, 1].
func WithResonance(resonance float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(resonance, 0, maxResonance, "resonance"); err != nil {
			return err
		}

		cfg.resonance = resonance

		return nil
	}
}

// WithDrive sets input drive in [1, 100].
func WithDrive(drive float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(drive, minDrive, maxDrive, "drive"); err != nil {
			return err
		}

		cfg.drive = drive

		return nil
	}
}

// State contains the five ladder node values for save/restore workflows.
type State [5]float64

// Filter is a mono multi-mode ladder filter.
type Filter struct {
	sampleRate float64

	mode      Mode
	cutoffHz  float64
	resonance float64
	drive     float64

	a1              float64
	scaledResonance float64
	gain            float64
	drive2          float64
	gain2           float64

	state State
}

// New constructs a ladder filter for the given sample rate.
func New(sampleRate float64, opts ...Option) (*Filter, error) {
	if !isFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("ladder: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &Filter{
		sampleRate: sampleRate,
		mode:       cfg.mode,
		cutoffHz:   cfg.cutoffHz,
		resonance:  cfg.resonance,
		drive:      cfg.drive,
	}
	f.updateCutoff()
	f.updateResonance()
	f.updateDrive()

	return f, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// Mode returns the output mode.
func (f *Filter) Mode() Mode { return f.mode }

// CutoffHz returns the requested cutoff frequency in Hz.
func (f *Filter) CutoffHz() float64 { return f.cutoffHz }

// Resonance returns the resonance in [0, 1].
func (f *Filter) Resonance() float64 { return f.resonance }

// Drive returns the input drive.
func (f *Filter) Drive() float64 { return f.drive }

// SetSampleRate updates the sample rate and recomputes the cutoff coefficient.
func (f *Filter) SetSampleRate(sampleRate float64) error {
	if !isFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("ladder: sample rate must be > 0 and finite: %f", sampleRate)
	}

	f.sampleRate = sampleRate
	f.updateCutoff()

	return nil
}

// SetMode updates the output mode. State is kept.
func (f *Filter) SetMode(mode Mode) error {
	if !validMode(mode) {
		return fmt.Errorf("ladder: invalid mode: %d", mode)
	}

	f.mode = mode

	return nil
}

// SetCutoffHz updates the cutoff frequency.
func (f *Filter) SetCutoffHz(cutoffHz float64) error {
	if err := validateFiniteRange(cutoffHz, minCutoffHz, math.Inf(1), "cutoff"); err != nil {
		return err
	}

	if cutoffHz != f.cutoffHz {
		f.cutoffHz = cutoffHz
		f.updateCutoff()
	}

	return nil
}

// SetResonance updates the resonance.
func (f *Filter) SetResonance(resonance float64) error {
	if err := validateFiniteRange(resonance, 0, maxResonance, "resonance"); err != nil {
		return err
	}

	f.resonance = resonance
	f.updateResonance()

	return nil
}

// SetDrive updates the input drive and its gain compensation.
func (f *Filter) SetDrive(drive float64) error {
	if err := validateFiniteRange(drive, minDrive, maxDrive, "drive"); err != nil {
		return err
	}

	if drive != f.drive {
		f.drive = drive
		f.updateDrive()
	}

	return nil
}

// Reset clears the ladder state.
func (f *Filter) Reset() {
	f.state = State{}
}

// State returns a copy of the ladder node values.
func (f *Filter) State() State {
	return f.state
}

// SetState restores previously saved node values.
func (f *Filter) SetState(state State) error {
	for _, v := range state {
		if !isFinite(v) {
			return fmt.Errorf("ladder: state contains NaN or Inf")
		}
	}

	f.state = state

	return nil
}

// ProcessSample filters one sample.
func (f *Filter) ProcessSample(input float64) float64 {
	if !isFinite(input) {
		input = 0
	}

	m := &modeMix[f.mode]
	s := &f.state

	a1 := f.a1
	g := 1 - a1
	b0 := g * 0.76923076923
	b1 := g * 0.23076923076

	dx := f.gain * math.Tanh(f.drive*input)
	a := dx + f.scaledResonance*-4*(f.gain2*math.Tanh(f.drive2*s[4])-dx*m.comp)
	b := b1*s[0] + a1*s[1] + b0*a
	c := b1*s[1] + a1*s[2] + b0*b
	d := b1*s[2] + a1*s[3] + b0*c
	e := b1*s[3] + a1*s[4] + b0*d

	s[0] = core.FlushDenormals(a)
	s[1] = core.FlushDenormals(b)
	s[2] = core.FlushDenormals(c)
	s[3] = core.FlushDenormals(d)
	s[4] = core.FlushDenormals(e)

	w := &m.weights

	return a*w[0] + b*w[1] + c*w[2] + d*w[3] + e*w[4]
}

// ProcessInPlace filters a mono buffer in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = f.ProcessSample(buf[i])
	}
}

func (f *Filter) updateCutoff() {
	fc := min(f.cutoffHz, maxCutoffRatio*f.sampleRate)
	f.a1 = math.Exp(-2 * math.Pi * fc / f.sampleRate)
}

func (f *Filter) updateResonance() {
	f.scaledResonance = minScaledResonance + f.resonance*(maxScaledResonance-minScaledResonance)
}

func (f *Filter) updateDrive() {
	f.gain = driveGain(f.drive)
	f.drive2 = f.drive*0.04 + 0.96
	f.gain2 = driveGain(f.drive2)
}

// driveGain compensates the loudness increase of the tanh stage.
func driveGain(drive float64) float64 {
	return math.Pow(drive, -2.642)*0.6103 + 0.3903
}

func validMode(mode Mode) bool {
	return mode >= ModeLPF12 && mode <= ModeBPF24
}

func validateFiniteRange(value, min, max float64, name string) error {
	if !isFinite(value) {
		return fmt.Errorf("ladder: %s must be finite: %v", name, value)
	}

	if value < min || value > max {
		return fmt.Errorf("ladder: %s must be in [%g, %g]: %f", name, min, max, value)
	}

	return nil
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
