package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fxchain/dsp/core"
)

const (
	defaultPhaserRateHz      = 0.2
	defaultPhaserDepth       = 0.1
	defaultPhaserCenterHz    = 1000.0
	defaultPhaserStages      = 6
	defaultPhaserFeedback    = 0.0
	defaultPhaserMix         = 0.05
	maxPhaserStages          = 12
	phaserMinSweepHz         = 20.0
	phaserMaxSweepHz         = 20000.0
	phaserNyquistSafetyRatio = 0.49

	// maxPhaserFeedback keeps the feedback loop strictly contractive.
	maxPhaserFeedback = 0.99
)

// PhaserOption mutates phaser construction parameters.
type PhaserOption func(*phaserConfig) error

type phaserConfig struct {
	rateHz   float64
	depth    float64
	centerHz float64
	stages   int
	feedback float64
	mix      float64
}

func defaultPhaserConfig() phaserConfig {
	return phaserConfig{
		rateHz:   defaultPhaserRateHz,
		depth:    defaultPhaserDepth,
		centerHz: defaultPhaserCenterHz,
		stages:   defaultPhaserStages,
		feedback: defaultPhaserFeedback,
		mix:      defaultPhaserMix,
	}
}

// WithPhaserRateHz sets modulation speed in Hz.
func WithPhaserRateHz(rateHz float64) PhaserOption {
	return func(cfg *phaserConfig) error {
		if err := validatePhaserRate(rateHz); err != nil {
			return err
		}

		cfg.rateHz = rateHz

		return nil
	}
}

// WithPhaserDepth sets sweep depth in [0, 1].
func WithPhaserDepth(depth float64) PhaserOption {
	return func(cfg *phaserConfig) error {
		if err := validateUnit("phaser depth", depth); err != nil {
			return err
		}

		cfg.depth = depth

		return nil
	}
}

// WithPhaserCenterHz sets the sweep center frequency in Hz.
func WithPhaserCenterHz(centerHz float64) PhaserOption {
	return func(cfg *phaserConfig) error {
		if err := validatePhaserCenter(centerHz); err != nil {
			return err
		}

		cfg.centerHz = centerHz

		return nil
	}
}

// WithPhaserStages sets the number of allpass stages in [1, 12].
func WithPhaserStages(stages int) PhaserOption {
	return func(cfg *phaserConfig) error {
		if stages < 1 || stages > maxPhaserStages {
			return fmt.Errorf("phaser stages must be in [1, %d]: %d", maxPhaserStages, stages)
		}

		cfg.stages = stages

		return nil
	}
}

// WithPhaserFeedback sets feedback amount in [-1, 1].
// The magnitude is capped at 0.99 when processing.
func WithPhaserFeedback(feedback float64) PhaserOption {
	return func(cfg *phaserConfig) error {
		if err := validateFeedback("phaser", feedback); err != nil {
			return err
		}

		cfg.feedback = feedback

		return nil
	}
}

// WithPhaserMix sets wet amount in [0, 1].
func WithPhaserMix(mix float64) PhaserOption {
	return func(cfg *phaserConfig) error {
		if err := validateUnit("phaser mix", mix); err != nil {
			return err
		}

		cfg.mix = mix

		return nil
	}
}

type phaserAllpassStage struct {
	x1 float64
	y1 float64
}

func (s *phaserAllpassStage) reset() {
	s.x1 = 0
	s.y1 = 0
}

func (s *phaserAllpassStage) process(x, a float64) float64 {
	y := a*x + s.x1 - a*s.y1
	s.x1 = x
	s.y1 = core.FlushDenormals(y)

	return y
}

// Phaser is a mono allpass-cascade phaser with LFO modulation.
//
// The stage frequency sweeps logarithmically between 20 Hz and
// min(20 kHz, 0.49*sampleRate):
//
//	f = 20 * (fmax/20)^clamp(norm(center) + depth*0.5*sin(phase), 0, 1)
type Phaser struct {
	sampleRate float64
	rateHz     float64
	depth      float64
	centerHz   float64
	feedback   float64
	mix        float64

	sweepMaxHz   float64
	logSweepSpan float64
	normCenter   float64

	lfoPhase       float64
	feedbackSample float64

	stages []phaserAllpassStage
}

// NewPhaser creates a phaser with practical defaults and optional overrides.
func NewPhaser(sampleRate float64, opts ...PhaserOption) (*Phaser, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("phaser sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultPhaserConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	p := &Phaser{
		sampleRate: sampleRate,
		rateHz:     cfg.rateHz,
		depth:      cfg.depth,
		centerHz:   cfg.centerHz,
		feedback:   cfg.feedback,
		mix:        cfg.mix,
		stages:     make([]phaserAllpassStage, cfg.stages),
	}
	p.updateSweep()

	return p, nil
}

// SetSampleRate updates sample rate.
func (p *Phaser) SetSampleRate(sampleRate float64) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("phaser sample rate must be > 0 and finite: %f", sampleRate)
	}

	p.sampleRate = sampleRate
	p.updateSweep()

	return nil
}

// SetRateHz sets modulation speed in Hz.
func (p *Phaser) SetRateHz(rateHz float64) error {
	if err := validatePhaserRate(rateHz); err != nil {
		return err
	}

	p.rateHz = rateHz

	return nil
}

// SetDepth sets sweep depth in [0, 1].
func (p *Phaser) SetDepth(depth float64) error {
	if err := validateUnit("phaser depth", depth); err != nil {
		return err
	}

	p.depth = depth

	return nil
}

// SetCenterHz sets the sweep center frequency in Hz.
func (p *Phaser) SetCenterHz(centerHz float64) error {
	if err := validatePhaserCenter(centerHz); err != nil {
		return err
	}

	if centerHz != p.centerHz {
		p.centerHz = centerHz
		p.updateSweep()
	}

	return nil
}

// SetStages sets the number of allpass stages in [1, 12]. It allocates
// when the count changes, so call it outside the audio callback.
func (p *Phaser) SetStages(stages int) error {
	if stages < 1 || stages > maxPhaserStages {
		return fmt.Errorf("phaser stages must be in [1, %d]: %d", maxPhaserStages, stages)
	}

	if stages == len(p.stages) {
		return nil
	}

	p.stages = make([]phaserAllpassStage, stages)

	return nil
}

// SetFeedback sets feedback amount in [-1, 1].
func (p *Phaser) SetFeedback(feedback float64) error {
	if err := validateFeedback("phaser", feedback); err != nil {
		return err
	}

	p.feedback = feedback

	return nil
}

// SetMix sets wet amount in [0, 1].
func (p *Phaser) SetMix(mix float64) error {
	if err := validateUnit("phaser mix", mix); err != nil {
		return err
	}

	p.mix = mix

	return nil
}

// Reset clears allpass and modulation state.
func (p *Phaser) Reset() {
	for i := range p.stages {
		p.stages[i].reset()
	}

	p.feedbackSample = 0
	p.lfoPhase = 0
}

// Process processes one sample.
func (p *Phaser) Process(sample float64) float64 {
	fb := core.Clamp(p.feedback, -maxPhaserFeedback, maxPhaserFeedback)
	x := sample + p.feedbackSample*fb
	coef := phaserAllpassCoefficient(p.modulatedFrequency(), p.sampleRate)

	y := x
	for i := range p.stages {
		y = p.stages[i].process(y, coef)
	}

	p.feedbackSample = core.FlushDenormals(y)

	p.lfoPhase += 2 * math.Pi * p.rateHz / p.sampleRate
	if p.lfoPhase >= 2*math.Pi {
		p.lfoPhase -= 2 * math.Pi
	}

	return sample*(1-p.mix) + y*p.mix
}

// ProcessSample is an alias for Process.
func (p *Phaser) ProcessSample(sample float64) float64 {
	return p.Process(sample)
}

// ProcessInPlace applies phasing to buf in place.
func (p *Phaser) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = p.Process(buf[i])
	}
}

// SampleRate returns sample rate in Hz.
func (p *Phaser) SampleRate() float64 { return p.sampleRate }

// RateHz returns LFO speed in Hz.
func (p *Phaser) RateHz() float64 { return p.rateHz }

// Depth returns sweep depth in [0, 1].
func (p *Phaser) Depth() float64 { return p.depth }

// CenterHz returns the sweep center frequency in Hz.
func (p *Phaser) CenterHz() float64 { return p.centerHz }

// Stages returns number of allpass stages.
func (p *Phaser) Stages() int { return len(p.stages) }

// Feedback returns the requested feedback amount in [-1, 1].
func (p *Phaser) Feedback() float64 { return p.feedback }

// Mix returns wet amount in [0, 1].
func (p *Phaser) Mix() float64 { return p.mix }

func (p *Phaser) updateSweep() {
	p.sweepMaxHz = min(phaserMaxSweepHz, phaserNyquistSafetyRatio*p.sampleRate)
	p.logSweepSpan = math.Log(p.sweepMaxHz / phaserMinSweepHz)

	center := core.Clamp(p.centerHz, phaserMinSweepHz, p.sweepMaxHz)
	p.normCenter = math.Log(center/phaserMinSweepHz) / p.logSweepSpan
}

func (p *Phaser) modulatedFrequency() float64 {
	pos := core.Clamp(p.normCenter+p.depth*0.5*math.Sin(p.lfoPhase), 0, 1)
	return phaserMinSweepHz * mathExp(pos*p.logSweepSpan)
}

func phaserAllpassCoefficient(freqHz, sampleRate float64) float64 {
	freqHz = core.Clamp(freqHz, 1, phaserNyquistSafetyRatio*sampleRate)

	g := mathTan(math.Pi * freqHz / sampleRate)
	if !core.IsFinite(g) {
		return 0
	}

	return (1 - g) / (1 + g)
}

func validatePhaserRate(rateHz float64) error {
	if rateHz <= 0 || !core.IsFinite(rateHz) {
		return fmt.Errorf("phaser rate must be > 0 and finite: %f", rateHz)
	}

	return nil
}

func validatePhaserCenter(centerHz float64) error {
	if centerHz <= 0 || !core.IsFinite(centerHz) {
		return fmt.Errorf("phaser center frequency must be > 0 and finite: %f", centerHz)
	}

	return nil
}

func validateUnit(name string, v float64) error {
	if v < 0 || v > 1 || !core.IsFinite(v) {
		return fmt.Errorf("%s must be in [0, 1]: %f", name, v)
	}

	return nil
}

func validateFeedback(name string, v float64) error {
	if v < -1 || v > 1 || !core.IsFinite(v) {
		return fmt.Errorf("%s feedback must be in [-1, 1]: %f", name, v)
	}

	return nil
}
