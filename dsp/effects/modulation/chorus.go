package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fxchain/dsp/core"
	"github.com/cwbudde/algo-fxchain/dsp/delay"
)

const (
	defaultChorusRateHz        = 0.2
	defaultChorusDepth         = 0.05
	defaultChorusCenterDelayMs = 7.0
	defaultChorusFeedback      = 0.0
	defaultChorusMix           = 0.05

	minChorusDelayMs       = 1.0
	maxChorusCenterDelayMs = 100.0
	// chorusMaxDepthMs is the peak-to-peak delay swing at depth 1.
	chorusMaxDepthMs = 20.0

	maxChorusFeedback = 0.99
)

// ChorusOption mutates chorus construction parameters.
type ChorusOption func(*chorusConfig) error

type chorusConfig struct {
	rateHz        float64
	depth         float64
	centerDelayMs float64
	feedback      float64
	mix           float64
}

func defaultChorusConfig() chorusConfig {
	return chorusConfig{
		rateHz:        defaultChorusRateHz,
		depth:         defaultChorusDepth,
		centerDelayMs: defaultChorusCenterDelayMs,
		feedback:      defaultChorusFeedback,
		mix:           defaultChorusMix,
	}
}

// WithChorusRateHz sets LFO speed in Hz.
func WithChorusRateHz(rateHz float64) ChorusOption {
	return func(cfg *chorusConfig) error {
		if err := validateChorusRate(rateHz); err != nil {
			return err
		}

		cfg.rateHz = rateHz

		return nil
	}
}

// WithChorusDepth sets modulation depth in [0, 1].
func WithChorusDepth(depth float64) ChorusOption {
	return func(cfg *chorusConfig) error {
		if err := validateUnit("chorus depth", depth); err != nil {
			return err
		}

		cfg.depth = depth

		return nil
	}
}

// WithChorusCenterDelayMs sets the center delay in [1, 100] ms.
func WithChorusCenterDelayMs(ms float64) ChorusOption {
	return func(cfg *chorusConfig) error {
		if err := validateChorusCenter(ms); err != nil {
			return err
		}

		cfg.centerDelayMs = ms

		return nil
	}
}

// WithChorusFeedback sets feedback amount in [-1, 1].
// The magnitude is capped at 0.99 when processing.
func WithChorusFeedback(feedback float64) ChorusOption {
	return func(cfg *chorusConfig) error {
		if err := validateFeedback("chorus", feedback); err != nil {
			return err
		}

		cfg.feedback = feedback

		return nil
	}
}

// WithChorusMix sets wet amount in [0, 1].
func WithChorusMix(mix float64) ChorusOption {
	return func(cfg *chorusConfig) error {
		if err := validateUnit("chorus mix", mix); err != nil {
			return err
		}

		cfg.mix = mix

		return nil
	}
}

// Chorus is a mono modulated-delay chorus.
//
// Delay time follows:
//
//	d(t) = max(1ms, center + 20ms * depth * 0.5 * sin(phase))
//
// The delay line is fed input + feedback*delayed. The line is sized once for
// the largest center delay plus the largest swing, so no parameter setter
// reallocates.
type Chorus struct {
	sampleRate    float64
	rateHz        float64
	depth         float64
	centerDelayMs float64
	feedback      float64
	mix           float64

	lfoPhase float64
	line     *delay.Line
}

// NewChorus creates a chorus with practical defaults and optional overrides.
func NewChorus(sampleRate float64, opts ...ChorusOption) (*Chorus, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("chorus sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultChorusConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	c := &Chorus{
		sampleRate:    sampleRate,
		rateHz:        cfg.rateHz,
		depth:         cfg.depth,
		centerDelayMs: cfg.centerDelayMs,
		feedback:      cfg.feedback,
		mix:           cfg.mix,
	}

	if err := c.allocateLine(); err != nil {
		return nil, err
	}

	return c, nil
}

// SetSampleRate updates sample rate and reallocates the delay line.
// Call it outside the audio callback.
func (c *Chorus) SetSampleRate(sampleRate float64) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("chorus sample rate must be > 0 and finite: %f", sampleRate)
	}

	c.sampleRate = sampleRate
	c.lfoPhase = 0

	return c.allocateLine()
}

// SetRateHz updates LFO modulation rate.
func (c *Chorus) SetRateHz(rateHz float64) error {
	if err := validateChorusRate(rateHz); err != nil {
		return err
	}

	c.rateHz = rateHz

	return nil
}

// SetDepth updates modulation depth in [0, 1].
func (c *Chorus) SetDepth(depth float64) error {
	if err := validateUnit("chorus depth", depth); err != nil {
		return err
	}

	c.depth = depth

	return nil
}

// SetCenterDelayMs updates the center delay in [1, 100] ms.
func (c *Chorus) SetCenterDelayMs(ms float64) error {
	if err := validateChorusCenter(ms); err != nil {
		return err
	}

	c.centerDelayMs = ms

	return nil
}

// SetFeedback updates feedback amount in [-1, 1].
func (c *Chorus) SetFeedback(feedback float64) error {
	if err := validateFeedback("chorus", feedback); err != nil {
		return err
	}

	c.feedback = feedback

	return nil
}

// SetMix updates wet amount in [0, 1].
func (c *Chorus) SetMix(mix float64) error {
	if err := validateUnit("chorus mix", mix); err != nil {
		return err
	}

	c.mix = mix

	return nil
}

// Reset clears delay state and modulation phase.
func (c *Chorus) Reset() {
	c.line.Reset()
	c.lfoPhase = 0
}

// ProcessSample processes one sample.
func (c *Chorus) ProcessSample(input float64) float64 {
	delayMs := max(minChorusDelayMs, c.centerDelayMs+chorusMaxDepthMs*c.depth*0.5*math.Sin(c.lfoPhase))
	delaySamples := delayMs * 0.001 * c.sampleRate

	// The newest stored sample is one sample old when read before the write.
	delayed := c.line.ReadFractional(delaySamples - 1)

	fb := core.Clamp(c.feedback, -maxChorusFeedback, maxChorusFeedback)
	c.line.Write(core.FlushDenormals(input + fb*delayed))

	c.lfoPhase += 2 * math.Pi * c.rateHz / c.sampleRate
	if c.lfoPhase >= 2*math.Pi {
		c.lfoPhase -= 2 * math.Pi
	}

	return input*(1-c.mix) + delayed*c.mix
}

// ProcessInPlace applies chorus to buf in place.
func (c *Chorus) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = c.ProcessSample(buf[i])
	}
}

// SampleRate returns sample rate in Hz.
func (c *Chorus) SampleRate() float64 { return c.sampleRate }

// RateHz returns modulation speed in Hz.
func (c *Chorus) RateHz() float64 { return c.rateHz }

// Depth returns modulation depth in [0, 1].
func (c *Chorus) Depth() float64 { return c.depth }

// CenterDelayMs returns the center delay in ms.
func (c *Chorus) CenterDelayMs() float64 { return c.centerDelayMs }

// Feedback returns the requested feedback amount in [-1, 1].
func (c *Chorus) Feedback() float64 { return c.feedback }

// Mix returns wet mix amount in [0, 1].
func (c *Chorus) Mix() float64 { return c.mix }

// Capacity returns the delay line length in samples.
func (c *Chorus) Capacity() int { return c.line.Len() }

func (c *Chorus) allocateLine() error {
	maxMs := maxChorusCenterDelayMs + 0.5*chorusMaxDepthMs
	size := int(math.Ceil(maxMs*0.001*c.sampleRate)) + 4

	line, err := delay.New(size)
	if err != nil {
		return fmt.Errorf("chorus delay line: %w", err)
	}

	c.line = line

	return nil
}

func validateChorusRate(rateHz float64) error {
	if rateHz <= 0 || !core.IsFinite(rateHz) {
		return fmt.Errorf("chorus rate must be > 0 and finite: %f", rateHz)
	}

	return nil
}

func validateChorusCenter(ms float64) error {
	if ms < minChorusDelayMs || ms > maxChorusCenterDelayMs || !core.IsFinite(ms) {
		return fmt.Errorf("chorus center delay must be in [%g, %g] ms: %f", minChorusDelayMs, maxChorusCenterDelayMs, ms)
	}

	return nil
}
