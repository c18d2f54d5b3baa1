package effects

import (
	"fmt"
	"math"
)

const (
	defaultOverdriveDrive = 1.0

	minOverdriveDrive = 1.0
	maxOverdriveDrive = 100.0
)

// OverdriveOption mutates overdrive construction parameters.
type OverdriveOption func(*overdriveConfig) error

type overdriveConfig struct {
	drive float64
}

// WithOverdriveDrive sets the pre-shape gain in [1, 100].
func WithOverdriveDrive(drive float64) OverdriveOption {
	return func(cfg *overdriveConfig) error {
		if err := validateOverdriveDrive(drive); err != nil {
			return err
		}

		cfg.drive = drive

		return nil
	}
}

// Overdrive is a memoryless, fully wet tanh waveshaper:
//
//	y = tanh(drive*x)
type Overdrive struct {
	sampleRate float64
	drive      float64
}

// NewOverdrive creates an overdrive with optional overrides.
func NewOverdrive(sampleRate float64, opts ...OverdriveOption) (*Overdrive, error) {
	if sampleRate <= 0 || !isFinite(sampleRate) {
		return nil, fmt.Errorf("overdrive sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := overdriveConfig{drive: defaultOverdriveDrive}
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Overdrive{sampleRate: sampleRate, drive: cfg.drive}, nil
}

// SetSampleRate updates sample rate.
func (o *Overdrive) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !isFinite(sampleRate) {
		return fmt.Errorf("overdrive sample rate must be > 0 and finite: %f", sampleRate)
	}

	o.sampleRate = sampleRate

	return nil
}

// SetDrive sets the pre-shape gain in [1, 100].
func (o *Overdrive) SetDrive(drive float64) error {
	if err := validateOverdriveDrive(drive); err != nil {
		return err
	}

	o.drive = drive

	return nil
}

// Reset is a no-op; the shaper holds no state.
func (o *Overdrive) Reset() {}

// ProcessSample shapes one sample. NaN input yields 0.
func (o *Overdrive) ProcessSample(input float64) float64 {
	y := math.Tanh(input * o.drive)
	if math.IsNaN(y) {
		return 0
	}

	return y
}

// ProcessInPlace shapes buf in place.
func (o *Overdrive) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = o.ProcessSample(buf[i])
	}
}

// SampleRate returns sample rate in Hz.
func (o *Overdrive) SampleRate() float64 { return o.sampleRate }

// Drive returns the pre-shape gain.
func (o *Overdrive) Drive() float64 { return o.drive }

func validateOverdriveDrive(drive float64) error {
	if drive < minOverdriveDrive || drive > maxOverdriveDrive || !isFinite(drive) {
		return fmt.Errorf("overdrive drive must be in [%g, %g]: %f", minOverdriveDrive, maxOverdriveDrive, drive)
	}

	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
