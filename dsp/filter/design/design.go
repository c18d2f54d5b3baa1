package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-fxchain/dsp/filter/biquad"
)

var (
	ErrSampleRate = errors.New("design: sample rate must be positive and finite")
	ErrFrequency  = errors.New("design: frequency must lie in (0, Nyquist)")
	ErrQuality    = errors.New("design: quality must be positive and finite")
	ErrKind       = errors.New("design: unknown filter kind")
)

// Kind selects the response shape. The order matches the mode choices of
// the general filter.
type Kind int

const (
	Peak Kind = iota
	Bandpass
	Notch
	Allpass
)

func (k Kind) String() string {
	switch k {
	case Peak:
		return "peak"
	case Bandpass:
		return "bandpass"
	case Notch:
		return "notch"
	case Allpass:
		return "allpass"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Design returns the coefficients of one RBJ section of kind k centred on
// freq. gainDB only affects Peak. Bandpass has 0 dB gain at the centre.
func Design(k Kind, freq, q, gainDB, sampleRate float64) (biquad.Coefficients, error) {
	if sampleRate <= 0 || !finite(sampleRate) {
		return biquad.Coefficients{}, fmt.Errorf("%w: %v", ErrSampleRate, sampleRate)
	}

	if freq <= 0 || freq >= sampleRate/2 || !finite(freq) {
		return biquad.Coefficients{}, fmt.Errorf("%w: %v Hz at %v Hz", ErrFrequency, freq, sampleRate)
	}

	if q <= 0 || !finite(q) {
		return biquad.Coefficients{}, fmt.Errorf("%w: %v", ErrQuality, q)
	}

	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	// Every kind shares the a1 term and, except Peak, the a0/a2 pair.
	var b0, b1, b2, a0, a2 float64

	switch k {
	case Peak:
		a := math.Pow(10, gainDB/40)
		b0, b1, b2 = 1+alpha*a, -2*cw, 1-alpha*a
		a0, a2 = 1+alpha/a, 1-alpha/a
	case Bandpass:
		b0, b1, b2 = alpha, 0, -alpha
		a0, a2 = 1+alpha, 1-alpha
	case Notch:
		b0, b1, b2 = 1, -2*cw, 1
		a0, a2 = 1+alpha, 1-alpha
	case Allpass:
		b0, b1, b2 = 1-alpha, -2*cw, 1+alpha
		a0, a2 = 1+alpha, 1-alpha
	default:
		return biquad.Coefficients{}, fmt.Errorf("%w: %v", ErrKind, k)
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: -2 * cw / a0,
		A2: a2 / a0,
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
