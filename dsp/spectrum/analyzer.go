package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-fxchain/dsp/core"
	"github.com/cwbudde/algo-fxchain/dsp/window"
)

// FloorDB is the level reported for empty bins.
const FloorDB = -300

// Analyzer computes single-sided amplitude spectra of one channel using a
// periodic Hann window. Buffers are allocated once in NewAnalyzer.
type Analyzer struct {
	size       int
	sampleRate float64

	plan   *algofft.Plan[complex128]
	window []float64
	scale  float64

	frame []float64
	in    []complex128
	out   []complex128
	re    []float64
	im    []float64
	mag   []float64
}

// NewAnalyzer returns an analyzer for frames of size samples. size must be
// a power of two of at least 16.
func NewAnalyzer(size int, sampleRate float64) (*Analyzer, error) {
	if size < 16 || size&(size-1) != 0 {
		return nil, fmt.Errorf("spectrum: analyzer size must be a power of two >= 16: %d", size)
	}

	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("spectrum: sample rate must be > 0: %v", sampleRate)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	win := window.Generate(window.TypeHann, size, window.WithPeriodic())

	gain, err := window.CoherentGain(win)
	if err != nil {
		return nil, err
	}

	bins := size/2 + 1

	return &Analyzer{
		size:       size,
		sampleRate: sampleRate,
		plan:       plan,
		window:     win,
		scale:      2 / (float64(size) * gain),
		frame:      make([]float64, size),
		in:         make([]complex128, size),
		out:        make([]complex128, size),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		mag:        make([]float64, bins),
	}, nil
}

// Size returns the frame length.
func (a *Analyzer) Size() int { return a.size }

// Bins returns the number of single-sided bins, Size/2+1.
func (a *Analyzer) Bins() int { return len(a.mag) }

// BinFrequency returns the center frequency of bin k in Hz.
func (a *Analyzer) BinFrequency(k int) float64 {
	return float64(k) * a.sampleRate / float64(a.size)
}

// Analyze transforms the first Size samples of x, zero-padding shorter
// input. The result is read with Amplitudes, Peak and BandLevelDB.
func (a *Analyzer) Analyze(x []float64) error {
	n := copy(a.frame, x)
	core.Zero(a.frame[n:])

	if err := window.ApplyCoefficientsInPlace(a.frame, a.window); err != nil {
		return err
	}

	for i, v := range a.frame {
		a.in[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return fmt.Errorf("spectrum: fft: %w", err)
	}

	for k := range a.mag {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}

	MagnitudeFromParts(a.mag, a.re, a.im)
	vecmath.ScaleBlock(a.mag, a.mag, a.scale)

	// DC and Nyquist have no mirrored half.
	a.mag[0] *= 0.5
	a.mag[len(a.mag)-1] *= 0.5

	return nil
}

// Amplitudes returns the linear peak amplitude per bin of the last Analyze.
// The slice is owned by the analyzer.
func (a *Analyzer) Amplitudes() []float64 {
	return a.mag
}

// Peak returns the frequency and level in dBFS of the strongest non-DC bin.
func (a *Analyzer) Peak() (freqHz, levelDB float64) {
	best := 1
	for k := 2; k < len(a.mag); k++ {
		if a.mag[k] > a.mag[best] {
			best = k
		}
	}

	return a.BinFrequency(best), floorDB(a.mag[best])
}

// BandLevelDB returns the strongest bin level in dBFS between lo and hi Hz.
func (a *Analyzer) BandLevelDB(lo, hi float64) float64 {
	peak := 0.0
	for k, m := range a.mag {
		f := a.BinFrequency(k)
		if f >= lo && f <= hi {
			peak = max(peak, m)
		}
	}

	return floorDB(peak)
}
