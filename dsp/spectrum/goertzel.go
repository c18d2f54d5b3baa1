package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fxchain/dsp/core"
)

// Goertzel evaluates one DFT bin over all samples processed since the last
// Reset. It is used to track the level of a probe tone through a chain
// without computing a full spectrum.
//
// Leakage applies as with any DFT: the result is exact only when the
// processed length holds an integer number of cycles.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
	n          int
}

// NewGoertzel creates a new Goertzel analyzer for the target frequency.
//
// frequency must be between 0 and sampleRate/2.
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}

	if frequency < 0 || frequency > sampleRate/2 || !core.IsFinite(frequency) {
		return nil, fmt.Errorf("goertzel: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the internal state.
func (g *Goertzel) Reset() {
	g.s0 = 0
	g.s1 = 0
	g.n = 0
}

// ProcessBlock updates the internal state with a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// Power returns |X[k]|^2 for the processed samples.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns |X[k]|.
func (g *Goertzel) Magnitude() float64 {
	return math.Sqrt(max(g.Power(), 0))
}

// Amplitude returns the peak amplitude of a sinusoid at the target
// frequency, 2|X[k]|/N.
func (g *Goertzel) Amplitude() float64 {
	if g.n == 0 {
		return 0
	}

	return 2 * g.Magnitude() / float64(g.n)
}

// AmplitudeDB returns Amplitude in dBFS with a floor at -300 dB.
func (g *Goertzel) AmplitudeDB() float64 {
	a := g.Amplitude()
	if a <= 1e-15 {
		return -300
	}

	return core.LinearToDB(a)
}

// Frequency returns the analyzed frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// Samples returns the number of samples processed since Reset.
func (g *Goertzel) Samples() int { return g.n }

// ToneAmplitude measures the amplitude of frequency in input in one shot.
func ToneAmplitude(input []float64, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}

	g.ProcessBlock(input)

	return g.Amplitude(), nil
}
