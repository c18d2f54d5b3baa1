package cli

import (
	"fmt"
	"math"
	"strings"
)

// oscillator is the test signal fed into the chain by render and play.
type oscillator struct {
	shape string
	phase float64
	step  float64
	amp   float64
}

func newOscillator(shape string, freqHz, sampleRate, amp float64) (*oscillator, error) {
	shape = strings.ToLower(shape)
	switch shape {
	case "sine", "saw", "square":
	default:
		return nil, fmt.Errorf("unknown tone shape %q (want sine, saw or square)", shape)
	}

	if freqHz <= 0 || freqHz >= sampleRate/2 {
		return nil, fmt.Errorf("tone frequency must be in (0, %g): %g", sampleRate/2, freqHz)
	}

	return &oscillator{
		shape: shape,
		step:  freqHz / sampleRate,
		amp:   amp,
	}, nil
}

// Fill writes the same signal to every channel of block.
func (o *oscillator) Fill(block [][]float64) {
	if len(block) == 0 {
		return
	}

	for i := range block[0] {
		v := o.amp * o.sample()
		for _, ch := range block {
			ch[i] = v
		}

		o.phase += o.step
		if o.phase >= 1 {
			o.phase--
		}
	}
}

func (o *oscillator) sample() float64 {
	switch o.shape {
	case "saw":
		return 2*o.phase - 1
	case "square":
		if o.phase < 0.5 {
			return 1
		}

		return -1
	default:
		return math.Sin(2 * math.Pi * o.phase)
	}
}
