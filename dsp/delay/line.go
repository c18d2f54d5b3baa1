// Package delay provides the modulated delay line behind the chorus.
package delay

import (
	"fmt"
	"math/bits"
)

// Line is a circular delay line whose length is a power of two, so reads
// wrap with a mask.
type Line struct {
	buf  []float64
	mask int
	pos  int // next write index
}

// New returns a line that holds at least minLen samples.
func New(minLen int) (*Line, error) {
	if minLen <= 0 {
		return nil, fmt.Errorf("delay: length must be > 0: %d", minLen)
	}

	size := 1
	if minLen > 1 {
		size = 1 << bits.Len(uint(minLen-1))
	}

	return &Line{buf: make([]float64, size), mask: size - 1}, nil
}

// Len is the capacity in samples.
func (d *Line) Len() int { return len(d.buf) }

// Write pushes one sample.
func (d *Line) Write(sample float64) {
	d.buf[d.pos] = sample
	d.pos = (d.pos + 1) & d.mask
}

// Tap returns the sample written n writes ago. Tap(0) is the most recent.
func (d *Line) Tap(n int) float64 {
	return d.buf[(d.pos-1-n)&d.mask]
}

// ReadFractional reads between taps with a 4-point cubic Hermite spline.
// The delay is clamped to [0, Len-3].
func (d *Line) ReadFractional(delay float64) float64 {
	delay = min(max(delay, 0), float64(len(d.buf)-3))

	n := int(delay)
	t := delay - float64(n)

	return hermite(t, d.Tap(max(n-1, 0)), d.Tap(n), d.Tap(n+1), d.Tap(n+2))
}

// Reset clears the line.
func (d *Line) Reset() {
	clear(d.buf)
	d.pos = 0
}

// hermite interpolates between x0 and x1 at t in [0, 1].
func hermite(t, xm1, x0, x1, x2 float64) float64 {
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)

	return ((c3*t+c2)*t+c1)*t + x0
}
