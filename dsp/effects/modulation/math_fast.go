//go:build fastmath

package modulation

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// mathExp computes e^x using fast approximation. The phaser evaluates it
// once per sample for the sweep, so it dominates the per-sample cost.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}

// mathTan computes tan(x) using standard library math.
// algo-approx has no tangent, and the prewarp needs full precision near
// Nyquist.
func mathTan(x float64) float64 {
	return math.Tan(x)
}
