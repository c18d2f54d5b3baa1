//go:build !fastmath

package modulation

import "math"

// mathExp computes e^x using standard library math.
func mathExp(x float64) float64 {
	return math.Exp(x)
}

// mathTan computes tan(x) using standard library math.
func mathTan(x float64) float64 {
	return math.Tan(x)
}
