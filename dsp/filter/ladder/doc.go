// Package ladder provides a multi-mode nonlinear transistor-ladder filter.
//
// The topology is a five-node ladder: a saturated input node followed by
// four one-pole stages with a zero at Nyquist (b0 = 0.769g, b1 = 0.231g).
// Feedback from the last stage is saturated and scaled by the resonance.
// Low-pass, high-pass and band-pass responses at 12 dB/oct and 24 dB/oct
// are obtained by mixing the five node outputs with fixed weights.
//
// Filters are mono and stateful. Use one [Filter] per channel.
package ladder
