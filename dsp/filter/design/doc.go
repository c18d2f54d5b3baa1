// Package design computes RBJ cookbook biquad coefficients for the shapes
// the general filter offers: peaking EQ, band-pass, notch and all-pass.
//
// Arguments outside their valid range are reported as errors wrapping one
// of the Err* values. Callers that must keep filtering clamp the frequency
// below Nyquist first.
package design
