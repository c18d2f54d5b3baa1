// Package biquad implements the second-order IIR section used by the
// general filter of the effect chain.
//
// A [Section] runs Direct Form II Transposed. Coefficients can be swapped
// between blocks while the delay state is kept, so a moving filter does not
// click. Coefficient design lives in dsp/filter/design.
package biquad
