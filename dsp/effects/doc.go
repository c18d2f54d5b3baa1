// Package effects provides reusable non-I/O DSP effect kernels.
//
// Subpackages:
//   - github.com/cwbudde/algo-fxchain/dsp/effects/modulation
//
// Effects remaining in this package:
//   - Overdrive: Memoryless tanh waveshaper with drive.
//
// All effects are designed for real-time processing with zero-allocation
// hot paths and support both single-sample and buffer-based processing.
package effects
