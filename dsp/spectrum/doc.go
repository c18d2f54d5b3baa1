// Package spectrum measures rendered audio: FFT magnitude spectra, single-bin
// Goertzel tone levels and block peak/RMS meters.
package spectrum
