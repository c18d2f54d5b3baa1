// Package modulation provides reusable non-I/O modulation effects.
//
// Included processors:
//   - Chorus: LFO-modulated fractional delay with feedback.
//   - Phaser: Allpass-cascade modulation effect with a logarithmic sweep.
//
// Both processors are mono and stateful. Use one instance per channel.
package modulation
