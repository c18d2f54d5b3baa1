// Package fxchain runs a fixed set of five audio effect units in a
// reorderable serial chain.
//
// The units are a phaser, a chorus, an overdrive, a multi-mode ladder
// filter and a general-purpose biquad filter. A [Processor] owns the
// parameter store, the units and the [Pipeline]. The audio goroutine calls
// [Processor.Process] once per block; control goroutines change parameters
// with [Processor.SetParameter] and the unit order with
// [Processor.RequestReorder].
//
// Order changes travel through an [OrderFIFO], a single-producer
// single-consumer ring. The pipeline drains it at the start of each block
// and keeps only the newest order, so a burst of reorders collapses into
// one change. Parameters are read from atomics once per block. Nothing on
// the audio path locks, blocks or allocates.
package fxchain
