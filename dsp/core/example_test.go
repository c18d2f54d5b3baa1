package core_test

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-fxchain/dsp/core"
)

func ExampleNewStreamFormat() {
	f := core.NewStreamFormat(
		core.WithSampleRate(44100),
		core.WithBlockSize(441),
		core.WithChannels(1),
	)

	fmt.Printf("%.0f Hz, %d ch, %v per block, %d frames per second\n",
		f.SampleRate, f.Channels, f.BlockDuration(), f.Frames(time.Second))

	// Output:
	// 44100 Hz, 1 ch, 10ms per block, 44100 frames per second
}

func ExampleNewBlock() {
	block := core.NewBlock(2, 3)
	block[0][1] = 0.5
	block[1][2] = -0.5

	out := make([]float32, 6)
	core.Interleave(out, block)
	fmt.Println(out)

	// Output:
	// [0 0 0.5 0 0 -0.5]
}
