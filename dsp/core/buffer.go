package core

// NewBlock allocates a planar block of channels x frames samples backed by
// one array. Each channel is capped so appends cannot spill into the next.
func NewBlock(channels, frames int) [][]float64 {
	if channels <= 0 {
		return nil
	}

	frames = max(frames, 0)
	backing := make([]float64, channels*frames)

	block := make([][]float64, channels)
	for ch := range block {
		block[ch] = backing[ch*frames : (ch+1)*frames : (ch+1)*frames]
	}

	return block
}

// Zero clears buf.
func Zero(buf []float64) {
	clear(buf)
}

// Interleave writes the planar block into dst as interleaved float32 frames
// and returns the number of frames written.
func Interleave(dst []float32, block [][]float64) int {
	channels := len(block)
	if channels == 0 {
		return 0
	}

	frames := min(len(block[0]), len(dst)/channels)
	for ch, samples := range block {
		for i, v := range samples[:frames] {
			dst[i*channels+ch] = float32(v)
		}
	}

	return frames
}
