package core

import (
	"math"
	"time"
)

// StreamFormat is what a host negotiates before audio starts flowing.
type StreamFormat struct {
	SampleRate float64
	BlockSize  int
	Channels   int
}

// FormatOption adjusts a StreamFormat. Non-positive values are ignored.
type FormatOption func(*StreamFormat)

// DefaultStreamFormat is 48 kHz stereo in blocks of 512 frames.
func DefaultStreamFormat() StreamFormat {
	return StreamFormat{
		SampleRate: 48000,
		BlockSize:  512,
		Channels:   2,
	}
}

func WithSampleRate(sampleRate float64) FormatOption {
	return func(f *StreamFormat) {
		if sampleRate > 0 {
			f.SampleRate = sampleRate
		}
	}
}

func WithBlockSize(blockSize int) FormatOption {
	return func(f *StreamFormat) {
		if blockSize > 0 {
			f.BlockSize = blockSize
		}
	}
}

func WithChannels(channels int) FormatOption {
	return func(f *StreamFormat) {
		if channels > 0 {
			f.Channels = channels
		}
	}
}

// NewStreamFormat applies opts to the default format.
func NewStreamFormat(opts ...FormatOption) StreamFormat {
	f := DefaultStreamFormat()
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}

	return f
}

// Frames is the number of frames that cover d, rounded to the nearest frame.
func (f StreamFormat) Frames(d time.Duration) int {
	return int(math.Round(d.Seconds() * f.SampleRate))
}

// BlockDuration is the time one full block spans.
func (f StreamFormat) BlockDuration() time.Duration {
	return time.Duration(float64(f.BlockSize) * float64(time.Second) / f.SampleRate)
}
