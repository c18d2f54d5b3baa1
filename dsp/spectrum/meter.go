package spectrum

import (
	"math"

	"github.com/cwbudde/algo-fxchain/dsp/core"
)

// LevelMeter accumulates peak and RMS levels over processed blocks.
type LevelMeter struct {
	peak   float64
	sumSq  float64
	frames int
}

// Process adds every sample of every channel of block.
func (m *LevelMeter) Process(block [][]float64) {
	for _, ch := range block {
		for _, v := range ch {
			m.peak = max(m.peak, math.Abs(v))
			m.sumSq += v * v
		}

		m.frames += len(ch)
	}
}

// Reset clears the accumulated levels.
func (m *LevelMeter) Reset() {
	*m = LevelMeter{}
}

// Peak returns the largest absolute sample seen.
func (m *LevelMeter) Peak() float64 { return m.peak }

// RMS returns the root mean square over all samples seen.
func (m *LevelMeter) RMS() float64 {
	if m.frames == 0 {
		return 0
	}

	return math.Sqrt(m.sumSq / float64(m.frames))
}

// PeakDB returns Peak in dBFS, floored at FloorDB.
func (m *LevelMeter) PeakDB() float64 { return floorDB(m.Peak()) }

// RMSDB returns RMS in dBFS, floored at FloorDB.
func (m *LevelMeter) RMSDB() float64 { return floorDB(m.RMS()) }

func floorDB(v float64) float64 {
	if v <= 1e-15 {
		return FloorDB
	}

	return core.LinearToDB(v)
}
