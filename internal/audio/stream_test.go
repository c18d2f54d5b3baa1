package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

// rampSource writes a running frame counter to the left channel and its
// negation to the right.
type rampSource struct {
	next  float64
	calls int
}

func (s *rampSource) Render(block [][]float64) {
	s.calls++

	for i := range block[0] {
		block[0][i] = s.next
		block[1][i] = -s.next
		s.next++
	}
}

func decode(p []byte) []float32 {
	out := make([]float32, len(p)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
	}

	return out
}

func TestStreamReaderContinuousAcrossReads(t *testing.T) {
	src := &rampSource{}

	r, err := NewStreamReader(src, 16)
	if err != nil {
		t.Fatalf("NewStreamReader() error = %v", err)
	}

	var got []float32

	for _, frames := range []int{5, 16, 1, 30, 12} {
		p := make([]byte, frames*bytesPerFrame)

		n, err := r.Read(p)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}

		if n != len(p) {
			t.Fatalf("Read() = %d, want %d", n, len(p))
		}

		got = append(got, decode(p)...)
	}

	for i := 0; i < len(got); i += 2 {
		frame := float32(i / 2)
		if got[i] != frame || got[i+1] != -frame {
			t.Fatalf("frame %d = (%g, %g), want (%g, %g)", i/2, got[i], got[i+1], frame, -frame)
		}
	}

	// 64 frames in blocks of 16.
	if src.calls != 4 {
		t.Fatalf("Render called %d times, want 4", src.calls)
	}
}

func TestStreamReaderPartialFrame(t *testing.T) {
	r, _ := NewStreamReader(&rampSource{}, 4)

	n, err := r.Read(make([]byte, bytesPerFrame-1))
	if err != nil || n != 0 {
		t.Fatalf("Read(short) = %d, %v; want 0, nil", n, err)
	}
}

func TestNewStreamReaderValidation(t *testing.T) {
	if _, err := NewStreamReader(&rampSource{}, 0); err == nil {
		t.Fatal("expected error for zero block size")
	}
}
