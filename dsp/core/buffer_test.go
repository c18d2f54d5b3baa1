package core

import "testing"

func TestNewBlockChannelsAreIndependent(t *testing.T) {
	block := NewBlock(2, 4)
	if len(block) != 2 || len(block[0]) != 4 || len(block[1]) != 4 {
		t.Fatalf("unexpected block shape %dx%d", len(block), len(block[0]))
	}

	block[0] = append(block[0], 9)
	if block[1][0] != 0 {
		t.Fatal("append on channel 0 overwrote channel 1")
	}

	if NewBlock(0, 4) != nil {
		t.Fatal("expected nil block for zero channels")
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, -2, 3}
	Zero(buf[1:])

	if buf[0] != 1 || buf[1] != 0 || buf[2] != 0 {
		t.Fatalf("Zero() = %v", buf)
	}
}

func TestInterleave(t *testing.T) {
	block := [][]float64{{1, 2, 3}, {-1, -2, -3}}

	tests := []struct {
		name   string
		dst    int
		frames int
		want   []float32
	}{
		{name: "fits", dst: 6, frames: 3, want: []float32{1, -1, 2, -2, 3, -3}},
		{name: "short", dst: 5, frames: 2, want: []float32{1, -1, 2, -2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]float32, tt.dst)
			if frames := Interleave(dst, block); frames != tt.frames {
				t.Fatalf("frames = %d, want %d", frames, tt.frames)
			}

			for i := range tt.want {
				if dst[i] != tt.want[i] {
					t.Fatalf("dst[%d] = %v, want %v", i, dst[i], tt.want[i])
				}
			}
		})
	}
}
