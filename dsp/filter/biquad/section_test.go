package biquad

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fxchain/internal/testutil"
)

var traced = Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}

func TestProcessImpulse(t *testing.T) {
	tests := []struct {
		name string
		c    Coefficients
		in   []float64
		want []float64
	}{
		{name: "passthrough", c: Passthrough, in: []float64{1, 0, -1, 0.5}, want: []float64{1, 0, -1, 0.5}},
		{name: "silence", c: Coefficients{}, in: []float64{1, 1, 1}, want: []float64{0, 0, 0}},
		{name: "delay", c: Coefficients{B1: 1}, in: []float64{1, 2, 3, 4}, want: []float64{0, 1, 2, 3}},
		{name: "average", c: Coefficients{B0: 0.5, B1: 0.5}, in: []float64{1, 1, 1}, want: []float64{0.5, 1, 1}},
		// y0 = 0.25, z1 = 0.5 + 0.2*0.25 = 0.55, z2 = 0.25 - 0.04*0.25 = 0.24, ...
		{name: "recursive", c: traced, in: []float64{1, 0, 0, 0}, want: []float64{0.25, 0.55, 0.35, 0.048}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSection(tt.c)
			for i, x := range tt.in {
				if got := s.Process(x); !testutil.ApproxEqual(got, tt.want[i], 1e-12) {
					t.Fatalf("y[%d] = %.15f, want %.15f", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestProcessBlockMatchesProcess(t *testing.T) {
	in := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}

	ref := NewSection(traced)
	want := make([]float64, len(in))

	for i, x := range in {
		want[i] = ref.Process(x)
	}

	s := NewSection(traced)
	buf := append([]float64(nil), in...)
	s.ProcessBlock(buf[:3])
	s.ProcessBlock(buf[3:])

	testutil.RequireSliceNearlyEqual(t, buf, want, 1e-12)

	if s.State() != ref.State() {
		t.Fatalf("state = %v, want %v", s.State(), ref.State())
	}
}

func TestSetCoefficientsKeepsState(t *testing.T) {
	s := NewSection(traced)
	s.Process(1)

	before := s.State()
	s.SetCoefficients(Passthrough)

	if s.State() != before || s.Coefficients != Passthrough {
		t.Fatalf("state %v coefficients %v", s.State(), s.Coefficients)
	}
}

func TestResetAndRestore(t *testing.T) {
	s := NewSection(traced)
	s.Process(1)
	s.Process(0.5)

	saved := s.State()
	y1, y2 := s.Process(-0.3), s.Process(0.7)

	s.SetState(saved)

	if s.Process(-0.3) != y1 || s.Process(0.7) != y2 {
		t.Fatal("restored state does not reproduce output")
	}

	s.Reset()

	if s.State() != [2]float64{} {
		t.Fatalf("state after reset = %v", s.State())
	}
}

func TestDecayFlushesState(t *testing.T) {
	s := NewSection(traced)
	s.Process(1)

	buf := make([]float64, 10000)
	s.ProcessBlock(buf)

	if s.State() != [2]float64{} {
		t.Fatalf("state did not decay to zero: %v", s.State())
	}
}

func TestResponse(t *testing.T) {
	avg := Coefficients{B0: 0.5, B1: 0.5}

	if db := avg.GainDB(0, 48000); !testutil.ApproxEqual(db, 0, 1e-9) {
		t.Fatalf("DC gain = %g dB", db)
	}

	if db := avg.GainDB(12000, 48000); !testutil.ApproxEqual(db, 20*math.Log10(math.Sqrt2/2), 1e-9) {
		t.Fatalf("gain at fs/4 = %g dB", db)
	}

	if !traced.Stable() {
		t.Fatal("traced section reported unstable")
	}

	if (Coefficients{B0: 1, A1: -2, A2: 1.1}).Stable() {
		t.Fatal("pole outside unit circle reported stable")
	}
}

func BenchmarkProcessBlock(b *testing.B) {
	s := NewSection(traced)
	buf := make([]float64, 512)

	b.ReportAllocs()
	b.SetBytes(int64(len(buf) * 8))

	for b.Loop() {
		s.ProcessBlock(buf)
	}
}
