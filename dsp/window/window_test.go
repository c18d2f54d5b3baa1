package window

import (
	"math"
	"testing"
)

var allTypes = []Type{
	TypeRectangular,
	TypeHann,
	TypeHamming,
	TypeBlackman,
	TypeBlackmanHarris4Term,
}

func TestGenerateFiniteAndSymmetric(t *testing.T) {
	for _, typ := range allTypes {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 65)
			if len(w) != 65 {
				t.Fatalf("len=%d, want 65", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}

				if mirror := w[len(w)-1-i]; math.Abs(v-mirror) > 1e-12 {
					t.Fatalf("w[%d]=%g, mirror=%g", i, v, mirror)
				}
			}

			if math.Abs(w[32]-1) > 1e-9 {
				t.Fatalf("peak=%g, want 1", w[32])
			}
		})
	}
}

func TestGenerateEdgeCases(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0) = %v, want nil", w)
	}

	if w := Generate(TypeHann, 1); len(w) != 1 || w[0] != 0 {
		t.Fatalf("Generate(1) = %v", w)
	}

	if w := Generate(Type(99), 3); w[0] != 1 || w[2] != 1 {
		t.Fatalf("unknown type should fall back to rectangular: %v", w)
	}

	if Type(99).String() != "unknown" {
		t.Fatal("expected unknown name")
	}
}

func TestPeriodicHannCoherentGain(t *testing.T) {
	w := Generate(TypeHann, 1024, WithPeriodic())

	cg, err := CoherentGain(w)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(cg-0.5) > 1e-12 {
		t.Fatalf("coherent gain = %g, want 0.5", cg)
	}

	enbw, err := EquivalentNoiseBandwidth(w)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(enbw-1.5) > 1e-9 {
		t.Fatalf("ENBW = %g, want 1.5", enbw)
	}
}

func TestCoefficientErrors(t *testing.T) {
	if _, err := CoherentGain(nil); err == nil {
		t.Fatal("expected error for empty coefficients")
	}

	if _, err := EquivalentNoiseBandwidth([]float64{0, 0}); err == nil {
		t.Fatal("expected error for zero coherent gain")
	}

	if err := ApplyCoefficientsInPlace(make([]float64, 3), make([]float64, 4)); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestApplyMatchesGenerate(t *testing.T) {
	buf := make([]float64, 33)
	for i := range buf {
		buf[i] = 2
	}

	Apply(TypeBlackman, buf)

	w := Generate(TypeBlackman, 33)
	for i := range buf {
		if math.Abs(buf[i]-2*w[i]) > 1e-12 {
			t.Fatalf("buf[%d]=%g, want %g", i, buf[i], 2*w[i])
		}
	}
}
