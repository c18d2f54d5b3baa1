package design

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-fxchain/dsp/filter/biquad"
	"github.com/cwbudde/algo-fxchain/internal/testutil"
)

func mustDesign(t *testing.T, k Kind, freq, q, gainDB, sr float64) biquad.Coefficients {
	t.Helper()

	c, err := Design(k, freq, q, gainDB, sr)
	if err != nil {
		t.Fatalf("Design(%v, %v) error = %v", k, freq, err)
	}

	return c
}

func TestShapes(t *testing.T) {
	const sr, f = 48000.0, 1000.0

	q := 1 / math.Sqrt2

	bp := mustDesign(t, Bandpass, f, q, 0, sr)
	if db := bp.GainDB(f, sr); !testutil.ApproxEqual(db, 0, 1e-9) {
		t.Fatalf("bandpass centre gain = %g dB", db)
	}

	if bp.GainDB(100, sr) > -12 || bp.GainDB(10000, sr) > -12 {
		t.Fatal("bandpass skirts too high")
	}

	n := mustDesign(t, Notch, f, q, 0, sr)
	if db := n.GainDB(f, sr); db > -100 {
		t.Fatalf("notch centre gain = %g dB", db)
	}

	if db := n.GainDB(20, sr); math.Abs(db) > 0.01 {
		t.Fatalf("notch gain at 20 Hz = %g dB", db)
	}

	ap := mustDesign(t, Allpass, f, q, 0, sr)
	for _, hz := range []float64{50, 500, 1000, 5000, 15000} {
		if db := ap.GainDB(hz, sr); math.Abs(db) > 1e-9 {
			t.Fatalf("allpass gain at %v Hz = %g dB", hz, db)
		}
	}
}

func TestPeakGainAtCentre(t *testing.T) {
	for _, gain := range []float64{-24, -6, 0, 6, 12, 24} {
		c := mustDesign(t, Peak, 750, 1, gain, 48000)

		if got := c.GainDB(750, 48000); !testutil.ApproxEqual(got, gain, 1e-6) {
			t.Errorf("gain %v dB: centre = %v dB", gain, got)
		}

		if far := c.GainDB(20, 48000); math.Abs(far) > 0.25 {
			t.Errorf("gain %v dB: 20 Hz = %v dB", gain, far)
		}
	}
}

func TestStableAcrossRange(t *testing.T) {
	for _, sr := range []float64{22050, 44100, 48000, 96000, 192000} {
		for k := Peak; k <= Allpass; k++ {
			for _, q := range []float64{0.1, 1, 10} {
				for _, f := range []float64{20, 1000, 0.49 * sr} {
					c := mustDesign(t, k, f, q, 24, sr)
					testutil.RequireFinite(t, []float64{c.B0, c.B1, c.B2, c.A1, c.A2})

					if !c.Stable() {
						t.Fatalf("%v f=%v q=%v sr=%v unstable: %+v", k, f, q, sr, c)
					}
				}
			}
		}
	}
}

func TestDesignErrors(t *testing.T) {
	tests := []struct {
		name string
		k    Kind
		freq float64
		q    float64
		sr   float64
		want error
	}{
		{name: "zero rate", k: Peak, freq: 1000, q: 1, sr: 0, want: ErrSampleRate},
		{name: "nan rate", k: Peak, freq: 1000, q: 1, sr: math.NaN(), want: ErrSampleRate},
		{name: "zero freq", k: Notch, freq: 0, q: 1, sr: 48000, want: ErrFrequency},
		{name: "nyquist", k: Bandpass, freq: 24000, q: 1, sr: 48000, want: ErrFrequency},
		{name: "zero q", k: Allpass, freq: 1000, q: 0, sr: 48000, want: ErrQuality},
		{name: "inf q", k: Allpass, freq: 1000, q: math.Inf(1), sr: 48000, want: ErrQuality},
		{name: "kind", k: Kind(9), freq: 1000, q: 1, sr: 48000, want: ErrKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Design(tt.k, tt.freq, tt.q, 0, tt.sr); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if Notch.String() != "notch" || Kind(7).String() != "Kind(7)" {
		t.Fatalf("unexpected names %q %q", Notch, Kind(7))
	}
}
