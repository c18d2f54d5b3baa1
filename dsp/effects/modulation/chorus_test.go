package modulation

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fxchain/internal/testutil"
)

func TestChorusProcessInPlaceMatchesSample(t *testing.T) {
	opts := []ChorusOption{WithChorusDepth(0.6), WithChorusMix(0.5), WithChorusFeedback(0.3)}

	c1, err := NewChorus(48000, opts...)
	if err != nil {
		t.Fatalf("NewChorus() error = %v", err)
	}

	c2, err := NewChorus(48000, opts...)
	if err != nil {
		t.Fatalf("NewChorus() error = %v", err)
	}

	in := testutil.DeterministicSine(330, 48000, 0.7, 2048)

	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = c1.ProcessSample(x)
	}

	got := append([]float64(nil), in...)
	c2.ProcessInPlace(got)

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestChorusResetRestoresState(t *testing.T) {
	c, err := NewChorus(48000, WithChorusDepth(0.5), WithChorusMix(0.7), WithChorusFeedback(-0.4))
	if err != nil {
		t.Fatalf("NewChorus() error = %v", err)
	}

	first := testutil.Impulse(1024, 0)
	c.ProcessInPlace(first)

	c.ProcessInPlace(testutil.DeterministicNoise(3, 1, 3000))
	c.Reset()
	c.Reset()

	second := testutil.Impulse(1024, 0)
	c.ProcessInPlace(second)

	testutil.RequireSliceNearlyEqual(t, second, first, 1e-12)
}

func TestChorusImpulseArrivesAtCenterDelay(t *testing.T) {
	const sr = 48000.0

	c, err := NewChorus(sr, WithChorusDepth(0), WithChorusMix(1), WithChorusCenterDelayMs(7))
	if err != nil {
		t.Fatalf("NewChorus() error = %v", err)
	}

	buf := testutil.Impulse(512, 0)
	c.ProcessInPlace(buf)

	want := int(math.Round(0.007 * sr))
	for i, v := range buf {
		if i == want {
			if math.Abs(v-1) > 1e-9 {
				t.Fatalf("delayed impulse at %d = %v, want 1", i, v)
			}
			continue
		}
		if math.Abs(v) > 1e-9 {
			t.Fatalf("unexpected energy at %d: %v", i, v)
		}
	}
}

func TestChorusFeedbackRepeats(t *testing.T) {
	const sr = 48000.0

	c, err := NewChorus(sr,
		WithChorusDepth(0),
		WithChorusMix(1),
		WithChorusCenterDelayMs(1),
		WithChorusFeedback(0.5),
	)
	if err != nil {
		t.Fatalf("NewChorus() error = %v", err)
	}

	buf := testutil.Impulse(200, 0)
	c.ProcessInPlace(buf)

	for k, want := range []float64{1, 0.5, 0.25} {
		idx := 48 * (k + 1)
		if math.Abs(buf[idx]-want) > 1e-9 {
			t.Fatalf("repeat %d at %d = %v, want %v", k, idx, buf[idx], want)
		}
	}
}

func TestChorusFullFeedbackStaysBounded(t *testing.T) {
	for _, fb := range []float64{-1, 1} {
		c, err := NewChorus(44100,
			WithChorusDepth(1),
			WithChorusMix(1),
			WithChorusFeedback(fb),
			WithChorusRateHz(100),
			WithChorusCenterDelayMs(1),
		)
		if err != nil {
			t.Fatalf("NewChorus() error = %v", err)
		}

		buf := testutil.DeterministicNoise(21, 0.5, 44100)
		c.ProcessInPlace(buf)
		testutil.RequireFinite(t, buf)
	}
}

func TestChorusCapacityCoversMaximumDelay(t *testing.T) {
	for _, sr := range []float64{8000, 44100, 48000, 192000} {
		c, err := NewChorus(sr)
		if err != nil {
			t.Fatalf("NewChorus() error = %v", err)
		}

		need := int(math.Ceil(0.110*sr)) + 3
		if c.Capacity() < need {
			t.Fatalf("sr=%v: capacity %d < %d", sr, c.Capacity(), need)
		}

		before := c.Capacity()
		if err := c.SetCenterDelayMs(100); err != nil {
			t.Fatalf("SetCenterDelayMs() error = %v", err)
		}
		if err := c.SetDepth(1); err != nil {
			t.Fatalf("SetDepth() error = %v", err)
		}
		if c.Capacity() != before {
			t.Fatal("parameter setters reallocated the delay line")
		}
	}
}

func TestChorusDelayIndependentOfRate(t *testing.T) {
	slow, err := NewChorus(48000, WithChorusDepth(0), WithChorusMix(1), WithChorusRateHz(0.1))
	if err != nil {
		t.Fatalf("NewChorus() error = %v", err)
	}

	fast, err := NewChorus(48000, WithChorusDepth(0), WithChorusMix(1), WithChorusRateHz(50))
	if err != nil {
		t.Fatalf("NewChorus() error = %v", err)
	}

	a := testutil.Impulse(600, 0)
	b := testutil.Impulse(600, 0)
	slow.ProcessInPlace(a)
	fast.ProcessInPlace(b)

	testutil.RequireSliceNearlyEqual(t, a, b, 1e-12)
}

func TestChorusValidation(t *testing.T) {
	tests := []struct {
		name string
		sr   float64
		opts []ChorusOption
	}{
		{name: "sample rate", sr: -1},
		{name: "rate", sr: 48000, opts: []ChorusOption{WithChorusRateHz(0)}},
		{name: "depth", sr: 48000, opts: []ChorusOption{WithChorusDepth(2)}},
		{name: "center low", sr: 48000, opts: []ChorusOption{WithChorusCenterDelayMs(0.5)}},
		{name: "center high", sr: 48000, opts: []ChorusOption{WithChorusCenterDelayMs(101)}},
		{name: "feedback", sr: 48000, opts: []ChorusOption{WithChorusFeedback(1.5)}},
		{name: "mix", sr: 48000, opts: []ChorusOption{WithChorusMix(-0.1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewChorus(tt.sr, tt.opts...); err == nil {
				t.Fatal("NewChorus() expected error")
			}
		})
	}
}

func TestChorusSetSampleRateReallocates(t *testing.T) {
	c, err := NewChorus(48000)
	if err != nil {
		t.Fatalf("NewChorus() error = %v", err)
	}

	if err := c.SetSampleRate(96000); err != nil {
		t.Fatalf("SetSampleRate() error = %v", err)
	}

	if c.Capacity() < int(0.110*96000) {
		t.Fatalf("capacity %d too small for 96 kHz", c.Capacity())
	}

	if err := c.SetSampleRate(math.NaN()); err == nil {
		t.Fatal("SetSampleRate(NaN) expected error")
	}
}
