package fxchain

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/cwbudde/algo-fxchain/internal/testutil"
)

func allUnits(t *testing.T) []Unit {
	t.Helper()

	store := NewParameterStore()

	return []Unit{
		NewPhaserUnit(store),
		NewChorusUnit(store),
		NewOverdriveUnit(store),
		NewLadderUnit(store),
		NewGeneralFilterUnit(store),
	}
}

func TestUnitOptions(t *testing.T) {
	for i, u := range allUnits(t) {
		if u.Option() != Option(i) {
			t.Errorf("unit %d reports %v", i, u.Option())
		}
	}
}

func TestNewUnit(t *testing.T) {
	store := NewParameterStore()

	for i := range NumOptions {
		u, err := NewUnit(Option(i), store)
		if err != nil {
			t.Fatalf("NewUnit(%v) error = %v", Option(i), err)
		}

		if u.Option() != Option(i) {
			t.Errorf("NewUnit(%v).Option() = %v", Option(i), u.Option())
		}
	}

	if _, err := NewUnit(OptionEnd, store); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("NewUnit(End) error = %v, want ErrInvalidOrder", err)
	}
}

func TestUnitResetIsIdempotent(t *testing.T) {
	warmup := testutil.DeterministicNoise(7, 0.5, 512)
	probe := testutil.DeterministicSine(440, testSampleRate, 0.5, 512)

	for _, u := range allUnits(t) {
		t.Run(u.Option().String(), func(t *testing.T) {
			prepareUnit(t, u, 1)

			run := func(resets int) []float64 {
				u.Process([][]float64{slices.Clone(warmup)})

				for range resets {
					u.Reset()
				}

				out := slices.Clone(probe)
				u.Process([][]float64{out})

				return out
			}

			once := run(1)
			twice := run(2)
			testutil.RequireSliceNearlyEqual(t, twice, once, 0)
		})
	}
}

func TestUnitLeavesExtraChannelsUntouched(t *testing.T) {
	in := testutil.DeterministicNoise(3, 0.5, 256)

	for _, u := range allUnits(t) {
		t.Run(u.Option().String(), func(t *testing.T) {
			prepareUnit(t, u, 1)

			block := testutil.Channels(in, 2)
			u.Process(block)

			testutil.RequireFinite(t, block[0])
			testutil.RequireSliceNearlyEqual(t, block[1], in, 0)

			if len(block[0]) != len(in) {
				t.Fatalf("channel length changed to %d", len(block[0]))
			}
		})
	}
}

func TestUnitReleaseStopsProcessing(t *testing.T) {
	in := testutil.DeterministicNoise(5, 0.5, 64)

	for _, u := range allUnits(t) {
		t.Run(u.Option().String(), func(t *testing.T) {
			prepareUnit(t, u, 2)
			u.Release()

			block := testutil.Channels(in, 1)
			u.Process(block)
			u.Reset()

			testutil.RequireSliceNearlyEqual(t, block[0], in, 0)
		})
	}
}

func TestPhaserUnitImpulse(t *testing.T) {
	store := NewParameterStore()
	store.SetKey(KeyPhaserRate, 0.2)
	store.SetKey(KeyPhaserDepth, 0.05)
	store.SetKey(KeyPhaserMix, 0.05)

	u := NewPhaserUnit(store)
	prepareUnit(t, u, 1)

	block := [][]float64{testutil.Impulse(1024, 0)}
	u.Process(block)

	testutil.RequireFinite(t, block[0])

	if testutil.RMS(block[0]) == 0 {
		t.Fatal("phaser output is silent")
	}

	for i, v := range block[0] {
		if math.Abs(v) > 2 {
			t.Fatalf("sample %d = %g is unbounded", i, v)
		}
	}
}

func TestOverdriveUnitShapesWithTanh(t *testing.T) {
	store := NewParameterStore()
	store.SetKey(KeyOverdriveSaturation, 2)

	u := NewOverdriveUnit(store)
	prepareUnit(t, u, 1)

	in := []float64{-1, -0.25, 0, 0.25, 1}
	block := testutil.Channels(in, 1)
	u.Process(block)

	for i, x := range in {
		if want := math.Tanh(2 * x); math.Abs(block[0][i]-want) > 1e-12 {
			t.Errorf("out[%d] = %g, want %g", i, block[0][i], want)
		}
	}
}

func TestLadderUnitHighpassRejectsLowFrequency(t *testing.T) {
	store := NewParameterStore()
	store.SetKey(KeyLadderMode, 4) // HPF24
	store.SetKey(KeyLadderCutoff, 20000)

	if got := store.Choice(store.MustLookup(KeyLadderMode)); got != "HPF24" {
		t.Fatalf("mode = %q, want HPF24", got)
	}

	u := NewLadderUnit(store)
	prepareUnit(t, u, 1)

	in := testutil.DeterministicSine(20, testSampleRate, 0.5, testSampleRate)
	block := testutil.Channels(in, 1)
	u.Process(block)

	testutil.RequireFinite(t, block[0])

	half := len(in) / 2
	if out, ref := testutil.RMS(block[0][half:]), testutil.RMS(in[half:]); out >= 0.01*ref {
		t.Fatalf("testutil.RMS(out) = %g, testutil.RMS(in) = %g: 20 Hz not attenuated", out, ref)
	}
}

func TestGeneralFilterUnitNotch(t *testing.T) {
	store := NewParameterStore()
	store.SetKey(KeyGeneralMode, GeneralModeNotch)
	store.SetKey(KeyGeneralFreq, 750)
	store.SetKey(KeyGeneralQuality, 1)
	store.SetKey(KeyGeneralGain, 0)

	tests := []struct {
		freq     float64
		minRatio float64
		maxRatio float64
	}{
		{freq: 750, minRatio: 0, maxRatio: 0.05},
		{freq: 50, minRatio: 0.95, maxRatio: 1.01},
	}

	for _, tt := range tests {
		u := NewGeneralFilterUnit(store)
		prepareUnit(t, u, 1)

		in := testutil.DeterministicSine(tt.freq, testSampleRate, 1, testSampleRate)
		block := testutil.Channels(in, 1)
		u.Process(block)

		half := len(in) / 2
		ratio := testutil.RMS(block[0][half:]) / testutil.RMS(in[half:])

		if ratio < tt.minRatio || ratio > tt.maxRatio {
			t.Errorf("%g Hz: gain ratio %g outside [%g, %g]", tt.freq, ratio, tt.minRatio, tt.maxRatio)
		}
	}
}

func TestGeneralFilterUnitRedesignsOnChange(t *testing.T) {
	store := NewParameterStore()
	u := NewGeneralFilterUnit(store).(*generalFilterUnit)
	prepareUnit(t, u, 1)

	block := [][]float64{make([]float64, 16)}
	u.Process(block)

	flat := u.Coefficients()
	if flat.B0 != 1 || flat.A1 != flat.B1 {
		t.Fatalf("0 dB peak coefficients = %+v, want identity", flat)
	}

	store.SetKey(KeyGeneralGain, 6)
	u.Process(block)

	boosted := u.Coefficients()
	if boosted == flat {
		t.Fatal("coefficients unchanged after gain change")
	}

	u.Process(block)

	if u.Coefficients() != boosted {
		t.Fatal("coefficients changed without a parameter change")
	}
}

func TestGeneralFilterUnitClampsFrequency(t *testing.T) {
	store := NewParameterStore()
	store.SetKey(KeyGeneralMode, GeneralModeBandpass)
	store.SetKey(KeyGeneralFreq, 20000)

	u := NewGeneralFilterUnit(store)
	if err := u.Prepare(ProcessSpec{SampleRate: 22050, MaxBlockSize: 64, NumChannels: 1}); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	block := [][]float64{testutil.DeterministicNoise(11, 0.5, 2048)}
	u.Process(block)

	testutil.RequireFinite(t, block[0])

	if testutil.RMS(block[0]) == 0 {
		t.Fatal("bandpass above nyquist produced silence")
	}
}

func BenchmarkUnitProcess(b *testing.B) {
	store := NewParameterStore()
	units := []Unit{
		NewPhaserUnit(store),
		NewChorusUnit(store),
		NewOverdriveUnit(store),
		NewLadderUnit(store),
		NewGeneralFilterUnit(store),
	}

	for _, u := range units {
		b.Run(u.Option().String(), func(b *testing.B) {
			if err := u.Prepare(ProcessSpec{SampleRate: testSampleRate, MaxBlockSize: 256, NumChannels: 2}); err != nil {
				b.Fatal(err)
			}

			block := [][]float64{
				testutil.DeterministicNoise(1, 0.5, 256),
				testutil.DeterministicNoise(2, 0.5, 256),
			}

			b.ReportAllocs()
			b.SetBytes(int64(2 * 256 * 8))

			for b.Loop() {
				u.Process(block)
			}
		})
	}
}
