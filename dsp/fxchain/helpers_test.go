package fxchain

import (
	"testing"
)

const testSampleRate = 48000

func newPreparedProcessor(t testing.TB, blockSize, channels int, opts ...ProcessorOption) *Processor {
	t.Helper()

	p, err := NewProcessor(opts...)
	if err != nil {
		t.Fatalf("NewProcessor() error = %v", err)
	}

	if err := p.Prepare(testSampleRate, blockSize, channels); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	return p
}

func prepareUnit(t *testing.T, u Unit, channels int) {
	t.Helper()

	err := u.Prepare(ProcessSpec{SampleRate: testSampleRate, MaxBlockSize: 512, NumChannels: channels})
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	u.Reset()
}

// recordingUnit appends its option to a shared log on every Process call.
type recordingUnit struct {
	opt    Option
	log    *[]Option
	resets int
}

func (u *recordingUnit) Prepare(ProcessSpec) error { return nil }
func (u *recordingUnit) Reset()                    { u.resets++ }
func (u *recordingUnit) Process([][]float64)       { *u.log = append(*u.log, u.opt) }
func (u *recordingUnit) Release()                  {}
func (u *recordingUnit) Option() Option            { return u.opt }

func recordingUnits(log *[]Option) []Unit {
	units := make([]Unit, NumOptions)
	for i := range units {
		units[i] = &recordingUnit{opt: Option(i), log: log}
	}

	return units
}
