package fxchain

import (
	"github.com/cwbudde/algo-fxchain/dsp/filter/biquad"
	"github.com/cwbudde/algo-fxchain/dsp/filter/design"
	"github.com/cwbudde/algo-fxchain/dsp/filter/ladder"
	"github.com/cwbudde/algo-fxchain/dsp/param"
)

// maxFilterFreqRatio keeps designed frequencies strictly below Nyquist.
const maxFilterFreqRatio = 0.49

type ladderUnit struct {
	store *param.Store

	mode, cutoff, resonance, drive param.ID

	fx []*ladder.Filter
}

// NewLadderUnit returns the ladder filter unit bound to the ladder keys of
// store.
func NewLadderUnit(store *param.Store) Unit {
	return &ladderUnit{
		store:     store,
		mode:      store.MustLookup(KeyLadderMode),
		cutoff:    store.MustLookup(KeyLadderCutoff),
		resonance: store.MustLookup(KeyLadderResonance),
		drive:     store.MustLookup(KeyLadderDrive),
	}
}

func (u *ladderUnit) Option() Option { return OptionLadderFilter }

func (u *ladderUnit) Prepare(spec ProcessSpec) error {
	u.fx = make([]*ladder.Filter, spec.NumChannels)
	for ch := range u.fx {
		fx, err := ladder.New(spec.SampleRate)
		if err != nil {
			return err
		}

		u.fx[ch] = fx
	}

	return nil
}

func (u *ladderUnit) Reset() {
	for _, fx := range u.fx {
		fx.Reset()
	}
}

func (u *ladderUnit) Process(block [][]float64) {
	mode := ladder.Modes[u.store.Index(u.mode)]
	cutoff := u.store.Get(u.cutoff)
	resonance := u.store.Get(u.resonance)
	drive := u.store.Get(u.drive)

	for ch := range channelCount(block, len(u.fx)) {
		fx := u.fx[ch]
		_ = fx.SetMode(mode)
		_ = fx.SetCutoffHz(cutoff)
		_ = fx.SetResonance(resonance)
		_ = fx.SetDrive(drive)
		fx.ProcessInPlace(block[ch])
	}
}

func (u *ladderUnit) Release() { u.fx = nil }

// generalSettings is the parameter snapshot the current coefficients were
// designed from.
type generalSettings struct {
	mode    int
	freq    float64
	quality float64
	gainDB  float64
}

type generalFilterUnit struct {
	store *param.Store

	mode, freq, quality, gain param.ID

	sampleRate float64
	designed   generalSettings
	valid      bool
	sections   []*biquad.Section
}

// NewGeneralFilterUnit returns the general filter unit bound to the general
// filter keys of store.
func NewGeneralFilterUnit(store *param.Store) Unit {
	return &generalFilterUnit{
		store:   store,
		mode:    store.MustLookup(KeyGeneralMode),
		freq:    store.MustLookup(KeyGeneralFreq),
		quality: store.MustLookup(KeyGeneralQuality),
		gain:    store.MustLookup(KeyGeneralGain),
	}
}

func (u *generalFilterUnit) Option() Option { return OptionGeneralFilter }

func (u *generalFilterUnit) Prepare(spec ProcessSpec) error {
	u.sampleRate = spec.SampleRate
	u.valid = false

	u.sections = make([]*biquad.Section, spec.NumChannels)
	for ch := range u.sections {
		u.sections[ch] = biquad.NewSection(biquad.Passthrough)
	}

	return nil
}

func (u *generalFilterUnit) Reset() {
	for _, s := range u.sections {
		s.Reset()
	}
}

func (u *generalFilterUnit) Process(block [][]float64) {
	settings := generalSettings{
		mode:    u.store.Index(u.mode),
		freq:    u.store.Get(u.freq),
		quality: u.store.Get(u.quality),
		gainDB:  u.store.Get(u.gain),
	}

	if !u.valid || settings != u.designed {
		c := designGeneral(settings, u.sampleRate)
		for _, s := range u.sections {
			s.SetCoefficients(c)
		}

		u.designed = settings
		u.valid = true
	}

	for ch := range channelCount(block, len(u.sections)) {
		u.sections[ch].ProcessBlock(block[ch])
	}
}

func (u *generalFilterUnit) Release() {
	u.sections = nil
	u.valid = false
}

// Coefficients returns the coefficients currently in use.
func (u *generalFilterUnit) Coefficients() biquad.Coefficients {
	if len(u.sections) == 0 {
		return biquad.Coefficients{}
	}

	return u.sections[0].Coefficients
}

// designGeneral clamps the frequency below Nyquist, so the only failure
// left is an unusable sample rate, which leaves the filter transparent.
func designGeneral(s generalSettings, sampleRate float64) biquad.Coefficients {
	freq := min(s.freq, maxFilterFreqRatio*sampleRate)

	c, err := design.Design(design.Kind(s.mode), freq, s.quality, s.gainDB, sampleRate)
	if err != nil {
		return biquad.Passthrough
	}

	return c
}
