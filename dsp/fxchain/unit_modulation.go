package fxchain

import (
	"github.com/cwbudde/algo-fxchain/dsp/effects/modulation"
	"github.com/cwbudde/algo-fxchain/dsp/param"
)

type phaserUnit struct {
	store *param.Store

	rate, depth, center, feedback, mix param.ID

	fx []*modulation.Phaser
}

// NewPhaserUnit returns the phaser unit bound to the phaser keys of store.
func NewPhaserUnit(store *param.Store) Unit {
	return &phaserUnit{
		store:    store,
		rate:     store.MustLookup(KeyPhaserRate),
		depth:    store.MustLookup(KeyPhaserDepth),
		center:   store.MustLookup(KeyPhaserCenter),
		feedback: store.MustLookup(KeyPhaserFeedback),
		mix:      store.MustLookup(KeyPhaserMix),
	}
}

func (u *phaserUnit) Option() Option { return OptionPhaser }

func (u *phaserUnit) Prepare(spec ProcessSpec) error {
	u.fx = make([]*modulation.Phaser, spec.NumChannels)
	for ch := range u.fx {
		fx, err := modulation.NewPhaser(spec.SampleRate)
		if err != nil {
			return err
		}

		u.fx[ch] = fx
	}

	return nil
}

func (u *phaserUnit) Reset() {
	for _, fx := range u.fx {
		fx.Reset()
	}
}

func (u *phaserUnit) Process(block [][]float64) {
	rate := u.store.Get(u.rate)
	depth := u.store.Get(u.depth)
	center := u.store.Get(u.center)
	feedback := u.store.Get(u.feedback)
	mix := u.store.Get(u.mix)

	for ch := range channelCount(block, len(u.fx)) {
		fx := u.fx[ch]
		_ = fx.SetRateHz(rate)
		_ = fx.SetDepth(depth)
		_ = fx.SetCenterHz(center)
		_ = fx.SetFeedback(feedback)
		_ = fx.SetMix(mix)
		fx.ProcessInPlace(block[ch])
	}
}

func (u *phaserUnit) Release() { u.fx = nil }

type chorusUnit struct {
	store *param.Store

	rate, depth, center, feedback, mix param.ID

	fx []*modulation.Chorus
}

// NewChorusUnit returns the chorus unit bound to the chorus keys of store.
func NewChorusUnit(store *param.Store) Unit {
	return &chorusUnit{
		store:    store,
		rate:     store.MustLookup(KeyChorusRate),
		depth:    store.MustLookup(KeyChorusDepth),
		center:   store.MustLookup(KeyChorusCenter),
		feedback: store.MustLookup(KeyChorusFeedback),
		mix:      store.MustLookup(KeyChorusMix),
	}
}

func (u *chorusUnit) Option() Option { return OptionChorus }

// Prepare sizes one delay line per channel for the longest reachable delay.
func (u *chorusUnit) Prepare(spec ProcessSpec) error {
	u.fx = make([]*modulation.Chorus, spec.NumChannels)
	for ch := range u.fx {
		fx, err := modulation.NewChorus(spec.SampleRate)
		if err != nil {
			return err
		}

		u.fx[ch] = fx
	}

	return nil
}

func (u *chorusUnit) Reset() {
	for _, fx := range u.fx {
		fx.Reset()
	}
}

func (u *chorusUnit) Process(block [][]float64) {
	rate := u.store.Get(u.rate)
	depth := u.store.Get(u.depth)
	center := u.store.Get(u.center)
	feedback := u.store.Get(u.feedback)
	mix := u.store.Get(u.mix)

	for ch := range channelCount(block, len(u.fx)) {
		fx := u.fx[ch]
		_ = fx.SetRateHz(rate)
		_ = fx.SetDepth(depth)
		_ = fx.SetCenterDelayMs(center)
		_ = fx.SetFeedback(feedback)
		_ = fx.SetMix(mix)
		fx.ProcessInPlace(block[ch])
	}
}

func (u *chorusUnit) Release() { u.fx = nil }
