package fxchain

import (
	"github.com/cwbudde/algo-fxchain/dsp/effects"
	"github.com/cwbudde/algo-fxchain/dsp/param"
)

type overdriveUnit struct {
	store      *param.Store
	saturation param.ID

	fx []*effects.Overdrive
}

// NewOverdriveUnit returns the overdrive unit bound to the saturation key
// of store.
func NewOverdriveUnit(store *param.Store) Unit {
	return &overdriveUnit{
		store:      store,
		saturation: store.MustLookup(KeyOverdriveSaturation),
	}
}

func (u *overdriveUnit) Option() Option { return OptionOverdrive }

func (u *overdriveUnit) Prepare(spec ProcessSpec) error {
	u.fx = make([]*effects.Overdrive, spec.NumChannels)
	for ch := range u.fx {
		fx, err := effects.NewOverdrive(spec.SampleRate)
		if err != nil {
			return err
		}

		u.fx[ch] = fx
	}

	return nil
}

func (u *overdriveUnit) Reset() {
	for _, fx := range u.fx {
		fx.Reset()
	}
}

func (u *overdriveUnit) Process(block [][]float64) {
	drive := u.store.Get(u.saturation)

	for ch := range channelCount(block, len(u.fx)) {
		fx := u.fx[ch]
		_ = fx.SetDrive(drive)
		fx.ProcessInPlace(block[ch])
	}
}

func (u *overdriveUnit) Release() { u.fx = nil }
