package fxchain

import "github.com/cwbudde/algo-fxchain/dsp/param"

// Parameter keys. These strings are the external identity of every
// parameter in presets and state blobs.
const (
	KeyPhaserRate     = "Phaser RateHz"
	KeyPhaserDepth    = "Phaser Depth %"
	KeyPhaserCenter   = "Phaser Center FreqHz"
	KeyPhaserFeedback = "Phaser Feedback %"
	KeyPhaserMix      = "Phaser Mix %"

	KeyChorusRate     = "Chorus RateHz"
	KeyChorusDepth    = "Chorus Depth %"
	KeyChorusCenter   = "Chorus Center Delay ms"
	KeyChorusFeedback = "Chorus Feedback %"
	KeyChorusMix      = "Chorus Mix %"

	KeyOverdriveSaturation = "OverDrive Saturation"

	KeyLadderMode      = "Ladder Filter Mode"
	KeyLadderCutoff    = "Ladder Filter Cutoff hz"
	KeyLadderResonance = "Ladder Filter Resonance"
	KeyLadderDrive     = "Ladder Filter Drive"

	KeyGeneralMode    = "General Filter Mode"
	KeyGeneralFreq    = "General Filter Freq Hz"
	KeyGeneralQuality = "General Filter Quality"
	KeyGeneralGain    = "General Filter Gain"
)

// LadderModeChoices are the labels of the ladder filter mode parameter.
var LadderModeChoices = []string{"LPF12", "HPF12", "BPF12", "LPF24", "HPF24", "BPF24"}

// GeneralModeChoices are the labels of the general filter mode parameter.
var GeneralModeChoices = []string{"Peak", "bandpass", "notch", "allpass"}

// General filter modes, as indices into GeneralModeChoices.
const (
	GeneralModePeak = iota
	GeneralModeBandpass
	GeneralModeNotch
	GeneralModeAllpass
)

// ParameterDescriptors returns every parameter of the chain in
// registration order.
func ParameterDescriptors() []param.Descriptor {
	return []param.Descriptor{
		param.Float(KeyPhaserRate, 0.1, 2, 0.01, 0.2, "Hz"),
		param.Float(KeyPhaserDepth, 0.1, 1, 0.01, 0.05, "%"),
		param.Float(KeyPhaserCenter, 20, 20000, 1, 1000, "Hz"),
		param.Float(KeyPhaserFeedback, -1, 1, 0.01, 0, "%"),
		param.Float(KeyPhaserMix, 0.01, 1, 0.01, 0.05, "%"),

		param.Float(KeyChorusRate, 0.01, 100, 0.01, 0.2, "Hz"),
		param.Float(KeyChorusDepth, 0.01, 1, 0.01, 0.05, "%"),
		param.Float(KeyChorusCenter, 1, 100, 0.1, 7, "ms"),
		param.Float(KeyChorusFeedback, -1, 1, 0.01, 0, "%"),
		param.Float(KeyChorusMix, 0.01, 1, 0.01, 0.05, "%"),

		param.Float(KeyOverdriveSaturation, 1, 100, 0.1, 1, ""),

		param.Choice(KeyLadderMode, LadderModeChoices, 0),
		param.Float(KeyLadderCutoff, 20, 20000, 0.1, 20000, "Hz"),
		param.Float(KeyLadderResonance, 0, 1, 0.01, 0, ""),
		param.Float(KeyLadderDrive, 1, 100, 0.1, 1, ""),

		param.Choice(KeyGeneralMode, GeneralModeChoices, GeneralModePeak),
		param.Float(KeyGeneralFreq, 20, 20000, 1, 750, "Hz"),
		param.Float(KeyGeneralQuality, 0.1, 10, 0.05, 1, ""),
		param.Float(KeyGeneralGain, -24, 24, 0.5, 0, "dB"),
	}
}

// NewParameterStore returns a store with every chain parameter registered.
func NewParameterStore() *param.Store {
	s := param.NewStore()
	for _, d := range ParameterDescriptors() {
		s.MustRegister(d)
	}

	return s
}
