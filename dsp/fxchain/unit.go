package fxchain

import (
	"fmt"

	"github.com/cwbudde/algo-fxchain/dsp/param"
)

// ProcessSpec describes the stream a unit is prepared for.
type ProcessSpec struct {
	SampleRate   float64
	MaxBlockSize int
	NumChannels  int
}

// Unit is the contract every chain member implements.
//
// Process runs on the audio goroutine. It must not allocate, lock or block.
// It processes the first NumChannels channels of block in place, leaves any
// further channels untouched and never changes slice lengths. Parameter
// values are read once at the start of each call.
type Unit interface {
	Prepare(spec ProcessSpec) error
	Reset()
	Process(block [][]float64)
	Release()
	Option() Option
}

// channelCount is how many channels of block a unit with n prepared
// channel states may touch.
func channelCount(block [][]float64, n int) int {
	return min(len(block), n)
}

// NewUnit builds the unit for opt, bound to the parameters in store.
func NewUnit(opt Option, store *param.Store) (Unit, error) {
	switch opt {
	case OptionPhaser:
		return NewPhaserUnit(store), nil
	case OptionChorus:
		return NewChorusUnit(store), nil
	case OptionOverdrive:
		return NewOverdriveUnit(store), nil
	case OptionLadderFilter:
		return NewLadderUnit(store), nil
	case OptionGeneralFilter:
		return NewGeneralFilterUnit(store), nil
	default:
		return nil, fmt.Errorf("%w: no unit for %v", ErrInvalidOrder, opt)
	}
}
