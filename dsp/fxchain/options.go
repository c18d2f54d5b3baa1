package fxchain

import (
	"fmt"
	"io"
	"log"
)

// DefaultMaxChannels is the widest channel layout Prepare accepts unless
// WithMaxChannels says otherwise.
const DefaultMaxChannels = 2

type processorConfig struct {
	fifoCapacity       int
	logger             *log.Logger
	maxChannels        int
	clearExtraChannels bool
}

func defaultProcessorConfig() processorConfig {
	return processorConfig{
		fifoCapacity: DefaultFIFOCapacity,
		logger:       log.New(io.Discard, "", 0),
		maxChannels:  DefaultMaxChannels,
	}
}

// ProcessorOption configures NewProcessor.
type ProcessorOption func(*processorConfig) error

// WithFIFOCapacity sets the reorder queue capacity. It is rounded up to a
// power of two.
func WithFIFOCapacity(n int) ProcessorOption {
	return func(cfg *processorConfig) error {
		if n <= 0 {
			return fmt.Errorf("fxchain: fifo capacity must be > 0: %d", n)
		}

		cfg.fifoCapacity = n

		return nil
	}
}

// WithLogger routes lifecycle messages to l.
func WithLogger(l *log.Logger) ProcessorOption {
	return func(cfg *processorConfig) error {
		if l == nil {
			return fmt.Errorf("fxchain: logger must not be nil")
		}

		cfg.logger = l

		return nil
	}
}

// WithMaxChannels sets the widest channel count Prepare accepts.
func WithMaxChannels(n int) ProcessorOption {
	return func(cfg *processorConfig) error {
		if n < 1 {
			return fmt.Errorf("fxchain: max channels must be >= 1: %d", n)
		}

		cfg.maxChannels = n

		return nil
	}
}

// WithClearExtraChannels zeroes channels beyond the prepared count instead
// of passing them through.
func WithClearExtraChannels(enabled bool) ProcessorOption {
	return func(cfg *processorConfig) error {
		cfg.clearExtraChannels = enabled
		return nil
	}
}
