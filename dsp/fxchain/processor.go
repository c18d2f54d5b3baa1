package fxchain

import (
	"fmt"
	"log"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-fxchain/dsp/core"
	"github.com/cwbudde/algo-fxchain/dsp/param"
)

// Processor owns the parameter store, the five units and the pipeline.
//
// Prepare, Reset, Process and ReleaseResources are called by the host's
// audio thread. SetParameter, RequestReorder and the state methods are for
// one control goroutine at a time.
type Processor struct {
	cfg    processorConfig
	logger *log.Logger

	store    *param.Store
	fifo     *OrderFIFO
	pipeline *Pipeline
	units    []Unit

	spec     ProcessSpec
	prepared atomic.Bool
	warned   atomic.Bool

	// requested mirrors the last order handed to the FIFO.
	requested Order
}

// NewProcessor registers every chain parameter and builds the units in
// DefaultOrder.
func NewProcessor(opts ...ProcessorOption) (*Processor, error) {
	cfg := defaultProcessorConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	fifo, err := NewOrderFIFO(cfg.fifoCapacity)
	if err != nil {
		return nil, err
	}

	store := NewParameterStore()
	units := make([]Unit, NumOptions)
	for i := range units {
		if units[i], err = NewUnit(Option(i), store); err != nil {
			return nil, err
		}
	}

	pipeline, err := NewPipeline(fifo, units...)
	if err != nil {
		return nil, err
	}

	return &Processor{
		cfg:       cfg,
		logger:    cfg.logger,
		store:     store,
		fifo:      fifo,
		pipeline:  pipeline,
		units:     units,
		requested: DefaultOrder(),
	}, nil
}

// Prepare sizes every unit for the stream and resets it.
func (p *Processor) Prepare(sampleRate float64, blockSize, channels int) error {
	spec := ProcessSpec{
		SampleRate:   sampleRate,
		MaxBlockSize: blockSize,
		NumChannels:  channels,
	}

	if err := p.validateSpec(spec); err != nil {
		return err
	}

	p.prepared.Store(false)

	for _, u := range p.units {
		if err := u.Prepare(spec); err != nil {
			return fmt.Errorf("fxchain: prepare %v: %w", u.Option(), err)
		}

		u.Reset()
	}

	p.spec = spec
	p.warned.Store(false)
	p.prepared.Store(true)
	p.logger.Printf("prepared: %.0f Hz, %d frames, %d channels", sampleRate, blockSize, channels)

	return nil
}

func (p *Processor) validateSpec(spec ProcessSpec) error {
	if spec.SampleRate <= 0 || math.IsNaN(spec.SampleRate) || math.IsInf(spec.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidSpec, spec.SampleRate)
	}

	if spec.MaxBlockSize <= 0 {
		return fmt.Errorf("%w: block size %d", ErrInvalidSpec, spec.MaxBlockSize)
	}

	if spec.NumChannels < 1 || spec.NumChannels > p.cfg.maxChannels {
		return fmt.Errorf("%w: %d channels (max %d)", ErrInvalidSpec, spec.NumChannels, p.cfg.maxChannels)
	}

	return nil
}

// Prepared reports whether Process will run the chain.
func (p *Processor) Prepared() bool {
	return p.prepared.Load()
}

// Spec returns the stream settings of the last successful Prepare.
func (p *Processor) Spec() ProcessSpec {
	return p.spec
}

// Reset clears the state of every unit.
func (p *Processor) Reset() {
	for _, u := range p.units {
		u.Reset()
	}
}

// Process runs the chain on block in place. Before Prepare it leaves block
// untouched.
func (p *Processor) Process(block [][]float64) {
	if !p.prepared.Load() {
		if p.warned.CompareAndSwap(false, true) {
			p.logger.Print("process called before prepare; passing audio through")
		}

		return
	}

	if p.cfg.clearExtraChannels {
		for ch := p.spec.NumChannels; ch < len(block); ch++ {
			core.Zero(block[ch])
		}
	}

	p.pipeline.Process(block)
}

// ReleaseResources frees unit state. Prepare may be called again.
func (p *Processor) ReleaseResources() {
	p.prepared.Store(false)

	for _, u := range p.units {
		u.Release()
	}

	p.logger.Print("released")
}

// Store returns the parameter store.
func (p *Processor) Store() *param.Store {
	return p.store
}

// Order returns the working order as seen by the audio side.
func (p *Processor) Order() Order {
	return p.pipeline.Order()
}

// RequestedOrder returns the last order accepted by RequestReorder.
func (p *Processor) RequestedOrder() Order {
	return p.requested
}

// SetParameter sets key and returns the stored, clamped value.
func (p *Processor) SetParameter(key string, value float64) (float64, error) {
	id, err := p.store.Lookup(key)
	if err != nil {
		return 0, err
	}

	return p.store.Set(id, value), nil
}

// Parameter returns the current value of key.
func (p *Processor) Parameter(key string) (float64, error) {
	id, err := p.store.Lookup(key)
	if err != nil {
		return 0, err
	}

	return p.store.Get(id), nil
}

// RequestReorder queues order for the audio side. It takes effect at the
// start of the next block.
func (p *Processor) RequestReorder(order Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	if !p.fifo.Push(order) {
		return ErrFIFOFull
	}

	p.requested = order

	return nil
}
