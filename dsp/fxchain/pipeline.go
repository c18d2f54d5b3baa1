package fxchain

import "fmt"

// Pipeline runs the units of a chain in the current working order.
// All methods except NewPipeline belong to the audio goroutine.
type Pipeline struct {
	fifo  *OrderFIFO
	units [NumOptions]Unit
	order Order

	resolved [NumOptions]Unit
}

// NewPipeline binds units by their Option and reads reorder requests from
// fifo. Every option must be covered exactly once.
func NewPipeline(fifo *OrderFIFO, units ...Unit) (*Pipeline, error) {
	p := &Pipeline{
		fifo:  fifo,
		order: DefaultOrder(),
	}

	for _, u := range units {
		opt := u.Option()
		if !opt.Valid() {
			return nil, fmt.Errorf("%w: unit reports %v", ErrInvalidOrder, opt)
		}

		if p.units[opt] != nil {
			return nil, fmt.Errorf("%w: two units for %v", ErrInvalidOrder, opt)
		}

		p.units[opt] = u
	}

	for opt, u := range p.units {
		if u == nil {
			return nil, fmt.Errorf("%w: no unit for %v", ErrInvalidOrder, Option(opt))
		}
	}

	return p, nil
}

// Order returns the working order.
func (p *Pipeline) Order() Order {
	return p.order
}

// Units returns the units in Option order.
func (p *Pipeline) Units() [NumOptions]Unit {
	return p.units
}

// Process applies the newest queued order, if any, and runs every unit on
// block in sequence.
func (p *Pipeline) Process(block [][]float64) {
	var (
		next   Order
		pulled bool
	)

	for p.fifo.Pull(&next) {
		pulled = true
	}

	if pulled {
		p.order = next
	}

	for i, opt := range p.order {
		p.resolved[i] = p.resolve(opt)
	}

	for _, u := range p.resolved {
		u.Process(block)
	}
}

func (p *Pipeline) resolve(opt Option) Unit {
	if !opt.Valid() {
		panic(ErrSentinelDispatch)
	}

	return p.units[opt]
}
