package fxchain

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/cwbudde/algo-fxchain/dsp/param"
)

// StateVersion is the version written by SerializeState.
const StateVersion = 1

type stateDocument struct {
	Version    int           `yaml:"version"`
	Order      []string      `yaml:"order,flow"`
	Parameters yaml.MapSlice `yaml:"parameters"`
}

type stateInput struct {
	Version    int            `yaml:"version"`
	Order      []string       `yaml:"order"`
	Parameters map[string]any `yaml:"parameters"`
}

// SerializeState encodes the requested order and every parameter as YAML.
// Choice parameters are written by label.
func (p *Processor) SerializeState() ([]byte, error) {
	doc := stateDocument{
		Version:    StateVersion,
		Order:      p.requested.Names(),
		Parameters: make(yaml.MapSlice, 0, p.store.Len()),
	}

	for i := range p.store.Len() {
		id := param.ID(i)
		d := p.store.Descriptor(id)

		var v any = p.store.Get(id)
		if d.Kind == param.KindChoice {
			v = p.store.Choice(id)
		}

		doc.Parameters = append(doc.Parameters, yaml.MapItem{Key: d.Key, Value: v})
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("fxchain: marshal state: %w", err)
	}

	return data, nil
}

// RestoreState loads a blob written by SerializeState. Parameters missing
// from the blob return to their defaults and the order is queued through
// RequestReorder. An empty blob restores the defaults. Nothing is changed
// when the blob is invalid or the order queue is full.
func (p *Processor) RestoreState(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		if err := p.RequestReorder(DefaultOrder()); err != nil {
			return err
		}

		p.store.Reset()

		return nil
	}

	var in stateInput
	if err := yaml.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("fxchain: unmarshal state: %w", err)
	}

	if in.Version != StateVersion {
		return fmt.Errorf("%w: %d", ErrStateVersion, in.Version)
	}

	order := DefaultOrder()
	if len(in.Order) > 0 {
		var err error
		if order, err = OrderFromNames(in.Order); err != nil {
			return err
		}
	}

	values := make(map[string]float64, len(in.Parameters))
	for key, raw := range in.Parameters {
		v, err := p.decodeValue(key, raw)
		if err != nil {
			return err
		}

		values[key] = v
	}

	// Keys were checked by decodeValue, so Apply cannot fail once the order
	// is queued.
	if err := p.RequestReorder(order); err != nil {
		return err
	}

	p.store.Reset()

	return p.store.Apply(values)
}

func (p *Processor) decodeValue(key string, raw any) (float64, error) {
	id, err := p.store.Lookup(key)
	if err != nil {
		return 0, err
	}

	switch v := raw.(type) {
	case string:
		if p.store.Descriptor(id).Kind != param.KindChoice {
			return 0, fmt.Errorf("fxchain: %q: want a number, got %q", key, v)
		}

		idx, err := p.store.ChoiceIndex(id, v)
		if err != nil {
			return 0, err
		}

		return float64(idx), nil
	case float64:
		return v, nil
	case uint64:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("fxchain: %q: unsupported value %v", key, raw)
	}
}
