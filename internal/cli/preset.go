package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-fxchain/dsp/fxchain"
)

// chainFlags are the preset and override flags shared by render and play.
type chainFlags struct {
	preset string
	order  string
	sets   []string
}

func (c *chainFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.preset, "preset", "", "YAML preset to load")
	fs.StringVar(&c.order, "order", "", "comma-separated unit order, e.g. LadderFilter,Phaser,Chorus,Overdrive,GeneralFilter")
	fs.Func("set", `override a parameter, e.g. -set "Phaser RateHz=0.5" (repeatable)`, func(s string) error {
		c.sets = append(c.sets, s)
		return nil
	})
}

// processor builds a processor from the preset and applies overrides.
func (c *chainFlags) processor(opts ...fxchain.ProcessorOption) (*fxchain.Processor, error) {
	p, err := loadPreset(c.preset, opts...)
	if err != nil {
		return nil, err
	}

	for _, s := range c.sets {
		if err := applySetting(p, s); err != nil {
			return nil, err
		}
	}

	if c.order != "" {
		order, err := fxchain.ParseOrder(c.order)
		if err != nil {
			return nil, err
		}

		if err := p.RequestReorder(order); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// loadPreset returns a processor restored from path. An empty path or a
// missing file yields the defaults.
func loadPreset(path string, opts ...fxchain.ProcessorOption) (*fxchain.Processor, error) {
	p, err := fxchain.NewProcessor(opts...)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read preset: %w", err)
	}

	if err := p.RestoreState(data); err != nil {
		return nil, fmt.Errorf("invalid preset %s: %w", path, err)
	}

	return p, nil
}

// applySetting parses "Key=Value". Choice parameters accept labels.
func applySetting(p *fxchain.Processor, s string) error {
	i := strings.LastIndex(s, "=")
	if i <= 0 {
		return fmt.Errorf("setting %q: want Key=Value", s)
	}

	key := strings.TrimSpace(s[:i])
	raw := strings.TrimSpace(s[i+1:])

	store := p.Store()

	id, err := store.Lookup(key)
	if err != nil {
		return err
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		idx, cerr := store.ChoiceIndex(id, raw)
		if cerr != nil {
			return fmt.Errorf("setting %q: %w", s, cerr)
		}

		v = float64(idx)
	}

	store.Set(id, v)

	return nil
}

// normalizeState round-trips a blob through a fresh processor so that
// equivalent presets serialize identically.
func normalizeState(data []byte) ([]byte, error) {
	p, err := fxchain.NewProcessor()
	if err != nil {
		return nil, err
	}

	if err := p.RestoreState(data); err != nil {
		return nil, err
	}

	return p.SerializeState()
}
