package fxchain

import (
	"fmt"
	"strings"
)

// Option identifies one effect unit.
type Option int

const (
	OptionPhaser Option = iota
	OptionChorus
	OptionOverdrive
	OptionLadderFilter
	OptionGeneralFilter
	// OptionEnd is the end-of-list sentinel. It is never a valid chain
	// member.
	OptionEnd
)

// NumOptions is the number of real units and the length of every Order.
const NumOptions = int(OptionEnd)

var optionNames = [...]string{
	OptionPhaser:        "Phaser",
	OptionChorus:        "Chorus",
	OptionOverdrive:     "Overdrive",
	OptionLadderFilter:  "LadderFilter",
	OptionGeneralFilter: "GeneralFilter",
}

func (o Option) String() string {
	if o >= 0 && o < OptionEnd {
		return optionNames[o]
	}

	if o == OptionEnd {
		return "End"
	}

	return fmt.Sprintf("Option(%d)", int(o))
}

// Valid reports whether o names a real unit.
func (o Option) Valid() bool {
	return o >= 0 && o < OptionEnd
}

// ParseOption resolves a unit name case-insensitively.
func ParseOption(name string) (Option, error) {
	name = strings.TrimSpace(name)
	for i, n := range optionNames {
		if strings.EqualFold(n, name) {
			return Option(i), nil
		}
	}

	return OptionEnd, fmt.Errorf("%w: unknown unit %q", ErrInvalidOrder, name)
}

// Order is the sequence in which units process a block.
type Order [NumOptions]Option

// DefaultOrder returns the identity order:
// Phaser, Chorus, Overdrive, LadderFilter, GeneralFilter.
func DefaultOrder() Order {
	var o Order
	for i := range o {
		o[i] = Option(i)
	}

	return o
}

// Validate checks that o is a permutation of the five units.
func (o Order) Validate() error {
	var seen [NumOptions]bool

	for i, opt := range o {
		if !opt.Valid() {
			return fmt.Errorf("%w: position %d holds %v", ErrInvalidOrder, i, opt)
		}

		if seen[opt] {
			return fmt.Errorf("%w: %v appears twice", ErrInvalidOrder, opt)
		}

		seen[opt] = true
	}

	return nil
}

// Names returns the unit names in order.
func (o Order) Names() []string {
	names := make([]string, len(o))
	for i, opt := range o {
		names[i] = opt.String()
	}

	return names
}

func (o Order) String() string {
	return strings.Join(o.Names(), ",")
}

// OrderFromNames builds and validates an order from unit names.
func OrderFromNames(names []string) (Order, error) {
	var o Order

	if len(names) != NumOptions {
		return o, fmt.Errorf("%w: want %d units, got %d", ErrInvalidOrder, NumOptions, len(names))
	}

	for i, n := range names {
		opt, err := ParseOption(n)
		if err != nil {
			return o, err
		}

		o[i] = opt
	}

	return o, o.Validate()
}

// ParseOrder parses a comma-separated list of unit names.
func ParseOrder(s string) (Order, error) {
	return OrderFromNames(strings.Split(s, ","))
}
