package param

import (
	"fmt"
	"math"
	"slices"
)

// Kind distinguishes continuous parameters from enumerated choices.
type Kind int

const (
	// KindFloat is a continuous value in [Min, Max].
	KindFloat Kind = iota
	// KindChoice is an index into Choices.
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindChoice:
		return "choice"
	default:
		return "unknown"
	}
}

// Descriptor is the immutable definition of one parameter.
type Descriptor struct {
	Key     string
	Kind    Kind
	Min     float64
	Max     float64
	Step    float64
	Skew    float64
	Default float64
	Unit    string
	Choices []string
}

// Float returns a continuous descriptor with skew 1.
func Float(key string, minValue, maxValue, step, def float64, unit string) Descriptor {
	return Descriptor{
		Key:     key,
		Kind:    KindFloat,
		Min:     minValue,
		Max:     maxValue,
		Step:    step,
		Skew:    1,
		Default: def,
		Unit:    unit,
	}
}

// Choice returns an enumerated descriptor whose default is the index def.
func Choice(key string, choices []string, def int) Descriptor {
	return Descriptor{
		Key:     key,
		Kind:    KindChoice,
		Default: float64(def),
		Choices: choices,
	}
}

// normalized validates d and fills in the derived fields. Choice ranges are
// always [0, len(Choices)-1] with step 1; an out-of-range default is clamped.
func (d Descriptor) normalized() (Descriptor, error) {
	if d.Key == "" {
		return d, fmt.Errorf("%w: empty key", ErrInvalidDescriptor)
	}

	switch d.Kind {
	case KindChoice:
		if len(d.Choices) == 0 {
			return d, fmt.Errorf("%w: %q has no choices", ErrInvalidDescriptor, d.Key)
		}

		d.Choices = slices.Clone(d.Choices)
		d.Min = 0
		d.Max = float64(len(d.Choices) - 1)
		d.Step = 1
		d.Skew = 1
		d.Default = clampChoice(d.Default, len(d.Choices))
	case KindFloat:
		if !isFinite(d.Min) || !isFinite(d.Max) || d.Min >= d.Max {
			return d, fmt.Errorf("%w: %q needs finite min < max, got [%g, %g]", ErrInvalidDescriptor, d.Key, d.Min, d.Max)
		}

		if d.Step < 0 || !isFinite(d.Step) {
			return d, fmt.Errorf("%w: %q has invalid step %g", ErrInvalidDescriptor, d.Key, d.Step)
		}

		if d.Skew == 0 {
			d.Skew = 1
		}

		if d.Skew < 0 || !isFinite(d.Skew) {
			return d, fmt.Errorf("%w: %q has invalid skew %g", ErrInvalidDescriptor, d.Key, d.Skew)
		}

		if !isFinite(d.Default) {
			return d, fmt.Errorf("%w: %q has non-finite default", ErrInvalidDescriptor, d.Key)
		}

		d.Default = min(max(d.Default, d.Min), d.Max)
	default:
		return d, fmt.Errorf("%w: %q has unknown kind %d", ErrInvalidDescriptor, d.Key, d.Kind)
	}

	return d, nil
}

// clamp maps a raw value into the descriptor's legal set.
func (d *Descriptor) clamp(raw float64) float64 {
	if d.Kind == KindChoice {
		return clampChoice(raw, len(d.Choices))
	}

	return min(max(raw, d.Min), d.Max)
}

func clampChoice(raw float64, n int) float64 {
	idx := math.Round(raw)
	return min(max(idx, 0), float64(n-1))
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
