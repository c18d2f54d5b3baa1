package param

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
)

var (
	// ErrDuplicateKey is returned when a key is registered twice.
	ErrDuplicateKey = errors.New("param: duplicate key")
	// ErrUnknownKey is returned for keys that were never registered.
	ErrUnknownKey = errors.New("param: unknown key")
	// ErrInvalidDescriptor is returned for malformed descriptors.
	ErrInvalidDescriptor = errors.New("param: invalid descriptor")
	// ErrUnknownChoice is returned when a choice label does not exist.
	ErrUnknownChoice = errors.New("param: unknown choice")
)

// ID is the dense handle of a registered parameter.
type ID int

type entry struct {
	desc Descriptor
	bits atomic.Uint64
}

// Store holds descriptors and their current values.
type Store struct {
	entries []*entry
	index   map[string]ID
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{index: make(map[string]ID)}
}

// Register adds a parameter and sets it to its default.
func (s *Store) Register(d Descriptor) (ID, error) {
	d, err := d.normalized()
	if err != nil {
		return -1, err
	}

	if _, ok := s.index[d.Key]; ok {
		return -1, fmt.Errorf("%w: %q", ErrDuplicateKey, d.Key)
	}

	e := &entry{desc: d}
	e.bits.Store(math.Float64bits(d.Default))

	id := ID(len(s.entries))
	s.entries = append(s.entries, e)
	s.index[d.Key] = id

	return id, nil
}

// MustRegister is like Register but panics on error.
func (s *Store) MustRegister(d Descriptor) ID {
	id, err := s.Register(d)
	if err != nil {
		panic(err)
	}

	return id
}

// Lookup resolves a key to its ID.
func (s *Store) Lookup(key string) (ID, error) {
	id, ok := s.index[key]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	return id, nil
}

// MustLookup is like Lookup but panics on error.
func (s *Store) MustLookup(key string) ID {
	id, err := s.Lookup(key)
	if err != nil {
		panic(err)
	}

	return id
}

// Len returns the number of registered parameters.
func (s *Store) Len() int { return len(s.entries) }

// Keys returns all keys in registration order.
func (s *Store) Keys() []string {
	keys := make([]string, len(s.entries))
	for i, e := range s.entries {
		keys[i] = e.desc.Key
	}

	return keys
}

// Descriptor returns a copy of the descriptor for id.
func (s *Store) Descriptor(id ID) Descriptor {
	d := s.entries[id].desc
	d.Choices = slices.Clone(d.Choices)

	return d
}

// Get returns the current value. Safe from any goroutine.
func (s *Store) Get(id ID) float64 {
	return math.Float64frombits(s.entries[id].bits.Load())
}

// Index returns the current value of a choice parameter as an index.
func (s *Store) Index(id ID) int {
	return int(s.Get(id))
}

// Set clamps raw into the legal range, stores it, and returns the stored
// value. NaN leaves the current value untouched.
func (s *Store) Set(id ID, raw float64) float64 {
	e := s.entries[id]
	if math.IsNaN(raw) {
		return math.Float64frombits(e.bits.Load())
	}

	v := e.desc.clamp(raw)
	e.bits.Store(math.Float64bits(v))

	return v
}

// GetKey returns the value for key. It panics on unregistered keys.
func (s *Store) GetKey(key string) float64 {
	return s.Get(s.MustLookup(key))
}

// SetKey sets the value for key. It panics on unregistered keys.
func (s *Store) SetKey(key string, raw float64) float64 {
	return s.Set(s.MustLookup(key), raw)
}

// Normalize maps a plain value to [0, 1], applying the skew.
func (s *Store) Normalize(id ID, plain float64) float64 {
	d := &s.entries[id].desc
	proportion := (d.clamp(plain) - d.Min) / (d.Max - d.Min)

	if d.Skew == 1 {
		return proportion
	}

	return math.Pow(proportion, d.Skew)
}

// Denormalize maps a value in [0, 1] back to the plain range.
func (s *Store) Denormalize(id ID, normalized float64) float64 {
	d := &s.entries[id].desc
	n := min(max(normalized, 0), 1)

	if d.Skew != 1 && n > 0 {
		n = math.Exp(math.Log(n) / d.Skew)
	}

	return d.clamp(d.Min + (d.Max-d.Min)*n)
}

// SetNormalized sets the value from host automation in [0, 1].
func (s *Store) SetNormalized(id ID, normalized float64) float64 {
	return s.Set(id, s.Denormalize(id, normalized))
}

// Snap rounds v to the step grid anchored at Min. Set does not snap; the
// grid is for display and for controls that step.
func (s *Store) Snap(id ID, v float64) float64 {
	d := &s.entries[id].desc
	v = d.clamp(v)

	if d.Step <= 0 {
		return v
	}

	return d.clamp(d.Min + math.Round((v-d.Min)/d.Step)*d.Step)
}

// Choice returns the label of the current value of a choice parameter, or
// "" for continuous parameters.
func (s *Store) Choice(id ID) string {
	d := &s.entries[id].desc
	if d.Kind != KindChoice {
		return ""
	}

	return d.Choices[s.Index(id)]
}

// ChoiceIndex resolves a choice label (case-insensitive) to its index.
func (s *Store) ChoiceIndex(id ID, label string) (int, error) {
	d := &s.entries[id].desc
	for i, c := range d.Choices {
		if strings.EqualFold(c, label) {
			return i, nil
		}
	}

	return -1, fmt.Errorf("%w: %q for %q", ErrUnknownChoice, label, d.Key)
}

// Format renders the current value for display.
func (s *Store) Format(id ID) string {
	d := &s.entries[id].desc
	if d.Kind == KindChoice {
		return s.Choice(id)
	}

	v := strconv.FormatFloat(s.Get(id), 'f', decimals(d.Step), 64)
	if d.Unit == "" {
		return v
	}

	return v + " " + d.Unit
}

// Reset restores every parameter to its default.
func (s *Store) Reset() {
	for _, e := range s.entries {
		e.bits.Store(math.Float64bits(e.desc.Default))
	}
}

// Values returns a snapshot of all values keyed by parameter key.
func (s *Store) Values() map[string]float64 {
	out := make(map[string]float64, len(s.entries))
	for i, e := range s.entries {
		out[e.desc.Key] = s.Get(ID(i))
	}

	return out
}

// Apply sets every value in vals. Unknown keys abort before any value is
// written.
func (s *Store) Apply(vals map[string]float64) error {
	for k := range vals {
		if _, err := s.Lookup(k); err != nil {
			return err
		}
	}

	for k, v := range vals {
		s.Set(s.index[k], v)
	}

	return nil
}

// decimals returns how many fractional digits a step needs.
func decimals(step float64) int {
	switch {
	case step >= 1:
		return 0
	case step <= 0:
		return 2
	}

	return int(math.Ceil(-math.Log10(step) - 1e-9))
}
