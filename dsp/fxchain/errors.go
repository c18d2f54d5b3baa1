package fxchain

import "errors"

var (
	// ErrInvalidOrder is returned for orders that are not a permutation of
	// the five units.
	ErrInvalidOrder = errors.New("fxchain: invalid order")
	// ErrFIFOFull is returned when the order channel has no free slot.
	// The request was dropped; the caller may retry.
	ErrFIFOFull = errors.New("fxchain: order fifo full")
	// ErrInvalidSpec is returned by Prepare for unusable stream settings.
	ErrInvalidSpec = errors.New("fxchain: invalid process spec")
	// ErrStateVersion is returned when a state blob has an unsupported version.
	ErrStateVersion = errors.New("fxchain: unsupported state version")
	// ErrSentinelDispatch is the panic value when the pipeline is asked to
	// run the end-of-list sentinel or an unknown option.
	ErrSentinelDispatch = errors.New("fxchain: dispatch of sentinel or unknown option")
)
