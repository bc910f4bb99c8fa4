package state

import "errors"

var (
	// ErrDimensionMismatch indicates two states (or a state and a
	// federation) of incompatible dimension were combined.
	ErrDimensionMismatch = errors.New("state: dimension mismatch")

	// ErrPointOnly indicates a Concrete-flavor state received an interval
	// delay with lo != hi; concrete states only advance by a point amount.
	ErrPointOnly = errors.New("state: concrete flavor requires a point delay")

	// ErrNoLatencyClock indicates RestrictOutLatency or RestrictInLatency
	// was called against a
	// flavor with no companion latency clock at the requested slot.
	ErrNoLatencyClock = errors.New("state: flavor has no such latency clock")

	// ErrSymbolicOnly indicates an operation defined only for federation-
	// backed flavors was called against a Concrete-flavor state.
	ErrSymbolicOnly = errors.New("state: operation requires a symbolic flavor")
)
