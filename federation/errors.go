package federation

import "errors"

var (
	// ErrDimensionMismatch indicates an operation combined two federations
	// (or a federation and a DBM) of incompatible dimension.
	ErrDimensionMismatch = errors.New("federation: dimension mismatch")

	// ErrEmptyFederation indicates an operation that requires at least one
	// member DBM was given none. No function in this package returns it.
	ErrEmptyFederation = errors.New("federation: federation has no member zones")
)
