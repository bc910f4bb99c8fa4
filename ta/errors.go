package ta

import "errors"

var (
	// ErrDuplicateLocation indicates two locations were supplied with the
	// same id.
	ErrDuplicateLocation = errors.New("ta: duplicate location id")

	// ErrUnknownLocation indicates an edge or the initial location
	// references a location id that was not supplied.
	ErrUnknownLocation = errors.New("ta: unknown location id")

	// ErrNoLocations indicates a TA was constructed with no locations.
	ErrNoLocations = errors.New("ta: automaton has no locations")

	// ErrClockOutOfRange indicates a constraint or reset references a
	// clock index outside the automaton's dimension.
	ErrClockOutOfRange = errors.New("ta: clock index out of range")

	// ErrDimensionMismatch indicates Intersection was called on automata
	// that disagree about the zero clock or would otherwise clash.
	ErrDimensionMismatch = errors.New("ta: dimension mismatch")
)
