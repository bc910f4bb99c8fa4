package monitor

import "errors"

// Error kinds per spec.md §7 (kinds, not type names — all distinguishable
// with errors.Is).
var (
	// ErrBadInput covers malformed timestamps, unknown labels under
	// StrictLabels, and non-monotonic observation times.
	ErrBadInput = errors.New("monitor: bad input")

	// ErrBothOut fires when φ and ¬φ both go empty after the same
	// observation: the two automata (or the assumption) are inconsistent
	// with the observed trace. Fatal for the monitor.
	ErrBothOut = errors.New("monitor: both sides are empty: automata are not complementary for the observed trace")

	// ErrFailed is returned by Observe once ErrBothOut has latched.
	ErrFailed = errors.New("monitor: this monitor has failed and accepts no further observations")

	// ErrEmptyFixedPoint marks a side whose accept-reachable set is empty
	// at construction time; that side is immediately OUT.
	ErrEmptyFixedPoint = errors.New("monitor: accept-reachable set is empty at construction")

	// ErrDimensionMismatch covers incompatible automaton or state
	// dimensions discovered at construction time.
	ErrDimensionMismatch = errors.New("monitor: dimension mismatch")
)
