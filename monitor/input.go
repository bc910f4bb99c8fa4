package monitor

// InputType distinguishes how an observation's label is matched against
// outgoing edges, per spec.md §6.
type InputType int

const (
	// Once requires the label to match at most once per observation:
	// the normal case.
	Once InputType = iota
	// Optional treats the label as possibly absent: the unchanged state
	// is always kept as a candidate successor alongside any transition.
	Optional
	// Multi is reserved for repeated firings of the same label within a
	// single observation. Unimplemented (spec.md §9 Open Question); every
	// Multi input is rejected with ErrBadInput.
	Multi
)

// Input is one timed observation: a closed time interval [Lo, Hi] (a
// point observation has Lo == Hi), an event Label (empty denotes a pure
// time advance with no transition), and a Type.
type Input struct {
	Lo, Hi int64
	Label  string
	Type   InputType
}

// PointInput builds a point-time observation.
func PointInput(t int64, label string) Input {
	return Input{Lo: t, Hi: t, Label: label, Type: Once}
}

// IntervalInput builds an interval-time observation.
func IntervalInput(lo, hi int64, label string, typ InputType) Input {
	return Input{Lo: lo, Hi: hi, Label: label, Type: typ}
}
