package state

import (
	"fmt"

	"github.com/tauzero/tbamon/dbm"
	"github.com/tauzero/tbamon/federation"
)

// Flavor tags which of the four symbolic-state representations a State
// carries.
type Flavor int

const (
	// Plain is the point-observation flavor: one extra dimension tracking
	// time elapsed since the state was last synchronized to an
	// observation instant.
	Plain Flavor = iota
	// Delay models bounded observation latency/jitter with one extra
	// companion clock beyond Plain's elapsed clock.
	Delay
	// Testing separates input- and output-side latency with two extra
	// companion clocks beyond Plain's elapsed clock.
	Testing
	// Concrete carries a single clock valuation instead of a federation.
	Concrete
)

func (f Flavor) String() string {
	switch f {
	case Plain:
		return "plain"
	case Delay:
		return "delay"
	case Testing:
		return "testing"
	default:
		return "concrete"
	}
}

func extraDims(f Flavor) int {
	switch f {
	case Plain:
		return 1
	case Delay:
		return 2
	case Testing:
		return 3
	default:
		return 0
	}
}

// State is the common representation behind all four symbolic-state
// flavors. The zero value is not usable; construct with NewPlain,
// NewDelay, NewTesting, or NewConcrete.
type State struct {
	flavor Flavor
	loc    int
	dim    int // the TA's own clock dimension, excluding companion clocks

	fed *federation.Federation // nil for Concrete

	val      []int64 // only for Concrete, length dim
	valEmpty bool    // explicit emptiness flag for Concrete (spec.md §9)
	global   int64   // Concrete flavor's own elapsed-time accumulator
}

// Location returns the state's current TA location id.
func (s *State) Location() int { return s.loc }

// Flavor returns the state's representation flavor.
func (s *State) Flavor() Flavor { return s.flavor }

// Dim returns the TA's own clock dimension (excluding companion clocks).
func (s *State) Dim() int { return s.dim }

// Valuation returns the Concrete flavor's clock valuation. Callers must
// not mutate the returned slice. Returns nil for symbolic flavors.
func (s *State) Valuation() []int64 {
	if s.flavor != Concrete {
		return nil
	}
	return s.val
}

// Global returns the Concrete flavor's own elapsed-time accumulator.
func (s *State) Global() int64 { return s.global }

// Federation returns the underlying zone federation. Callers must not
// mutate it. Returns nil for the Concrete flavor.
func (s *State) Federation() *federation.Federation {
	if s.flavor == Concrete {
		return nil
	}
	return s.fed
}

// totalDim is the federation's own dimension, including companion clocks.
func (s *State) totalDim() int { return s.dim + extraDims(s.flavor) }

// AcceptFederation returns s's federation projected down to s.Dim(): the
// TA's own real clocks only, with every companion clock (elapsed time,
// latency, jitter) forgotten. fixedpoint.AcceptReach builds its working
// states with Plain's single elapsed clock purely as backward-search
// scratch space; exposing the raw-dim projection here is what lets a
// monitor of any flavor intersect its own states against that map (see
// IntersectWithFederation, whose f argument is expected at this
// dimension). Returns nil for the Concrete flavor, which has no
// federation to project.
func (s *State) AcceptFederation() (*federation.Federation, error) {
	if s.flavor == Concrete {
		return nil, nil
	}
	return s.fed.Project(s.dim)
}

func (s *State) elapsedIndex() int { return s.dim }

// NewPlain constructs the initial Plain-flavor state at location loc:
// every clock, the elapsed-time companion clock included, is
// unconstrained (≥ 0). Sync is what first pins the companion clock to 0.
func NewPlain(loc, dim int) (*State, error) {
	return newFederationState(Plain, loc, dim)
}

// NewDelay constructs the initial Delay-flavor state.
func NewDelay(loc, dim int) (*State, error) {
	return newFederationState(Delay, loc, dim)
}

// NewTesting constructs the initial Testing-flavor state.
func NewTesting(loc, dim int) (*State, error) {
	return newFederationState(Testing, loc, dim)
}

func newFederationState(flavor Flavor, loc, dim int) (*State, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("state: %w", dbm.ErrInvalidDimension)
	}
	total := dim + extraDims(flavor)
	d, err := dbm.Unconstrained(total)
	if err != nil {
		return nil, err
	}
	return &State{flavor: flavor, loc: loc, dim: dim, fed: federation.Of(d)}, nil
}

// NewConcrete constructs a Concrete-flavor state at location loc with
// valuation val (len(val) must equal dim, val[0] is conventionally 0 for
// the zero clock).
func NewConcrete(loc int, val []int64) *State {
	v := make([]int64, len(val))
	copy(v, val)
	return &State{flavor: Concrete, loc: loc, dim: len(val), val: v}
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	c := &State{flavor: s.flavor, loc: s.loc, dim: s.dim, valEmpty: s.valEmpty, global: s.global}
	if s.fed != nil {
		c.fed = s.fed.Clone()
	}
	if s.val != nil {
		c.val = append([]int64(nil), s.val...)
	}
	return c
}

// IsEmpty reports whether s denotes no valuations.
func (s *State) IsEmpty() bool {
	if s.flavor == Concrete {
		return s.valEmpty
	}
	return s.fed.IsEmpty()
}

func checkDim(a, b int) error {
	if a != b {
		return fmt.Errorf("state: %dx%d vs %dx%d: %w", a, a, b, b, ErrDimensionMismatch)
	}
	return nil
}
