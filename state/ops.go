package state

import (
	"fmt"

	"github.com/tauzero/tbamon/dbm"
	"github.com/tauzero/tbamon/federation"
	"github.com/tauzero/tbamon/ta"
)

// outLatencyIndex returns the companion clock index used for output
// latency/jitter, or -1 if the flavor carries none.
func (s *State) outLatencyIndex() int {
	switch s.flavor {
	case Delay:
		return s.dim + 1
	case Testing:
		return s.dim + 2
	default:
		return -1
	}
}

// inLatencyIndex returns the companion clock index used for input
// latency/jitter, or -1 if the flavor carries none.
func (s *State) inLatencyIndex() int {
	if s.flavor == Testing {
		return s.dim + 1
	}
	return -1
}

// Delay advances s by an amount of time restricted to [lo, hi]: the
// elapsed-time dimension is let run free (DBM.Future) and then clamped to
// the interval, matching spec.md §4.4's "the observer lets time pass
// between samples, bounded by the sampling period." Concrete states only
// accept a point delay (lo == hi).
func (s *State) Delay(lo, hi int64) (*State, error) {
	if s.flavor == Concrete {
		if lo != hi {
			return nil, ErrPointOnly
		}
		r := s.Clone()
		if r.valEmpty {
			return r, nil
		}
		for i := 1; i < r.dim; i++ {
			r.val[i] += lo
		}
		r.global += lo
		return r, nil
	}

	r := s.Clone()
	r.fed = r.fed.Future()
	idx := r.elapsedIndex()
	f, err := r.fed.RestrictAll([]dbm.Constraint{
		dbm.LowerNonStrict(idx, lo),
		dbm.UpperNonStrict(idx, hi),
	})
	if err != nil {
		return nil, err
	}
	r.fed = f
	return r, nil
}

// RestrictOutLatency clamps the output-latency companion clock (present on
// Delay and Testing flavors) to [lo, hi].
func (s *State) RestrictOutLatency(lo, hi int64) (*State, error) {
	return s.restrictCompanion(s.outLatencyIndex(), lo, hi)
}

// RestrictInLatency clamps the input-latency companion clock (present only
// on the Testing flavor) to [lo, hi].
func (s *State) RestrictInLatency(lo, hi int64) (*State, error) {
	return s.restrictCompanion(s.inLatencyIndex(), lo, hi)
}

func (s *State) restrictCompanion(idx int, lo, hi int64) (*State, error) {
	if idx < 0 {
		return nil, ErrNoLatencyClock
	}
	r := s.Clone()
	f, err := r.fed.RestrictAll([]dbm.Constraint{
		dbm.LowerNonStrict(idx, lo),
		dbm.UpperNonStrict(idx, hi),
	})
	if err != nil {
		return nil, err
	}
	r.fed = f
	return r, nil
}

// Sync resets every companion clock (elapsed time, and latency/jitter
// clocks when present) to 0, preparing s for the next observation
// interval once the current one has been consumed.
func (s *State) Sync() (*State, error) {
	if s.flavor == Concrete {
		return s.Clone(), nil
	}
	idxs := []int{s.elapsedIndex()}
	if i := s.outLatencyIndex(); i >= 0 {
		idxs = append(idxs, i)
	}
	if i := s.inLatencyIndex(); i >= 0 {
		idxs = append(idxs, i)
	}
	r := s.Clone()
	f, err := r.fed.ResetAll(idxs)
	if err != nil {
		return nil, err
	}
	r.fed = f
	return r, nil
}

// Restrict intersects s with guard constraints expressed over the TA's own
// clocks (indices 0..Dim()-1).
func (s *State) Restrict(cs []dbm.Constraint) (*State, error) {
	if s.flavor == Concrete {
		r := s.Clone()
		if r.valEmpty {
			return r, nil
		}
		if !satisfiesAll(cs, r.val) {
			r.valEmpty = true
		}
		return r, nil
	}
	r := s.Clone()
	f, err := r.fed.RestrictAll(cs)
	if err != nil {
		return nil, err
	}
	r.fed = f
	return r, nil
}

// ResetClocks assigns 0 to every real clock in xs (an edge reset).
func (s *State) ResetClocks(xs []int) (*State, error) {
	if s.flavor == Concrete {
		r := s.Clone()
		for _, x := range xs {
			if x < 0 || x >= r.dim {
				return nil, fmt.Errorf("state: %w", ErrDimensionMismatch)
			}
			r.val[x] = 0
		}
		return r, nil
	}
	r := s.Clone()
	f, err := r.fed.ResetAll(xs)
	if err != nil {
		return nil, err
	}
	r.fed = f
	return r, nil
}

// Past applies the inverse of delay to the federation: time may have been
// flowing since the origin. Used by the backward step of accept-reachability
// fixed-point computation (spec.md §4.5).
func (s *State) Past() *State {
	if s.flavor == Concrete {
		return s.Clone()
	}
	r := s.Clone()
	r.fed = r.fed.Past()
	return r
}

// ResetToZero restricts every clock in xs to exactly 0 without touching its
// relation to any other clock, unlike ResetClocks (which reproduces the
// zero clock's relations). This is the backward counterpart of a forward
// reset: before firing an edge backward, a clock the edge resets is known
// to have been exactly 0 just after the edge fired.
func (s *State) ResetToZero(xs []int) (*State, error) {
	if s.flavor == Concrete {
		return nil, fmt.Errorf("state: ResetToZero: %w", ErrSymbolicOnly)
	}
	r := s.Clone()
	cs := make([]dbm.Constraint, 0, 2*len(xs))
	for _, x := range xs {
		cs = append(cs, dbm.UpperNonStrict(x, 0), dbm.LowerNonStrict(x, 0))
	}
	f, err := r.fed.RestrictAll(cs)
	if err != nil {
		return nil, err
	}
	r.fed = f
	return r, nil
}

// TransitionBackward computes a predecessor of s across edge e: s must
// currently be located at e.To. The clocks e resets are known to have been
// 0 immediately after firing, so they are pinned to 0 and then freed
// (their pre-edge value is unconstrained); the guard is then required to
// have held; and time is allowed to have flowed both before and after the
// (instantaneous) edge firing. Used by the backward reachability fixed
// point, never by forward simulation.
func (s *State) TransitionBackward(e ta.Edge) (*State, error) {
	if e.To != s.loc {
		return nil, fmt.Errorf("state: TransitionBackward: edge %d->%d does not end at location %d", e.From, e.To, s.loc)
	}
	r := s.Clone()
	r.loc = e.From
	r = r.Past()
	r, err := r.ResetToZero(e.Reset)
	if err != nil {
		return nil, err
	}
	for _, x := range e.Reset {
		r, err = r.FreeClock(x)
		if err != nil {
			return nil, err
		}
	}
	r, err = r.Restrict(e.Guard)
	if err != nil {
		return nil, err
	}
	r = r.Past()
	return r, nil
}

// UnionWith merges o's federation into s's, both of which must share
// location and dimension. Used to accumulate a fixed-point's per-location
// state during backward reachability.
func (s *State) UnionWith(o *State) (*State, error) {
	if s.flavor == Concrete || o.flavor == Concrete {
		return nil, fmt.Errorf("state: UnionWith: %w", ErrSymbolicOnly)
	}
	if s.loc != o.loc {
		return nil, fmt.Errorf("state: UnionWith: location %d vs %d", s.loc, o.loc)
	}
	r := s.Clone()
	f, err := r.fed.UnionFederation(o.fed)
	if err != nil {
		return nil, err
	}
	r.fed = f
	return r, nil
}

// IsIncludedIn reports whether s's federation is a subset of o's, given
// both share location.
func (s *State) IsIncludedIn(o *State) (bool, error) {
	if s.loc != o.loc {
		return false, nil
	}
	rel, err := s.fed.Relation(o.fed)
	if err != nil {
		return false, err
	}
	return rel == federation.Equal || rel == federation.Subset, nil
}

// FreeClock forgets the value of real clock x, used by the monitor's
// inactive-clock abstraction (spec.md §4.3) to merge states that agree
// except on clocks no future edge or invariant can read.
func (s *State) FreeClock(x int) (*State, error) {
	if s.flavor == Concrete {
		return nil, fmt.Errorf("state: FreeClock: %w", ErrSymbolicOnly)
	}
	r := s.Clone()
	f, err := r.fed.Free(x)
	if err != nil {
		return nil, err
	}
	r.fed = f
	return r, nil
}

// DoTransition fires edge e against s: restricts by the guard, checks
// satisfiability, resets the listed clocks, and moves to e.To. It returns
// an empty state (IsEmpty() true) rather than an error when the guard is
// not met — a disabled edge is a normal outcome, not a failure.
func (s *State) DoTransition(e ta.Edge) (*State, error) {
	r, err := s.Restrict(e.Guard)
	if err != nil {
		return nil, err
	}
	if r.IsEmpty() {
		return r, nil
	}
	r, err = r.ResetClocks(e.Reset)
	if err != nil {
		return nil, err
	}
	r.loc = e.To
	return r, nil
}

// IntersectWithFederation restricts s to the valuations also admitted by f,
// a federation expressed over s's own dim real clocks (f is embedded up to
// s's total dimension first). Used to fold in an AcceptReach fixed point.
func (s *State) IntersectWithFederation(f *federation.Federation) (*State, error) {
	if s.flavor == Concrete {
		r := s.Clone()
		if r.valEmpty {
			return r, nil
		}
		sat, err := federationAdmits(f, r.val)
		if err != nil {
			return nil, err
		}
		if !sat {
			r.valEmpty = true
		}
		return r, nil
	}
	if err := checkDim(s.dim, f.Dim()); err != nil {
		return nil, err
	}
	embedded, err := f.Embed(s.totalDim())
	if err != nil {
		return nil, err
	}
	r := s.Clone()
	inter, err := r.fed.IntersectionFederation(embedded)
	if err != nil {
		return nil, err
	}
	r.fed = inter
	return r, nil
}

// Relation compares the zone/valuation sets of s and o, which must share
// flavor, location and dimension. Concrete states compare for exact
// valuation equality; symbolic flavors defer to federation.Relation.
func (s *State) Relation(o *State) (federation.Relation, error) {
	if s.flavor != o.flavor {
		return federation.Different, fmt.Errorf("state: mismatched flavors %s vs %s", s.flavor, o.flavor)
	}
	if s.flavor == Concrete {
		if err := checkDim(s.dim, o.dim); err != nil {
			return federation.Different, err
		}
		switch {
		case s.valEmpty && o.valEmpty:
			return federation.Equal, nil
		case s.valEmpty:
			return federation.Subset, nil
		case o.valEmpty:
			return federation.Superset, nil
		}
		for i := range s.val {
			if s.val[i] != o.val[i] {
				return federation.Different, nil
			}
		}
		return federation.Equal, nil
	}
	return s.fed.Relation(o.fed)
}

// satisfiesAll reports whether valuation val (val[0] must be 0) satisfies
// every constraint in cs.
func satisfiesAll(cs []dbm.Constraint, val []int64) bool {
	for _, c := range cs {
		diff := val[c.I] - val[c.J]
		if c.Bound.IsInf() {
			continue
		}
		if c.Bound.Strict {
			if !(diff < c.Bound.Value) {
				return false
			}
		} else if !(diff <= c.Bound.Value) {
			return false
		}
	}
	return true
}

// federationAdmits reports whether some member zone of f is satisfied by
// valuation val.
func federationAdmits(f *federation.Federation, val []int64) (bool, error) {
	for _, z := range f.Zones() {
		ok := true
		for i := 0; i < z.Dim() && i < len(val); i++ {
			for j := 0; j < z.Dim() && j < len(val); j++ {
				b := z.At(i, j)
				if b.IsInf() {
					continue
				}
				diff := val[i] - val[j]
				if b.Strict {
					if !(diff < b.Value) {
						ok = false
					}
				} else if !(diff <= b.Value) {
					ok = false
				}
				if !ok {
					break
				}
			}
			if !ok {
				break
			}
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
