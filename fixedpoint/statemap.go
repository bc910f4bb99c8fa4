package fixedpoint

import (
	"github.com/tauzero/tbamon/federation"
	"github.com/tauzero/tbamon/state"
)

// StateMap holds at most one symbolic state per location, unioning on
// insert rather than overwriting. It is the accumulator type for both the
// waiting and passed sets of the backward-reachability worklist, and for
// the final accept-reachable space the monitor intersects against.
type StateMap map[int]*state.State

// insert unions s into the map entry for s.Location(), creating it if
// absent. Empty states are dropped rather than inserted, matching the
// teacher's "checks for emptiness before inserting."
func (m StateMap) insert(s *state.State) error {
	if s.IsEmpty() {
		return nil
	}
	existing, ok := m[s.Location()]
	if !ok {
		m[s.Location()] = s
		return nil
	}
	merged, err := existing.UnionWith(s)
	if err != nil {
		return err
	}
	m[s.Location()] = merged
	return nil
}

// popAny removes and returns an arbitrary entry. Map iteration order is
// unspecified in Go, same as the teacher's choice of the first element of
// an ordered associative container — worklist order affects only how many
// redundant rounds are taken before the fixed point is found, never the
// result.
func (m StateMap) popAny() *state.State {
	for _, s := range m {
		delete(m, s.Location())
		return s
	}
	return nil
}

func (m StateMap) isEmpty() bool { return len(m) == 0 }

// Federation returns the federation tracked at loc, projected down to the
// TA's own clock dimension (AcceptFederation drops the elapsed scratch
// clock backward reachability used internally), or nil if the map has no
// entry there.
func (m StateMap) Federation(loc int) (*federation.Federation, error) {
	s, ok := m[loc]
	if !ok {
		return nil, nil
	}
	return s.AcceptFederation()
}

// Equal reports whether m and o denote the same accept-reachable space:
// the same set of locations, each with approximately-equal federations.
func (m StateMap) Equal(o StateMap) (bool, error) {
	if len(m) != len(o) {
		return false, nil
	}
	for loc, s := range m {
		t, ok := o[loc]
		if !ok {
			return false, nil
		}
		rel, err := s.Relation(t)
		if err != nil {
			return false, err
		}
		if rel != federation.Equal {
			return false, nil
		}
	}
	return true, nil
}

// Clone returns a shallow copy (states themselves are treated as
// immutable by this package once inserted).
func (m StateMap) Clone() StateMap {
	c := make(StateMap, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// IntersectState restricts s to the federation this map tracks at s's
// location, or to the empty federation if the map has no entry there
// (spec.md §4.4's "intersection(state_map) — if the map has an entry for
// this location, intersect federations; else mark empty"). This is how
// the monitor folds a freshly computed successor into an AcceptReach
// fixed point.
func (m StateMap) IntersectState(s *state.State) (*state.State, error) {
	f, err := m.Federation(s.Location())
	if err != nil {
		return nil, err
	}
	if f == nil {
		f = federation.New(s.Dim())
	}
	return s.IntersectWithFederation(f)
}
