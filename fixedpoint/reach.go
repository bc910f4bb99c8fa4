package fixedpoint

import (
	"github.com/tauzero/tbamon/state"
	"github.com/tauzero/tbamon/ta"
)

// predecessors returns the single-step backward image of s: one state per
// incoming edge, backward-transitioned and restricted to the source
// location's invariant.
func predecessors(s *state.State, t *ta.TA) ([]*state.State, error) {
	edges := t.EdgesTo(s.Location())
	preds := make([]*state.State, 0, len(edges))
	for _, e := range edges {
		pred, err := s.TransitionBackward(e)
		if err != nil {
			return nil, err
		}
		if loc, ok := t.Location(e.From); ok {
			pred, err = pred.Restrict(loc.Invariant)
			if err != nil {
				return nil, err
			}
		}
		if !pred.IsEmpty() {
			preds = append(preds, pred)
		}
	}
	return preds, nil
}

// reach computes the backward-reachable closure of states under t's edges:
// every state that can reach some state in states via one or more
// transitions (spec.md §4.5's inner fixed point). At least one backward
// step is always taken, matching the teacher's "we have to take at least
// one step" — reach(X) never simply returns X unchanged even when X is
// already closed.
func reach(states StateMap, t *ta.TA) (StateMap, error) {
	waiting := StateMap{}
	passed := StateMap{}

	for _, s := range states {
		preds, err := predecessors(s, t)
		if err != nil {
			return nil, err
		}
		for _, p := range preds {
			if err := waiting.insert(p); err != nil {
				return nil, err
			}
		}
	}

	for !waiting.isEmpty() {
		s := waiting.popAny()

		if existing, ok := passed[s.Location()]; ok {
			included, err := s.IsIncludedIn(existing)
			if err != nil {
				return nil, err
			}
			if included {
				continue
			}
		}

		if err := passed.insert(s); err != nil {
			return nil, err
		}

		preds, err := predecessors(s, t)
		if err != nil {
			return nil, err
		}
		for _, p := range preds {
			if err := waiting.insert(p); err != nil {
				return nil, err
			}
		}
	}

	return passed, nil
}

// acceptStates returns the state at every accept location of t, restricted
// by that location's own invariant: the seed for accept reachability,
// since any valuation admitted there already witnesses acceptance.
func acceptStates(t *ta.TA) (StateMap, error) {
	out := StateMap{}
	for _, loc := range t.Locations() {
		if !loc.Accept {
			continue
		}
		s, err := state.NewPlain(loc.ID, t.Dimension())
		if err != nil {
			return nil, err
		}
		s, err = s.Restrict(loc.Invariant)
		if err != nil {
			return nil, err
		}
		if s.IsEmpty() {
			continue
		}
		out[loc.ID] = s
	}
	return out, nil
}

// filterAccept removes every location entry that is not an accept
// location, the "intersect with accept states" step of the outer fixed
// point.
func filterAccept(m StateMap, t *ta.TA) StateMap {
	out := StateMap{}
	for loc, s := range m {
		if l, ok := t.Location(loc); ok && l.Accept {
			out[loc] = s
		}
	}
	return out
}

// AcceptReach computes the greatest fixed point of "can still reach an
// accept location infinitely often" by outer-iterating reach restricted to
// accept locations each round, per spec.md §4.5. The result maps each
// location to the federation of clock valuations from which some run
// visiting an accept location forever remains possible; a symbolic state
// whose intersection with this map goes empty can be pruned immediately,
// since no accepting continuation exists from it. The returned int is the
// number of outer rounds taken to converge, for telemetry.
func AcceptReach(t *ta.TA) (StateMap, int, error) {
	seed, err := acceptStates(t)
	if err != nil {
		return nil, 0, err
	}
	reachA, err := reach(seed, t)
	if err != nil {
		return nil, 0, err
	}

	filtered := filterAccept(reachA, t)
	reachB, err := reach(filtered, t)
	if err != nil {
		return nil, 0, err
	}
	rounds := 1

	for {
		equal, err := reachA.Equal(reachB)
		if err != nil {
			return nil, 0, err
		}
		if equal {
			return reachA, rounds, nil
		}
		reachA = reachB
		filtered = filterAccept(reachB, t)
		reachB, err = reach(filtered, t)
		if err != nil {
			return nil, 0, err
		}
		rounds++
	}
}
