package ta

import "github.com/tauzero/tbamon/dbm"

// InactiveClocks returns the set of clock indices whose value at location
// id cannot influence any future verdict: every clock reachable from id is
// either reset before its next guard/invariant mention, or never
// mentioned again. The zero clock (index 0) is never reported inactive.
//
// Computed once, lazily, as a backward data-flow fixed point (spec.md
// §4.3): a clock used in an outgoing guard or the location's own
// invariant is active; propagating backward along an edge that resets a
// clock removes it from what the edge's source inherits from the target.
func (t *TA) InactiveClocks(id int) []int {
	t.inactiveOnce.Do(t.computeInactive)
	active := t.inactiveByLoc[id]
	out := make([]int, 0, t.dimension-1)
	for c := 1; c < t.dimension; c++ {
		if !active[c] {
			out = append(out, c)
		}
	}
	return out
}

func (t *TA) computeInactive() {
	active := make(map[int]map[int]bool, len(t.locations))
	for id, l := range t.locations {
		active[id] = clockSet(l.Invariant)
	}

	changed := true
	for changed {
		changed = false
		for id := range t.locations {
			acc := active[id]
			for _, e := range t.edgesFrom[id] {
				for c := range clockSet(e.Guard) {
					if !acc[c] {
						acc[c] = true
						changed = true
					}
				}
				reset := resetSet(e.Reset)
				for c := range active[e.To] {
					if reset[c] {
						continue
					}
					if !acc[c] {
						acc[c] = true
						changed = true
					}
				}
			}
		}
	}
	t.inactiveByLoc = active
}

func clockSet(cs []dbm.Constraint) map[int]bool {
	out := make(map[int]bool)
	for _, c := range cs {
		if c.I != 0 {
			out[c.I] = true
		}
		if c.J != 0 {
			out[c.J] = true
		}
	}
	return out
}

func resetSet(xs []int) map[int]bool {
	out := make(map[int]bool, len(xs))
	for _, x := range xs {
		out[x] = true
	}
	return out
}
