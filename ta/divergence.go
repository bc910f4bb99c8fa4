package ta

import "github.com/tauzero/tbamon/dbm"

const (
	divergenceAccept    = 0
	divergenceNonAccept = 1
	divergenceClock     = 1
)

// TimeDivergence builds the time-divergence gadget over alphabet: two
// locations (an accepting l0 and a non-accepting l1) and one clock t, such
// that on every letter l0 resets t and moves to l1, l1 can return to l0
// only once t ≥ 1, and l1 may otherwise self-loop. Intersecting a property
// with this automaton forces at least one time unit between visits to an
// accepting location, ruling out Zeno runs (spec.md §4.3).
//
// If deterministic is true, the l1 self-loop is additionally guarded
// t < 1, matching the source's deterministic variant.
func TimeDivergence(alphabet []string, deterministic bool) (*TA, error) {
	locations := []Location{
		{ID: divergenceAccept, Name: "l0", Accept: true},
		{ID: divergenceNonAccept, Name: "l1", Accept: false},
	}

	var edges []Edge
	for _, label := range alphabet {
		edges = append(edges,
			Edge{From: divergenceAccept, To: divergenceNonAccept, Reset: []int{divergenceClock}, Label: label},
			Edge{From: divergenceNonAccept, To: divergenceAccept,
				Guard: []dbm.Constraint{dbm.LowerNonStrict(divergenceClock, 1)}, Label: label},
		)
		selfLoop := Edge{From: divergenceNonAccept, To: divergenceNonAccept, Label: label}
		if deterministic {
			selfLoop.Guard = []dbm.Constraint{dbm.UpperStrict(divergenceClock, 1)}
		}
		edges = append(edges, selfLoop)
	}

	clockNames := map[int]string{0: "0", divergenceClock: "t"}
	return New("divergence", clockNames, locations, edges, divergenceAccept)
}
