package ta

import (
	"fmt"
	"sort"

	"github.com/tauzero/tbamon/dbm"
)

// triple is a product location: the two source automata's location ids
// plus the generalized-Büchi track bit (1 awaits an A-accept, 2 awaits a
// B-accept). Track is modeled purely as part of the product location id,
// never as a global or a back-reference into the original automata, per
// spec.md §9's re-architecture guidance.
type triple struct {
	A, B, Track int
}

// Intersection builds the product (conjunction) automaton a × b: a
// two-track generalized-Büchi construction whose accept locations are
// those on track 2 whose B-component is accepting.
//
// Track flips "on leaving" an accept location of the component it is
// currently awaiting (spec.md §9 Open Question: the source varies between
// on-enter and on-exit; this implementation fixes on-exit — the flip is
// evaluated against the edge's *source* location).
//
// Clocks are disjoint-unioned: a shares the zero clock and indices
// [1, a.dimension) with the product; b's zero clock is identified with
// the same product zero clock, and b's real clocks [1, b.dimension) are
// shifted to [a.dimension, a.dimension+b.dimension-1).
func Intersection(a, b *TA) (*TA, error) {
	if a.dimension < 1 || b.dimension < 1 {
		return nil, ErrDimensionMismatch
	}

	shiftB := func(clock int) int {
		if clock == 0 {
			return 0
		}
		return a.dimension - 1 + clock
	}
	aIDs := sortedLocIDs(a)
	bIDs := sortedLocIDs(b)

	ids := make(map[triple]int)
	nextID := 0
	idOf := func(tr triple) int {
		if id, ok := ids[tr]; ok {
			return id
		}
		id := nextID
		nextID++
		ids[tr] = id
		return id
	}

	var locations []Location
	for _, la := range aIDs {
		for _, lb := range bIDs {
			for _, track := range []int{1, 2} {
				tr := triple{A: la, B: lb, Track: track}
				locA := a.locations[la]
				locB := b.locations[lb]
				accept := track == 2 && locB.Accept
				inv := append(append([]dbm.Constraint{}, locA.Invariant...), shiftConstraints(locB.Invariant, shiftB)...)
				locations = append(locations, Location{
					ID:        idOf(tr),
					Name:      fmt.Sprintf("%s.%s/%d", locA.Name, locB.Name, track),
					Accept:    accept,
					Invariant: inv,
				})
			}
		}
	}

	nextTrack := func(track, locA int, locB int) int {
		if track == 1 {
			if a.locations[locA].Accept {
				return 2
			}
			return 1
		}
		if b.locations[locB].Accept {
			return 1
		}
		return 2
	}

	var edges []Edge
	for _, la := range aIDs {
		for _, lb := range bIDs {
			for _, track := range []int{1, 2} {
				from := triple{A: la, B: lb, Track: track}
				fromID := idOf(from)

				for _, eA := range a.edgesFrom[la] {
					_, sharedByB := b.labels[eA.Label]
					if sharedByB {
						for _, eB := range b.edgesFrom[lb] {
							if eB.Label != eA.Label {
								continue
							}
							to := triple{A: eA.To, B: eB.To, Track: nextTrack(track, la, lb)}
							edges = append(edges, Edge{
								From:  fromID,
								To:    idOf(to),
								Guard: append(append([]dbm.Constraint{}, eA.Guard...), shiftConstraints(eB.Guard, shiftB)...),
								Reset: append(append([]int{}, eA.Reset...), shiftResets(eB.Reset, shiftB)...),
								Label: eA.Label,
							})
						}
					} else {
						// Label private to A: self-loop over every B-location.
						to := triple{A: eA.To, B: lb, Track: nextTrack(track, la, lb)}
						edges = append(edges, Edge{
							From:  fromID,
							To:    idOf(to),
							Guard: append([]dbm.Constraint{}, eA.Guard...),
							Reset: append([]int{}, eA.Reset...),
							Label: eA.Label,
						})
					}
				}
				for _, eB := range b.edgesFrom[lb] {
					if _, sharedByA := a.labels[eB.Label]; sharedByA {
						continue // already emitted above as a combined edge
					}
					to := triple{A: la, B: eB.To, Track: nextTrack(track, la, lb)}
					edges = append(edges, Edge{
						From:  fromID,
						To:    idOf(to),
						Guard: shiftConstraints(eB.Guard, shiftB),
						Reset: shiftResets(eB.Reset, shiftB),
						Label: eB.Label,
					})
				}
			}
		}
	}

	clockNames := make(map[int]string, a.dimension+b.dimension-1)
	for i := 0; i < a.dimension; i++ {
		clockNames[i] = a.clockNames[i]
	}
	for i := 1; i < b.dimension; i++ {
		clockNames[shiftB(i)] = b.clockNames[i]
	}

	initial := idOf(triple{A: a.initial, B: b.initial, Track: 1})

	name := fmt.Sprintf("(%s × %s)", a.name, b.name)
	return New(name, clockNames, locations, edges, initial)
}

func sortedLocIDs(t *TA) []int {
	ids := make([]int, 0, len(t.locations))
	for id := range t.locations {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func shiftConstraints(cs []dbm.Constraint, shift func(int) int) []dbm.Constraint {
	out := make([]dbm.Constraint, len(cs))
	for i, c := range cs {
		out[i] = dbm.Constraint{I: shift(c.I), J: shift(c.J), Bound: c.Bound}
	}
	return out
}

func shiftResets(xs []int, shift func(int) int) []int {
	out := make([]int, len(xs))
	for i, x := range xs {
		out[i] = shift(x)
	}
	return out
}
