package monitor_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tauzero/tbamon/dbm"
	"github.com/tauzero/tbamon/ta"
)

// bounded builds a one-location, one-clock automaton: an accepting
// location with invariant x<=0 and a self-loop on label that resets x
// and requires x<1 to fire. Feeding it any other label, or enough delay
// to push x past 0 without firing, empties its estimate.
func bounded(t *testing.T, name, label string) *ta.TA {
	t.Helper()
	const x = 1
	locations := []ta.Location{
		{ID: 0, Name: "l0", Accept: true, Invariant: []dbm.Constraint{dbm.UpperNonStrict(x, 0)}},
	}
	edges := []ta.Edge{
		{From: 0, To: 0, Guard: []dbm.Constraint{dbm.UpperStrict(x, 1)}, Reset: []int{x}, Label: label},
	}
	tbl, err := ta.New(name, map[int]string{0: "0", x: "x"}, locations, edges, 0)
	require.NoError(t, err)
	return tbl
}

// universal builds a one-location, clockless automaton accepting every
// label in labels via a self-loop, useful as a side that never goes OUT
// on its own.
func universal(t *testing.T, name string, labels []string) *ta.TA {
	t.Helper()
	locations := []ta.Location{{ID: 0, Name: "l0", Accept: true}}
	var edges []ta.Edge
	for _, l := range labels {
		edges = append(edges, ta.Edge{From: 0, To: 0, Label: l})
	}
	tbl, err := ta.New(name, map[int]string{0: "0"}, locations, edges, 0)
	require.NoError(t, err)
	return tbl
}

// noIncoming builds a single accepting location with no edges at all,
// so its accept-reachable fixed point is empty: AcceptReach finds no
// predecessor step into an accept location at all.
func noIncoming(t *testing.T, name string) *ta.TA {
	t.Helper()
	locations := []ta.Location{{ID: 0, Name: "l0", Accept: true}}
	tbl, err := ta.New(name, map[int]string{0: "0"}, locations, nil, 0)
	require.NoError(t, err)
	return tbl
}

// leadsTo builds "every a is followed within bound time units by a b"
// over {a,b,c}, matching ta_test.go's builder of the same name: l0
// --a,x:=0--> l1 (invariant x<=bound, accept), l1 --b--> l0, l1 --c-->
// l1, l0 --c--> l0, l0 --b--> l0.
func leadsTo(t *testing.T, bound int64) *ta.TA {
	t.Helper()
	const x = 1
	locations := []ta.Location{
		{ID: 0, Name: "l0", Accept: true},
		{ID: 1, Name: "l1", Accept: true, Invariant: []dbm.Constraint{dbm.UpperNonStrict(x, bound)}},
	}
	edges := []ta.Edge{
		{From: 0, To: 1, Reset: []int{x}, Label: "a"},
		{From: 1, To: 0, Label: "b"},
		{From: 1, To: 1, Label: "c"},
		{From: 0, To: 0, Label: "b"},
		{From: 0, To: 0, Label: "c"},
	}
	tbl, err := ta.New("leadsTo", map[int]string{0: "0", x: "x"}, locations, edges, 0)
	require.NoError(t, err)
	return tbl
}

// twoPathsSameTarget builds l0 --a--> l1 twice, once resetting clock y
// and once not, both landing at l1 where y is never read again (its only
// outgoing edge, "b" back to l0, carries no guard). A single interval
// observation of "a" fires both edges from the one source state and
// produces two successors at l1 that differ only on y (pinned to 0 by the
// reset, unconstrained otherwise) when y is tracked, but two identical
// ones after abstraction frees it.
func twoPathsSameTarget(t *testing.T) *ta.TA {
	t.Helper()
	const y = 1
	locations := []ta.Location{
		{ID: 0, Name: "l0", Accept: true},
		{ID: 1, Name: "l1", Accept: true},
	}
	edges := []ta.Edge{
		{From: 0, To: 1, Reset: []int{y}, Label: "a"},
		{From: 0, To: 1, Label: "a"},
		{From: 1, To: 0, Label: "b"},
	}
	tbl, err := ta.New("twoPathsSameTarget", map[int]string{0: "0", y: "y"}, locations, edges, 0)
	require.NoError(t, err)
	return tbl
}
