package fixedpoint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tauzero/tbamon/dbm"
	"github.com/tauzero/tbamon/fixedpoint"
	"github.com/tauzero/tbamon/ta"
)

const x = 1

// cyclicTA builds a 2-location TA with a cycle through its accept
// location: 0 --a[x<1]--> 1 --b[x:=0]--> 0.
func cyclicTA(t *testing.T) *ta.TA {
	t.Helper()
	clocks := map[int]string{0: "zero", x: "x"}
	locs := []ta.Location{
		{ID: 0, Name: "l0", Accept: true},
		{ID: 1, Name: "l1"},
	}
	edges := []ta.Edge{
		{From: 0, To: 1, Guard: []dbm.Constraint{dbm.UpperStrict(x, 1)}, Label: "a"},
		{From: 1, To: 0, Reset: []int{x}, Label: "b"},
	}
	automaton, err := ta.New("cyclic", clocks, locs, edges, 0)
	require.NoError(t, err)
	return automaton
}

// acyclicTA builds a 2-location TA whose accept location has no incoming
// edge at all, so no run can return to it.
func acyclicTA(t *testing.T) *ta.TA {
	t.Helper()
	clocks := map[int]string{0: "zero", x: "x"}
	locs := []ta.Location{
		{ID: 0, Name: "l0", Accept: true},
		{ID: 1, Name: "l1"},
	}
	edges := []ta.Edge{
		{From: 0, To: 1, Label: "a"},
	}
	automaton, err := ta.New("acyclic", clocks, locs, edges, 0)
	require.NoError(t, err)
	return automaton
}

func TestAcceptReach_CycleThroughAcceptIsNonEmpty(t *testing.T) {
	t.Parallel()

	space, rounds, err := fixedpoint.AcceptReach(cyclicTA(t))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rounds, 1)

	f0, err := space.Federation(0)
	require.NoError(t, err)
	require.NotNil(t, f0)
	sat, err := f0.IsSatisfying(dbm.UpperStrict(x, 1))
	require.NoError(t, err)
	assert.True(t, sat)

	f1, err := space.Federation(1)
	require.NoError(t, err)
	require.NotNil(t, f1)
}

func TestAcceptReach_NoCycleIsEmpty(t *testing.T) {
	t.Parallel()

	space, rounds, err := fixedpoint.AcceptReach(acyclicTA(t))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rounds, 1)

	f0, err := space.Federation(0)
	require.NoError(t, err)
	assert.Nil(t, f0)

	f1, err := space.Federation(1)
	require.NoError(t, err)
	assert.Nil(t, f1)
}
