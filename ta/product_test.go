package ta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tauzero/tbamon/ta"
)

// singleLocAccept builds a trivial one-location, self-looping automaton
// over alphabet that is always accepting (used as a neutral "true" TBA).
func singleLocAccept(t *testing.T, alphabet []string, accept bool) *ta.TA {
	t.Helper()
	var edges []ta.Edge
	for _, l := range alphabet {
		edges = append(edges, ta.Edge{From: 0, To: 0, Label: l})
	}
	tbl, err := ta.New("trivial", map[int]string{0: "0"}, []ta.Location{{ID: 0, Name: "l0", Accept: accept}}, edges, 0)
	require.NoError(t, err)
	return tbl
}

func TestIntersection_LocationCountIsFullCrossProduct(t *testing.T) {
	t.Parallel()

	a := singleLocAccept(t, []string{"a"}, true)
	b := leadsTo(t, 100)

	prod, err := ta.Intersection(a, b)
	require.NoError(t, err)

	// |A|=1 location, |B|=2 locations, ×2 tracks.
	assert.Len(t, prod.Locations(), 1*2*2)
}

func TestIntersection_AcceptsOnlyTrack2WithAcceptingB(t *testing.T) {
	t.Parallel()

	a := singleLocAccept(t, []string{"a"}, true)
	b := singleLocAccept(t, []string{"a"}, true)

	prod, err := ta.Intersection(a, b)
	require.NoError(t, err)

	var acceptCount int
	for _, l := range prod.Locations() {
		if l.Accept {
			acceptCount++
		}
	}
	// Both component locations accept, but only the track-2 copy of the
	// single paired location is an accepting product location.
	assert.Equal(t, 1, acceptCount)
}

func TestIntersection_PrivateLabelSelfLoopsOverOtherSide(t *testing.T) {
	t.Parallel()

	a := singleLocAccept(t, []string{"a", "private"}, true)
	b := singleLocAccept(t, []string{"a"}, true)

	prod, err := ta.Intersection(a, b)
	require.NoError(t, err)

	var sawPrivate bool
	for id := range prod.Locations() {
		for _, e := range prod.EdgesFrom(id) {
			if e.Label == "private" {
				sawPrivate = true
			}
		}
	}
	assert.True(t, sawPrivate, "a label private to A must still produce edges in the product")
}

func TestIntersection_DimensionUnionsClocks(t *testing.T) {
	t.Parallel()

	a := leadsTo(t, 10) // dimension 2 (zero clock + x)
	b := leadsTo(t, 20) // dimension 2 (zero clock + x)

	prod, err := ta.Intersection(a, b)
	require.NoError(t, err)
	assert.Equal(t, 3, prod.Dimension(), "disjoint clock union minus the shared zero clock")
}
