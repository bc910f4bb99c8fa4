package ta

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tauzero/tbamon/dbm"
)

// Location is a TBA location: an id, a display name, an accept flag, and
// an invariant that must hold while the location is occupied.
type Location struct {
	ID        int
	Name      string
	Accept    bool
	Invariant []dbm.Constraint
}

// Edge is a TBA transition: guard must be satisfied to fire, Reset lists
// clocks assigned to 0 on firing, Label is the observable event.
type Edge struct {
	From, To int
	Guard    []dbm.Constraint
	Reset    []int
	Label    string
}

// TA is an immutable timed Büchi automaton. Construct with New; every
// field is fixed for the automaton's lifetime, matching spec.md §3's
// "TBAs are immutable after construction."
type TA struct {
	name       string
	clockNames map[int]string
	dimension  int
	locations  map[int]Location
	edgesFrom  map[int][]Edge
	edgesTo    map[int][]Edge
	initial    int
	labels     map[string]struct{}

	inactiveOnce  sync.Once
	inactiveByLoc map[int]map[int]bool
}

// Name returns the automaton's name.
func (t *TA) Name() string { return t.name }

// Dimension returns the number of real clocks plus one (the zero clock).
func (t *TA) Dimension() int { return t.dimension }

// ClockName returns the display name of clock index i.
func (t *TA) ClockName(i int) string { return t.clockNames[i] }

// Initial returns the initial location id.
func (t *TA) Initial() int { return t.initial }

// Locations returns the location map. Callers must not mutate it.
func (t *TA) Locations() map[int]Location { return t.locations }

// Location looks up a single location by id.
func (t *TA) Location(id int) (Location, bool) {
	l, ok := t.locations[id]
	return l, ok
}

// Labels returns the automaton's alphabet.
func (t *TA) Labels() map[string]struct{} { return t.labels }

// EdgesFrom returns the outgoing edges of location id, in a stable order.
func (t *TA) EdgesFrom(id int) []Edge { return t.edgesFrom[id] }

// EdgesTo returns the incoming edges of location id, in a stable order.
func (t *TA) EdgesTo(id int) []Edge { return t.edgesTo[id] }

// New validates and constructs a TA from the automaton-builder contract
// described in spec.md §6: a name, a dense clock table with index 0 the
// zero clock, a location list, an edge list, and an initial location id.
func New(name string, clockNames map[int]string, locations []Location, edges []Edge, initial int) (*TA, error) {
	if len(locations) == 0 {
		return nil, ErrNoLocations
	}
	dim := len(clockNames)
	for i := 0; i < dim; i++ {
		if _, ok := clockNames[i]; !ok {
			return nil, fmt.Errorf("ta: clock table is not dense at index %d: %w", i, ErrClockOutOfRange)
		}
	}

	locMap := make(map[int]Location, len(locations))
	for _, l := range locations {
		if _, dup := locMap[l.ID]; dup {
			return nil, fmt.Errorf("ta: location %d: %w", l.ID, ErrDuplicateLocation)
		}
		if err := validateConstraints(dim, l.Invariant); err != nil {
			return nil, err
		}
		locMap[l.ID] = l
	}
	if _, ok := locMap[initial]; !ok {
		return nil, fmt.Errorf("ta: initial location %d: %w", initial, ErrUnknownLocation)
	}

	edgesFrom := make(map[int][]Edge)
	edgesTo := make(map[int][]Edge)
	labels := make(map[string]struct{})
	for _, e := range edges {
		if _, ok := locMap[e.From]; !ok {
			return nil, fmt.Errorf("ta: edge from %d: %w", e.From, ErrUnknownLocation)
		}
		if _, ok := locMap[e.To]; !ok {
			return nil, fmt.Errorf("ta: edge to %d: %w", e.To, ErrUnknownLocation)
		}
		if err := validateConstraints(dim, e.Guard); err != nil {
			return nil, err
		}
		for _, c := range e.Reset {
			if c < 0 || c >= dim {
				return nil, fmt.Errorf("ta: reset clock %d: %w", c, ErrClockOutOfRange)
			}
		}
		edgesFrom[e.From] = append(edgesFrom[e.From], e)
		edgesTo[e.To] = append(edgesTo[e.To], e)
		if e.Label != "" {
			labels[e.Label] = struct{}{}
		}
	}
	for id := range edgesFrom {
		stableSortEdges(edgesFrom[id])
	}
	for id := range edgesTo {
		stableSortEdges(edgesTo[id])
	}

	names := make(map[int]string, dim)
	for k, v := range clockNames {
		names[k] = v
	}

	return &TA{
		name:       name,
		clockNames: names,
		dimension:  dim,
		locations:  locMap,
		edgesFrom:  edgesFrom,
		edgesTo:    edgesTo,
		initial:    initial,
		labels:     labels,
	}, nil
}

func validateConstraints(dim int, cs []dbm.Constraint) error {
	for _, c := range cs {
		if c.I < 0 || c.I >= dim || c.J < 0 || c.J >= dim {
			return fmt.Errorf("ta: constraint clock (%d,%d) dim=%d: %w", c.I, c.J, dim, ErrClockOutOfRange)
		}
	}
	return nil
}

// stableSortEdges orders edges deterministically by (To/From, Label) so
// iteration order never depends on map/slice construction order.
func stableSortEdges(es []Edge) {
	sort.SliceStable(es, func(i, j int) bool {
		if es[i].To != es[j].To {
			return es[i].To < es[j].To
		}
		if es[i].From != es[j].From {
			return es[i].From < es[j].From
		}
		return es[i].Label < es[j].Label
	})
}
