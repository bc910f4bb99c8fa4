package dbm

import "fmt"

// DBM is an n×n canonical difference-bound matrix. The zero value is not
// usable; construct with Zero or Unconstrained.
//
// Invariants maintained by every exported mutator:
//   - m[i][i] == Zero() for a non-empty DBM.
//   - Closed under shortest paths: m[i][j] ≤ m[i][k] + m[k][j] for all i,j,k.
//   - Emptiness is represented by a negative diagonal entry (m[i][i] < (0,≤))
//     rather than a separate flag, matching the source representation; use
//     IsEmpty to query it.
type DBM struct {
	dim int
	m   [][]Bound
}

// Dim returns the matrix dimension (number of clocks, including the zero
// clock at index 0).
func (d *DBM) Dim() int { return d.dim }

// At returns the bound at (i, j).
func (d *DBM) At(i, j int) Bound { return d.m[i][j] }

func newMatrix(dim int, fill func(i, j int) Bound) *DBM {
	m := make([][]Bound, dim)
	for i := range m {
		m[i] = make([]Bound, dim)
		for j := range m[i] {
			m[i][j] = fill(i, j)
		}
	}
	return &DBM{dim: dim, m: m}
}

// Zero returns the canonical DBM denoting the single valuation where every
// clock is 0 (the origin).
func Zero(dim int) (*DBM, error) {
	if dim <= 0 {
		return nil, ErrInvalidDimension
	}
	return newMatrix(dim, func(i, j int) Bound { return LE(0) }), nil
}

// Unconstrained returns the canonical DBM denoting every valuation with
// non-negative clocks (x_i ≥ 0 for all i, x_0 ≡ 0).
func Unconstrained(dim int) (*DBM, error) {
	if dim <= 0 {
		return nil, ErrInvalidDimension
	}
	return newMatrix(dim, func(i, j int) Bound {
		switch {
		case i == j:
			return LE(0)
		case i == 0:
			// x_0 - x_j <= 0  <=>  x_j >= 0
			return LE(0)
		default:
			return InfBound()
		}
	}), nil
}

// Clone returns a deep copy of d.
func (d *DBM) Clone() *DBM {
	m := make([][]Bound, d.dim)
	for i := range m {
		m[i] = make([]Bound, d.dim)
		copy(m[i], d.m[i])
	}
	return &DBM{dim: d.dim, m: m}
}

// IsEmpty reports whether d denotes the empty set, i.e. some diagonal
// entry is strictly below (0,≤) after closure.
func (d *DBM) IsEmpty() bool {
	for i := 0; i < d.dim; i++ {
		if d.m[i][i].Less(LE(0)) {
			return true
		}
	}
	return false
}

// close performs in-place Floyd–Warshall shortest-path closure. It is the
// sole place canonicity is (re)established; every mutator calls it last.
func (d *DBM) close() {
	n := d.dim
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if i == k {
				continue
			}
			ik := d.m[i][k]
			if ik.IsInf() {
				continue
			}
			for j := 0; j < n; j++ {
				if j == k {
					continue
				}
				via := Add(ik, d.m[k][j])
				if via.Less(d.m[i][j]) {
					d.m[i][j] = via
				}
			}
		}
	}
	// Empty detection: the first negative diagonal entry found is set to
	// (0,<), so IsEmpty reports true; the other entries are left as they
	// are, and Subset/Equal consult IsEmpty before comparing entries.
	for i := 0; i < n; i++ {
		if d.m[i][i].Less(LE(0)) {
			d.m[i][i] = LT(0)
			return
		}
	}
}

func checkDim(a, b int) error {
	if a != b {
		return fmt.Errorf("dbm: %dx%d vs %dx%d: %w", a, a, b, b, ErrDimensionMismatch)
	}
	return nil
}

func checkClock(dim, x int) error {
	if x < 0 || x >= dim {
		return fmt.Errorf("dbm: clock %d not in [0,%d): %w", x, dim, ErrClockOutOfRange)
	}
	return nil
}

// Restrict tightens d by intersecting it with the half-plane described by
// c, re-closing afterwards. The receiver is mutated in place and also
// returned for chaining; if the result is empty, IsEmpty(d) reports true
// rather than Restrict itself returning an error — an empty DBM is a
// legitimate canonical value, not a failure.
func (d *DBM) Restrict(c Constraint) (*DBM, error) {
	if err := checkClock(d.dim, c.I); err != nil {
		return nil, err
	}
	if err := checkClock(d.dim, c.J); err != nil {
		return nil, err
	}
	d.m[c.I][c.J] = Min(d.m[c.I][c.J], c.Bound)
	d.close()
	return d, nil
}

// RestrictAll applies Restrict for every constraint in cs, short-circuiting
// once the DBM becomes empty (further restricts cannot make it non-empty
// again, so stopping early only saves work).
func (d *DBM) RestrictAll(cs []Constraint) (*DBM, error) {
	for _, c := range cs {
		if d.IsEmpty() {
			return d, nil
		}
		if _, err := d.Restrict(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Intersection returns a new DBM equal to the intersection of d and o,
// closed. Dimensions must match.
func (d *DBM) Intersection(o *DBM) (*DBM, error) {
	if err := checkDim(d.dim, o.dim); err != nil {
		return nil, err
	}
	r := d.Clone()
	for i := 0; i < r.dim; i++ {
		for j := 0; j < r.dim; j++ {
			r.m[i][j] = Min(r.m[i][j], o.m[i][j])
		}
	}
	r.close()
	return r, nil
}

// Reset assigns clock x := 0 in every valuation of d (an edge reset),
// returning a new closed DBM.
func (d *DBM) Reset(x int) (*DBM, error) {
	if err := checkClock(d.dim, x); err != nil {
		return nil, err
	}
	r := d.Clone()
	for i := 0; i < r.dim; i++ {
		if i == x {
			continue
		}
		r.m[x][i] = r.m[0][i]
		r.m[i][x] = r.m[i][0]
	}
	r.m[x][x] = LE(0)
	r.close()
	return r, nil
}

// Free forgets the value of clock x: every valuation with x set to any
// non-negative value becomes admitted. Used for inactive-clock
// abstraction.
func (d *DBM) Free(x int) (*DBM, error) {
	if err := checkClock(d.dim, x); err != nil {
		return nil, err
	}
	r := d.Clone()
	for i := 0; i < r.dim; i++ {
		if i == x {
			continue
		}
		r.m[x][i] = InfBound()
		r.m[i][x] = InfBound()
	}
	r.m[x][0] = InfBound()
	r.m[0][x] = LE(0)
	r.m[x][x] = LE(0)
	r.close()
	return r, nil
}

// Future applies the delay operator: every clock may increase without
// bound, i.e. all upper bounds against the zero clock are dropped.
func (d *DBM) Future() *DBM {
	r := d.Clone()
	for i := 1; i < r.dim; i++ {
		r.m[i][0] = InfBound()
	}
	r.close()
	return r
}

// Past applies the inverse of delay: time may have been flowing since the
// origin, so all lower bounds against the zero clock are dropped.
func (d *DBM) Past() *DBM {
	r := d.Clone()
	for j := 1; j < r.dim; j++ {
		r.m[0][j] = LE(0)
	}
	r.close()
	return r
}

// Subset reports whether ⟦d⟧ ⊆ ⟦o⟧, i.e. every entry of d is at least as
// tight as the corresponding entry of o.
func (d *DBM) Subset(o *DBM) (bool, error) {
	if err := checkDim(d.dim, o.dim); err != nil {
		return false, err
	}
	if d.IsEmpty() {
		return true, nil
	}
	if o.IsEmpty() {
		return false, nil
	}
	for i := 0; i < d.dim; i++ {
		for j := 0; j < d.dim; j++ {
			if o.m[i][j].Less(d.m[i][j]) {
				return false, nil
			}
		}
	}
	return true, nil
}

// Equal reports denotational equality up to canonical form: both DBMs
// closed, same dimension, identical entries (or both empty).
func (d *DBM) Equal(o *DBM) (bool, error) {
	if err := checkDim(d.dim, o.dim); err != nil {
		return false, err
	}
	if d.IsEmpty() || o.IsEmpty() {
		return d.IsEmpty() == o.IsEmpty(), nil
	}
	for i := 0; i < d.dim; i++ {
		for j := 0; j < d.dim; j++ {
			if d.m[i][j] != o.m[i][j] {
				return false, nil
			}
		}
	}
	return true, nil
}

// Embed lifts d into a higher dimension newDim ≥ d.Dim(), leaving the
// added clocks unconstrained (≥ 0 only). Used to cylindrify a federation
// computed over a TA's own clock space up to a symbolic state's larger
// space that also carries auxiliary observation clocks (spec.md §4.4's
// delay/testing flavors).
func (d *DBM) Embed(newDim int) (*DBM, error) {
	if newDim < d.dim {
		return nil, fmt.Errorf("dbm: embed target dim %d < source dim %d: %w", newDim, d.dim, ErrDimensionMismatch)
	}
	if newDim == d.dim {
		return d.Clone(), nil
	}
	r, err := Unconstrained(newDim)
	if err != nil {
		return nil, err
	}
	for i := 0; i < d.dim; i++ {
		for j := 0; j < d.dim; j++ {
			r.m[i][j] = d.m[i][j]
		}
	}
	r.close()
	return r, nil
}

// Project returns d restricted to its first newDim clocks (which must
// include the zero clock), forgetting the rest. Because d is already
// shortest-path closed, the retained submatrix already reflects every
// indirect constraint the dropped clocks carried between kept clocks, so
// dropping their row and column is exact: it denotes precisely the
// projection of ⟦d⟧ onto the kept dimensions, not an overapproximation.
func (d *DBM) Project(newDim int) (*DBM, error) {
	if newDim <= 0 || newDim > d.dim {
		return nil, fmt.Errorf("dbm: project target dim %d out of (0,%d]: %w", newDim, d.dim, ErrDimensionMismatch)
	}
	if newDim == d.dim {
		return d.Clone(), nil
	}
	r := newMatrix(newDim, func(i, j int) Bound { return d.m[i][j] })
	r.close()
	return r, nil
}

// Join returns the componentwise loosest bound of d and o: a convex zone
// that contains ⟦d⟧ ∪ ⟦o⟧ but, in general, strictly more. Used by
// federation.Federation when it is forced to collapse members into a
// single convex overapproximation (spec.md §5's MaxZones limit).
func (d *DBM) Join(o *DBM) (*DBM, error) {
	if err := checkDim(d.dim, o.dim); err != nil {
		return nil, err
	}
	if d.IsEmpty() {
		return o.Clone(), nil
	}
	if o.IsEmpty() {
		return d.Clone(), nil
	}
	r := d.Clone()
	for i := 0; i < r.dim; i++ {
		for j := 0; j < r.dim; j++ {
			if o.m[i][j].Less(r.m[i][j]) {
				// o's bound is tighter; keep the loosest, i.e. d's.
				continue
			}
			r.m[i][j] = o.m[i][j]
		}
	}
	r.close()
	return r, nil
}

// IsSatisfying reports whether some valuation in d also satisfies c,
// without mutating d.
func (d *DBM) IsSatisfying(c Constraint) (bool, error) {
	probe := d.Clone()
	if _, err := probe.Restrict(c); err != nil {
		return false, err
	}
	return !probe.IsEmpty(), nil
}
