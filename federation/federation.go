package federation

import (
	"fmt"

	"github.com/tauzero/tbamon/dbm"
)

// MaxZones bounds the number of member DBMs kept in a Federation before a
// forced convex overapproximation collapses them into one, per spec.md §5's
// recommended implementation limit. Soundness is preserved (the collapsed
// zone is a superset of the union it replaces); precision is not.
const MaxZones = 64

// Federation is a finite union of DBMs of equal dimension. The zero value
// is an empty federation of unspecified dimension; use New or Of.
type Federation struct {
	dim   int
	zones []*dbm.DBM
}

// New returns the empty federation (denoting no valuations) of dimension
// dim.
func New(dim int) *Federation {
	return &Federation{dim: dim}
}

// Of wraps a single DBM as a one-member federation.
func Of(d *dbm.DBM) *Federation {
	return &Federation{dim: d.Dim(), zones: []*dbm.DBM{d}}
}

// Dim returns the federation's dimension.
func (f *Federation) Dim() int { return f.dim }

// Zones returns the member DBMs. Callers must not mutate the returned
// slice or its elements.
func (f *Federation) Zones() []*dbm.DBM { return f.zones }

// IsEmpty reports whether every member zone is empty (including the case
// of zero members).
func (f *Federation) IsEmpty() bool {
	for _, z := range f.zones {
		if !z.IsEmpty() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of f.
func (f *Federation) Clone() *Federation {
	zs := make([]*dbm.DBM, len(f.zones))
	for i, z := range f.zones {
		zs[i] = z.Clone()
	}
	return &Federation{dim: f.dim, zones: zs}
}

func checkDim(a, b int) error {
	if a != b {
		return fmt.Errorf("federation: %dx%d vs %dx%d: %w", a, a, b, b, ErrDimensionMismatch)
	}
	return nil
}

// Union appends d unless some existing member subsumes it, and drops any
// existing member subsumed by d. Returns f for chaining.
func (f *Federation) Union(d *dbm.DBM) (*Federation, error) {
	if d.IsEmpty() {
		return f, nil
	}
	if len(f.zones) == 0 {
		f.dim = d.Dim()
	}
	if err := checkDim(f.dim, d.Dim()); err != nil {
		return nil, err
	}

	kept := f.zones[:0:0]
	for _, z := range f.zones {
		sub, err := d.Subset(z)
		if err != nil {
			return nil, err
		}
		if sub {
			return f, nil // d already covered by an existing member
		}
		zSub, err := z.Subset(d)
		if err != nil {
			return nil, err
		}
		if zSub {
			continue // z is subsumed by the new member, drop it
		}
		kept = append(kept, z)
	}
	f.zones = append(kept, d)

	if len(f.zones) > MaxZones {
		f.collapse()
	}
	return f, nil
}

// UnionFederation merges every member of o into f.
func (f *Federation) UnionFederation(o *Federation) (*Federation, error) {
	for _, z := range o.zones {
		if _, err := f.Union(z); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// collapse forces a convex overapproximation of f into a single member
// zone: the componentwise join (loosest bound) of every member, which is
// always a superset of their union. Used only when MaxZones is exceeded.
func (f *Federation) collapse() {
	if len(f.zones) == 0 {
		return
	}
	hull := f.zones[0]
	for _, z := range f.zones[1:] {
		hull, _ = hull.Join(z) // same dimension by construction, cannot fail
	}
	f.zones = []*dbm.DBM{hull}
}

// Intersection returns the intersection of f with a single DBM d: every
// member of f intersected with d, empties pruned.
func (f *Federation) Intersection(d *dbm.DBM) (*Federation, error) {
	if err := checkDim(f.dim, d.Dim()); err != nil {
		return nil, err
	}
	out := New(f.dim)
	for _, z := range f.zones {
		r, err := z.Intersection(d)
		if err != nil {
			return nil, err
		}
		if !r.IsEmpty() {
			out.zones = append(out.zones, r)
		}
	}
	return out, nil
}

// IntersectionFederation returns the pairwise intersection of every member
// of f with every member of o, empties pruned.
func (f *Federation) IntersectionFederation(o *Federation) (*Federation, error) {
	if err := checkDim(f.dim, o.dim); err != nil {
		return nil, err
	}
	out := New(f.dim)
	for _, a := range f.zones {
		for _, b := range o.zones {
			r, err := a.Intersection(b)
			if err != nil {
				return nil, err
			}
			if !r.IsEmpty() {
				out.zones = append(out.zones, r)
			}
		}
	}
	return out, nil
}

// IsSatisfying reports whether some member zone satisfies c.
func (f *Federation) IsSatisfying(c dbm.Constraint) (bool, error) {
	for _, z := range f.zones {
		sat, err := z.IsSatisfying(c)
		if err != nil {
			return false, err
		}
		if sat {
			return true, nil
		}
	}
	return false, nil
}

// Restrict lifts DBM.Restrict over every member, dropping empties.
func (f *Federation) Restrict(c dbm.Constraint) (*Federation, error) {
	out := New(f.dim)
	for _, z := range f.zones {
		r, err := z.Clone().Restrict(c)
		if err != nil {
			return nil, err
		}
		if !r.IsEmpty() {
			out.zones = append(out.zones, r)
		}
	}
	return out, nil
}

// RestrictAll lifts DBM.RestrictAll over every member.
func (f *Federation) RestrictAll(cs []dbm.Constraint) (*Federation, error) {
	out := f
	var err error
	for _, c := range cs {
		out, err = out.Restrict(c)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Reset lifts DBM.Reset over every member.
func (f *Federation) Reset(x int) (*Federation, error) {
	out := New(f.dim)
	for _, z := range f.zones {
		r, err := z.Reset(x)
		if err != nil {
			return nil, err
		}
		out.zones = append(out.zones, r)
	}
	return out, nil
}

// ResetAll resets every clock in xs.
func (f *Federation) ResetAll(xs []int) (*Federation, error) {
	out := f
	var err error
	for _, x := range xs {
		out, err = out.Reset(x)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Free lifts DBM.Free over every member.
func (f *Federation) Free(x int) (*Federation, error) {
	out := New(f.dim)
	for _, z := range f.zones {
		r, err := z.Free(x)
		if err != nil {
			return nil, err
		}
		out.zones = append(out.zones, r)
	}
	return out, nil
}

// Embed lifts every member DBM into a higher dimension, see DBM.Embed.
func (f *Federation) Embed(newDim int) (*Federation, error) {
	out := New(newDim)
	for _, z := range f.zones {
		r, err := z.Embed(newDim)
		if err != nil {
			return nil, err
		}
		out.zones = append(out.zones, r)
	}
	return out, nil
}

// Project lifts DBM.Project over every member, dropping every member's
// trailing clocks down to newDim. Used to strip backward-reachability's
// own scratch companion clock from an accept-reachable map before it is
// intersected against a monitor state of a different flavor (whose
// companion clocks live at different indices entirely).
func (f *Federation) Project(newDim int) (*Federation, error) {
	out := New(newDim)
	for _, z := range f.zones {
		r, err := z.Project(newDim)
		if err != nil {
			return nil, err
		}
		if !r.IsEmpty() {
			out.zones = append(out.zones, r)
		}
	}
	return out, nil
}

// Future lifts DBM.Future over every member.
func (f *Federation) Future() *Federation {
	out := New(f.dim)
	for _, z := range f.zones {
		out.zones = append(out.zones, z.Future())
	}
	return out
}

// Past lifts DBM.Past over every member.
func (f *Federation) Past() *Federation {
	out := New(f.dim)
	for _, z := range f.zones {
		out.zones = append(out.zones, z.Past())
	}
	return out
}
