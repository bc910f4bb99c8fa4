package federation

// Relation is the four-valued lattice returned by Federation.Relation.
type Relation int

const (
	// Different means neither federation is a subset of the other.
	Different Relation = iota
	// Equal means the two federations denote the same set.
	Equal
	// Subset means f ⊆ o (the receiver is contained in the argument).
	Subset
	// Superset means f ⊇ o (the receiver contains the argument).
	Superset
)

func (r Relation) String() string {
	switch r {
	case Equal:
		return "equal"
	case Subset:
		return "subset"
	case Superset:
		return "superset"
	default:
		return "different"
	}
}

// Relation computes the relation between f and o approximately: every
// member of f is checked for subset-of-some-member-of-o and vice versa,
// without an exact convex-union decomposition. This is sound — Equal
// implies denotational equality and Subset/Superset imply denotational
// subset/superset — but not complete: two federations that are
// denotationally equal via a partition neither side's member list expresses
// individually may be reported as Different. See spec.md §4.2.
func (f *Federation) Relation(o *Federation) (Relation, error) {
	if err := checkDim(f.dim, o.dim); err != nil {
		return Different, err
	}

	fSubO, err := f.subsetOf(o)
	if err != nil {
		return Different, err
	}
	oSubF, err := o.subsetOf(f)
	if err != nil {
		return Different, err
	}

	switch {
	case fSubO && oSubF:
		return Equal, nil
	case fSubO:
		return Subset, nil
	case oSubF:
		return Superset, nil
	default:
		return Different, nil
	}
}

// subsetOf reports whether every member of f is a DBM-subset of some
// member of o (a sufficient, not necessary, condition for federation
// subset — hence the approximation noted on Relation).
func (f *Federation) subsetOf(o *Federation) (bool, error) {
	for _, z := range f.zones {
		if z.IsEmpty() {
			continue
		}
		covered := false
		for _, oz := range o.zones {
			sub, err := z.Subset(oz)
			if err != nil {
				return false, err
			}
			if sub {
				covered = true
				break
			}
		}
		if !covered {
			return false, nil
		}
	}
	return true, nil
}

// IsApproxEqual reports whether Relation(f, o) == Equal.
func (f *Federation) IsApproxEqual(o *Federation) (bool, error) {
	rel, err := f.Relation(o)
	if err != nil {
		return false, err
	}
	return rel == Equal, nil
}
