// Package federation implements a finite union of DBMs ("zones") of equal
// dimension — the symbolic representation of a (possibly non-convex) set
// of clock valuations.
//
// Every DBM-lifted operation (Future, Past, Restrict, Reset, Free) maps
// componentwise over the member zones; Union additionally prunes members
// subsumed by another member, while Intersection only drops empty results.
// Relation (equal/subset/superset/different) is computed approximately —
// pairwise DBM subset checks rather than an exact convex-union test — which
// is sound (equal implies denotational equality, subset/superset imply
// denotational subset/superset) but not complete, per spec.md §4.2.
package federation
