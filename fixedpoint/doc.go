// Package fixedpoint computes the accept-reachable zone per location of a
// timed automaton: the greatest fixed point of the backward-reachability
// operator restricted, each round, to accept locations (spec.md §4.5).
// The result is a per-location federation that the monitor intersects into
// every symbolic state it tracks, so that a state from which no accepting
// run is reachable collapses to empty without having to search the whole
// remaining trace.
//
// The worklist algorithm (waiting/passed maps, inclusion-checked before
// insertion) mirrors the teacher's graph traversal style: build the
// frontier, pop, check subsumption, expand.
package fixedpoint
