// Package dbm implements canonical difference-bound matrices (DBMs), the
// symbolic representation of a convex set of clock valuations ("zone").
//
// A DBM of dimension n is an n×n matrix of Bounds with the semantics that
// valuation v satisfies the DBM iff, for every i, j: v[i] − v[j] ⋈ m[i][j]
// (⋈ being < or ≤ depending on the Bound's strictness). Clock index 0 is
// the fictitious zero clock, whose value is always 0; single-variable
// bounds on a real clock x are expressed as the pair (x, 0) or (0, x).
//
// Every exported mutator re-canonicalizes via Floyd–Warshall shortest-path
// closure and reports emptiness as a negative diagonal entry, exactly the
// contract spec'd for the DBM operations table.
package dbm
