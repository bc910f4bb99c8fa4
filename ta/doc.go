// Package ta defines the timed-automaton data model consumed by the
// fixed-point engine and the incremental monitor: locations with
// invariants, edges with guards/resets/labels, product (intersection)
// construction for conjoining a property with an assumption or a
// divergence enforcer, and inactive-clock analysis.
//
// A TA is immutable after New returns it; product construction never
// aliases the operands' internal maps.
package ta
