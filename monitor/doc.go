// Package monitor implements the incremental online monitor of spec.md
// §4.6: a SingleMonitor propagates one side's current estimate of
// symbolic states forward under each timed observation, pruning against
// a precomputed accept-reachable fixed point (package fixedpoint); a
// DualMonitor pairs a φ-side and a ¬φ-side SingleMonitor and aggregates
// them into a three-valued verdict.
package monitor
