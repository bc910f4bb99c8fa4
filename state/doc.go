// Package state implements the four symbolic-state flavors of spec.md
// §4.4 behind one shared type: Plain (a single extra "elapsed since last
// sync" clock), Delay (adds an output-latency companion clock), Testing
// (adds both input- and output-latency companion clocks), and Concrete (a
// single valuation rather than a federation, with explicit emptiness
// rather than a sentinel value — spec.md §9's Open Question on
// representing concrete emptiness is resolved in favor of an explicit
// flag).
//
// All four flavors share the same operation set (Delay, Restrict, Reset,
// DoTransition, intersect-with-map, Relation) dispatched internally on the
// flavor tag, per spec.md §9's "small trait... dispatch is static"
// guidance — the monitor is written once against *State and is agnostic
// to which flavor it drives.
package state
