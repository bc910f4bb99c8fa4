// Package tbamon (tauzero/tbamon) is an online monitor for real-time
// properties expressed as timed Büchi automata.
//
// 🚀 What is tbamon?
//
//	A zone-based runtime verification core that brings together:
//
//	  • dbm/federation — canonical difference-bound matrices and their
//	    finite unions, the symbolic representation of clock valuations.
//	  • ta              — timed automata, product (intersection)
//	    construction, and time-divergence gadgets.
//	  • state/fixedpoint — the four symbolic-state flavors and the
//	    accept-reachability fixed point computed over them.
//	  • monitor         — the incremental single- and dual-automaton
//	    monitor that turns a timed event stream into a three-valued
//	    verdict (POSITIVE / NEGATIVE / INCONCLUSIVE).
//
// Two thin, optional surfaces sit around the core without being part of
// it: telemetry (Prometheus metrics) and live (a websocket/HTTP verdict
// feed). Neither originates events or automata; both only observe what
// the core already computed.
//
// Everything feeding the monitor — automaton construction from XML,
// event-stream parsing, and the command-line driver — is a collaborator
// outside this module's scope; see SPEC_FULL.md.
package tbamon
