package monitor

import (
	"fmt"

	"github.com/tauzero/tbamon/fixedpoint"
	"github.com/tauzero/tbamon/state"
	"github.com/tauzero/tbamon/ta"
	"github.com/tauzero/tbamon/telemetry"
	"go.uber.org/zap"
)

// Status is one side's ACTIVE/OUT classification (spec.md §4.6).
type Status int

const (
	Active Status = iota
	Out
)

func (s Status) String() string {
	if s == Out {
		return "out"
	}
	return "active"
}

// SingleMonitor holds one side (φ or ¬φ) of a DualMonitor: an immutable
// automaton, its precomputed accept-reachable map, and the current list
// of symbolic states reached by the observations fed so far.
type SingleMonitor struct {
	name        string
	automaton   *ta.TA
	acceptSpace fixedpoint.StateMap
	flavor      state.Flavor
	cfg         Config
	log         *zap.Logger

	seed   *state.State // startup estimate, kept for Reset
	states []*state.State
	status Status

	globalLo, globalHi int64
}

func newSingleMonitor(name string, t *ta.TA, flavor state.Flavor, cfg Config, log *zap.Logger, rec *telemetry.Recorder) (*SingleMonitor, error) {
	acceptSpace, rounds, err := fixedpoint.AcceptReach(t)
	if err != nil {
		return nil, fmt.Errorf("monitor: %s: accept-reach: %w", name, err)
	}
	rec.ObserveFixedPointIterations(rounds)

	seed, err := newFlavorState(flavor, t.Initial(), t.Dimension())
	if err != nil {
		return nil, fmt.Errorf("monitor: %s: %w", name, err)
	}
	if loc, ok := t.Location(t.Initial()); ok {
		if seed, err = seed.Restrict(loc.Invariant); err != nil {
			return nil, fmt.Errorf("monitor: %s: %w", name, err)
		}
	}
	// Open question (spec.md §9): whether the initial state is
	// intersected with the accept-reachable map before the first
	// observation. This monitor always does (the recommended behavior),
	// so an empty fixed point latches OUT at construction rather than
	// silently staying ACTIVE until the first transition.
	seed, err = acceptSpace.IntersectState(seed)
	if err != nil {
		return nil, fmt.Errorf("monitor: %s: %w", name, err)
	}

	m := &SingleMonitor{
		name:        name,
		automaton:   t,
		acceptSpace: acceptSpace,
		flavor:      flavor,
		cfg:         cfg,
		log:         log,
		seed:        seed,
	}
	m.reset()
	if m.status == Out && log != nil {
		log.Warn("accept-reachable set is empty at construction",
			zap.String("side", name), zap.Error(ErrEmptyFixedPoint))
	}
	return m, nil
}

func newFlavorState(flavor state.Flavor, loc, dim int) (*state.State, error) {
	switch flavor {
	case state.Delay:
		return state.NewDelay(loc, dim)
	case state.Testing:
		return state.NewTesting(loc, dim)
	default:
		return state.NewPlain(loc, dim)
	}
}

// Status reports whether this side is still ACTIVE or has gone OUT.
func (m *SingleMonitor) Status() Status { return m.status }

// Len returns the number of symbolic states in the current estimate.
func (m *SingleMonitor) Len() int { return len(m.states) }

// reset reinitializes the side to its startup estimate without
// recomputing the accept-reachable map (SPEC_FULL.md's supplemented
// Reset feature).
func (m *SingleMonitor) reset() {
	m.globalLo, m.globalHi = 0, 0
	if m.seed.IsEmpty() {
		m.status = Out
		m.states = nil
		return
	}
	m.status = Active
	m.states = []*state.State{m.seed.Clone()}
}

func (m *SingleMonitor) checkMonotonic(in Input) error {
	if in.Lo > in.Hi {
		return fmt.Errorf("monitor: %s: interval [%d,%d] has lo > hi: %w", m.name, in.Lo, in.Hi, ErrBadInput)
	}
	if in.Lo < m.globalLo || in.Hi < m.globalHi {
		return fmt.Errorf("monitor: %s: input [%d,%d] precedes current global clock [%d,%d]: %w",
			m.name, in.Lo, in.Hi, m.globalLo, m.globalHi, ErrBadInput)
	}
	if in.Label != "" && m.cfg.StrictLabels {
		if _, ok := m.automaton.Labels()[in.Label]; !ok {
			return fmt.Errorf("monitor: %s: unknown label %q: %w", m.name, in.Label, ErrBadInput)
		}
	}
	return nil
}

// observe advances the current estimate across a timed input, per
// spec.md §4.6's observation step. A rejected input leaves status and
// states untouched; an OUT side no-ops.
func (m *SingleMonitor) observe(in Input) error {
	if m.status == Out {
		return nil
	}
	if err := m.checkMonotonic(in); err != nil {
		return err
	}
	if in.Type == Multi {
		return fmt.Errorf("monitor: %s: MULTI input type is unimplemented: %w", m.name, ErrBadInput)
	}

	delayLo, delayHi := m.delayWindow(in)

	var next []*state.State
	for _, s := range m.states {
		delayed, err := s.Delay(delayLo, delayHi)
		if err != nil {
			return fmt.Errorf("monitor: %s: %w", m.name, err)
		}
		if m.flavor != state.Plain {
			if delayed, err = m.restrictLatency(delayed); err != nil {
				return fmt.Errorf("monitor: %s: %w", m.name, err)
			}
		}
		loc, ok := m.automaton.Location(delayed.Location())
		if !ok {
			return fmt.Errorf("monitor: %s: unknown location %d", m.name, delayed.Location())
		}
		if delayed, err = delayed.Restrict(loc.Invariant); err != nil {
			return fmt.Errorf("monitor: %s: %w", m.name, err)
		}
		if delayed.IsEmpty() {
			continue
		}

		if in.Label == "" || in.Type == Optional {
			cand, err := m.finalize(delayed)
			if err != nil {
				return fmt.Errorf("monitor: %s: %w", m.name, err)
			}
			if !cand.IsEmpty() {
				if next, err = m.appendSuccessor(next, cand); err != nil {
					return fmt.Errorf("monitor: %s: %w", m.name, err)
				}
			}
		}
		if in.Label == "" {
			continue
		}

		for _, e := range m.automaton.EdgesFrom(delayed.Location()) {
			if e.Label != in.Label {
				continue
			}
			succ, err := delayed.DoTransition(e)
			if err != nil {
				return fmt.Errorf("monitor: %s: %w", m.name, err)
			}
			if succ.IsEmpty() {
				continue
			}
			targetLoc, ok := m.automaton.Location(succ.Location())
			if !ok {
				return fmt.Errorf("monitor: %s: unknown location %d", m.name, succ.Location())
			}
			if succ, err = succ.Restrict(targetLoc.Invariant); err != nil {
				return fmt.Errorf("monitor: %s: %w", m.name, err)
			}
			if succ.IsEmpty() {
				continue
			}
			if succ, err = m.acceptSpace.IntersectState(succ); err != nil {
				return fmt.Errorf("monitor: %s: %w", m.name, err)
			}
			if succ.IsEmpty() {
				continue
			}
			if succ, err = m.finalize(succ); err != nil {
				return fmt.Errorf("monitor: %s: %w", m.name, err)
			}
			if succ.IsEmpty() {
				continue
			}
			if next, err = m.appendSuccessor(next, succ); err != nil {
				return fmt.Errorf("monitor: %s: %w", m.name, err)
			}
		}
	}

	m.states = next
	m.globalLo, m.globalHi = in.Lo, in.Hi
	if len(next) == 0 {
		m.status = Out
	}
	return nil
}

// delayWindow computes how far the current estimate must advance to
// reach in's timestamp, widened by jitter for the delay and testing
// flavors (spec.md §6's "jitter allows observation timestamps to
// deviate by up to J").
func (m *SingleMonitor) delayWindow(in Input) (int64, int64) {
	lo := in.Lo - m.globalHi
	hi := in.Hi - m.globalLo
	if j := m.jitter(); j > 0 {
		lo -= j
		hi += j
	}
	if lo < 0 {
		lo = 0
	}
	return lo, hi
}

func (m *SingleMonitor) jitter() int64 {
	switch m.flavor {
	case state.Testing:
		return m.cfg.Jitter + m.cfg.JitterIn
	case state.Delay:
		return m.cfg.Jitter
	default:
		return 0
	}
}

// restrictLatency clamps the delay/testing companion clocks to the
// configured latency bounds, widened by jitter.
func (m *SingleMonitor) restrictLatency(s *state.State) (*state.State, error) {
	var err error
	if m.cfg.Latency != nil {
		if s, err = s.RestrictOutLatency(m.cfg.Latency.Lo, m.cfg.Latency.Hi+m.cfg.Jitter); err != nil {
			return nil, err
		}
	}
	if m.flavor == state.Testing && m.cfg.LatencyIn != nil {
		if s, err = s.RestrictInLatency(m.cfg.LatencyIn.Lo, m.cfg.LatencyIn.Hi+m.cfg.JitterIn); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// finalize applies the optional inactive-clock abstraction (spec.md
// §4.6 step 4) and then syncs the companion clocks to 0, preparing s to
// be the baseline for the next observation's delay.
func (m *SingleMonitor) finalize(s *state.State) (*state.State, error) {
	if m.cfg.ClockAbstraction {
		var err error
		for _, x := range m.automaton.InactiveClocks(s.Location()) {
			if s, err = s.FreeClock(x); err != nil {
				return nil, err
			}
		}
	}
	return s.Sync()
}

// appendSuccessor adds s to next, applying inclusion reduction (spec.md
// §4.6 step 3) when configured: a new state subsumed by an existing one
// at the same location is dropped; one that subsumes an existing entry
// replaces it.
func (m *SingleMonitor) appendSuccessor(next []*state.State, s *state.State) ([]*state.State, error) {
	if !m.cfg.inclusion() {
		return append(next, s), nil
	}
	for i, existing := range next {
		if existing.Location() != s.Location() {
			continue
		}
		subsumed, err := s.IsIncludedIn(existing)
		if err != nil {
			return nil, err
		}
		if subsumed {
			return next, nil
		}
		subsumes, err := existing.IsIncludedIn(s)
		if err != nil {
			return nil, err
		}
		if subsumes {
			next[i] = s
			return next, nil
		}
	}
	return append(next, s), nil
}

// snapshot builds a diagnostic view of the current estimate
// (SPEC_FULL.md's supplemented Snapshot feature).
func (m *SingleMonitor) snapshot() SideSnapshot {
	locs := make([]LocationSnapshot, 0, len(m.states))
	for _, s := range m.states {
		zones := 1
		if f := s.Federation(); f != nil {
			zones = len(f.Zones())
		}
		locs = append(locs, LocationSnapshot{
			Location:  s.Location(),
			ZoneCount: zones,
			Dimension: s.Dim(),
		})
	}
	return SideSnapshot{
		Status:       m.status.String(),
		EstimateSize: len(m.states),
		Locations:    locs,
	}
}
