package monitor

import (
	"fmt"
	"time"

	"github.com/tauzero/tbamon/monitorid"
	"github.com/tauzero/tbamon/monitorlog"
	"github.com/tauzero/tbamon/ta"
	"github.com/tauzero/tbamon/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Verdict is the three-valued monitoring result of spec.md §1.
type Verdict int

const (
	Inconclusive Verdict = iota
	Positive
	Negative
)

func (v Verdict) String() string {
	switch v {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "inconclusive"
	}
}

// DualMonitor aggregates a φ-side and a ¬φ-side SingleMonitor into a
// verdict, per spec.md §4.6: POSITIVE once ¬φ goes OUT, NEGATIVE once φ
// goes OUT, INCONCLUSIVE while both remain ACTIVE. A terminal verdict is
// latched; it does not revert on further observations (spec.md §8
// invariant 6). Both sides empty on the same observation is ErrBothOut,
// fatal for the monitor (spec.md §7).
type DualMonitor struct {
	id monitorid.ID

	phi, notPhi *SingleMonitor
	cfg         Config
	log         *zap.Logger
	rec         *telemetry.Recorder

	verdict Verdict
	latched bool // true once verdict has become terminal (Positive/Negative)
	failed  bool
}

// NewDualMonitor builds both sides' accept-reachable fixed points and
// seeds their startup estimates. assumption, if non-nil, and the
// configured divergence alphabet, if non-empty, are intersected into
// both automata first (spec.md §6). log and rec may be nil; they
// default to discard-everything instances so instrumentation is always
// optional at the call site.
func NewDualMonitor(phi, notPhi *ta.TA, cfg Config, assumption *ta.TA, log *zap.Logger, rec *telemetry.Recorder) (*DualMonitor, error) {
	if log == nil {
		log = monitorlog.Noop()
	}
	if rec == nil {
		rec = telemetry.NewNoop()
	}

	id := monitorid.New()
	log = log.With(zap.String("monitor_id", id.String()))

	phi, notPhi, err := applyDivergenceAndAssumption(phi, notPhi, cfg, assumption)
	if err != nil {
		return nil, err
	}

	flavor := cfg.flavor()
	phiMon, err := newSingleMonitor("phi", phi, flavor, cfg, log, rec)
	if err != nil {
		return nil, err
	}
	notPhiMon, err := newSingleMonitor("not_phi", notPhi, flavor, cfg, log, rec)
	if err != nil {
		return nil, err
	}

	d := &DualMonitor{id: id, phi: phiMon, notPhi: notPhiMon, cfg: cfg, log: log, rec: rec}
	d.updateVerdict()
	d.reportSizes()
	return d, nil
}

func applyDivergenceAndAssumption(phi, notPhi *ta.TA, cfg Config, assumption *ta.TA) (*ta.TA, *ta.TA, error) {
	var err error
	if len(cfg.DivergenceAlphabet) > 0 {
		var div *ta.TA
		if div, err = ta.TimeDivergence(cfg.DivergenceAlphabet, true); err != nil {
			return nil, nil, fmt.Errorf("monitor: divergence automaton: %w", err)
		}
		if phi, err = ta.Intersection(phi, div); err != nil {
			return nil, nil, fmt.Errorf("monitor: phi x divergence: %w", err)
		}
		if notPhi, err = ta.Intersection(notPhi, div); err != nil {
			return nil, nil, fmt.Errorf("monitor: not_phi x divergence: %w", err)
		}
	}
	if assumption != nil {
		if phi, err = ta.Intersection(phi, assumption); err != nil {
			return nil, nil, fmt.Errorf("monitor: phi x assumption: %w", err)
		}
		if notPhi, err = ta.Intersection(notPhi, assumption); err != nil {
			return nil, nil, fmt.Errorf("monitor: not_phi x assumption: %w", err)
		}
	}
	return phi, notPhi, nil
}

// ID returns this monitor's session identifier.
func (d *DualMonitor) ID() monitorid.ID { return d.id }

// Verdict returns the current latched verdict.
func (d *DualMonitor) Verdict() Verdict { return d.verdict }

// Failed reports whether both sides have gone OUT on the same
// observation (ErrBothOut).
func (d *DualMonitor) Failed() bool { return d.failed }

// Observe feeds a single timed input to both sides and returns the
// resulting verdict. Once Failed, Observe returns ErrFailed without
// touching either side.
func (d *DualMonitor) Observe(in Input) (Verdict, error) {
	if d.failed {
		return d.verdict, ErrFailed
	}

	start := time.Now()
	err := d.stepBoth(in)
	d.rec.ObserveLatency(time.Since(start))

	if err != nil {
		d.rec.ObserveOutcome("rejected")
		return d.verdict, err
	}
	d.rec.ObserveOutcome("accepted")

	d.reportSizes()
	d.updateVerdict()
	if d.failed {
		return d.verdict, ErrBothOut
	}
	return d.verdict, nil
}

func (d *DualMonitor) stepBoth(in Input) error {
	if d.cfg.Concurrent {
		var g errgroup.Group
		g.Go(func() error { return d.phi.observe(in) })
		g.Go(func() error { return d.notPhi.observe(in) })
		return g.Wait()
	}
	if err := d.phi.observe(in); err != nil {
		return err
	}
	return d.notPhi.observe(in)
}

// updateVerdict applies spec.md §4.6's aggregation rule. Once the verdict
// has latched (become Positive or Negative), it is terminal per spec.md
// §8 invariant 6: this is a no-op from then on, so a side that happens to
// go OUT on some later, unrelated observation can never retroactively
// trigger ErrBothOut or otherwise disturb an already-decided verdict.
// BothOut is therefore only ever raised from the single call where both
// sides are still ACTIVE beforehand and both go OUT from this same
// observation (spec.md §7's "after the same observation").
func (d *DualMonitor) updateVerdict() {
	if d.latched {
		return
	}
	phiOut := d.phi.Status() == Out
	notPhiOut := d.notPhi.Status() == Out

	switch {
	case phiOut && notPhiOut:
		d.failed = true
		d.log.Error("both sides are empty: automata are not complementary for the observed trace")
		return
	case phiOut:
		d.verdict = Negative
		d.latched = true
	case notPhiOut:
		d.verdict = Positive
		d.latched = true
	}
	d.log.Debug("verdict", zap.String("verdict", d.verdict.String()))
}

func (d *DualMonitor) reportSizes() {
	d.rec.SetEstimateListSize("phi", d.phi.Len())
	d.rec.SetEstimateListSize("not_phi", d.notPhi.Len())
	d.rec.ObserveVerdict(d.verdict.String())
}

// Reset reinitializes both sides to their startup estimate without
// recomputing the accept-reachable maps, and clears any latched failure
// (SPEC_FULL.md's supplemented Reset feature).
func (d *DualMonitor) Reset() {
	d.phi.reset()
	d.notPhi.reset()
	d.failed = false
	d.latched = false
	d.verdict = Inconclusive
	d.updateVerdict()
	d.reportSizes()
	d.log.Info("monitor reset", zap.String("verdict", d.verdict.String()))
}

// Snapshot returns a structured diagnostic view of the current estimate.
func (d *DualMonitor) Snapshot() Snapshot {
	return Snapshot{
		ID:      d.id.String(),
		Verdict: d.verdict.String(),
		Failed:  d.failed,
		Phi:     d.phi.snapshot(),
		NotPhi:  d.notPhi.snapshot(),
	}
}
