package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder records metrics for a DualMonitor. A nil *Recorder is not
// valid; use NewNoop for a discard-everything instance.
type Recorder struct {
	registry *prometheus.Registry
	noop     bool

	verdictsTotal        *prometheus.CounterVec
	estimateListSize     *prometheus.GaugeVec
	observeLatency       prometheus.Histogram
	observationsTotal    *prometheus.CounterVec
	fixedPointIterations prometheus.Histogram
}

// NewRecorder creates and registers the monitor's Prometheus metrics on a
// dedicated registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()

	r := &Recorder{
		registry: reg,

		verdictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tbamon",
			Subsystem: "monitor",
			Name:      "verdicts_total",
			Help:      "Total verdicts emitted, by kind (positive, negative, inconclusive).",
		}, []string{"verdict"}),

		estimateListSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "tbamon",
			Subsystem: "monitor",
			Name:      "estimate_list_size",
			Help:      "Current number of symbolic states tracked, by side (phi, not_phi).",
		}, []string{"side"}),

		observeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tbamon",
			Subsystem: "monitor",
			Name:      "observe_latency_seconds",
			Help:      "Wall-clock time to process a single observation across both sides.",
			Buckets:   prometheus.DefBuckets,
		}),

		observationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tbamon",
			Subsystem: "monitor",
			Name:      "observations_total",
			Help:      "Total observations processed, by outcome (accepted, rejected).",
		}, []string{"outcome"}),

		fixedPointIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tbamon",
			Subsystem: "fixedpoint",
			Name:      "accept_reach_iterations",
			Help:      "Number of outer fixed-point rounds AcceptReach took to converge.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34},
		}),
	}

	reg.MustRegister(
		r.verdictsTotal,
		r.estimateListSize,
		r.observeLatency,
		r.observationsTotal,
		r.fixedPointIterations,
	)
	return r
}

// NewNoop returns a Recorder whose methods are safe to call but record
// nothing and are never registered with any registry.
func NewNoop() *Recorder {
	return &Recorder{noop: true}
}

// ObserveVerdict increments the verdict counter for the given verdict kind.
func (r *Recorder) ObserveVerdict(verdict string) {
	if r.noop {
		return
	}
	r.verdictsTotal.WithLabelValues(verdict).Inc()
}

// SetEstimateListSize records the current estimate list size for a side.
func (r *Recorder) SetEstimateListSize(side string, size int) {
	if r.noop {
		return
	}
	r.estimateListSize.WithLabelValues(side).Set(float64(size))
}

// ObserveLatency records how long a single observation took to process.
func (r *Recorder) ObserveLatency(d time.Duration) {
	if r.noop {
		return
	}
	r.observeLatency.Observe(d.Seconds())
}

// ObserveOutcome increments the observations counter for an outcome
// ("accepted" or "rejected").
func (r *Recorder) ObserveOutcome(outcome string) {
	if r.noop {
		return
	}
	r.observationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveFixedPointIterations records how many outer rounds AcceptReach
// took to converge.
func (r *Recorder) ObserveFixedPointIterations(n int) {
	if r.noop {
		return
	}
	r.fixedPointIterations.Observe(float64(n))
}

// Handler returns the http.Handler serving this recorder's metrics in
// Prometheus exposition format. Returns nil for a no-op recorder.
func (r *Recorder) Handler() http.Handler {
	if r.noop {
		return nil
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

// Serve starts a dedicated metrics HTTP server on addr, blocking until ctx
// is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	if r.noop {
		<-ctx.Done()
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("telemetry: serve %s: %w", addr, err)
	}
	return nil
}
