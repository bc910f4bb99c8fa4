// Package telemetry exposes Prometheus instrumentation for a running
// monitor, grounded in octoreflex's internal/observability package: a
// dedicated prometheus.Registry (never the global default, to avoid
// collisions when several monitors share a process), metrics named
// tbamon_<subsystem>_<name>_<unit>, and an HTTP handler serving them.
//
// Recorder is optional everywhere it is accepted: the zero value of
// *Recorder is never used directly, but NewNoop returns a Recorder that
// discards every observation, so instrumentation can be threaded through
// monitor.DualMonitor unconditionally without a nil check at each call
// site.
package telemetry
