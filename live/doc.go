// Package live exposes a running monitor.DualMonitor's verdict to the
// outside world: an HTTP surface grounded in niceyeti-tabular's server
// package (plain net/http.ServeMux rather than a third-party router) and
// a websocket fan-out for /stream following the same upgrade/ping/pong/
// write-deadline structure as that package's publishEleUpdates.
//
// live never reads events itself. Whatever external driver owns the
// input stream calls monitor.DualMonitor.Observe and then Hub.Publish;
// this package only displays what the core already computed.
package live
