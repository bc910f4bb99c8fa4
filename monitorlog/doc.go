// Package monitorlog builds the *zap.Logger used by the monitor package,
// matching the level/format construction of
// octoreflex's cmd/octoreflex/main.go (buildLogger): a development
// (console) or production (JSON) zap.Config selected by format, with the
// level parsed from text.
package monitorlog
