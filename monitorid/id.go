// Package monitorid assigns each monitor.DualMonitor a UUID at
// construction so its log lines and live-stream messages can be
// attributed when several monitors share one log sink or one live.Hub,
// grounded in leanlp-BTC-coinjoin's use of github.com/google/uuid for
// session identity.
package monitorid

import "github.com/google/uuid"

// ID is an opaque monitor session identifier.
type ID string

// New returns a fresh random ID.
func New() ID {
	return ID(uuid.New().String())
}

func (id ID) String() string { return string(id) }
