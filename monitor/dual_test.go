package monitor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tauzero/tbamon/monitor"
)

func TestDualMonitor_NotPhiOutYieldsPositive(t *testing.T) {
	t.Parallel()

	phi := universal(t, "phi", []string{"a", "b", "c"})
	notPhi := bounded(t, "not_phi", "a")

	m, err := monitor.NewDualMonitor(phi, notPhi, monitor.Config{}, nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, monitor.Inconclusive, m.Verdict())

	v, err := m.Observe(monitor.PointInput(0, "b"))
	require.NoError(t, err)
	assert.Equal(t, monitor.Positive, v)
	assert.False(t, m.Failed())
}

func TestDualMonitor_PhiOutYieldsNegative(t *testing.T) {
	t.Parallel()

	phi := bounded(t, "phi", "a")
	notPhi := universal(t, "not_phi", []string{"a", "b", "c"})

	m, err := monitor.NewDualMonitor(phi, notPhi, monitor.Config{}, nil, nil, nil)
	require.NoError(t, err)

	v, err := m.Observe(monitor.PointInput(0, "b"))
	require.NoError(t, err)
	assert.Equal(t, monitor.Negative, v)
}

func TestDualMonitor_BothOutIsFatal(t *testing.T) {
	t.Parallel()

	phi := bounded(t, "phi", "a")
	notPhi := bounded(t, "not_phi", "a")

	m, err := monitor.NewDualMonitor(phi, notPhi, monitor.Config{}, nil, nil, nil)
	require.NoError(t, err)

	_, err = m.Observe(monitor.PointInput(0, "zzz"))
	require.Error(t, err)
	assert.ErrorIs(t, err, monitor.ErrBothOut)
	assert.True(t, m.Failed())

	_, err = m.Observe(monitor.PointInput(1, "a"))
	assert.ErrorIs(t, err, monitor.ErrFailed)
}

func TestDualMonitor_VerdictLatchesOnFurtherObservations(t *testing.T) {
	t.Parallel()

	phi := bounded(t, "phi", "a")
	notPhi := universal(t, "not_phi", []string{"a", "b", "c"})

	m, err := monitor.NewDualMonitor(phi, notPhi, monitor.Config{}, nil, nil, nil)
	require.NoError(t, err)

	v, err := m.Observe(monitor.PointInput(0, "b"))
	require.NoError(t, err)
	require.Equal(t, monitor.Negative, v)

	v, err = m.Observe(monitor.PointInput(1, "a"))
	require.NoError(t, err)
	assert.Equal(t, monitor.Negative, v, "a latched verdict must not revert")
}

func TestDualMonitor_EmptyFixedPointLatchesAtConstruction(t *testing.T) {
	t.Parallel()

	phi := noIncoming(t, "phi")
	notPhi := universal(t, "not_phi", []string{"a", "b", "c"})

	m, err := monitor.NewDualMonitor(phi, notPhi, monitor.Config{}, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, monitor.Positive, m.Verdict())
}

func TestDualMonitor_RejectsNonMonotonicInput(t *testing.T) {
	t.Parallel()

	phi := universal(t, "phi", []string{"a"})
	notPhi := universal(t, "not_phi", []string{"a"})

	m, err := monitor.NewDualMonitor(phi, notPhi, monitor.Config{}, nil, nil, nil)
	require.NoError(t, err)

	_, err = m.Observe(monitor.PointInput(5, "a"))
	require.NoError(t, err)

	_, err = m.Observe(monitor.PointInput(2, "a"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, monitor.ErrBadInput))
}

func TestDualMonitor_Reset(t *testing.T) {
	t.Parallel()

	phi := bounded(t, "phi", "a")
	notPhi := universal(t, "not_phi", []string{"a", "b", "c"})

	m, err := monitor.NewDualMonitor(phi, notPhi, monitor.Config{}, nil, nil, nil)
	require.NoError(t, err)

	_, err = m.Observe(monitor.PointInput(0, "b"))
	require.NoError(t, err)
	require.Equal(t, monitor.Negative, m.Verdict())

	m.Reset()
	assert.Equal(t, monitor.Inconclusive, m.Verdict())
	assert.False(t, m.Failed())
}

func TestDualMonitor_SnapshotReportsBothSides(t *testing.T) {
	t.Parallel()

	phi := universal(t, "phi", []string{"a"})
	notPhi := universal(t, "not_phi", []string{"a"})

	m, err := monitor.NewDualMonitor(phi, notPhi, monitor.Config{}, nil, nil, nil)
	require.NoError(t, err)

	snap := m.Snapshot()
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, "active", snap.Phi.Status)
	assert.Equal(t, "active", snap.NotPhi.Status)
	assert.Equal(t, 1, snap.Phi.EstimateSize)
}
