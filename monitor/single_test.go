package monitor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tauzero/tbamon/monitor"
)

func TestSingleMonitor_StrictLabelsRejectsUnknownLabel(t *testing.T) {
	t.Parallel()

	phi := universal(t, "phi", []string{"a", "b"})
	notPhi := universal(t, "not_phi", []string{"a", "b"})

	cfg := monitor.Config{StrictLabels: true}
	m, err := monitor.NewDualMonitor(phi, notPhi, cfg, nil, nil, nil)
	require.NoError(t, err)

	_, err = m.Observe(monitor.PointInput(0, "q"))
	require.Error(t, err)
	assert.ErrorIs(t, err, monitor.ErrBadInput)
	assert.Equal(t, monitor.Inconclusive, m.Verdict(), "a rejected observation must not change the verdict")
}

func TestSingleMonitor_PermissiveModeAllowsUnknownLabel(t *testing.T) {
	t.Parallel()

	phi := universal(t, "phi", []string{"a"})
	notPhi := universal(t, "not_phi", []string{"a"})

	m, err := monitor.NewDualMonitor(phi, notPhi, monitor.Config{}, nil, nil, nil)
	require.NoError(t, err)

	// Neither side has an edge for "q": both estimates empty on the same
	// observation, which is BothOut rather than a rejected BadInput.
	_, err = m.Observe(monitor.PointInput(0, "q"))
	assert.ErrorIs(t, err, monitor.ErrBothOut)
}

func TestDualMonitor_InclusionOptionDoesNotChangeVerdict(t *testing.T) {
	t.Parallel()

	phi := bounded(t, "phi", "a")
	notPhi := universal(t, "not_phi", []string{"a", "b", "c"})

	withInclusion, err := monitor.NewDualMonitor(phi, notPhi, monitor.Config{Inclusion: true, ClockAbstraction: true}, nil, nil, nil)
	require.NoError(t, err)

	v, err := withInclusion.Observe(monitor.PointInput(0, "b"))
	require.NoError(t, err)
	assert.Equal(t, monitor.Negative, v)
}

func TestDualMonitor_DivergenceAlphabetIsWired(t *testing.T) {
	t.Parallel()

	phi := universal(t, "phi", []string{"a"})
	notPhi := universal(t, "not_phi", []string{"a"})

	cfg := monitor.Config{DivergenceAlphabet: []string{"a"}}
	m, err := monitor.NewDualMonitor(phi, notPhi, cfg, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, monitor.Inconclusive, m.Verdict())
}
