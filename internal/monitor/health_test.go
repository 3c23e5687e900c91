package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/t77yq/drive-arbiter/internal/model"
)

func TestEvaluateBelowThresholds(t *testing.T) {
	require.Empty(t, Evaluate(DefaultThresholds(), 50, 50, 50))
}

func TestEvaluateEachThreshold(t *testing.T) {
	th := DefaultThresholds()

	require.Equal(t, []model.EventID{model.EventHighCPUUsage}, Evaluate(th, 95, 50, 50))
	require.Equal(t, []model.EventID{model.EventLowMemory}, Evaluate(th, 50, 95, 50))
	require.Equal(t, []model.EventID{model.EventOutOfSpace}, Evaluate(th, 50, 50, 95))
}

func TestEvaluateThresholdIsExclusive(t *testing.T) {
	th := DefaultThresholds()
	require.Empty(t, Evaluate(th, 90, 90, 90))
}

func TestEvaluateAllExceeded(t *testing.T) {
	events := Evaluate(DefaultThresholds(), 99, 99, 99)
	require.Equal(t, []model.EventID{
		model.EventHighCPUUsage,
		model.EventLowMemory,
		model.EventOutOfSpace,
	}, events)
}

func TestMonitorStartStop(t *testing.T) {
	m := NewHealthMonitor(DefaultThresholds(), 5*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	// Events is read concurrently with the sample loop.
	deadline := time.After(100 * time.Millisecond)
	for {
		select {
		case <-deadline:
			m.Stop()
			m.Stop() // idempotent
			return
		default:
			require.NotNil(t, m.Events())
		}
	}
}
