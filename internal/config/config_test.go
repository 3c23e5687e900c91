package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir()) // no config file present
	require.NoError(t, err)

	require.Equal(t, "drive-arbiter", cfg.App.Name)
	require.Equal(t, "nats://127.0.0.1:4222", cfg.NATS.URL)
	require.Equal(t, 10, cfg.NATS.MaxReconnects)
	require.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
	require.Equal(t, "unknown", cfg.Vehicle.CarName)
	require.True(t, cfg.Vehicle.Metric)
	require.False(t, cfg.Vehicle.DashcamMode)
	require.Equal(t, time.Second, cfg.Monitor.Interval)
	require.Equal(t, 90.0, cfg.Monitor.CPUPercent)
	require.Equal(t, "alert_history.db", cfg.Storage.Path)
	require.Equal(t, 7*24*time.Hour, cfg.Storage.Retention)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
app:
  name: test-arbiter

nats:
  url: nats://10.0.0.1:4222

vehicle:
  car_name: honda
  min_enable_speed: 7.0
  min_steer_speed: 1.0
  metric: false
  dashcam_mode: true

monitor:
  interval: 500ms
  cpu_percent: 80.0

storage:
  retention: 48h
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	require.Equal(t, "test-arbiter", cfg.App.Name)
	require.Equal(t, "nats://10.0.0.1:4222", cfg.NATS.URL)
	require.Equal(t, "honda", cfg.Vehicle.CarName)
	require.Equal(t, 7.0, cfg.Vehicle.MinEnableSpeed)
	require.Equal(t, 1.0, cfg.Vehicle.MinSteerSpeed)
	require.False(t, cfg.Vehicle.Metric)
	require.True(t, cfg.Vehicle.DashcamMode)
	require.Equal(t, 500*time.Millisecond, cfg.Monitor.Interval)
	require.Equal(t, 80.0, cfg.Monitor.CPUPercent)

	// Unset keys keep their defaults.
	require.Equal(t, 90.0, cfg.Monitor.MemoryPercent)
	require.Equal(t, 48*time.Hour, cfg.Storage.Retention)
	require.Equal(t, "alert_history.db", cfg.Storage.Path)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("app: [not: valid"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
}
