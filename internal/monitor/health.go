package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"

	"github.com/t77yq/drive-arbiter/internal/model"
)

// Thresholds are the resource levels past which the monitor raises events.
// Percentages in [0, 100].
type Thresholds struct {
	CPUPercent    float64
	MemoryPercent float64
	DiskPercent   float64
}

// DefaultThresholds match the levels the controller can still tolerate
// briefly before entry should be refused.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CPUPercent:    90.0,
		MemoryPercent: 90.0,
		DiskPercent:   90.0,
	}
}

// HealthMonitor samples system resources in the background and raises
// process-health event identifiers for the arbitration engine. It is one of
// the fault producers feeding the control loop.
type HealthMonitor struct {
	logger     *zap.Logger
	thresholds Thresholds
	interval   time.Duration
	diskPath   string

	mu      sync.RWMutex
	current []model.EventID

	stop chan struct{}
	once sync.Once
}

// NewHealthMonitor creates a monitor sampling at the given interval.
func NewHealthMonitor(thresholds Thresholds, interval time.Duration, logger *zap.Logger) *HealthMonitor {
	return &HealthMonitor{
		logger:     logger.Named("health-monitor"),
		thresholds: thresholds,
		interval:   interval,
		diskPath:   "/",
		stop:       make(chan struct{}),
	}
}

// Start begins background sampling.
func (m *HealthMonitor) Start(ctx context.Context) {
	m.logger.Info("Starting health monitor",
		zap.Duration("interval", m.interval),
		zap.Float64("cpu_threshold", m.thresholds.CPUPercent),
		zap.Float64("memory_threshold", m.thresholds.MemoryPercent),
		zap.Float64("disk_threshold", m.thresholds.DiskPercent))
	go m.sampleLoop(ctx)
}

// Stop stops background sampling.
func (m *HealthMonitor) Stop() {
	m.once.Do(func() { close(m.stop) })
}

// Events returns the identifiers raised by the latest sample. The tick loop
// merges them into the active set it reports to the engine.
func (m *HealthMonitor) Events() []model.EventID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.EventID, len(m.current))
	copy(out, m.current)
	return out
}

func (m *HealthMonitor) sampleLoop(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stop:
			return
		case <-ticker.C:
			m.sample()
		}
	}
}

func (m *HealthMonitor) sample() {
	var cpuPct, memPct, diskPct float64

	if pcts, err := cpu.Percent(0, false); err != nil {
		m.logger.Error("Failed to get CPU usage", zap.Error(err))
	} else if len(pcts) > 0 {
		cpuPct = pcts[0]
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		m.logger.Error("Failed to get memory usage", zap.Error(err))
	} else {
		memPct = vm.UsedPercent
	}

	if du, err := disk.Usage(m.diskPath); err != nil {
		m.logger.Error("Failed to get disk usage", zap.Error(err))
	} else {
		diskPct = du.UsedPercent
	}

	events := Evaluate(m.thresholds, cpuPct, memPct, diskPct)

	m.mu.Lock()
	m.current = events
	m.mu.Unlock()

	if len(events) > 0 {
		m.logger.Warn("Health events raised",
			zap.Stringers("events", events),
			zap.Float64("cpu", cpuPct),
			zap.Float64("memory", memPct),
			zap.Float64("disk", diskPct))
	}
}

// Evaluate maps resource readings to the event identifiers they raise.
func Evaluate(t Thresholds, cpuPct, memPct, diskPct float64) []model.EventID {
	var events []model.EventID
	if cpuPct > t.CPUPercent {
		events = append(events, model.EventHighCPUUsage)
	}
	if memPct > t.MemoryPercent {
		events = append(events, model.EventLowMemory)
	}
	if diskPct > t.DiskPercent {
		events = append(events, model.EventOutOfSpace)
	}
	return events
}
