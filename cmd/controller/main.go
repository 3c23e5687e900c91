package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/t77yq/drive-arbiter/internal/arbiter"
	"github.com/t77yq/drive-arbiter/internal/config"
	"github.com/t77yq/drive-arbiter/internal/controller"
	"github.com/t77yq/drive-arbiter/internal/model"
	"github.com/t77yq/drive-arbiter/internal/monitor"
	"github.com/t77yq/drive-arbiter/internal/service"
	"github.com/t77yq/drive-arbiter/internal/storage"
)

func main() {
	// Initialize logger
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load("./config")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Connect to NATS with reconnect handling
	opts := []nats.Option{
		nats.Name(cfg.App.Name),
		nats.MaxReconnects(cfg.NATS.MaxReconnects),
		nats.ReconnectWait(cfg.NATS.ReconnectWait),
		nats.Timeout(cfg.NATS.ConnectTimeout),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			logger.Error("NATS connection error", zap.Error(err))
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}

	var nc *nats.Conn
	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		nc, err = nats.Connect(cfg.NATS.URL, opts...)
		if err == nil {
			break
		}
		logger.Warn("Failed to connect to NATS, retrying...",
			zap.Int("attempt", i+1),
			zap.Error(err))
		time.Sleep(time.Second * time.Duration(i+1))
	}
	if err != nil {
		logger.Fatal("Failed to connect to NATS after retries", zap.Error(err))
	}
	defer nc.Close()

	js, err := nc.JetStream()
	if err != nil {
		logger.Fatal("Failed to create JetStream context", zap.Error(err))
	}

	// Build the catalog. Any defect in the table aborts startup, never a tick.
	catalog, err := arbiter.BuildCatalog()
	if err != nil {
		logger.Fatal("Catalog validation failed", zap.Error(err))
	}

	events := arbiter.NewEvents(catalog, logger)
	sm := controller.New(events, logger)

	// The startup notice stays for the whole run.
	if cfg.Vehicle.DashcamMode {
		events.AddSticky(model.EventStartupNoControl)
		events.AddSticky(model.EventDashcamMode)
	} else {
		events.AddSticky(model.EventStartup)
	}

	streams := service.NewStreams(js, logger)
	if err := streams.Start(); err != nil {
		logger.Fatal("Failed to start stream service", zap.Error(err))
	}
	defer streams.Stop()

	health := monitor.NewHealthMonitor(monitor.Thresholds{
		CPUPercent:    cfg.Monitor.CPUPercent,
		MemoryPercent: cfg.Monitor.MemoryPercent,
		DiskPercent:   cfg.Monitor.DiskPercent,
	}, cfg.Monitor.Interval, logger)

	history, err := storage.NewSQLiteAlertHistory(logger, cfg.Storage.Path, cfg.Storage.Retention)
	if err != nil {
		logger.Fatal("Failed to open alert history", zap.Error(err))
	}
	defer history.Close()

	if err := history.StartRetention(); err != nil {
		logger.Fatal("Failed to start retention job", zap.Error(err))
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	health.Start(ctx)
	defer health.Stop()

	params := model.VehicleParams{
		CarName:        cfg.Vehicle.CarName,
		MinEnableSpeed: cfg.Vehicle.MinEnableSpeed,
		MinSteerSpeed:  cfg.Vehicle.MinSteerSpeed,
	}

	logger.Info("Controller started",
		zap.String("car", params.CarName),
		zap.Bool("dashcam_mode", cfg.Vehicle.DashcamMode),
		zap.Duration("tick_period", model.TickPeriod))

	runLoop(ctx, logger, sm, streams, health, history, params, cfg.Vehicle.Metric)

	logger.Info("Controller shutting down gracefully")
}

// runLoop is the fixed-period control loop. Every tick merges the producers'
// reported events with the health monitor's, runs one arbitration cycle, and
// publishes the results.
func runLoop(ctx context.Context, logger *zap.Logger, sm *controller.StateMachine,
	streams *service.Streams, health *monitor.HealthMonitor,
	history storage.AlertHistory, params model.VehicleParams, metric bool) {

	ticker := time.NewTicker(model.TickPeriod)
	defer ticker.Stop()

	var lastAlertType string
	var lastWireSig string

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			active := append(streams.Reported(), health.Events()...)

			alertCtx := &model.AlertContext{
				Params:  params,
				Signals: streams.Signals(),
				Metric:  metric,
			}

			res := sm.Tick(active, alertCtx)

			if sig := wireSignature(res.Wire); sig != lastWireSig {
				lastWireSig = sig
				if err := streams.PublishWire(res.Wire); err != nil {
					logger.Error("Failed to publish wire events", zap.Error(err))
				}
			}

			alertType := ""
			if res.Alert != nil {
				alertType = res.Alert.AlertType
			}
			if alertType == lastAlertType {
				continue
			}
			lastAlertType = alertType
			if res.Alert == nil {
				continue
			}

			if err := streams.PublishAlert(*res.Alert); err != nil {
				logger.Error("Failed to publish alert", zap.Error(err))
			}
			if err := history.Store(ctx, &storage.AlertRecord{
				AlertType: res.Alert.AlertType,
				EventType: string(res.Alert.EventType),
				Priority:  res.Alert.Priority,
				Text1:     res.Alert.Text1,
				Text2:     res.Alert.Text2,
				StartedAt: time.Now(),
			}); err != nil {
				logger.Error("Failed to store alert record", zap.Error(err))
			}
		}
	}
}

// wireSignature is a cheap change detector so the wire stream only carries
// transitions, not one message per tick.
func wireSignature(events []model.WireEvent) string {
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.Name
	}
	return strings.Join(names, "|")
}
