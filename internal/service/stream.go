package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/t77yq/drive-arbiter/internal/model"
)

const (
	eventStreamName = "EVENTS"
	alertStreamName = "ALERTS"

	eventReportSubject = "events.report"
	eventWireSubject   = "events.wire"
	liveSignalsSubject = "signals.live"
	alertSubject       = "alert.current"
)

// EventReport is the payload fault producers publish each time their view of
// the active set changes: a list of event names.
type EventReport struct {
	Source string   `json:"source,omitempty"`
	Events []string `json:"events"`
}

// Streams is the transport boundary of the controller: it receives event
// reports and live signal snapshots from producers, and publishes the chosen
// alert and per-tick wire events.
type Streams struct {
	logger *zap.Logger
	js     nats.JetStreamContext

	mu       sync.RWMutex
	reported map[string][]model.EventID
	signals  model.LiveSignals

	eventSub  *nats.Subscription
	signalSub *nats.Subscription
}

// NewStreams creates the transport service.
func NewStreams(js nats.JetStreamContext, logger *zap.Logger) *Streams {
	return &Streams{
		logger:   logger.Named("streams"),
		js:       js,
		reported: make(map[string][]model.EventID),
	}
}

// Start ensures the streams exist and subscribes to producer subjects.
func (s *Streams) Start() error {
	for _, sc := range []nats.StreamConfig{
		{Name: eventStreamName, Subjects: []string{"events.*", "signals.*"}, Storage: nats.MemoryStorage},
		{Name: alertStreamName, Subjects: []string{"alert.*"}, Storage: nats.FileStorage},
	} {
		if err := s.ensureStream(sc); err != nil {
			return err
		}
	}

	sub, err := s.js.Subscribe(eventReportSubject, s.handleEventReport)
	if err != nil {
		return fmt.Errorf("failed to subscribe to event reports: %w", err)
	}
	s.eventSub = sub

	sub, err = s.js.Subscribe(liveSignalsSubject, s.handleLiveSignals)
	if err != nil {
		return fmt.Errorf("failed to subscribe to live signals: %w", err)
	}
	s.signalSub = sub

	s.logger.Info("Stream service started")
	return nil
}

// Stop unsubscribes from producer subjects.
func (s *Streams) Stop() {
	if s.eventSub != nil {
		s.eventSub.Unsubscribe()
	}
	if s.signalSub != nil {
		s.signalSub.Unsubscribe()
	}
}

func (s *Streams) ensureStream(cfg nats.StreamConfig) error {
	_, err := s.js.StreamInfo(cfg.Name)
	if err == nil {
		return nil
	}
	if err != nats.ErrStreamNotFound {
		return fmt.Errorf("failed to get stream info: %w", err)
	}
	if _, err := s.js.AddStream(&cfg); err != nil {
		return fmt.Errorf("failed to create stream %s: %w", cfg.Name, err)
	}
	s.logger.Info("Created stream", zap.String("name", cfg.Name))
	return nil
}

// handleEventReport replaces one producer's contribution to the active set.
// Unknown event names are inert and only logged.
func (s *Streams) handleEventReport(msg *nats.Msg) {
	var report EventReport
	if err := json.Unmarshal(msg.Data, &report); err != nil {
		s.logger.Error("Failed to unmarshal event report", zap.Error(err))
		return
	}

	ids := make([]model.EventID, 0, len(report.Events))
	for _, name := range report.Events {
		id, ok := model.EventIDByName(name)
		if !ok {
			s.logger.Debug("Ignoring unknown event name", zap.String("name", name))
			continue
		}
		ids = append(ids, id)
	}

	source := report.Source
	if source == "" {
		source = "default"
	}

	s.mu.Lock()
	s.reported[source] = ids
	s.mu.Unlock()
}

// handleLiveSignals replaces the live signal snapshot callbacks read.
func (s *Streams) handleLiveSignals(msg *nats.Msg) {
	var signals model.LiveSignals
	if err := json.Unmarshal(msg.Data, &signals); err != nil {
		s.logger.Error("Failed to unmarshal live signals", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.signals = signals
	s.mu.Unlock()
}

// Reported returns the merged active set across all producers. Sources are
// walked in name order so the merged sequence, and with it the equal-priority
// tie-break, is deterministic. The engine deduplicates.
func (s *Streams) Reported() []model.EventID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sources := make([]string, 0, len(s.reported))
	for src := range s.reported {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	var out []model.EventID
	for _, src := range sources {
		out = append(out, s.reported[src]...)
	}
	return out
}

// Signals returns the latest live signal snapshot.
func (s *Streams) Signals() model.LiveSignals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signals
}

// PublishAlert publishes the chosen alert for the renderer.
func (s *Streams) PublishAlert(alert model.Alert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}
	if _, err := s.js.Publish(alertSubject, data); err != nil {
		return fmt.Errorf("failed to publish alert: %w", err)
	}
	s.logger.Info("Alert published",
		zap.String("alert_type", alert.AlertType),
		zap.String("priority", alert.Priority.String()),
		zap.String("text", alert.Text1))
	return nil
}

// PublishWire publishes the tick's wire-event records for telemetry.
func (s *Streams) PublishWire(events []model.WireEvent) error {
	if len(events) == 0 {
		return nil
	}
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to marshal wire events: %w", err)
	}
	if _, err := s.js.Publish(eventWireSubject, data); err != nil {
		return fmt.Errorf("failed to publish wire events: %w", err)
	}
	return nil
}
