package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/t77yq/drive-arbiter/internal/model"
	"github.com/t77yq/drive-arbiter/internal/testutil"
)

func newTestStreams(t *testing.T) *Streams {
	t.Helper()
	js, cleanup := testutil.StartJetStream(t)
	t.Cleanup(cleanup)

	s := NewStreams(js, zap.NewNop())
	require.NoError(t, s.Start())
	t.Cleanup(s.Stop)
	return s
}

func publishJSON(t *testing.T, s *Streams, subject string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	_, err = s.js.Publish(subject, data)
	require.NoError(t, err)
}

func TestEventReportUpdatesActiveSet(t *testing.T) {
	s := newTestStreams(t)

	publishJSON(t, s, eventReportSubject, EventReport{
		Source: "carState",
		Events: []string{"doorOpen", "seatbeltNotLatched"},
	})

	require.Eventually(t, func() bool {
		ids := s.Reported()
		return len(ids) == 2 &&
			ids[0] == model.EventDoorOpen &&
			ids[1] == model.EventSeatbeltNotLatched
	}, 5*time.Second, 10*time.Millisecond)
}

func TestEventReportReplacesPerSource(t *testing.T) {
	s := newTestStreams(t)

	publishJSON(t, s, eventReportSubject, EventReport{
		Source: "carState",
		Events: []string{"doorOpen"},
	})
	require.Eventually(t, func() bool {
		return len(s.Reported()) == 1
	}, 5*time.Second, 10*time.Millisecond)

	// A new report from the same source replaces, not accumulates.
	publishJSON(t, s, eventReportSubject, EventReport{
		Source: "carState",
		Events: []string{"overheat"},
	})
	require.Eventually(t, func() bool {
		ids := s.Reported()
		return len(ids) == 1 && ids[0] == model.EventOverheat
	}, 5*time.Second, 10*time.Millisecond)
}

func TestReportedMergesSourcesInNameOrder(t *testing.T) {
	s := newTestStreams(t)

	publishJSON(t, s, eventReportSubject, EventReport{
		Source: "b-monitor",
		Events: []string{"lowMemory"},
	})
	publishJSON(t, s, eventReportSubject, EventReport{
		Source: "a-carState",
		Events: []string{"doorOpen"},
	})

	require.Eventually(t, func() bool {
		ids := s.Reported()
		return len(ids) == 2 &&
			ids[0] == model.EventDoorOpen &&
			ids[1] == model.EventLowMemory
	}, 5*time.Second, 10*time.Millisecond)
}

func TestUnknownEventNamesAreSkipped(t *testing.T) {
	s := newTestStreams(t)

	publishJSON(t, s, eventReportSubject, EventReport{
		Events: []string{"notARealEvent", "doorOpen"},
	})

	require.Eventually(t, func() bool {
		ids := s.Reported()
		return len(ids) == 1 && ids[0] == model.EventDoorOpen
	}, 5*time.Second, 10*time.Millisecond)
}

func TestLiveSignalsSnapshot(t *testing.T) {
	s := newTestStreams(t)

	publishJSON(t, s, liveSignalsSubject, model.LiveSignals{
		CalibrationPercent: 42,
		GPSHardware:        model.GPSHardwareExternal,
		JoystickAxes:       []float64{0.5, -0.25},
	})

	require.Eventually(t, func() bool {
		sig := s.Signals()
		return sig.CalibrationPercent == 42 &&
			sig.GPSHardware == model.GPSHardwareExternal &&
			len(sig.JoystickAxes) == 2
	}, 5*time.Second, 10*time.Millisecond)
}

func TestPublishAlertRoundTrip(t *testing.T) {
	s := newTestStreams(t)

	received := make(chan model.Alert, 1)
	sub, err := s.js.Subscribe(alertSubject, func(msg *nats.Msg) {
		var a model.Alert
		if err := json.Unmarshal(msg.Data, &a); err == nil {
			received <- a
		}
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	alert := model.NoEntryAlert("Door Open")
	alert.AlertType = "doorOpen/noEntry"
	require.NoError(t, s.PublishAlert(alert))

	select {
	case got := <-received:
		require.Equal(t, "doorOpen/noEntry", got.AlertType)
		require.Equal(t, "Door Open", got.Text2)
		require.Equal(t, model.PriorityLow, got.Priority)
	case <-time.After(5 * time.Second):
		t.Fatal("alert not received")
	}
}

func TestPublishWire(t *testing.T) {
	s := newTestStreams(t)

	received := make(chan []model.WireEvent, 1)
	sub, err := s.js.Subscribe(eventWireSubject, func(msg *nats.Msg) {
		var events []model.WireEvent
		if err := json.Unmarshal(msg.Data, &events); err == nil {
			received <- events
		}
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	wire := model.WireEvent{Name: "doorOpen"}
	wire.SetType(model.TypeNoEntry)
	require.NoError(t, s.PublishWire([]model.WireEvent{wire}))

	select {
	case got := <-received:
		require.Len(t, got, 1)
		require.Equal(t, "doorOpen", got[0].Name)
		require.True(t, got[0].HasTypeSet(model.TypeNoEntry))
	case <-time.After(5 * time.Second):
		t.Fatal("wire events not received")
	}

	// Empty ticks publish nothing and do not error.
	require.NoError(t, s.PublishWire(nil))
}
