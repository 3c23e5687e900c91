package controller

import (
	"time"

	"go.uber.org/zap"

	"github.com/t77yq/drive-arbiter/internal/arbiter"
	"github.com/t77yq/drive-arbiter/internal/model"
)

// State is the control state of the autonomy system.
type State string

const (
	StateDisabled      State = "disabled"
	StatePreEnabled    State = "preEnabled"
	StateEnabled       State = "enabled"
	StateSoftDisabling State = "softDisabling"
)

// SoftDisableTime is the grace period a soft-disable condition gets before
// control is handed back.
const SoftDisableTime = 3 * time.Second

var softDisableTicks = int(SoftDisableTime / model.TickPeriod)

// TickResult is what one control cycle produced: the state after transitions,
// the chosen alert if any, and the tick's wire events.
type TickResult struct {
	State State
	Alert *model.Alert
	Wire  []model.WireEvent
}

// StateMachine owns the arbitration engine and runs the per-tick transition
// and alert-selection logic. Single-owner, driven by one loop.
type StateMachine struct {
	logger *zap.Logger
	events *arbiter.Events

	state                State
	softDisableCountdown int
}

// New creates a state machine in the disabled state.
func New(events *arbiter.Events, logger *zap.Logger) *StateMachine {
	return &StateMachine{
		logger: logger.Named("controller"),
		events: events,
		state:  StateDisabled,
	}
}

// State returns the current control state.
func (m *StateMachine) State() State {
	return m.state
}

// Events exposes the owned arbitration engine, e.g. for sticky registration
// at startup.
func (m *StateMachine) Events() *arbiter.Events {
	return m.events
}

// Tick runs one control cycle: report the active set, advance debounce
// counters, apply state transitions, and pick the highest-priority alert
// among this tick's eligible candidates. It never fails; a tick always runs
// to completion.
func (m *StateMachine) Tick(active []model.EventID, ctx *model.AlertContext) TickResult {
	m.events.ReportActive(active)
	m.events.AdvanceTick()

	prev := m.state
	types := []model.EventType{model.TypePermanent}
	if m.state != StateDisabled {
		types = append(types, model.TypeWarning)
	}

	if m.state != StateDisabled {
		switch {
		case m.events.HasType(model.TypeUserDisable):
			m.state = StateDisabled
			m.softDisableCountdown = 0
			types = append(types, model.TypeUserDisable)
		case m.events.HasType(model.TypeImmediateDisable):
			m.state = StateDisabled
			m.softDisableCountdown = 0
			types = append(types, model.TypeImmediateDisable)
		default:
			switch m.state {
			case StateEnabled:
				if m.events.HasType(model.TypeSoftDisable) {
					m.state = StateSoftDisabling
					m.softDisableCountdown = softDisableTicks
					types = append(types, model.TypeSoftDisable)
				}
			case StateSoftDisabling:
				if !m.events.HasType(model.TypeSoftDisable) {
					// Condition cleared inside the grace period.
					m.state = StateEnabled
					m.softDisableCountdown = 0
				} else {
					m.softDisableCountdown--
					types = append(types, model.TypeSoftDisable)
					if m.softDisableCountdown <= 0 {
						m.state = StateDisabled
						m.softDisableCountdown = 0
					}
				}
			case StatePreEnabled:
				if !m.events.HasType(model.TypePreEnable) {
					m.state = StateEnabled
				}
			}
		}
	} else if m.events.HasType(model.TypeEnable) {
		if m.events.HasType(model.TypeNoEntry) {
			// Entry refused; surface the reasons.
			types = append(types, model.TypeNoEntry)
		} else {
			types = append(types, model.TypeEnable)
			if m.events.HasType(model.TypePreEnable) {
				m.state = StatePreEnabled
			} else {
				m.state = StateEnabled
			}
		}
	}

	if m.state == StatePreEnabled {
		types = append(types, model.TypePreEnable)
	}

	if m.state != prev {
		m.logger.Info("control state changed",
			zap.String("from", string(prev)),
			zap.String("to", string(m.state)))
	}

	ctx.SoftDisableTicksRemaining = m.softDisableCountdown
	alerts := m.events.CollectAlerts(types, ctx)

	res := TickResult{
		State: m.state,
		Wire:  m.events.ToWireEvents(),
	}
	if chosen, ok := arbiter.SelectAlert(alerts); ok {
		res.Alert = &chosen
	}
	return res
}
