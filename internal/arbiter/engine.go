package arbiter

import (
	"time"

	"go.uber.org/zap"

	"github.com/t77yq/drive-arbiter/internal/model"
)

// Events is the per-controller arbitration state: the identifiers reported
// active this tick, the sticky identifiers forced active every tick, and one
// age counter per identifier in the catalog.
//
// Events is single-owner state. The owning control loop calls ReportActive
// then AdvanceTick exactly once per tick, followed by any number of HasType /
// CollectAlerts / ToWireEvents queries. It must not be shared across
// goroutines without external synchronization.
type Events struct {
	logger  *zap.Logger
	catalog Catalog

	active []model.EventID
	sticky []model.EventID

	// age[id] counts consecutive ticks the identifier has been active,
	// inclusive of the current tick; zero while inactive.
	age []int
}

// NewEvents creates arbitration state over the given catalog with all age
// counters at zero.
func NewEvents(catalog Catalog, logger *zap.Logger) *Events {
	return &Events{
		logger:  logger.Named("arbiter"),
		catalog: catalog,
		age:     make([]int, model.NumEvents),
	}
}

// ReportActive replaces the active set for the upcoming tick. Duplicates
// collapse to a single presence, first-seen order preserved. Unknown
// identifiers are accepted and inert.
func (e *Events) ReportActive(ids []model.EventID) {
	e.active = e.active[:0]
	seen := make(map[model.EventID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		e.active = append(e.active, id)
	}
}

// AddSticky registers an identifier as forced active every tick until process
// restart. Registration is append-only; there is no removal.
func (e *Events) AddSticky(id model.EventID) {
	for _, s := range e.sticky {
		if s == id {
			return
		}
	}
	e.sticky = append(e.sticky, id)
	e.logger.Info("sticky event registered", zap.Stringer("event", id))
}

// AdvanceTick advances every age counter for the current tick: identifiers
// present in the active or sticky set count up, absent ones reset to zero.
// Call exactly once per control cycle, after ReportActive.
func (e *Events) AdvanceTick() {
	var present [model.NumEvents]bool
	for _, id := range e.active {
		if id.Valid() {
			present[id] = true
		}
	}
	for _, id := range e.sticky {
		if id.Valid() {
			present[id] = true
		}
	}
	for id := 0; id < model.NumEvents; id++ {
		if present[id] {
			e.age[id]++
		} else {
			e.age[id] = 0
		}
	}
}

// Active returns the evaluation order for the current tick: reported
// identifiers followed by sticky ones, without duplicates.
func (e *Events) Active() []model.EventID {
	out := make([]model.EventID, 0, len(e.active)+len(e.sticky))
	out = append(out, e.active...)
	for _, id := range e.sticky {
		dup := false
		for _, a := range e.active {
			if a == id {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, id)
		}
	}
	return out
}

// HasType reports whether any identifier in the current tick's active+sticky
// set carries the given event type. This is the existence test the controller
// uses for state transitions; it produces no alert.
func (e *Events) HasType(t model.EventType) bool {
	for _, id := range e.Active() {
		if entry, ok := e.catalog[id]; ok {
			if _, has := entry[t]; has {
				return true
			}
		}
	}
	return false
}

// CollectAlerts evaluates the catalog for every active and sticky identifier,
// in reported order, producing the candidate alerts for the requested event
// types. A candidate surfaces only once its event has been continuously
// active for the alert's creation delay. Each returned alert is stamped with
// its "<event-name>/<event-type>" alert type.
//
// CollectAlerts never mutates engine state; calling it twice in one tick with
// the same arguments yields identical results.
func (e *Events) CollectAlerts(types []model.EventType, ctx *model.AlertContext) []model.Alert {
	ret := make([]model.Alert, 0, 4)
	for _, id := range e.Active() {
		entry, ok := e.catalog[id]
		if !ok {
			continue
		}
		for _, t := range types {
			src, has := entry[t]
			if !has {
				continue
			}
			alert, ok := e.resolve(id, t, src, ctx)
			if !ok {
				continue
			}
			if time.Duration(e.age[id])*model.TickPeriod < alert.CreationDelay {
				continue
			}
			alert.AlertType = id.String() + "/" + string(t)
			alert.EventType = t
			ret = append(ret, alert)
		}
	}
	return ret
}

// resolve evaluates one catalog slot. A panicking callback is contained here:
// the candidate is dropped and the tick continues.
func (e *Events) resolve(id model.EventID, t model.EventType, src AlertSource, ctx *model.AlertContext) (alert model.Alert, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("alert callback panicked",
				zap.Stringer("event", id),
				zap.String("event_type", string(t)),
				zap.Any("panic", r))
			ok = false
		}
	}()
	return src.resolve(ctx), true
}

// ToWireEvents emits one telemetry record per active+sticky identifier, with
// a flag per event type present in its catalog entry.
func (e *Events) ToWireEvents() []model.WireEvent {
	ids := e.Active()
	ret := make([]model.WireEvent, 0, len(ids))
	for _, id := range ids {
		w := model.WireEvent{Name: id.String()}
		for _, t := range model.EventTypes {
			if entry, ok := e.catalog[id]; ok {
				if _, has := entry[t]; has {
					w.SetType(t)
				}
			}
		}
		ret = append(ret, w)
	}
	return ret
}

// SelectAlert picks the highest-priority alert among the candidates. Ties go
// to the earlier candidate, so insertion order is the tie-break.
func SelectAlert(alerts []model.Alert) (model.Alert, bool) {
	if len(alerts) == 0 {
		return model.Alert{}, false
	}
	best := alerts[0]
	for _, a := range alerts[1:] {
		if a.Priority > best.Priority {
			best = a
		}
	}
	return best, true
}
