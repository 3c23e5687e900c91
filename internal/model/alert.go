package model

import "time"

// TickPeriod is the fixed period of the control loop. Every tick-count
// conversion in the system assumes the loop never changes rate.
const TickPeriod = 10 * time.Millisecond

// Priority is the ordinal severity used to arbitrate between alerts that are
// eligible in the same tick. Higher wins.
type Priority int

const (
	PriorityLowest Priority = iota
	PriorityLower
	PriorityLow
	PriorityMid
	PriorityHigh
	PriorityHighest
)

func (p Priority) String() string {
	switch p {
	case PriorityLowest:
		return "lowest"
	case PriorityLower:
		return "lower"
	case PriorityLow:
		return "low"
	case PriorityMid:
		return "mid"
	case PriorityHigh:
		return "high"
	case PriorityHighest:
		return "highest"
	}
	return "unknown"
}

// AlertStatus describes the urgency styling of an alert.
type AlertStatus string

const (
	StatusNormal     AlertStatus = "normal"
	StatusUserPrompt AlertStatus = "userPrompt"
	StatusCritical   AlertStatus = "critical"
)

// AlertSize describes how much of the display an alert occupies.
type AlertSize string

const (
	SizeNone  AlertSize = "none"
	SizeSmall AlertSize = "small"
	SizeMid   AlertSize = "mid"
	SizeFull  AlertSize = "full"
)

// VisualAlert identifies a visual cue rendered alongside the alert text.
// Opaque to arbitration; the renderer interprets it.
type VisualAlert string

const (
	VisualNone          VisualAlert = "none"
	VisualSteerRequired VisualAlert = "steerRequired"
	VisualBrakePressed  VisualAlert = "brakePressed"
	VisualFCW           VisualAlert = "fcw"
	VisualLDW           VisualAlert = "ldw"
)

// AudibleAlert identifies a sound cue. Opaque to arbitration.
type AudibleAlert string

const (
	AudibleNone             AudibleAlert = "none"
	AudibleEngage           AudibleAlert = "engage"
	AudibleDisengage        AudibleAlert = "disengage"
	AudibleRefuse           AudibleAlert = "refuse"
	AudiblePrompt           AudibleAlert = "prompt"
	AudiblePromptRepeat     AudibleAlert = "promptRepeat"
	AudiblePromptDistracted AudibleAlert = "promptDistracted"
	AudibleWarningSoft      AudibleAlert = "warningSoft"
	AudibleWarningImmediate AudibleAlert = "warningImmediate"
)

// Alert is an immutable user-facing notice. Arbitration orders alerts by
// Priority only; everything else is payload for the renderer.
type Alert struct {
	Text1         string        `json:"text_1"`
	Text2         string        `json:"text_2"`
	Status        AlertStatus   `json:"status"`
	Size          AlertSize     `json:"size"`
	Priority      Priority      `json:"priority"`
	Visual        VisualAlert   `json:"visual_alert"`
	Audible       AudibleAlert  `json:"audible_alert"`
	DurationTicks int           `json:"duration_ticks"`
	RepeatRate    float64       `json:"repeat_rate,omitempty"`
	CreationDelay time.Duration `json:"creation_delay,omitempty"`

	// AlertType is stamped "<event-name>/<event-type>" at collection time,
	// used downstream for deduplication and logging.
	AlertType string    `json:"alert_type,omitempty"`
	EventType EventType `json:"event_type,omitempty"`
}

// NewAlert builds an alert, converting the requested display duration to
// whole ticks.
func NewAlert(text1, text2 string, status AlertStatus, size AlertSize, priority Priority,
	visual VisualAlert, audible AudibleAlert, duration time.Duration) Alert {
	return Alert{
		Text1:         text1,
		Text2:         text2,
		Status:        status,
		Size:          size,
		Priority:      priority,
		Visual:        visual,
		Audible:       audible,
		DurationTicks: int(duration / TickPeriod),
	}
}

// WithCreationDelay returns a copy requiring the owning event to be
// continuously active for d before the alert may surface.
func (a Alert) WithCreationDelay(d time.Duration) Alert {
	a.CreationDelay = d
	return a
}

// WithRepeatRate returns a copy with the given cue repeat rate in Hz.
func (a Alert) WithRepeatRate(rate float64) Alert {
	a.RepeatRate = rate
	return a
}

// WithVisual returns a copy with the given visual cue.
func (a Alert) WithVisual(v VisualAlert) Alert {
	a.Visual = v
	return a
}

// WithStatus returns a copy with the given status.
func (a Alert) WithStatus(s AlertStatus) Alert {
	a.Status = s
	return a
}

// WithPriority returns a copy with the given priority.
func (a Alert) WithPriority(p Priority) Alert {
	a.Priority = p
	return a
}

// WithDuration returns a copy displayed for the given duration.
func (a Alert) WithDuration(d time.Duration) Alert {
	a.DurationTicks = int(d / TickPeriod)
	return a
}

// NoEntryAlert is the entry-refusal shape: the system stays disengaged and
// tells the driver why.
func NoEntryAlert(text2 string) Alert {
	return NewAlert("Pilot Unavailable", text2, StatusNormal, SizeMid,
		PriorityLow, VisualNone, AudibleRefuse, 3*time.Second)
}

// SoftDisableAlert warns that the system is disengaging after a short grace
// period and the driver must take over.
func SoftDisableAlert(text2 string) Alert {
	return NewAlert("TAKE CONTROL IMMEDIATELY", text2, StatusUserPrompt, SizeFull,
		PriorityMid, VisualSteerRequired, AudibleWarningSoft, 2*time.Second)
}

// UserSoftDisableAlert is the softer phrasing of SoftDisableAlert for
// conditions the driver caused themselves.
func UserSoftDisableAlert(text2 string) Alert {
	a := SoftDisableAlert(text2)
	a.Text1 = "Pilot will disengage"
	return a
}

// ImmediateDisableAlert is the strongest shape: control is being returned
// right now.
func ImmediateDisableAlert(text2 string) Alert {
	return NewAlert("TAKE CONTROL IMMEDIATELY", text2, StatusCritical, SizeFull,
		PriorityHighest, VisualSteerRequired, AudibleWarningImmediate, 4*time.Second)
}

// EngagementAlert carries no text; it exists to fire an audible cue on
// engage and disengage transitions.
func EngagementAlert(audible AudibleAlert) Alert {
	return NewAlert("", "", StatusNormal, SizeNone,
		PriorityMid, VisualNone, audible, 200*time.Millisecond)
}

// NormalPermanentAlert is the standing-notice shape. Size depends on whether
// a second line is supplied.
func NormalPermanentAlert(text1, text2 string) Alert {
	size := SizeSmall
	if text2 != "" {
		size = SizeMid
	}
	return NewAlert(text1, text2, StatusNormal, size,
		PriorityLower, VisualNone, AudibleNone, 200*time.Millisecond)
}

// StartupAlert is shown once at boot. The default second line is a generic
// safety reminder.
func StartupAlert(text1 string) Alert {
	return NewAlert(text1, "Always keep hands on wheel and eyes on road",
		StatusNormal, SizeMid, PriorityLower, VisualNone, AudibleNone,
		2500*time.Millisecond)
}
