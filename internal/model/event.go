package model

import "fmt"

// EventType is the control-relevant category an event carries. One event may
// carry several types at once.
type EventType string

const (
	TypeEnable           EventType = "enable"
	TypePreEnable        EventType = "preEnable"
	TypeNoEntry          EventType = "noEntry"
	TypeWarning          EventType = "warning"
	TypeUserDisable      EventType = "userDisable"
	TypeSoftDisable      EventType = "softDisable"
	TypeImmediateDisable EventType = "immediateDisable"
	TypePermanent        EventType = "permanent"
)

// EventTypes lists every category in a stable order.
var EventTypes = []EventType{
	TypeEnable,
	TypePreEnable,
	TypeNoEntry,
	TypeWarning,
	TypeUserDisable,
	TypeSoftDisable,
	TypeImmediateDisable,
	TypePermanent,
}

// EventID identifies one discrete fault or condition raised by an external
// producer. IDs are dense so per-event counters fit in a flat slice.
type EventID int

const (
	EventStockFCW EventID = iota
	EventJoystickDebug
	EventControlsInitializing
	EventStartup
	EventStartupMaster
	EventStartupNoControl
	EventStartupNoCar
	EventStartupNoFw
	EventDashcamMode
	EventInvalidLkasSetting
	EventCruiseMismatch
	EventCommunityFeatureDisallowed
	EventCarUnrecognized
	EventStockAEB
	EventFCW
	EventLDW
	EventGasPressed
	EventVehicleModelInvalid
	EventSteerTempUnavailableSilent
	EventPreDriverDistracted
	EventPromptDriverDistracted
	EventDriverDistracted
	EventPreDriverUnresponsive
	EventPromptDriverUnresponsive
	EventDriverUnresponsive
	EventManualRestart
	EventResumeRequired
	EventBelowSteerSpeed
	EventPreLaneChangeLeft
	EventPreLaneChangeRight
	EventLaneChangeBlocked
	EventLaneChange
	EventSteerSaturated
	EventFanMalfunction
	EventCameraMalfunction
	EventGPSMalfunction
	EventLocalizerMalfunction
	EventPcmEnable
	EventButtonEnable
	EventPcmDisable
	EventButtonCancel
	EventBrakeHold
	EventParkBrake
	EventPedalPressed
	EventWrongCarMode
	EventWrongCruiseMode
	EventSteerTempUnavailable
	EventOutOfSpace
	EventBelowEngageSpeed
	EventSensorDataInvalid
	EventNoGPS
	EventSoundsUnavailable
	EventTooDistracted
	EventOverheat
	EventWrongGear
	EventCalibrationInvalid
	EventCalibrationIncomplete
	EventDoorOpen
	EventSeatbeltNotLatched
	EventESPDisabled
	EventLowBattery
	EventCommIssue
	EventProcessNotRunning
	EventRadarFault
	EventModelLagging
	EventPosenetInvalid
	EventDeviceFalling
	EventLowMemory
	EventHighCPUUsage
	EventACCFaulted
	EventControlsMismatch
	EventRoadCameraError
	EventDriverCameraError
	EventWideRoadCameraError
	EventUSBError
	EventCANError
	EventSteerUnavailable
	EventBrakeUnavailable
	EventReverseGear
	EventCruiseDisabled
	EventPlannerError
	EventRelayMalfunction
	EventNoTarget
	EventSpeedTooLow
	EventSpeedTooHigh
	EventLowSpeedLockout

	eventCount // keep last
)

// NumEvents is the size of the event-identifier universe.
const NumEvents = int(eventCount)

var eventNames = [...]string{
	EventStockFCW:                   "stockFcw",
	EventJoystickDebug:              "joystickDebug",
	EventControlsInitializing:       "controlsInitializing",
	EventStartup:                    "startup",
	EventStartupMaster:              "startupMaster",
	EventStartupNoControl:           "startupNoControl",
	EventStartupNoCar:               "startupNoCar",
	EventStartupNoFw:                "startupNoFw",
	EventDashcamMode:                "dashcamMode",
	EventInvalidLkasSetting:         "invalidLkasSetting",
	EventCruiseMismatch:             "cruiseMismatch",
	EventCommunityFeatureDisallowed: "communityFeatureDisallowed",
	EventCarUnrecognized:            "carUnrecognized",
	EventStockAEB:                   "stockAeb",
	EventFCW:                        "fcw",
	EventLDW:                        "ldw",
	EventGasPressed:                 "gasPressed",
	EventVehicleModelInvalid:        "vehicleModelInvalid",
	EventSteerTempUnavailableSilent: "steerTempUnavailableSilent",
	EventPreDriverDistracted:        "preDriverDistracted",
	EventPromptDriverDistracted:     "promptDriverDistracted",
	EventDriverDistracted:           "driverDistracted",
	EventPreDriverUnresponsive:      "preDriverUnresponsive",
	EventPromptDriverUnresponsive:   "promptDriverUnresponsive",
	EventDriverUnresponsive:         "driverUnresponsive",
	EventManualRestart:              "manualRestart",
	EventResumeRequired:             "resumeRequired",
	EventBelowSteerSpeed:            "belowSteerSpeed",
	EventPreLaneChangeLeft:          "preLaneChangeLeft",
	EventPreLaneChangeRight:         "preLaneChangeRight",
	EventLaneChangeBlocked:          "laneChangeBlocked",
	EventLaneChange:                 "laneChange",
	EventSteerSaturated:             "steerSaturated",
	EventFanMalfunction:             "fanMalfunction",
	EventCameraMalfunction:          "cameraMalfunction",
	EventGPSMalfunction:             "gpsMalfunction",
	EventLocalizerMalfunction:       "localizerMalfunction",
	EventPcmEnable:                  "pcmEnable",
	EventButtonEnable:               "buttonEnable",
	EventPcmDisable:                 "pcmDisable",
	EventButtonCancel:               "buttonCancel",
	EventBrakeHold:                  "brakeHold",
	EventParkBrake:                  "parkBrake",
	EventPedalPressed:               "pedalPressed",
	EventWrongCarMode:               "wrongCarMode",
	EventWrongCruiseMode:            "wrongCruiseMode",
	EventSteerTempUnavailable:       "steerTempUnavailable",
	EventOutOfSpace:                 "outOfSpace",
	EventBelowEngageSpeed:           "belowEngageSpeed",
	EventSensorDataInvalid:          "sensorDataInvalid",
	EventNoGPS:                      "noGps",
	EventSoundsUnavailable:          "soundsUnavailable",
	EventTooDistracted:              "tooDistracted",
	EventOverheat:                   "overheat",
	EventWrongGear:                  "wrongGear",
	EventCalibrationInvalid:         "calibrationInvalid",
	EventCalibrationIncomplete:      "calibrationIncomplete",
	EventDoorOpen:                   "doorOpen",
	EventSeatbeltNotLatched:         "seatbeltNotLatched",
	EventESPDisabled:                "espDisabled",
	EventLowBattery:                 "lowBattery",
	EventCommIssue:                  "commIssue",
	EventProcessNotRunning:          "processNotRunning",
	EventRadarFault:                 "radarFault",
	EventModelLagging:               "modeldLagging",
	EventPosenetInvalid:             "posenetInvalid",
	EventDeviceFalling:              "deviceFalling",
	EventLowMemory:                  "lowMemory",
	EventHighCPUUsage:               "highCpuUsage",
	EventACCFaulted:                 "accFaulted",
	EventControlsMismatch:           "controlsMismatch",
	EventRoadCameraError:            "roadCameraError",
	EventDriverCameraError:          "driverCameraError",
	EventWideRoadCameraError:        "wideRoadCameraError",
	EventUSBError:                   "usbError",
	EventCANError:                   "canError",
	EventSteerUnavailable:           "steerUnavailable",
	EventBrakeUnavailable:           "brakeUnavailable",
	EventReverseGear:                "reverseGear",
	EventCruiseDisabled:             "cruiseDisabled",
	EventPlannerError:               "plannerError",
	EventRelayMalfunction:           "relayMalfunction",
	EventNoTarget:                   "noTarget",
	EventSpeedTooLow:                "speedTooLow",
	EventSpeedTooHigh:               "speedTooHigh",
	EventLowSpeedLockout:            "lowSpeedLockout",
}

var eventIDsByName = func() map[string]EventID {
	m := make(map[string]EventID, NumEvents)
	for id, name := range eventNames {
		m[name] = EventID(id)
	}
	return m
}()

// Valid reports whether the identifier belongs to the known universe.
func (e EventID) Valid() bool {
	return e >= 0 && e < eventCount
}

func (e EventID) String() string {
	if !e.Valid() {
		return fmt.Sprintf("event(%d)", int(e))
	}
	return eventNames[e]
}

// EventIDByName resolves a wire name to its identifier.
func EventIDByName(name string) (EventID, bool) {
	id, ok := eventIDsByName[name]
	return id, ok
}

// WireEvent is the telemetry record emitted for one active event identifier:
// the event name plus a boolean per event type present in its catalog entry.
type WireEvent struct {
	Name             string `json:"name"`
	Enable           bool   `json:"enable,omitempty"`
	PreEnable        bool   `json:"pre_enable,omitempty"`
	NoEntry          bool   `json:"no_entry,omitempty"`
	Warning          bool   `json:"warning,omitempty"`
	UserDisable      bool   `json:"user_disable,omitempty"`
	SoftDisable      bool   `json:"soft_disable,omitempty"`
	ImmediateDisable bool   `json:"immediate_disable,omitempty"`
	Permanent        bool   `json:"permanent,omitempty"`
}

// SetType flags the given event type on the record.
func (w *WireEvent) SetType(t EventType) {
	switch t {
	case TypeEnable:
		w.Enable = true
	case TypePreEnable:
		w.PreEnable = true
	case TypeNoEntry:
		w.NoEntry = true
	case TypeWarning:
		w.Warning = true
	case TypeUserDisable:
		w.UserDisable = true
	case TypeSoftDisable:
		w.SoftDisable = true
	case TypeImmediateDisable:
		w.ImmediateDisable = true
	case TypePermanent:
		w.Permanent = true
	}
}

// HasTypeSet reports whether the given event type is flagged on the record.
func (w *WireEvent) HasTypeSet(t EventType) bool {
	switch t {
	case TypeEnable:
		return w.Enable
	case TypePreEnable:
		return w.PreEnable
	case TypeNoEntry:
		return w.NoEntry
	case TypeWarning:
		return w.Warning
	case TypeUserDisable:
		return w.UserDisable
	case TypeSoftDisable:
		return w.SoftDisable
	case TypeImmediateDisable:
		return w.ImmediateDisable
	case TypePermanent:
		return w.Permanent
	}
	return false
}
