package arbiter

import (
	"fmt"
	"math"
	"time"

	"github.com/t77yq/drive-arbiter/internal/model"
)

// AlertCallback produces an alert from the live tick context. Callbacks must
// be pure, non-blocking, and safe to invoke any number of times per tick.
type AlertCallback func(ctx *model.AlertContext) model.Alert

// AlertSource is one catalog slot: either a fixed alert or a callback that
// computes one from live context.
type AlertSource struct {
	fixed *model.Alert
	build AlertCallback
}

// Fixed wraps a concrete alert.
func Fixed(a model.Alert) AlertSource {
	return AlertSource{fixed: &a}
}

// Computed wraps an alert-producing callback.
func Computed(f AlertCallback) AlertSource {
	return AlertSource{build: f}
}

func (s AlertSource) resolve(ctx *model.AlertContext) model.Alert {
	if s.build != nil {
		return s.build(ctx)
	}
	return *s.fixed
}

// Entry maps the event types an identifier carries to their alert sources.
// An empty entry is legal: the event occurs but produces no alert and no
// control effect.
type Entry map[model.EventType]AlertSource

// Catalog is the process-wide mapping from event identifier to entry. It is
// built once at startup, validated for completeness, and never mutated, so
// concurrent reads are safe.
type Catalog map[model.EventID]Entry

// softDisableEscalationTicks is the margin below which a pending soft disable
// escalates to the immediate wording and audio: the driver is about to lose
// assistance and must hear the stronger cue in time.
var softDisableEscalationTicks = int(500 * time.Millisecond / model.TickPeriod)

// minCalibrationSpeed is the speed the calibration filter needs, in m/s.
const minCalibrationSpeed = 15.0

const (
	msToKph = 3.6
	msToMph = 2.23694
)

// displaySpeed renders a speed in m/s in the active display unit.
func displaySpeed(speedMS float64, metric bool) string {
	if metric {
		return fmt.Sprintf("%d km/h", int(math.Round(speedMS*msToKph)))
	}
	return fmt.Sprintf("%d mph", int(math.Round(speedMS*msToMph)))
}

// softDisable returns the escalating soft-disable callback for text2.
func softDisable(text2 string) AlertCallback {
	return func(ctx *model.AlertContext) model.Alert {
		if ctx.SoftDisableTicksRemaining < softDisableEscalationTicks {
			return model.ImmediateDisableAlert(text2)
		}
		return model.SoftDisableAlert(text2)
	}
}

// userSoftDisable is the escalating variant for driver-caused conditions.
func userSoftDisable(text2 string) AlertCallback {
	return func(ctx *model.AlertContext) model.Alert {
		if ctx.SoftDisableTicksRemaining < softDisableEscalationTicks {
			return model.ImmediateDisableAlert(text2)
		}
		return model.UserSoftDisableAlert(text2)
	}
}

func belowEngageSpeedAlert(ctx *model.AlertContext) model.Alert {
	return model.NoEntryAlert("Speed Below " + displaySpeed(ctx.Params.MinEnableSpeed, ctx.Metric))
}

func belowSteerSpeedAlert(ctx *model.AlertContext) model.Alert {
	return model.NewAlert(
		fmt.Sprintf("Steer Unavailable Below %s", displaySpeed(ctx.Params.MinSteerSpeed, ctx.Metric)),
		"",
		model.StatusUserPrompt, model.SizeSmall, model.PriorityMid,
		model.VisualSteerRequired, model.AudiblePrompt, 400*time.Millisecond)
}

func calibrationIncompleteAlert(ctx *model.AlertContext) model.Alert {
	return model.NewAlert(
		fmt.Sprintf("Calibration in Progress: %d%%", ctx.Signals.CalibrationPercent),
		fmt.Sprintf("Drive Above %s", displaySpeed(minCalibrationSpeed, ctx.Metric)),
		model.StatusNormal, model.SizeMid, model.PriorityLowest,
		model.VisualNone, model.AudibleNone, 200*time.Millisecond)
}

func noGPSAlert(ctx *model.AlertContext) model.Alert {
	text2 := "Check GPS antenna placement"
	if ctx.Signals.GPSHardware == model.GPSHardwareIntegrated {
		text2 = "If sky is visible, contact support"
	}
	return model.NewAlert("Poor GPS reception", text2,
		model.StatusNormal, model.SizeMid, model.PriorityLower,
		model.VisualNone, model.AudibleNone, 200*time.Millisecond).
		WithCreationDelay(300 * time.Second)
}

func wrongCarModeAlert(ctx *model.AlertContext) model.Alert {
	text := "Cruise Mode Disabled"
	if ctx.Params.CarName == "honda" {
		text = "Main Switch Off"
	}
	return model.NoEntryAlert(text)
}

func joystickAlert(ctx *model.AlertContext) model.Alert {
	var gas, steer float64
	if axes := ctx.Signals.JoystickAxes; len(axes) >= 2 {
		gas, steer = axes[0], axes[1]
	}
	vals := fmt.Sprintf("Gas: %d%%, Steer: %d%%",
		int(math.Round(gas*100)), int(math.Round(steer*100)))
	return model.NormalPermanentAlert("Joystick Mode", vals)
}

// BuildCatalog constructs the full event-to-alert table and validates that
// every identifier in the universe has an entry. Catalog defects surface
// here, at startup, never during a tick.
func BuildCatalog() (Catalog, error) {
	c := Catalog{
		// Events that occur but carry no alert and no control effect.
		model.EventStockFCW:       {},
		model.EventCruiseMismatch: {},

		// Alerts displayed in all states.
		model.EventJoystickDebug: {
			model.TypeWarning:   Computed(joystickAlert),
			model.TypePermanent: Fixed(model.NormalPermanentAlert("Joystick Mode", "")),
		},
		model.EventControlsInitializing: {
			model.TypeNoEntry: Fixed(model.NoEntryAlert("System Initializing")),
		},
		model.EventStartup: {
			model.TypePermanent: Fixed(model.StartupAlert("Be ready to take over at any time")),
		},
		model.EventStartupMaster: {
			model.TypePermanent: Fixed(model.StartupAlert("WARNING: This branch is not tested").
				WithStatus(model.StatusUserPrompt)),
		},
		model.EventStartupNoControl: {
			model.TypePermanent: Fixed(model.StartupAlert("Dashcam mode")),
		},
		model.EventStartupNoCar: {
			model.TypePermanent: Fixed(model.StartupAlert("Dashcam mode for unsupported car")),
		},
		model.EventStartupNoFw: {
			model.TypePermanent: Fixed(func() model.Alert {
				a := model.StartupAlert("Car Unrecognized")
				a.Text2 = "Check power connections"
				return a.WithStatus(model.StatusUserPrompt)
			}()),
		},
		model.EventDashcamMode: {
			model.TypePermanent: Fixed(model.NormalPermanentAlert("Dashcam Mode", "").
				WithPriority(model.PriorityLowest)),
		},
		model.EventInvalidLkasSetting: {
			model.TypePermanent: Fixed(model.NormalPermanentAlert("Stock LKAS is on",
				"Turn off stock LKAS to engage")),
		},
		model.EventCommunityFeatureDisallowed: {
			model.TypePermanent: Fixed(model.NormalPermanentAlert("Pilot Unavailable",
				"Enable Community Features in Settings")),
		},
		model.EventCarUnrecognized: {
			model.TypePermanent: Fixed(model.NormalPermanentAlert("Dashcam Mode", "Car Unrecognized").
				WithPriority(model.PriorityLowest)),
		},
		model.EventStockAEB: {
			model.TypePermanent: Fixed(model.NewAlert(
				"BRAKE!", "Stock AEB: Risk of Collision",
				model.StatusCritical, model.SizeFull, model.PriorityHighest,
				model.VisualFCW, model.AudibleNone, 2*time.Second)),
			model.TypeNoEntry: Fixed(model.NoEntryAlert("Stock AEB: Risk of Collision")),
		},
		model.EventFCW: {
			model.TypePermanent: Fixed(model.NewAlert(
				"BRAKE!", "Risk of Collision",
				model.StatusCritical, model.SizeFull, model.PriorityHighest,
				model.VisualFCW, model.AudibleWarningSoft, 2*time.Second)),
		},
		model.EventLDW: {
			model.TypePermanent: Fixed(model.NewAlert(
				"Lane Departure Detected", "",
				model.StatusUserPrompt, model.SizeSmall, model.PriorityLow,
				model.VisualLDW, model.AudiblePrompt, 3*time.Second)),
		},

		// Alerts that display while engaged.
		model.EventGasPressed: {
			model.TypePreEnable: Fixed(model.NewAlert(
				"Release Gas Pedal to Engage", "",
				model.StatusNormal, model.SizeSmall, model.PriorityLowest,
				model.VisualNone, model.AudibleNone, 100*time.Millisecond).
				WithCreationDelay(time.Second)),
		},
		model.EventVehicleModelInvalid: {
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("Vehicle Parameter Identification Failed")),
			model.TypeSoftDisable: Computed(softDisable("Vehicle Parameter Identification Failed")),
		},
		model.EventSteerTempUnavailableSilent: {
			model.TypeWarning: Fixed(model.NewAlert(
				"Steering Temporarily Unavailable", "",
				model.StatusUserPrompt, model.SizeSmall, model.PriorityLow,
				model.VisualSteerRequired, model.AudiblePrompt, time.Second)),
		},
		model.EventPreDriverDistracted: {
			model.TypeWarning: Fixed(model.NewAlert(
				"Pay Attention", "",
				model.StatusNormal, model.SizeSmall, model.PriorityLow,
				model.VisualNone, model.AudibleNone, 100*time.Millisecond)),
		},
		model.EventPromptDriverDistracted: {
			model.TypeWarning: Fixed(model.NewAlert(
				"Pay Attention", "Driver Distracted",
				model.StatusUserPrompt, model.SizeMid, model.PriorityMid,
				model.VisualSteerRequired, model.AudiblePromptDistracted, 100*time.Millisecond)),
		},
		model.EventDriverDistracted: {
			model.TypeWarning: Fixed(model.NewAlert(
				"DISENGAGE IMMEDIATELY", "Driver Distracted",
				model.StatusCritical, model.SizeFull, model.PriorityHigh,
				model.VisualSteerRequired, model.AudibleWarningImmediate, 100*time.Millisecond)),
		},
		model.EventPreDriverUnresponsive: {
			model.TypeWarning: Fixed(model.NewAlert(
				"Touch Steering Wheel: No Face Detected", "",
				model.StatusNormal, model.SizeSmall, model.PriorityLow,
				model.VisualSteerRequired, model.AudibleNone, 100*time.Millisecond).
				WithRepeatRate(0.75)),
		},
		model.EventPromptDriverUnresponsive: {
			model.TypeWarning: Fixed(model.NewAlert(
				"Touch Steering Wheel", "Driver Unresponsive",
				model.StatusUserPrompt, model.SizeMid, model.PriorityMid,
				model.VisualSteerRequired, model.AudiblePromptDistracted, 100*time.Millisecond)),
		},
		model.EventDriverUnresponsive: {
			model.TypeWarning: Fixed(model.NewAlert(
				"DISENGAGE IMMEDIATELY", "Driver Unresponsive",
				model.StatusCritical, model.SizeFull, model.PriorityHigh,
				model.VisualSteerRequired, model.AudibleWarningImmediate, 100*time.Millisecond)),
		},
		model.EventManualRestart: {
			model.TypeWarning: Fixed(model.NewAlert(
				"TAKE CONTROL", "Resume Driving Manually",
				model.StatusUserPrompt, model.SizeMid, model.PriorityLow,
				model.VisualNone, model.AudibleNone, 200*time.Millisecond)),
		},
		model.EventResumeRequired: {
			model.TypeWarning: Fixed(model.NewAlert(
				"STOPPED", "Press Resume to Go",
				model.StatusUserPrompt, model.SizeMid, model.PriorityLow,
				model.VisualNone, model.AudibleNone, 200*time.Millisecond)),
		},
		model.EventBelowSteerSpeed: {
			model.TypeWarning: Computed(belowSteerSpeedAlert),
		},
		model.EventPreLaneChangeLeft: {
			model.TypeWarning: Fixed(model.NewAlert(
				"Steer Left to Start Lane Change Once Safe", "",
				model.StatusNormal, model.SizeSmall, model.PriorityLow,
				model.VisualNone, model.AudibleNone, 100*time.Millisecond).
				WithRepeatRate(0.75)),
		},
		model.EventPreLaneChangeRight: {
			model.TypeWarning: Fixed(model.NewAlert(
				"Steer Right to Start Lane Change Once Safe", "",
				model.StatusNormal, model.SizeSmall, model.PriorityLow,
				model.VisualNone, model.AudibleNone, 100*time.Millisecond).
				WithRepeatRate(0.75)),
		},
		model.EventLaneChangeBlocked: {
			model.TypeWarning: Fixed(model.NewAlert(
				"Car Detected in Blindspot", "",
				model.StatusUserPrompt, model.SizeSmall, model.PriorityLow,
				model.VisualNone, model.AudiblePrompt, 100*time.Millisecond)),
		},
		model.EventLaneChange: {
			model.TypeWarning: Fixed(model.NewAlert(
				"Changing Lanes", "",
				model.StatusNormal, model.SizeSmall, model.PriorityLow,
				model.VisualNone, model.AudibleNone, 100*time.Millisecond)),
		},
		model.EventSteerSaturated: {
			model.TypeWarning: Fixed(model.NewAlert(
				"Take Control", "Turn Exceeds Steering Limit",
				model.StatusUserPrompt, model.SizeMid, model.PriorityLow,
				model.VisualSteerRequired, model.AudiblePromptRepeat, time.Second)),
		},
		model.EventFanMalfunction: {
			model.TypePermanent: Fixed(model.NormalPermanentAlert("Fan Malfunction", "Contact Support")),
		},
		model.EventCameraMalfunction: {
			model.TypePermanent: Fixed(model.NormalPermanentAlert("Camera Malfunction", "Contact Support")),
		},
		model.EventGPSMalfunction: {
			model.TypePermanent: Fixed(model.NormalPermanentAlert("GPS Malfunction", "Contact Support")),
		},
		model.EventLocalizerMalfunction: {
			model.TypePermanent: Fixed(model.NormalPermanentAlert("Sensor Malfunction", "Contact Support")),
		},

		// Events that drive control-state transitions.
		model.EventPcmEnable: {
			model.TypeEnable: Fixed(model.EngagementAlert(model.AudibleEngage)),
		},
		model.EventButtonEnable: {
			model.TypeEnable: Fixed(model.EngagementAlert(model.AudibleEngage)),
		},
		model.EventPcmDisable: {
			model.TypeUserDisable: Fixed(model.EngagementAlert(model.AudibleDisengage)),
		},
		model.EventButtonCancel: {
			model.TypeUserDisable: Fixed(model.EngagementAlert(model.AudibleDisengage)),
		},
		model.EventBrakeHold: {
			model.TypeUserDisable: Fixed(model.EngagementAlert(model.AudibleDisengage)),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("Brake Hold Active")),
		},
		model.EventParkBrake: {
			model.TypeUserDisable: Fixed(model.EngagementAlert(model.AudibleDisengage)),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("Parking Brake Engaged")),
		},
		model.EventPedalPressed: {
			model.TypeUserDisable: Fixed(model.EngagementAlert(model.AudibleDisengage)),
			model.TypeNoEntry: Fixed(model.NoEntryAlert("Pedal Pressed").
				WithVisual(model.VisualBrakePressed)),
		},
		model.EventWrongCarMode: {
			model.TypeUserDisable: Fixed(model.EngagementAlert(model.AudibleDisengage)),
			model.TypeNoEntry:     Computed(wrongCarModeAlert),
		},
		model.EventWrongCruiseMode: {
			model.TypeUserDisable: Fixed(model.EngagementAlert(model.AudibleDisengage)),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("Adaptive Cruise Disabled")),
		},
		model.EventSteerTempUnavailable: {
			model.TypeSoftDisable: Computed(softDisable("Steering Temporarily Unavailable")),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("Steering Temporarily Unavailable")),
		},
		model.EventOutOfSpace: {
			model.TypePermanent: Fixed(model.NormalPermanentAlert("Out of Storage", "")),
			model.TypeNoEntry:   Fixed(model.NoEntryAlert("Out of Storage")),
		},
		model.EventBelowEngageSpeed: {
			model.TypeNoEntry: Computed(belowEngageSpeedAlert),
		},
		model.EventSensorDataInvalid: {
			model.TypePermanent: Fixed(model.NewAlert(
				"No Data from Device Sensors", "Reboot your Device",
				model.StatusNormal, model.SizeMid, model.PriorityLower,
				model.VisualNone, model.AudibleNone, 200*time.Millisecond).
				WithCreationDelay(time.Second)),
			model.TypeNoEntry: Fixed(model.NoEntryAlert("No Data from Device Sensors")),
		},
		model.EventNoGPS: {
			model.TypePermanent: Computed(noGPSAlert),
		},
		model.EventSoundsUnavailable: {
			model.TypePermanent: Fixed(model.NormalPermanentAlert("Speaker not found", "Reboot your Device")),
			model.TypeNoEntry:   Fixed(model.NoEntryAlert("Speaker not found")),
		},
		model.EventTooDistracted: {
			model.TypeNoEntry: Fixed(model.NoEntryAlert("Distraction Level Too High")),
		},
		model.EventOverheat: {
			model.TypePermanent:   Fixed(model.NormalPermanentAlert("System Overheated", "")),
			model.TypeSoftDisable: Computed(softDisable("System Overheated")),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("System Overheated")),
		},
		model.EventWrongGear: {
			model.TypeNoEntry: Fixed(model.NoEntryAlert("Gear not D")),
		},
		model.EventCalibrationInvalid: {
			model.TypePermanent:   Fixed(model.NormalPermanentAlert("Calibration Invalid", "Remount Device and Recalibrate")),
			model.TypeSoftDisable: Computed(softDisable("Calibration Invalid: Remount Device & Recalibrate")),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("Calibration Invalid: Remount Device & Recalibrate")),
		},
		model.EventCalibrationIncomplete: {
			model.TypePermanent:   Computed(calibrationIncompleteAlert),
			model.TypeSoftDisable: Computed(softDisable("Calibration in Progress")),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("Calibration in Progress")),
		},
		model.EventDoorOpen: {
			model.TypeSoftDisable: Computed(userSoftDisable("Door Open")),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("Door Open")),
		},
		model.EventSeatbeltNotLatched: {
			model.TypeSoftDisable: Computed(userSoftDisable("Seatbelt Unlatched")),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("Seatbelt Unlatched")),
		},
		model.EventESPDisabled: {
			model.TypeSoftDisable: Computed(softDisable("ESP Off")),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("ESP Off")),
		},
		model.EventLowBattery: {
			model.TypeSoftDisable: Computed(softDisable("Low Battery")),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("Low Battery")),
		},
		model.EventCommIssue: {
			model.TypeSoftDisable: Computed(softDisable("Communication Issue between Processes")),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("Communication Issue between Processes")),
		},
		model.EventProcessNotRunning: {
			model.TypeNoEntry: Fixed(model.NoEntryAlert("System Malfunction: Reboot Your Device")),
		},
		model.EventRadarFault: {
			model.TypeSoftDisable: Computed(softDisable("Radar Error: Restart the Car")),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("Radar Error: Restart the Car")),
		},
		model.EventModelLagging: {
			model.TypeSoftDisable: Computed(softDisable("Driving model lagging")),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("Driving model lagging")),
		},
		model.EventPosenetInvalid: {
			model.TypeSoftDisable: Computed(softDisable("Model Output Uncertain")),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("Model Output Uncertain")),
		},
		model.EventDeviceFalling: {
			model.TypeSoftDisable: Computed(softDisable("Device Fell Off Mount")),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("Device Fell Off Mount")),
		},
		model.EventLowMemory: {
			model.TypeSoftDisable: Computed(softDisable("Low Memory: Reboot Your Device")),
			model.TypePermanent:   Fixed(model.NormalPermanentAlert("Low Memory", "Reboot your Device")),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("Low Memory: Reboot Your Device")),
		},
		model.EventHighCPUUsage: {
			model.TypeNoEntry: Fixed(model.NoEntryAlert("System Malfunction: Reboot Your Device")),
		},
		model.EventACCFaulted: {
			model.TypeImmediateDisable: Fixed(model.ImmediateDisableAlert("Cruise Faulted")),
			model.TypePermanent:        Fixed(model.NormalPermanentAlert("Cruise Faulted", "")),
			model.TypeNoEntry:          Fixed(model.NoEntryAlert("Cruise Faulted")),
		},
		model.EventControlsMismatch: {
			model.TypeImmediateDisable: Fixed(model.ImmediateDisableAlert("Controls Mismatch")),
		},
		model.EventRoadCameraError: {
			model.TypePermanent: Fixed(model.NormalPermanentAlert("Camera Error", "").
				WithDuration(time.Second).
				WithCreationDelay(30 * time.Second)),
		},
		model.EventDriverCameraError: {
			model.TypePermanent: Fixed(model.NormalPermanentAlert("Camera Error", "").
				WithDuration(time.Second).
				WithCreationDelay(30 * time.Second)),
		},
		model.EventWideRoadCameraError: {
			model.TypePermanent: Fixed(model.NormalPermanentAlert("Camera Error", "").
				WithDuration(time.Second).
				WithCreationDelay(30 * time.Second)),
		},
		model.EventUSBError: {
			model.TypeSoftDisable: Computed(softDisable("USB Error: Reboot Your Device")),
			model.TypePermanent:   Fixed(model.NormalPermanentAlert("USB Error: Reboot Your Device", "")),
			model.TypeNoEntry:     Fixed(model.NoEntryAlert("USB Error: Reboot Your Device")),
		},
		model.EventCANError: {
			model.TypeImmediateDisable: Fixed(model.ImmediateDisableAlert("CAN Error: Check Connections")),
			model.TypePermanent: Fixed(model.NewAlert(
				"CAN Error: Check Connections", "",
				model.StatusNormal, model.SizeSmall, model.PriorityLow,
				model.VisualNone, model.AudibleNone, time.Second).
				WithCreationDelay(time.Second)),
			model.TypeNoEntry: Fixed(model.NoEntryAlert("CAN Error: Check Connections")),
		},
		model.EventSteerUnavailable: {
			model.TypeImmediateDisable: Fixed(model.ImmediateDisableAlert("LKAS Fault: Restart the Car")),
			model.TypePermanent:        Fixed(model.NormalPermanentAlert("LKAS Fault: Restart the car to engage", "")),
			model.TypeNoEntry:          Fixed(model.NoEntryAlert("LKAS Fault: Restart the Car")),
		},
		model.EventBrakeUnavailable: {
			model.TypeImmediateDisable: Fixed(model.ImmediateDisableAlert("Cruise Fault: Restart the Car")),
			model.TypePermanent:        Fixed(model.NormalPermanentAlert("Cruise Fault: Restart the car to engage", "")),
			model.TypeNoEntry:          Fixed(model.NoEntryAlert("Cruise Fault: Restart the Car")),
		},
		model.EventReverseGear: {
			model.TypePermanent: Fixed(model.NewAlert(
				"Reverse\nGear", "",
				model.StatusNormal, model.SizeFull, model.PriorityLowest,
				model.VisualNone, model.AudibleNone, 200*time.Millisecond).
				WithCreationDelay(500 * time.Millisecond)),
			model.TypeNoEntry: Fixed(model.NoEntryAlert("Reverse Gear")),
		},
		model.EventCruiseDisabled: {
			model.TypeImmediateDisable: Fixed(model.ImmediateDisableAlert("Cruise Is Off")),
		},
		model.EventPlannerError: {
			model.TypeImmediateDisable: Fixed(model.ImmediateDisableAlert("Planner Solution Error")),
			model.TypeNoEntry:          Fixed(model.NoEntryAlert("Planner Solution Error")),
		},
		model.EventRelayMalfunction: {
			model.TypeImmediateDisable: Fixed(model.ImmediateDisableAlert("Harness Malfunction")),
			model.TypePermanent:        Fixed(model.NormalPermanentAlert("Harness Malfunction", "Check Hardware")),
			model.TypeNoEntry:          Fixed(model.NoEntryAlert("Harness Malfunction")),
		},
		model.EventNoTarget: {
			model.TypeImmediateDisable: Fixed(model.NewAlert(
				"Pilot Canceled", "No close lead car",
				model.StatusNormal, model.SizeMid, model.PriorityHigh,
				model.VisualNone, model.AudibleDisengage, 3*time.Second)),
			model.TypeNoEntry: Fixed(model.NoEntryAlert("No Close Lead Car")),
		},
		model.EventSpeedTooLow: {
			model.TypeImmediateDisable: Fixed(model.NewAlert(
				"Pilot Canceled", "Speed too low",
				model.StatusNormal, model.SizeMid, model.PriorityHigh,
				model.VisualNone, model.AudibleDisengage, 3*time.Second)),
		},
		model.EventSpeedTooHigh: {
			model.TypeWarning: Fixed(model.NewAlert(
				"Speed Too High", "Model uncertain at this speed",
				model.StatusUserPrompt, model.SizeMid, model.PriorityHigh,
				model.VisualSteerRequired, model.AudiblePromptRepeat, 4*time.Second)),
			model.TypeNoEntry: Fixed(model.NoEntryAlert("Slow down to engage")),
		},
		model.EventLowSpeedLockout: {
			model.TypePermanent: Fixed(model.NormalPermanentAlert("Cruise Fault: Restart the car to engage", "")),
			model.TypeNoEntry:   Fixed(model.NoEntryAlert("Cruise Fault: Restart the Car")),
		},
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// validate checks the table covers exactly the known identifier universe.
func (c Catalog) validate() error {
	for i := 0; i < model.NumEvents; i++ {
		if _, ok := c[model.EventID(i)]; !ok {
			return fmt.Errorf("%w: %s", ErrIncompleteCatalog, model.EventID(i))
		}
	}
	for id, entry := range c {
		if !id.Valid() {
			return fmt.Errorf("%w: id %d", ErrUnknownEvent, int(id))
		}
		for t, src := range entry {
			if src.fixed == nil && src.build == nil {
				return fmt.Errorf("%w: %s/%s", ErrEmptyAlertSource, id, t)
			}
		}
	}
	return nil
}
