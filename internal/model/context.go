package model

// GPSHardware classifies the GPS receiver fitted to the device. Integrated
// receivers cannot be repositioned by the user, so reception alerts word
// their advice differently.
type GPSHardware string

const (
	GPSHardwareUnknown    GPSHardware = "unknown"
	GPSHardwareIntegrated GPSHardware = "integrated"
	GPSHardwareExternal   GPSHardware = "external"
)

// VehicleParams are the static parameters of the current vehicle platform.
// Speeds are in m/s.
type VehicleParams struct {
	CarName        string  `json:"car_name"`
	MinEnableSpeed float64 `json:"min_enable_speed"`
	MinSteerSpeed  float64 `json:"min_steer_speed"`
}

// LiveSignals is the per-tick snapshot of subscribed signal values a catalog
// callback may read. Zero values are safe defaults: an absent signal must
// degrade the alert text, never fail the tick.
type LiveSignals struct {
	CalibrationPercent int         `json:"calibration_percent"`
	GPSHardware        GPSHardware `json:"gps_hardware"`
	JoystickAxes       []float64   `json:"joystick_axes,omitempty"`
}

// AlertContext bundles everything a computed catalog entry may consult. It is
// resolved before the tick begins; callbacks only read it.
type AlertContext struct {
	Params  VehicleParams
	Signals LiveSignals

	// Metric selects the display unit system.
	Metric bool

	// SoftDisableTicksRemaining is the number of ticks left before a pending
	// soft disable completes, or zero when none is pending.
	SoftDisableTicksRemaining int
}
