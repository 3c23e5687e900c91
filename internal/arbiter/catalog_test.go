package arbiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/t77yq/drive-arbiter/internal/model"
)

func TestBuildCatalogCoversUniverse(t *testing.T) {
	catalog, err := BuildCatalog()
	require.NoError(t, err)
	require.Len(t, catalog, model.NumEvents)

	for i := 0; i < model.NumEvents; i++ {
		_, ok := catalog[model.EventID(i)]
		require.True(t, ok, "missing entry for %s", model.EventID(i))
	}
}

func TestValidateRejectsIncompleteCatalog(t *testing.T) {
	c := Catalog{
		model.EventStartup: {},
	}
	err := c.validate()
	require.ErrorIs(t, err, ErrIncompleteCatalog)
}

func TestValidateRejectsEmptySlot(t *testing.T) {
	catalog, err := BuildCatalog()
	require.NoError(t, err)

	catalog[model.EventStartup] = Entry{model.TypePermanent: AlertSource{}}
	require.ErrorIs(t, catalog.validate(), ErrEmptyAlertSource)
}

func TestSoftDisableEscalation(t *testing.T) {
	catalog, err := BuildCatalog()
	require.NoError(t, err)
	src := catalog[model.EventOverheat][model.TypeSoftDisable]

	// Below the safety margin: strongest wording and audio.
	ctx := testContext()
	ctx.SoftDisableTicksRemaining = softDisableEscalationTicks - 1
	a := src.resolve(ctx)
	require.Equal(t, model.PriorityHighest, a.Priority)
	require.Equal(t, model.StatusCritical, a.Status)

	// At the margin: the regular soft-disable shape.
	ctx.SoftDisableTicksRemaining = softDisableEscalationTicks
	a = src.resolve(ctx)
	require.Equal(t, model.PriorityMid, a.Priority)
	require.Equal(t, model.StatusUserPrompt, a.Status)
}

func TestUserSoftDisablePhrasing(t *testing.T) {
	catalog, err := BuildCatalog()
	require.NoError(t, err)
	src := catalog[model.EventDoorOpen][model.TypeSoftDisable]

	ctx := testContext()
	ctx.SoftDisableTicksRemaining = softDisableEscalationTicks
	a := src.resolve(ctx)
	require.Equal(t, "Pilot will disengage", a.Text1)
	require.Equal(t, "Door Open", a.Text2)

	// Escalation overrides the softer phrasing.
	ctx.SoftDisableTicksRemaining = 0
	a = src.resolve(ctx)
	require.Equal(t, "TAKE CONTROL IMMEDIATELY", a.Text1)
}

func TestDisplaySpeed(t *testing.T) {
	require.Equal(t, "25 km/h", displaySpeed(7.0, true))
	require.Equal(t, "16 mph", displaySpeed(7.0, false))
	require.Equal(t, "0 km/h", displaySpeed(0, true))
}

func TestBelowEngageSpeedAlert(t *testing.T) {
	ctx := testContext()
	a := belowEngageSpeedAlert(ctx)
	require.Equal(t, "Speed Below 25 km/h", a.Text2)

	ctx.Metric = false
	a = belowEngageSpeedAlert(ctx)
	require.Equal(t, "Speed Below 16 mph", a.Text2)
}

func TestJoystickAlertDefaultsOnMissingAxes(t *testing.T) {
	ctx := testContext()
	a := joystickAlert(ctx)
	require.Equal(t, "Gas: 0%, Steer: 0%", a.Text2)

	ctx.Signals.JoystickAxes = []float64{0.5, -0.25}
	a = joystickAlert(ctx)
	require.Equal(t, "Gas: 50%, Steer: -25%", a.Text2)
}

func TestNoGPSAlertVariants(t *testing.T) {
	ctx := testContext()
	ctx.Signals.GPSHardware = model.GPSHardwareIntegrated
	a := noGPSAlert(ctx)
	require.Equal(t, "If sky is visible, contact support", a.Text2)

	ctx.Signals.GPSHardware = model.GPSHardwareExternal
	a = noGPSAlert(ctx)
	require.Equal(t, "Check GPS antenna placement", a.Text2)

	// Absent hardware class behaves like an external antenna.
	ctx.Signals.GPSHardware = ""
	a = noGPSAlert(ctx)
	require.Equal(t, "Check GPS antenna placement", a.Text2)

	require.Equal(t, 300*time.Second, a.CreationDelay)
}

func TestWrongCarModeAlert(t *testing.T) {
	ctx := testContext()
	a := wrongCarModeAlert(ctx)
	require.Equal(t, "Main Switch Off", a.Text2)

	ctx.Params.CarName = "toyota"
	a = wrongCarModeAlert(ctx)
	require.Equal(t, "Cruise Mode Disabled", a.Text2)
}

func TestCalibrationIncompleteAlert(t *testing.T) {
	ctx := testContext()
	ctx.Signals.CalibrationPercent = 42
	a := calibrationIncompleteAlert(ctx)
	require.Equal(t, "Calibration in Progress: 42%", a.Text1)
	require.Equal(t, "Drive Above 54 km/h", a.Text2)
}

func TestNormalPermanentAlertSize(t *testing.T) {
	require.Equal(t, model.SizeSmall, model.NormalPermanentAlert("one line", "").Size)
	require.Equal(t, model.SizeMid, model.NormalPermanentAlert("one line", "two lines").Size)
}

func TestEngagementAlertShape(t *testing.T) {
	a := model.EngagementAlert(model.AudibleEngage)
	require.Empty(t, a.Text1)
	require.Equal(t, model.SizeNone, a.Size)
	require.Equal(t, model.PriorityMid, a.Priority)
	require.Equal(t, 20, a.DurationTicks)
}
