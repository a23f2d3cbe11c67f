package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertLength(t *testing.T) {
	assert.Equal(t, 10.0, ConvertLength(10, Imperial, Imperial))
	assert.Equal(t, 10.0, ConvertLength(10, Metric, Metric))

	assert.InDelta(t, 3.048, ConvertLength(10, Imperial, Metric), 1e-9)
	assert.InDelta(t, 10, ConvertLength(3.048, Metric, Imperial), 1e-9)
}

func TestConvertArea_UsesOwnFactor(t *testing.T) {
	assert.InDelta(t, 9.2903, ConvertArea(100, Imperial, Metric), 1e-9)
	assert.InDelta(t, 100, ConvertArea(9.2903, Metric, Imperial), 1e-9)
	assert.Equal(t, 100.0, ConvertArea(100, Imperial, Imperial))

	// The area coefficient is its own constant, close to but not defined as
	// the square of the length factor.
	assert.InDelta(t, FeetToMeters*FeetToMeters, SqFeetToSqMeters, 1e-6)
}

func TestToggleFactor(t *testing.T) {
	assert.Equal(t, 1.0, ToggleFactor(Imperial, Imperial))
	assert.Equal(t, FeetToMeters, ToggleFactor(Imperial, Metric))
	assert.Equal(t, MetersToFeet, ToggleFactor(Metric, Imperial))
}

// The documented toggle factors are not exact reciprocals, so a full round
// trip drifts slightly. This pins the actual lossy behavior.
func TestToggleRoundTripIsLossy(t *testing.T) {
	v := 10.0
	roundTrip := v * ToggleFactor(Imperial, Metric) * ToggleFactor(Metric, Imperial)

	assert.NotEqual(t, v, roundTrip)
	assert.InDelta(t, 10.00000032, roundTrip, 1e-9)
	assert.InDelta(t, v, roundTrip, 1e-4)
}

func TestValidAndLabels(t *testing.T) {
	assert.True(t, Valid(Imperial))
	assert.True(t, Valid(Metric))
	assert.False(t, Valid(System("furlongs")))

	assert.Equal(t, "sq ft", LabelsFor(Imperial).Area)
	assert.Equal(t, "gallons", LabelsFor(Imperial).VolumeName)
	assert.Equal(t, "m", LabelsFor(Metric).Length)
	assert.Equal(t, "liters", LabelsFor(Metric).VolumeName)

	// unknown system falls back to imperial labels
	assert.Equal(t, "sq ft", LabelsFor(System("furlongs")).Area)
}
