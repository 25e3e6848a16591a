package coilcooling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.AddOperatingMode(OperatingModeInput{Name: "Mode1"}))
	require.NoError(t, reg.AddSpeed(SpeedInput{Name: "Speed1"}))
	require.NoError(t, reg.AddCurve("CapFT", unity()))

	assert.ErrorIs(t, reg.AddOperatingMode(OperatingModeInput{Name: "MODE1"}), ErrDuplicateObject)
	assert.ErrorIs(t, reg.AddSpeed(SpeedInput{Name: " speed1 "}), ErrDuplicateObject)
	assert.ErrorIs(t, reg.AddCurve("capft", unity()), ErrDuplicateObject)
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.AddSpeed(SpeedInput{Name: "Speed1", GrossCOP: 3.2}))

	s, err := reg.Speed("SPEED1")
	require.NoError(t, err)
	assert.Equal(t, 3.2, s.GrossCOP)

	_, err = reg.Speed("Speed2")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	_, err = reg.OperatingMode("Mode1")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	_, err = reg.Curve("CapFT")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	c, err := reg.optionalCurve("  ")
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestParseCondenserType(t *testing.T) {
	ct, err := ParseCondenserType("evaporativelyCOOLED")
	require.NoError(t, err)
	assert.Equal(t, EvaporativelyCooled, ct)
	assert.Equal(t, "EvaporativelyCooled", ct.String())

	_, err = ParseCondenserType("")
	assert.ErrorIs(t, err, ErrInvalidCondenserType)
}
