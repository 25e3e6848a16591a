package coilcooling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnthalpyTemperatureRoundTrip(t *testing.T) {
	psy := MoistAir{}
	for _, tc := range []struct{ tdb, w float64 }{
		{26.6667, 0.0111847},
		{12.0, 0.008},
		{35.0, 0.0141},
		{-5.0, 0.002},
	} {
		h := psy.HFnTdbW(tc.tdb, tc.w)
		assert.InDelta(t, tc.tdb, psy.TdbFnHW(h, tc.w), 1e-9)
		assert.InDelta(t, tc.w, psy.WFnTdbH(tc.tdb, h), 1e-12)
	}
}

func TestWFnTdbHFloorsNegativeHumidity(t *testing.T) {
	psy := MoistAir{}
	assert.Equal(t, minHumRat, psy.WFnTdbH(30.0, 1000.0))
}

func TestSaturationPressure(t *testing.T) {
	psy := MoistAir{}
	// 100 degree C で概ね標準大気圧
	assert.InDelta(t, 101325.0, psy.PsatFnTemp(100.0), 500.0)
	// 20 degree C で約 2339 Pa
	assert.InDelta(t, 2339.0, psy.PsatFnTemp(20.0), 5.0)
	assert.Less(t, psy.PsatFnTemp(-10.0), psy.PsatFnTemp(0.0))
}

func TestWetBulbAtRatedConditions(t *testing.T) {
	psy := MoistAir{}
	twb := psy.TwbFnTdbWPb(get_rated_inlet_air_temp(), get_rated_inlet_air_hum_rat(), get_std_pressure())
	assert.InDelta(t, get_rated_inlet_wet_bulb_temp(), twb, 0.1)
}

func TestWetBulbOfSaturatedAirIsDryBulb(t *testing.T) {
	psy := MoistAir{}
	pb := get_std_pressure()
	ws := psy.WFnTdpPb(15.0, pb)
	assert.InDelta(t, 15.0, psy.TwbFnTdbWPb(15.0, ws, pb), 1e-3)
}

func TestSaturationTemperatureFromEnthalpy(t *testing.T) {
	psy := MoistAir{}
	pb := get_std_pressure()
	for _, ts := range []float64{-10.0, 5.0, 13.0, 25.0, 40.0} {
		h := psy.HFnTdbW(ts, psy.WFnTdpPb(ts, pb))
		assert.InDelta(t, ts, psy.TsatFnHPb(h, pb), 1e-4)
	}
}

func TestRelativeHumidity(t *testing.T) {
	psy := MoistAir{}
	pb := get_std_pressure()
	assert.InDelta(t, 1.0, psy.RhFnTdbWPb(20.0, psy.WFnTdpPb(20.0, pb), pb), 1e-9)
	assert.Equal(t, 1.0, psy.RhFnTdbWPb(20.0, 0.05, pb))
	rh := psy.RhFnTdbWPb(26.6667, 0.0111847, pb)
	assert.True(t, rh > 0.4 && rh < 0.6, "rh=%f", rh)
}

func TestAirDensity(t *testing.T) {
	psy := MoistAir{}
	assert.InDelta(t, 1.2, psy.RhoAirFnPbTdbW(101325.0, 20.0, 0.0), 0.01)
}

func TestFindRoot(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2.0 }

	r, err := find_root(f, 0.0, 2.0, 1e-9, 100)
	assert.NoError(t, err)
	assert.InDelta(t, 1.41421356, r, 1e-6)

	_, err = find_root(f, 2.0, 3.0, 1e-9, 100)
	assert.Error(t, err)

	_, err = find_root(f, 0.0, 2.0, 1e-12, 3)
	assert.Error(t, err)
}
