package coilcooling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultDegradation() LatentDegradation {
	return LatentDegradation{
		MaxCyclingRate:                  3.0,
		EvaporationRateRatio:            1.5,
		LatentCapacityTimeConstant:      45.0,
		NominalTimeForCondensateRemoval: 1000.0,
	}
}

func TestLatentDegradationCheck(t *testing.T) {
	zeroed := func(f func(*LatentDegradation)) LatentDegradation {
		d := defaultDegradation()
		f(&d)
		return d
	}

	cases := []struct {
		name       string
		d          LatentDegradation
		active     bool
		consistent bool
	}{
		{"all positive", defaultDegradation(), true, true},
		{"all zero", LatentDegradation{}, false, true},
		{"cycling rate zero", zeroed(func(d *LatentDegradation) { d.MaxCyclingRate = 0 }), false, false},
		{"evaporation ratio zero", zeroed(func(d *LatentDegradation) { d.EvaporationRateRatio = 0 }), false, false},
		{"time constant zero", zeroed(func(d *LatentDegradation) { d.LatentCapacityTimeConstant = 0 }), false, false},
		{"condensate removal zero", zeroed(func(d *LatentDegradation) { d.NominalTimeForCondensateRemoval = 0 }), false, false},
		{"negative value", zeroed(func(d *LatentDegradation) { d.MaxCyclingRate = -1 }), false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			active, consistent := tc.d.check()
			assert.Equal(t, tc.active, active)
			assert.Equal(t, tc.consistent, consistent)
		})
	}
}

func TestEffectiveSHR(t *testing.T) {
	d := defaultDegradation()
	const shrSS = 0.75
	const qLat = 5000.0

	// 連続運転では補正しない
	assert.Equal(t, shrSS, d.effectiveSHR(26.67, 19.44, shrSS, 1.0, qLat, qLat))
	assert.Equal(t, shrSS, d.effectiveSHR(26.67, 19.44, shrSS, 0.0, qLat, qLat))
	assert.Equal(t, shrSS, d.effectiveSHR(26.67, 19.44, shrSS, 0.5, 0.0, qLat))

	// 運転率が高いほど補正は小さい
	high := d.effectiveSHR(26.67, 19.44, shrSS, 0.9, qLat, qLat)
	low := d.effectiveSHR(26.67, 19.44, shrSS, 0.5, qLat, qLat)
	assert.Greater(t, high, shrSS)
	assert.Less(t, high, 1.0)
	assert.GreaterOrEqual(t, low, high)
	assert.LessOrEqual(t, low, 1.0)

	// モデルが無効であれば補正しない
	inactive := d
	inactive.LatentCapacityTimeConstant = 0
	assert.Equal(t, shrSS, inactive.effectiveSHR(26.67, 19.44, shrSS, 0.5, qLat, qLat))
}
